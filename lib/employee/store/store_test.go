package employeestore

import (
	"testing"

	"iga-backend/db/testdb"
	"iga-backend/models"
	dbmodels "iga-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestEmployeeStore(t *testing.T) {
	t.Run(`upsert keeps slack id and mirror delete is scoped`, func(t *testing.T) {
		db := testdb.New(t)
		store := NewInstance(db)
		require.Nil(t, store.Upsert([]dbmodels.Employee{
			{Email: "a@example.com", FullName: "A", WorkerType: models.WorkerEmployee},
			{Email: "b@example.com", FullName: "B", WorkerType: models.WorkerEmployee},
			{Email: "c@example.com", FullName: "C", WorkerType: models.WorkerContractor},
		}))
		a, err := store.GetByEmail("A@example.com")
		require.Nil(t, err)
		slackID := "U1"
		require.Nil(t, store.SetSlackID(a.ID, &slackID))

		require.Nil(t, store.Upsert([]dbmodels.Employee{
			{Email: "a@example.com", FullName: "A Renamed", Role: "Engineer", WorkerType: models.WorkerEmployee},
		}))
		a2, err := store.GetByEmail("a@example.com")
		require.Nil(t, err)
		require.Equal(t, a.ID, a2.ID)
		require.Equal(t, "A Renamed", a2.FullName)
		require.Equal(t, "U1", *a2.SlackID)

		deleted, err := store.DeleteMissing([]models.WorkerType{models.WorkerEmployee}, []string{"a@example.com"})
		require.Nil(t, err)
		require.Equal(t, int64(1), deleted)

		all, err := store.ListAll()
		require.Nil(t, err)
		require.Len(t, all, 2)

		ids, err := store.SlackIDs([]string{"a@example.com", "c@example.com"})
		require.Nil(t, err)
		require.Equal(t, map[string]string{"a@example.com": "U1"}, ids)
	})

	t.Run(`empty authoritative set removes every row of the type`, func(t *testing.T) {
		db := testdb.New(t)
		store := NewInstance(db)
		require.Nil(t, store.Upsert([]dbmodels.Employee{
			{Email: "a@example.com", WorkerType: models.WorkerContractor},
			{Email: "b@example.com", WorkerType: models.WorkerEmployee},
		}))
		deleted, err := store.DeleteMissing([]models.WorkerType{models.WorkerContractor}, nil)
		require.Nil(t, err)
		require.Equal(t, int64(1), deleted)
	})
}
