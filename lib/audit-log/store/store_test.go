package auditlogstore

import (
	"testing"

	"iga-backend/db/testdb"
	auditapimodels "iga-backend/models/api/audit"
	dbmodels "iga-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAuditLogStore(t *testing.T) {
	t.Run(`entries cannot be changed or removed`, func(t *testing.T) {
		db := testdb.New(t)
		store := NewInstance(db)
		decision := "Approved"
		id, err := store.Create(dbmodels.AuditLog{
			ActorEmail: "owner@example.com",
			Action:     "review_item_decision",
			TargetUser: "user@example.com",
			AssetName:  "GitHub",
			Decision:   &decision,
			Metadata:   dbmodels.JSONMap{"review_item_id": "r1"},
		})
		require.Nil(t, err)
		require.NotEmpty(t, id)

		err = db.Model(&dbmodels.AuditLog{ID: id}).Update("action", "tampered").Error
		require.True(t, errors.Is(err, dbmodels.ErrAuditLogImmutable))
		err = db.Delete(&dbmodels.AuditLog{ID: id}).Error
		require.True(t, errors.Is(err, dbmodels.ErrAuditLogImmutable))

		list, count, err := store.List(auditapimodels.AuditLogFilter{})
		require.Nil(t, err)
		require.Equal(t, int64(1), count)
		require.Equal(t, "review_item_decision", list[0].Action)
		require.Equal(t, "r1", list[0].Metadata["review_item_id"])
	})

	t.Run(`filter and paging`, func(t *testing.T) {
		db := testdb.New(t)
		store := NewInstance(db)
		for i := 0; i < 15; i++ {
			action := "review_item_decision"
			if i%3 == 0 {
				action = "review_delegation"
			}
			_, err := store.Create(dbmodels.AuditLog{ActorEmail: "Owner@Example.com", Action: action})
			require.Nil(t, err)
		}
		filter := auditapimodels.AuditLogFilter{Action: "review_delegation"}
		list, count, err := store.List(filter)
		require.Nil(t, err)
		require.Equal(t, int64(5), count)
		require.Len(t, list, 5)

		filter = auditapimodels.AuditLogFilter{ActorEmail: "owner@example.com"}
		filter.Limit = 10
		filter.Page = 2
		list, count, err = store.List(filter)
		require.Nil(t, err)
		require.Equal(t, int64(15), count)
		require.Len(t, list, 5)
	})
}
