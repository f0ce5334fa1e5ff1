package employeestore

import (
	"iga-backend/models"
	directoryapimodels "iga-backend/models/api/directory"
	dbmodels "iga-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	// Upsert inserts or refreshes rows keyed by e-mail. slack_id is never touched.
	Upsert(list []dbmodels.Employee) error
	// DeleteMissing removes rows of the worker types whose e-mail is not in keep.
	DeleteMissing(workerTypes []models.WorkerType, keep []string) (deleted int64, err error)
	GetByEmail(email string) (rec *dbmodels.Employee, err error)
	List(filter directoryapimodels.EmployeeFilter) (list []dbmodels.Employee, err error)
	ListAll() (list []dbmodels.Employee, err error)
	SetSlackID(id string, slackID *string) error
	// SlackIDs maps e-mail to Slack id for the given e-mails that have one.
	SlackIDs(emails []string) (map[string]string, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

const upsertBatchSize = 500

var upsertColumns = []string{
	"full_name", "role", "department", "manager", "status",
	"worker_type", "hire_date", "end_date", "updated_at",
}

func (i impl) Upsert(list []dbmodels.Employee) error {
	if len(list) == 0 {
		return nil
	}
	err := i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		CreateInBatches(&list, upsertBatchSize).
		Error
	if err != nil {
		return errors.Wrap(err, "employees upsert")
	}
	return nil
}

func (i impl) DeleteMissing(workerTypes []models.WorkerType, keep []string) (int64, error) {
	if len(workerTypes) == 0 {
		return 0, nil
	}
	tx := i.db.
		Where("worker_type IN ?", workerTypes)
	if len(keep) != 0 {
		tx = tx.Where("email NOT IN ?", keep)
	}
	result := tx.Delete(&dbmodels.Employee{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "employees mirror delete")
	}
	return result.RowsAffected, nil
}

func (i impl) GetByEmail(email string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(filter directoryapimodels.EmployeeFilter) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	tx := i.db.Model(&dbmodels.Employee{})
	if filter.Search != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		tx = tx.Where("(lower(email) LIKE ? OR lower(full_name) LIKE ?)", like, like)
	}
	if filter.WorkerType != "" {
		tx = tx.Where("worker_type = ?", filter.WorkerType)
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", filter.Department)
	}
	err = tx.
		Order("full_name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListAll() (list []dbmodels.Employee, err error) {
	return i.List(directoryapimodels.EmployeeFilter{})
}

func (i impl) SetSlackID(id string, slackID *string) error {
	err := i.db.
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
		Update("slack_id", slackID).
		Error
	if err != nil {
		return errors.Wrap(err, "employee slack id update")
	}
	return nil
}

func (i impl) SlackIDs(emails []string) (map[string]string, error) {
	result := map[string]string{}
	if len(emails) == 0 {
		return result, nil
	}
	list := []dbmodels.Employee{}
	err := i.db.
		Where("email IN ?", emails).
		Where("slack_id IS NOT NULL").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	for _, rec := range list {
		if rec.SlackID != nil && *rec.SlackID != "" {
			result[rec.Email] = *rec.SlackID
		}
	}
	return result, nil
}
