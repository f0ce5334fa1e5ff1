package reviewitemstore

import (
	"iga-backend/models"
	dbmodels "iga-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	CreateBatch(list []dbmodels.ReviewItem) error
	GetByID(id string) (rec *dbmodels.ReviewItem, err error)
	// Decide moves a pending item to reviewed. Zero rows means it was not pending.
	Decide(id string, decision models.ReviewDecision, evidenceNotes, actor string, decidedAt time.Time) (rowsAffected int64, err error)
	// Reassign moves every pending item of one reviewer to another.
	Reassign(fromEmail, toEmail string) (rowsAffected int64, err error)
	ListByReviewer(reviewer string, status models.ReviewStatus, campaignID string, page, limit int) (list []dbmodels.ReviewItem, rowCount int64, err error)
	ListByCampaign(campaignID string) (list []dbmodels.ReviewItem, err error)
	CountPending(campaignID string) (int64, error)
	PendingByReviewer(campaignIDs []string) ([]dbmodels.ReviewerPending, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

const createBatchSize = 500

func (i impl) CreateBatch(list []dbmodels.ReviewItem) error {
	if len(list) == 0 {
		return nil
	}
	err := i.db.
		Omit("Asset").
		CreateInBatches(&list, createBatchSize).
		Error
	if err != nil {
		return errors.Wrap(err, "review items insert")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.ReviewItem, error) {
	rec := dbmodels.ReviewItem{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) Decide(id string, decision models.ReviewDecision, evidenceNotes, actor string, decidedAt time.Time) (int64, error) {
	result := i.db.
		Model(&dbmodels.ReviewItem{}).
		Where("id = ?", id).
		Where("status = ?", models.ReviewStatusPending).
		Updates(map[string]interface{}{
			"status":         models.ReviewStatusReviewed,
			"decision":       decision,
			"evidence_notes": evidenceNotes,
			"decided_by":     actor,
			"decided_at":     decidedAt,
		})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "review item decision update")
	}
	return result.RowsAffected, nil
}

func (i impl) Reassign(fromEmail, toEmail string) (int64, error) {
	result := i.db.
		Model(&dbmodels.ReviewItem{}).
		Where("reviewer_email = ?", fromEmail).
		Where("status = ?", models.ReviewStatusPending).
		Update("reviewer_email", toEmail)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "review items reassign")
	}
	return result.RowsAffected, nil
}

func (i impl) ListByReviewer(reviewer string, status models.ReviewStatus, campaignID string, page, limit int) (list []dbmodels.ReviewItem, rowCount int64, err error) {
	list = []dbmodels.ReviewItem{}
	tx := i.db.
		Model(&dbmodels.ReviewItem{}).
		Where("reviewer_email = ?", reviewer)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if campaignID != "" {
		tx = tx.Where("campaign_id = ?", campaignID)
	}
	tx = tx.Session(&gorm.Session{})
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	order := "created_at ASC"
	if status == models.ReviewStatusReviewed {
		order = "decided_at DESC"
	}
	err = tx.
		Preload("Asset").
		Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListByCampaign(campaignID string) (list []dbmodels.ReviewItem, err error) {
	list = []dbmodels.ReviewItem{}
	err = i.db.
		Where("campaign_id = ?", campaignID).
		Preload("Asset").
		Order("reviewer_email ASC, employee_email ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountPending(campaignID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.ReviewItem{}).
		Where("campaign_id = ?", campaignID).
		Where("status = ?", models.ReviewStatusPending).
		Count(&count).
		Error
	return count, err
}

func (i impl) PendingByReviewer(campaignIDs []string) ([]dbmodels.ReviewerPending, error) {
	rows := []dbmodels.ReviewerPending{}
	if len(campaignIDs) == 0 {
		return rows, nil
	}
	err := i.db.
		Model(&dbmodels.ReviewItem{}).
		Select("reviewer_email, campaign_id, count(*) AS pending").
		Where("campaign_id IN ?", campaignIDs).
		Where("status = ?", models.ReviewStatusPending).
		Group("reviewer_email, campaign_id").
		Order("reviewer_email ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
