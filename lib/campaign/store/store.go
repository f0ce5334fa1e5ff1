package campaignstore

import (
	"iga-backend/models"
	dbmodels "iga-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ReviewCampaign) (id string, err error)
	GetByID(id string) (rec *dbmodels.ReviewCampaign, err error)
	List(status models.CampaignStatus, page, limit int) (list []dbmodels.ReviewCampaign, rowCount int64, err error)
	ListActiveDueBefore(deadline time.Time) (list []dbmodels.ReviewCampaign, err error)
	Stats(ids []string) (map[string]dbmodels.CampaignStats, error)
	SetStatus(id string, status models.CampaignStatus) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ReviewCampaign) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ReviewCampaign, error) {
	rec := dbmodels.ReviewCampaign{}
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

func (i impl) List(status models.CampaignStatus, page, limit int) (list []dbmodels.ReviewCampaign, rowCount int64, err error) {
	list = []dbmodels.ReviewCampaign{}
	tx := i.db.Model(&dbmodels.ReviewCampaign{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	tx = tx.Session(&gorm.Session{})
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListActiveDueBefore(deadline time.Time) (list []dbmodels.ReviewCampaign, err error) {
	list = []dbmodels.ReviewCampaign{}
	err = i.db.
		Where("status = ?", models.CampaignActive).
		Where("due_date <= ?", deadline).
		Order("due_date ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Stats(ids []string) (map[string]dbmodels.CampaignStats, error) {
	result := map[string]dbmodels.CampaignStats{}
	if len(ids) == 0 {
		return result, nil
	}
	rows := []dbmodels.CampaignStats{}
	err := i.db.
		Model(&dbmodels.ReviewItem{}).
		Select("campaign_id, count(*) AS total, sum(CASE WHEN status = ? THEN 1 ELSE 0 END) AS pending", models.ReviewStatusPending).
		Where("campaign_id IN ?", ids).
		Group("campaign_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.CampaignID] = row
	}
	return result, nil
}

func (i impl) SetStatus(id string, status models.CampaignStatus) error {
	err := i.db.
		Model(&dbmodels.ReviewCampaign{}).
		Where("id = ?", id).
		Update("status", status).
		Error
	if err != nil {
		return err
	}
	return nil
}
