package dbmodels

import (
	"iga-backend/models"
	"strings"
	"time"
)

const SystemSettingsID uint = 1

type SystemSettings struct {
	ID                             uint       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	BamboohrEmpSubdomain           string     `gorm:"type:varchar(100)" json:"bamboohr_emp_subdomain"`
	BamboohrEmpApiKey              string     `gorm:"type:varchar(255)" json:"-"`
	BamboohrEmpReportID            string     `gorm:"type:varchar(50)" json:"bamboohr_emp_report_id"`
	BamboohrContSubdomain          string     `gorm:"type:varchar(100)" json:"bamboohr_cont_subdomain"`
	BamboohrContApiKey             string     `gorm:"type:varchar(255)" json:"-"`
	BamboohrContReportID           string     `gorm:"type:varchar(50)" json:"bamboohr_cont_report_id"`
	OktaDomain                     string     `gorm:"type:varchar(255)" json:"okta_domain"`
	OktaApiToken                   string     `gorm:"type:varchar(255)" json:"-"`
	SlackBotToken                  string     `gorm:"type:varchar(255)" json:"-"`
	OktaAutoRevocationEnabled      bool       `gorm:"not null;default:false" json:"okta_auto_revocation_enabled"`
	EvidenceRequiredForDirectLogin bool       `gorm:"not null;default:false" json:"evidence_required_for_direct_login"`
	NhiTypes                       StringList `json:"nhi_types"`
	UpdatedAt                      time.Time  `json:"updated_at"`
}

func (SystemSettings) TableName() string {
	return "system_settings"
}

func (s SystemSettings) HasOkta() bool {
	return strings.TrimSpace(s.OktaDomain) != "" && strings.TrimSpace(s.OktaApiToken) != ""
}

func (s SystemSettings) HasSlack() bool {
	return strings.TrimSpace(s.SlackBotToken) != ""
}

type BambooHRSource struct {
	WorkerType models.WorkerType
	Subdomain  string
	ApiKey     string
	ReportID   string
}

func (b BambooHRSource) IsComplete() bool {
	return b.Subdomain != "" && b.ApiKey != "" && b.ReportID != ""
}

func (s SystemSettings) BambooHRSource(workerType models.WorkerType) BambooHRSource {
	if workerType == models.WorkerContractor {
		return BambooHRSource{
			WorkerType: workerType,
			Subdomain:  strings.TrimSpace(s.BamboohrContSubdomain),
			ApiKey:     strings.TrimSpace(s.BamboohrContApiKey),
			ReportID:   strings.TrimSpace(s.BamboohrContReportID),
		}
	}
	return BambooHRSource{
		WorkerType: workerType,
		Subdomain:  strings.TrimSpace(s.BamboohrEmpSubdomain),
		ApiKey:     strings.TrimSpace(s.BamboohrEmpApiKey),
		ReportID:   strings.TrimSpace(s.BamboohrEmpReportID),
	}
}
