package settingsapimodels

import (
	"iga-backend/models"
	dbmodels "iga-backend/models/db"
	"sort"
	"strings"
)

// SettingsView never carries secret values, only whether they are set.
type SettingsView struct {
	BamboohrEmpSubdomain           string   `json:"bamboohr_emp_subdomain"`
	BamboohrEmpReportID            string   `json:"bamboohr_emp_report_id"`
	BamboohrEmpApiKeySet           bool     `json:"bamboohr_emp_api_key_set"`
	BamboohrContSubdomain          string   `json:"bamboohr_cont_subdomain"`
	BamboohrContReportID           string   `json:"bamboohr_cont_report_id"`
	BamboohrContApiKeySet          bool     `json:"bamboohr_cont_api_key_set"`
	OktaDomain                     string   `json:"okta_domain"`
	OktaApiTokenSet                bool     `json:"okta_api_token_set"`
	SlackBotTokenSet               bool     `json:"slack_bot_token_set"`
	OktaAutoRevocationEnabled      bool     `json:"okta_auto_revocation_enabled"`
	EvidenceRequiredForDirectLogin bool     `json:"evidence_required_for_direct_login"`
	NhiTypes                       []string `json:"nhi_types"`
}

func SettingsConvert(rec dbmodels.SystemSettings) SettingsView {
	nhi := []string(rec.NhiTypes)
	if nhi == nil {
		nhi = []string{}
	}
	return SettingsView{
		BamboohrEmpSubdomain:           rec.BamboohrEmpSubdomain,
		BamboohrEmpReportID:            rec.BamboohrEmpReportID,
		BamboohrEmpApiKeySet:           rec.BamboohrEmpApiKey != "",
		BamboohrContSubdomain:          rec.BamboohrContSubdomain,
		BamboohrContReportID:           rec.BamboohrContReportID,
		BamboohrContApiKeySet:          rec.BamboohrContApiKey != "",
		OktaDomain:                     rec.OktaDomain,
		OktaApiTokenSet:                rec.OktaApiToken != "",
		SlackBotTokenSet:               rec.SlackBotToken != "",
		OktaAutoRevocationEnabled:      rec.OktaAutoRevocationEnabled,
		EvidenceRequiredForDirectLogin: rec.EvidenceRequiredForDirectLogin,
		NhiTypes:                       nhi,
	}
}

// SettingsUpdate is a partial update, nil fields are left untouched.
type SettingsUpdate struct {
	BamboohrEmpSubdomain           *string  `json:"bamboohr_emp_subdomain"`
	BamboohrEmpApiKey              *string  `json:"bamboohr_emp_api_key"`
	BamboohrEmpReportID            *string  `json:"bamboohr_emp_report_id"`
	BamboohrContSubdomain          *string  `json:"bamboohr_cont_subdomain"`
	BamboohrContApiKey             *string  `json:"bamboohr_cont_api_key"`
	BamboohrContReportID           *string  `json:"bamboohr_cont_report_id"`
	OktaDomain                     *string  `json:"okta_domain"`
	OktaApiToken                   *string  `json:"okta_api_token"`
	SlackBotToken                  *string  `json:"slack_bot_token"`
	OktaAutoRevocationEnabled      *bool    `json:"okta_auto_revocation_enabled"`
	EvidenceRequiredForDirectLogin *bool    `json:"evidence_required_for_direct_login"`
	NhiTypes                       []string `json:"nhi_types"`
}

func (s SettingsUpdate) Validate() error {
	if s.OktaDomain != nil && strings.ContainsAny(strings.TrimSpace(*s.OktaDomain), " \t") {
		return models.ValidationError("okta_domain must not contain spaces")
	}
	return nil
}

func (s SettingsUpdate) ToUpdateMap() map[string]interface{} {
	updMap := map[string]interface{}{}
	putString := func(column string, value *string) {
		if value != nil {
			updMap[column] = strings.TrimSpace(*value)
		}
	}
	putString("bamboohr_emp_subdomain", s.BamboohrEmpSubdomain)
	putString("bamboohr_emp_api_key", s.BamboohrEmpApiKey)
	putString("bamboohr_emp_report_id", s.BamboohrEmpReportID)
	putString("bamboohr_cont_subdomain", s.BamboohrContSubdomain)
	putString("bamboohr_cont_api_key", s.BamboohrContApiKey)
	putString("bamboohr_cont_report_id", s.BamboohrContReportID)
	putString("okta_domain", s.OktaDomain)
	putString("okta_api_token", s.OktaApiToken)
	putString("slack_bot_token", s.SlackBotToken)
	if s.OktaAutoRevocationEnabled != nil {
		updMap["okta_auto_revocation_enabled"] = *s.OktaAutoRevocationEnabled
	}
	if s.EvidenceRequiredForDirectLogin != nil {
		updMap["evidence_required_for_direct_login"] = *s.EvidenceRequiredForDirectLogin
	}
	if s.NhiTypes != nil {
		updMap["nhi_types"] = dbmodels.StringList(s.NhiTypes)
	}
	return updMap
}

// ChangedFields lists updated columns without their values, secrets included.
func (s SettingsUpdate) ChangedFields() []string {
	fields := []string{}
	for column := range s.ToUpdateMap() {
		fields = append(fields, column)
	}
	sort.Strings(fields)
	return fields
}

type ConnectionTestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type BambooHRTestRequest struct {
	WorkerType models.WorkerType `json:"worker_type"`
}

// OktaTestRequest overrides the stored credentials for a connection test.
// Both fields are given or neither is.
type OktaTestRequest struct {
	Domain   string `json:"okta_domain"`
	ApiToken string `json:"okta_api_token"`
}
