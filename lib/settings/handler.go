package settingshandler

import (
	"context"
	"fmt"
	"strings"

	"iga-backend/config"
	"iga-backend/db"
	auditloghandler "iga-backend/lib/audit-log"
	"iga-backend/lib/external-services/bamboohr/bamboohrclient"
	"iga-backend/lib/external-services/okta/oktaclient"
	settingsstore "iga-backend/lib/settings/store"
	"iga-backend/models"
	auditapimodels "iga-backend/models/api/audit"
	settingsapimodels "iga-backend/models/api/settings"
	dbmodels "iga-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// Get is re-read on every call so edits apply to the next operation.
	Get() (*dbmodels.SystemSettings, error)
	GetView() (settingsapimodels.SettingsView, error)
	Update(actorEmail string, data settingsapimodels.SettingsUpdate) (settingsapimodels.SettingsView, error)
	TestOkta(ctx context.Context, data settingsapimodels.OktaTestRequest) settingsapimodels.ConnectionTestResult
	TestBambooHR(ctx context.Context, data settingsapimodels.BambooHRTestRequest) settingsapimodels.ConnectionTestResult
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, oktaclient.DefaultFactory, bamboohrclient.NewClient(nil, config.Conf.Sync.RequestTimeout))
}

func NewInstance(DB *gorm.DB, oktaFactory oktaclient.Factory, bamboohr bamboohrclient.Provider) Provider {
	return impl{
		db:             DB,
		store:          settingsstore.NewInstance(DB),
		oktaFactory:    oktaFactory,
		bamboohrClient: bamboohr,
	}
}

type impl struct {
	db             *gorm.DB
	store          settingsstore.Provider
	oktaFactory    oktaclient.Factory
	bamboohrClient bamboohrclient.Provider
}

func (i impl) Get() (*dbmodels.SystemSettings, error) {
	return i.store.Get()
}

func (i impl) GetView() (settingsapimodels.SettingsView, error) {
	rec, err := i.store.Get()
	if err != nil {
		return settingsapimodels.SettingsView{}, err
	}
	return settingsapimodels.SettingsConvert(*rec), nil
}

func (i impl) Update(actorEmail string, data settingsapimodels.SettingsUpdate) (settingsapimodels.SettingsView, error) {
	if err := data.Validate(); err != nil {
		return settingsapimodels.SettingsView{}, err
	}
	updMap := data.ToUpdateMap()
	if len(updMap) == 0 {
		return i.GetView()
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		if err := settingsstore.NewInstance(tx).Update(updMap); err != nil {
			return err
		}
		return auditloghandler.NewHandlerWithTx(tx).Write(auditapimodels.AuditEntry{
			ActorEmail: actorEmail,
			Action:     string(models.AuditSettingsUpdated),
			Metadata: map[string]any{
				"changed_fields": data.ChangedFields(),
			},
		})
	})
	if err != nil {
		return settingsapimodels.SettingsView{}, errors.Wrap(err, "system settings update")
	}
	log.
		WithField("actor_email", actorEmail).
		WithField("changed_fields", data.ChangedFields()).
		Info("system settings updated")
	return i.GetView()
}

func (i impl) TestOkta(ctx context.Context, data settingsapimodels.OktaTestRequest) settingsapimodels.ConnectionTestResult {
	settings, err := i.store.Get()
	if err != nil {
		return failed(err)
	}
	// the stored token is only ever sent to the stored domain
	domain, token := strings.TrimSpace(data.Domain), strings.TrimSpace(data.ApiToken)
	if domain != "" || token != "" {
		if domain == "" || token == "" {
			return failed(models.ValidationError("okta_domain and okta_api_token must be given together"))
		}
		settings.OktaDomain = domain
		settings.OktaApiToken = token
	}
	if !settings.HasOkta() {
		return failed(models.ConfigurationError("okta domain and api token are required"))
	}
	if err = i.oktaFactory(*settings).CheckCredentials(ctx); err != nil {
		return failed(err)
	}
	return settingsapimodels.ConnectionTestResult{
		Success: true,
		Message: fmt.Sprintf("connected to %s", oktaclient.BaseURL(settings.OktaDomain)),
	}
}

func (i impl) TestBambooHR(ctx context.Context, data settingsapimodels.BambooHRTestRequest) settingsapimodels.ConnectionTestResult {
	settings, err := i.store.Get()
	if err != nil {
		return failed(err)
	}
	workerTypes := []models.WorkerType{models.WorkerEmployee, models.WorkerContractor}
	if data.WorkerType != "" {
		if data.WorkerType != models.WorkerEmployee && data.WorkerType != models.WorkerContractor {
			return failed(models.ValidationError("unsupported worker type %q", data.WorkerType))
		}
		workerTypes = []models.WorkerType{data.WorkerType}
	}
	details := map[string]string{}
	success := true
	tested := 0
	for _, workerType := range workerTypes {
		source := settings.BambooHRSource(workerType)
		if source.Subdomain == "" || source.ApiKey == "" {
			details[string(workerType)] = "not configured"
			continue
		}
		tested++
		if err = i.bamboohrClient.CheckCredentials(ctx, source.Subdomain, source.ApiKey); err != nil {
			success = false
			details[string(workerType)] = err.Error()
			continue
		}
		details[string(workerType)] = "ok"
	}
	if tested == 0 {
		return settingsapimodels.ConnectionTestResult{
			Success: false,
			Message: "bamboohr subdomain and api key are not configured",
			Details: details,
		}
	}
	message := "connected to bamboohr"
	if !success {
		message = "bamboohr connection failed"
	}
	return settingsapimodels.ConnectionTestResult{
		Success: success,
		Message: message,
		Details: details,
	}
}

func failed(err error) settingsapimodels.ConnectionTestResult {
	return settingsapimodels.ConnectionTestResult{
		Success: false,
		Message: err.Error(),
	}
}
