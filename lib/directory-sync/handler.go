package directorysynchandler

import (
	"context"
	"time"

	"iga-backend/config"
	"iga-backend/db"
	auditloghandler "iga-backend/lib/audit-log"
	employeestore "iga-backend/lib/employee/store"
	"iga-backend/lib/external-services/bamboohr/bamboohrclient"
	"iga-backend/lib/external-services/slack/slackclient"
	"iga-backend/lib/metrics"
	settingsstore "iga-backend/lib/settings/store"
	"iga-backend/lib/utils/helpers"
	"iga-backend/lib/utils/lock"
	"iga-backend/models"
	auditapimodels "iga-backend/models/api/audit"
	directoryapimodels "iga-backend/models/api/directory"
	dbmodels "iga-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// SyncEmployees mirrors BambooHR: upsert fetched rows, delete in-scope rows absent from the fetch.
	SyncEmployees(ctx context.Context, actorEmail string, data directoryapimodels.EmployeesSyncRequest) (directoryapimodels.EmployeesSyncResult, error)
	// SyncSlackIDs only touches slack_id, employees are never created or deleted.
	SyncSlackIDs(ctx context.Context, actorEmail string) (directoryapimodels.SlackSyncResult, error)
	ListEmployees(filter directoryapimodels.EmployeeFilter) ([]dbmodels.Employee, error)
}

var Instance Provider

const (
	employeesLockKey = "directory-sync:employees"
	slackLockKey     = "directory-sync:slack"
	bamboohrSource   = "bamboohr"
	slackSource      = "slack"
)

func NewHandler() {
	Instance = NewInstance(db.DB,
		bamboohrclient.NewClient(nil, config.Conf.Sync.RequestTimeout),
		slackclient.NewClient("", config.Conf.Sync.RequestTimeout),
		config.Conf.Sync.LockWait,
	)
}

func NewInstance(DB *gorm.DB, bamboohr bamboohrclient.Provider, slack slackclient.Provider, lockWait time.Duration) Provider {
	return impl{
		db:             DB,
		settingsStore:  settingsstore.NewInstance(DB),
		employeeStore:  employeestore.NewInstance(DB),
		bamboohrClient: bamboohr,
		slackClient:    slack,
		lockWait:       lockWait,
	}
}

type impl struct {
	db             *gorm.DB
	settingsStore  settingsstore.Provider
	employeeStore  employeestore.Provider
	bamboohrClient bamboohrclient.Provider
	slackClient    slackclient.Provider
	lockWait       time.Duration
}

func (i impl) SyncEmployees(ctx context.Context, actorEmail string, data directoryapimodels.EmployeesSyncRequest) (result directoryapimodels.EmployeesSyncResult, err error) {
	if err = data.Validate(); err != nil {
		return result, err
	}
	success, err := lock.WithDelay(ctx, employeesLockKey, i.lockWait, func() error {
		result, err = i.syncEmployees(ctx, actorEmail, data.Target)
		return err
	})
	if !success {
		return result, models.ConflictError("employee sync is already running")
	}
	metrics.ObserveSync(bamboohrSource, err)
	return result, err
}

func (i impl) syncEmployees(ctx context.Context, actorEmail string, target models.SyncTarget) (result directoryapimodels.EmployeesSyncResult, err error) {
	logger := log.
		WithField("target", target).
		WithField("actor_email", actorEmail)
	settings, err := i.settingsStore.Get()
	if err != nil {
		return result, err
	}
	workerTypes := target.WorkerTypes()
	sources := make([]dbmodels.BambooHRSource, 0, len(workerTypes))
	for _, workerType := range workerTypes {
		source := settings.BambooHRSource(workerType)
		if !source.IsComplete() {
			return result, models.ConfigurationError("bamboohr subdomain, api key and report id are required for %s", workerType)
		}
		sources = append(sources, source)
	}

	// every report is fetched before any write, a partial fetch never reaches the mirror
	fetched := []dbmodels.Employee{}
	for _, source := range sources {
		records, err := i.bamboohrClient.FetchReport(ctx, source)
		if err != nil {
			logger.WithError(err).WithField("worker_type", source.WorkerType).Error("bamboohr report fetch failed")
			return result, err
		}
		for _, record := range records {
			if rec, ok := toEmployee(record, source.WorkerType); ok {
				fetched = append(fetched, rec)
			}
		}
	}
	fetched = dedupe(fetched)
	keep := make([]string, 0, len(fetched))
	for _, rec := range fetched {
		keep = append(keep, rec.Email)
	}

	var deleted int64
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := employeestore.NewInstance(tx)
		if err := store.Upsert(fetched); err != nil {
			return err
		}
		removed, err := store.DeleteMissing(workerTypes, keep)
		if err != nil {
			return err
		}
		deleted = removed
		return auditloghandler.NewHandlerWithTx(tx).Write(auditapimodels.AuditEntry{
			ActorEmail: syncActor(actorEmail),
			Action:     string(models.AuditEmployeesSync),
			Metadata: map[string]any{
				"target":  string(target),
				"fetched": len(fetched),
				"deleted": deleted,
			},
		})
	})
	if err != nil {
		return result, errors.Wrap(err, "employees mirror")
	}
	logger.
		WithField("fetched", len(fetched)).
		WithField("deleted", deleted).
		Info("bamboohr employees synced")
	return directoryapimodels.EmployeesSyncResult{
		Target:              target,
		Fetched:             len(fetched),
		Deleted:             deleted,
		MirroredWorkerTypes: workerTypes,
	}, nil
}

func (i impl) SyncSlackIDs(ctx context.Context, actorEmail string) (result directoryapimodels.SlackSyncResult, err error) {
	success, err := lock.WithDelay(ctx, slackLockKey, i.lockWait, func() error {
		result, err = i.syncSlackIDs(ctx, actorEmail)
		return err
	})
	if !success {
		return result, models.ConflictError("slack sync is already running")
	}
	metrics.ObserveSync(slackSource, err)
	return result, err
}

func (i impl) syncSlackIDs(ctx context.Context, actorEmail string) (result directoryapimodels.SlackSyncResult, err error) {
	settings, err := i.settingsStore.Get()
	if err != nil {
		return result, err
	}
	if !settings.HasSlack() {
		return result, models.ConfigurationError("slack bot token is not configured")
	}
	slackByEmail, err := i.slackClient.UsersByEmail(ctx, settings.SlackBotToken)
	if err != nil {
		log.WithError(err).Error("slack users fetch failed")
		return result, err
	}
	updated := 0
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := employeestore.NewInstance(tx)
		employees, err := store.ListAll()
		if err != nil {
			return err
		}
		for _, rec := range employees {
			nextID := slackByEmail[helpers.NormalizeEmail(rec.Email)]
			if nextID == helpers.PtrValue(rec.SlackID) {
				continue
			}
			var next *string
			if nextID != "" {
				next = helpers.StrPtr(nextID)
			}
			if err = store.SetSlackID(rec.ID, next); err != nil {
				return err
			}
			updated++
		}
		return auditloghandler.NewHandlerWithTx(tx).Write(auditapimodels.AuditEntry{
			ActorEmail: syncActor(actorEmail),
			Action:     string(models.AuditSlackIDSync),
			Metadata: map[string]any{
				"total_slack_users_by_email": len(slackByEmail),
				"updated_employees":          updated,
			},
		})
	})
	if err != nil {
		return result, errors.Wrap(err, "slack id sync")
	}
	log.
		WithField("slack_users", len(slackByEmail)).
		WithField("updated_employees", updated).
		Info("slack ids synced")
	return directoryapimodels.SlackSyncResult{
		TotalSlackUsersByEmail: len(slackByEmail),
		UpdatedEmployees:       updated,
	}, nil
}

func (i impl) ListEmployees(filter directoryapimodels.EmployeeFilter) ([]dbmodels.Employee, error) {
	return i.employeeStore.List(filter)
}

func syncActor(actorEmail string) string {
	if actorEmail == "" {
		return models.SystemActor
	}
	return actorEmail
}
