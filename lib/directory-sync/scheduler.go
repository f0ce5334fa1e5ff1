package directorysynchandler

import (
	"context"

	"iga-backend/models"
	directoryapimodels "iga-backend/models/api/directory"

	"github.com/pkg/errors"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
)

// StartScheduler runs periodic syncs until ctx ends. Specs use the six-field cron format
// (seconds first), an empty spec disables that job.
func StartScheduler(ctx context.Context, provider Provider, employeesSpec, slackSpec string) (*cron.Cron, error) {
	scheduler := cron.New()
	if employeesSpec != "" {
		err := scheduler.AddFunc(employeesSpec, func() {
			logger := log.WithField("job", "employees-sync")
			result, err := provider.SyncEmployees(ctx, models.SystemActor, directoryapimodels.EmployeesSyncRequest{Target: models.SyncAll})
			if err != nil {
				logger.WithError(err).Error("scheduled employees sync failed")
				return
			}
			logger.
				WithField("fetched", result.Fetched).
				WithField("deleted", result.Deleted).
				Info("scheduled employees sync done")
		})
		if err != nil {
			return nil, errors.Wrap(err, "employees sync schedule")
		}
	}
	if slackSpec != "" {
		err := scheduler.AddFunc(slackSpec, func() {
			logger := log.WithField("job", "slack-sync")
			result, err := provider.SyncSlackIDs(ctx, models.SystemActor)
			if err != nil {
				logger.WithError(err).Error("scheduled slack sync failed")
				return
			}
			logger.WithField("updated_employees", result.UpdatedEmployees).Info("scheduled slack sync done")
		})
		if err != nil {
			return nil, errors.Wrap(err, "slack sync schedule")
		}
	}
	if len(scheduler.Entries()) == 0 {
		return nil, nil
	}
	scheduler.Start()
	go func() {
		<-ctx.Done()
		scheduler.Stop()
	}()
	log.WithField("jobs", len(scheduler.Entries())).Info("directory sync scheduler started")
	return scheduler, nil
}
