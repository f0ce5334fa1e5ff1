package initializers

import (
	"context"

	"iga-backend/config"
	"iga-backend/fiberlog"
	assethandler "iga-backend/lib/asset"
	auditloghandler "iga-backend/lib/audit-log"
	campaignhandler "iga-backend/lib/campaign"
	directorysynchandler "iga-backend/lib/directory-sync"
	xlsexport "iga-backend/lib/export/xls"
	"iga-backend/lib/external-services/okta/oktaclient"
	filestorage "iga-backend/lib/file-storage"
	"iga-backend/lib/metrics"
	notificationhandler "iga-backend/lib/notification"
	"iga-backend/lib/rbac"
	reviewhandler "iga-backend/lib/review"
	reminderworker "iga-backend/lib/review/reminder-worker"
	revocationhandler "iga-backend/lib/revocation"
	settingshandler "iga-backend/lib/settings"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	oktaclient.Configure(config.Conf.Okta.RateLimit, config.Conf.Okta.RateBurst, config.Conf.Okta.RequestTimeout)
	metrics.Init()
	xlsexport.NewHandler()
	filestorage.NewHandler()
	auditloghandler.NewHandler()
	settingshandler.NewHandler()
	notificationhandler.NewHandler()
	revocationhandler.NewHandler()
	campaignhandler.NewHandler()
	reviewhandler.NewHandler()
	directorysynchandler.NewHandler()
	assethandler.NewHandler()
	rbac.NewHandler()
	initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	_, err := directorysynchandler.StartScheduler(ctx, directorysynchandler.Instance,
		config.Conf.Sync.EmployeesSchedule, config.Conf.Sync.SlackSchedule)
	if err != nil {
		panic(err.Error())
	}

	if *config.Conf.Reminder.Enabled {
		// reminders for active campaigns approaching their due date
		reminderworker.StartWorker(ctx, config.Conf.Reminder.Interval, config.Conf.Reminder.DueWithin)
	} else {
		log.Info("review reminder worker disabled")
	}
}
