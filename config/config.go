package config

import (
	"strings"
	"time"

	"github.com/gotify/configor"
	"github.com/pkg/errors"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		BodyLimit  int64  `default:"10485760" env:"APP_BODY_LIMIT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"iga" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret string `default:"" env:"JWT_SECRET"`
		// claim carrying the caller role, admin or user
		RoleClaim string `default:"role" env:"JWT_ROLE_CLAIM"`
	}
	Okta struct {
		RequestTimeout time.Duration `default:"30s" env:"OKTA_REQUEST_TIMEOUT"`
		RateLimit      float64       `default:"10" env:"OKTA_RATE_LIMIT"`
		RateBurst      int           `default:"5" env:"OKTA_RATE_BURST"`
		// assets enumerated in parallel during campaign generation
		Parallelism int `default:"4" env:"OKTA_PARALLELISM"`
	}
	Sync struct {
		RequestTimeout time.Duration `default:"60s" env:"SYNC_REQUEST_TIMEOUT"`
		LockWait       time.Duration `default:"5s" env:"SYNC_LOCK_WAIT"`
		// robfig/cron spec, empty disables the scheduler
		EmployeesSchedule string `default:"" env:"SYNC_EMPLOYEES_SCHEDULE"`
		SlackSchedule     string `default:"" env:"SYNC_SLACK_SCHEDULE"`
	}
	Reminder struct {
		Enabled   *bool         `default:"false" env:"REMINDER_ENABLED"`
		Interval  time.Duration `default:"24h" env:"REMINDER_INTERVAL"`
		DueWithin time.Duration `default:"72h" env:"REMINDER_DUE_WITHIN"`
	}
	Notifications struct {
		CampaignCreated *bool  `default:"false" env:"NOTIFY_CAMPAIGN_CREATED"`
		AppURL          string `default:"http://localhost:3000" env:"NOTIFY_APP_URL"`
		EmailFrom       string `default:"iga@localhost" env:"NOTIFY_EMAIL_FROM"`
		// slack channel receiving 5xx reports, empty disables them
		ErrorChannel string `default:"" env:"NOTIFY_ERROR_CHANNEL"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	S3 struct {
		Endpoint        string        `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string        `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string        `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool         `default:"false" env:"S3_USE_SSL"`
		BucketName      string        `default:"iga-reports" env:"S3_BUCKET_NAME"`
		LinkTTL         time.Duration `default:"1h" env:"S3_LINK_TTL"`
	}
	Metrics struct {
		Enabled *bool `default:"true" env:"METRICS_ENABLED"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	if err = conf.Validate(); err != nil {
		panic(err)
	}
	Conf = conf
}

// Validate rejects settings the service must not start with.
func (c *Configuration) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required, tokens cannot be verified with an empty key")
	}
	return nil
}
