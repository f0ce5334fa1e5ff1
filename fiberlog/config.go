package fiberlog

import (
	"slices"

	"github.com/sirupsen/logrus"
)

// Config is config for middleware
type Config struct {
	// nil falls back to the logrus standard logger
	Logger *logrus.Logger
	Tags   []string
	// exact paths served without an access log line, e.g. probes
	SkipPaths []string
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
}

func configDefault(config ...Config) Config {
	if len(config) == 0 {
		return ConfigDefault
	}
	cfg := config[0]
	if len(cfg.Tags) == 0 {
		cfg.Tags = ConfigDefault.Tags
	}
	return cfg
}

func (c Config) skip(path string) bool {
	return slices.Contains(c.SkipPaths, path)
}
