package fiberlog

import "github.com/sirupsen/logrus"

type Config struct {
	// nil means the logrus standard logger
	Logger *logrus.Logger
	Tags   []string
	// requests whose path starts with one of these are not logged
	SkipPaths []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		TagIP,
		TagUserID,
		TagError,
	},
	SkipPaths: []string{"/health", "/swagger"},
}
