// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a new configured logger instance from the app
// configuration's log level and environment. Components of the analysis
// pipeline receive it as a logrus.FieldLogger so the core stays a pure
// computation with one explicit event sink.
func NewLogger(logLevel, environment string) *logrus.Logger {
	logger := logrus.New()

	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// JSON formatter for structured logging in production
	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	return logger
}

// ComponentLogger returns a logger entry tagged with a pipeline component
// name (analysis, crowding, dataset, predict).
func ComponentLogger(base *logrus.Logger, component string) logrus.FieldLogger {
	return base.WithField("component", component)
}
