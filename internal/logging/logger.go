// Package logging wires logrus to a per-user log file. The CLI stays quiet
// on the terminal; diagnostics go to the file unless debug mode is on.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/vox-sh/vox/internal/config"
)

var globalLogger *logrus.Logger

// Init configures the global logger. With debug enabled the level drops to
// Debug and entries are mirrored to stderr.
func Init(debug bool) error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level := logrus.InfoLevel
	if debug || os.Getenv(config.EnvVoxDebug) != "" {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	file, err := openLogFile()
	if err != nil {
		// No log file is not fatal; fall back to stderr so nothing is lost.
		logger.SetOutput(os.Stderr)
		globalLogger = logger
		return nil
	}

	if debug {
		logger.SetOutput(io.MultiWriter(file, os.Stderr))
	} else {
		logger.SetOutput(file)
	}
	globalLogger = logger
	return nil
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	logDir := filepath.Join(home, config.DefaultConfigDir, config.DefaultLogDir)
	if err := os.MkdirAll(logDir, config.ConfigDirPermissions); err != nil {
		return nil, err
	}
	return os.OpenFile(
		filepath.Join(logDir, config.DefaultLogFileName),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		config.ConfigFilePermissions,
	)
}

// GetLogger returns the global logger, initializing a default one if Init
// was never called.
func GetLogger() *logrus.Logger {
	if globalLogger == nil {
		_ = Init(false)
	}
	return globalLogger
}

// WithRun returns a logger entry tagged with this invocation's run ID.
func WithRun(runID string) *logrus.Entry {
	return GetLogger().WithField("run_id", runID)
}
