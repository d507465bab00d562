package core

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger intended to be used for general application logs.
// Logs go to stderr unless a log file is configured so that they never mix
// with command output on stdout. The returned func closes the log file and
// must be called once the logger is no longer needed.
func NewLogger(cfg *Config) (*logrus.Logger, func() error, error) {
	logLvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if cfg.LogFilePath != "" {
		f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file %s: %w", cfg.LogFilePath, err)
		}
		w = f
		closeFn = f.Close
	}

	logger := &logrus.Logger{
		Out: w,
		Formatter: &logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			DisableSorting:  true,
		},
		Hooks: make(logrus.LevelHooks),
		Level: logLvl,
	}
	return logger, closeFn, nil
}
