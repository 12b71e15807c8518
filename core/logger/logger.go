package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	envLoggingLevel  = "MIRROR_LOGGING_LEVEL"
	envLoggingFormat = "MIRROR_LOGGING_FORMAT"

	defaultLevel = logrus.WarnLevel
)

var (
	once sync.Once
	lg   *logrus.Logger
)

// Logger returns the logger shared by every package of the module.
// The level is taken from MIRROR_LOGGING_LEVEL (default "warning"), and
// MIRROR_LOGGING_FORMAT=json switches to the JSON formatter.
func Logger() *logrus.Logger {
	once.Do(func() {
		lg = newLogger(os.Getenv(envLoggingLevel), os.Getenv(envLoggingFormat))
	})
	return lg
}

// For returns an entry tagged with the given module name.
func For(module string) *logrus.Entry {
	return Logger().WithField("module", module)
}

// SetLevel changes the level of the shared logger.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger().SetLevel(lvl)
	return nil
}

func newLogger(levelStr, formatStr string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = defaultLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(formatStr, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000 MST",
		})
	}

	return l
}
