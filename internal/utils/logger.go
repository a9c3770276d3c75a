package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

type appNameHook struct {
	appName string
}

// Levels implements logrus.Hook interface.
func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook interface.
func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Data["app"] = h.appName
	return nil
}

// InitLogger configures the shared Logger for stdout.
func InitLogger(appName string) {
	ConfigureLogger(Logger, os.Stdout, appName, os.Getenv("LOG_LEVEL"))
}

// ConfigureLogger applies output, level and formatting to any logrus logger.
// An empty or unknown level string falls back to INFO.
func ConfigureLogger(l *logrus.Logger, out io.Writer, appName, levelStr string) {
	l.SetOutput(out)

	levelStr = strings.ToLower(strings.TrimSpace(levelStr))
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		l.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", levelStr)
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if appName != "" {
		l.AddHook(&appNameHook{appName})
	}
}
