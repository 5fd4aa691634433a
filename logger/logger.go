package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger instance shared by all packages.
var Log *logrus.Logger

// Init configures the global logger. It must be called once at startup,
// before any other package logs.
func Init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)

	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}
