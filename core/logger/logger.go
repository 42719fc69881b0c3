package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log  = newLogger("info", "development")
	once sync.Once
)

func newLogger(level, env string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if env == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Init configures the process-wide logger. Only the first call takes effect.
func Init(level, env string) {
	once.Do(func() {
		log = newLogger(level, env)
	})
}

// Logger exposes the underlying logrus instance for middleware that needs it.
func Logger() *logrus.Logger {
	return log
}

func Debug(msg string, args ...any) {
	log.WithFields(fields(args)).Debug(msg)
}

func Info(msg string, args ...any) {
	log.WithFields(fields(args)).Info(msg)
}

func Warn(msg string, args ...any) {
	log.WithFields(fields(args)).Warn(msg)
}

func Error(msg string, args ...any) {
	log.WithFields(fields(args)).Error(msg)
}

// fields turns trailing key/value pairs into logrus fields. A bare error is
// stored under "error"; anything else without a string key gets a positional key.
func fields(args []any) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			f[logrus.ErrorKey] = v
		case string:
			if i+1 < len(args) {
				f[v] = args[i+1]
				i++
				continue
			}
			f[fmt.Sprintf("arg%d", i)] = v
		default:
			f[fmt.Sprintf("arg%d", i)] = v
		}
	}
	return f
}
