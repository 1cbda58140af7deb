// Package log writes diagnostics through logrus into a file per day under where.Logs().
// Nothing is written unless logs.write is enabled.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/filesystem"
	"github.com/tonneli-cli/tonneli/key"
	"github.com/tonneli-cli/tonneli/where"
)

var enabled bool

// discard backs the entries handed out while logging is disabled.
var discard = &logrus.Logger{Out: io.Discard, Formatter: new(logrus.TextFormatter), Hooks: make(logrus.LevelHooks), Level: logrus.PanicLevel}

// Setup opens today's log file and applies the configured format and level.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{PrettyPrint: true})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

// City returns an entry tagged with the city ID.
func City(id string) *logrus.Entry {
	return entry().WithField("city", id)
}

func entry() *logrus.Entry {
	if !enabled {
		return logrus.NewEntry(discard)
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func Error(args ...any) {
	entry().Error(args...)
}

func Errorf(format string, args ...any) {
	entry().Errorf(format, args...)
}

func Infof(format string, args ...any) {
	entry().Infof(format, args...)
}

func Debugf(format string, args ...any) {
	entry().Debugf(format, args...)
}
