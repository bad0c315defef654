package logging

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

var Logger = logrus.New()

func init() {
	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	Logger.SetOutput(os.Stdout)
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		Logger.SetLevel(lvl)
	} else {
		Logger.SetLevel(logrus.InfoLevel)
	}
}

// NewGormLogger adapts the app logger for gorm. Only errors are logged
// at error level; query traces go to debug.
func NewGormLogger() gormlogger.Interface {
	return &gormLogger{level: gormlogger.Error}
}

type gormLogger struct {
	level gormlogger.LogLevel
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	Logger.WithField("source", "gorm").WithField("data", data).Info(msg)
}

func (l *gormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	Logger.WithField("source", "gorm").WithField("data", data).Warn(msg)
}

func (l *gormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	Logger.WithField("source", "gorm").WithField("data", data).Error(msg)
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := logrus.Fields{
		"source":  "gorm",
		"elapsed": elapsed.String(),
		"rows":    rows,
	}
	if err != nil {
		fields["sql"] = sql
		Logger.WithFields(fields).WithField("error", err.Error()).Error("query failed")
		return
	}
	Logger.WithFields(fields).Debug(sql)
}
