package log

import (
	"context"
	"math"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
	"okinoko-blade_arena/internal/conf"
)

var (
	rootLogger = logrus.NewEntry(logrus.StandardLogger())

	// L accesses the current logger from the context
	L = loggerFromContext

	initAtLeastOnce atomic.Bool
)

type (
	ctxLogKey struct{}
)

func InitConfig(c *conf.LogConfig) {
	initAtLeastOnce.Store(true) // must store before SetLevel

	SetLevel(conf.StringNotEmpty(c.Level, *conf.LogDefaults.Level))

	switch conf.StringNotEmpty(c.Output, *conf.LogDefaults.Output) {
	case "file":
		filename := conf.StringNotEmpty(c.File.Filename, *conf.LogDefaults.File.Filename)
		rootLogger.Infof("Logs diverted to %s", filename)
		maxAge := conf.DurationMin(c.File.MaxAge, 0, *conf.LogDefaults.File.MaxAge)
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    conf.IntMin(c.File.MaxSizeMB, 1, *conf.LogDefaults.File.MaxSizeMB),
			MaxBackups: conf.IntMin(c.File.MaxBackups, 0, *conf.LogDefaults.File.MaxBackups),
			MaxAge:     int(math.Ceil(float64(maxAge) / float64(time.Hour) / 24)), /* round up in days */
			Compress:   conf.Bool(c.File.Compress, *conf.LogDefaults.File.Compress),
		})
	case "stdout":
		logrus.SetOutput(os.Stdout)
	default:
		logrus.SetOutput(os.Stderr)
	}

	setFormatting(&formatting{
		format:          conf.StringNotEmpty(c.Format, *conf.LogDefaults.Format),
		disableColor:    conf.Bool(c.DisableColor, *conf.LogDefaults.DisableColor),
		forceColor:      conf.Bool(c.ForceColor, *conf.LogDefaults.ForceColor),
		timestampFormat: conf.StringNotEmpty(c.TimeFormat, *conf.LogDefaults.TimeFormat),
		utc:             conf.Bool(c.UTC, *conf.LogDefaults.UTC),
	})
}

func IsDebugEnabled() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

// EnsureInit applies the default config when nothing else has, so unit tests
// get sensible output without any setup.
func EnsureInit() {
	if !initAtLeastOnce.Load() {
		InitConfig(&conf.LogConfig{})
	}
}

// WithLogger adds the specified logger to the context
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	EnsureInit()
	return context.WithValue(ctx, ctxLogKey{}, logger)
}

// WithLogField adds the specified field to the logger in the context
func WithLogField(ctx context.Context, key, value string) context.Context {
	EnsureInit()
	if len(value) > 61 {
		value = value[0:61] + "..."
	}
	return WithLogger(ctx, loggerFromContext(ctx).WithField(key, value))
}

func loggerFromContext(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(ctxLogKey{})
	if logger == nil {
		return rootLogger
	}
	return logger.(*logrus.Entry)
}

func GetLevel() string {
	switch logrus.GetLevel() {
	case logrus.ErrorLevel:
		return "error"
	case logrus.WarnLevel:
		return "warn"
	case logrus.DebugLevel:
		return "debug"
	case logrus.TraceLevel:
		return "trace"
	default:
		return "info"
	}
}

func SetLevel(level string) {
	var l logrus.Level
	switch strings.ToLower(level) {
	case "error":
		l = logrus.ErrorLevel
	case "warn", "warning":
		l = logrus.WarnLevel
	case "debug":
		l = logrus.DebugLevel
	case "trace":
		l = logrus.TraceLevel
	default:
		l = logrus.InfoLevel
	}
	logrus.SetLevel(l)
}

type formatting struct {
	format          string
	disableColor    bool
	forceColor      bool
	timestampFormat string
	utc             bool
}

type utcFormat struct {
	f logrus.Formatter
}

func (utc *utcFormat) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()
	return utc.f.Format(e)
}

func setFormatting(format *formatting) {
	var formatter logrus.Formatter
	switch format.format {
	case "json":
		formatter = &logrus.JSONFormatter{
			TimestampFormat: format.timestampFormat,
		}
	case "detailed":
		formatter = &logrus.TextFormatter{
			DisableColors:   format.disableColor,
			ForceColors:     format.forceColor,
			TimestampFormat: format.timestampFormat,
			FullTimestamp:   true,
		}
		logrus.SetReportCaller(true)
	default:
		formatter = &prefixed.TextFormatter{
			DisableColors:   format.disableColor,
			ForceColors:     format.forceColor,
			TimestampFormat: format.timestampFormat,
			ForceFormatting: true,
			FullTimestamp:   true,
		}
	}
	if format.utc {
		formatter = &utcFormat{f: formatter}
	}
	logrus.SetFormatter(formatter)
}
