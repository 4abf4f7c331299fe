package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var logger = newSugared(os.Stderr)

func newSugared(w io.Writer) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

func InitLogger(logLevel *string) {
	switch *logLevel {
	case "debug":
		SetLogLevel(DEBUG)
	case "info":
		SetLogLevel(INFO)
	case "warn":
		SetLogLevel(WARN)
	case "error":
		SetLogLevel(ERROR)
	default:
		SetLogLevel(INFO)
	}

	Debug("Logger initialized at level ", level.String())
}

// SetLogLevel sets the global log level
func SetLogLevel(l LogLevel) {
	switch l {
	case DEBUG:
		level.SetLevel(zapcore.DebugLevel)
	case WARN:
		level.SetLevel(zapcore.WarnLevel)
	case ERROR:
		level.SetLevel(zapcore.ErrorLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

// SetOutput redirects log output, mostly for tests.
func SetOutput(w io.Writer) {
	logger = newSugared(w)
}

// Sync flushes buffered entries.
func Sync() {
	_ = logger.Sync()
}

// Debug logs debug-level messages
func Debug(v ...interface{}) {
	logger.Debug(v...)
}

// Debugf logs debug-level formatted messages
func Debugf(format string, v ...interface{}) {
	logger.Debugf(format, v...)
}

// Info logs info-level messages
func Info(v ...interface{}) {
	logger.Info(v...)
}

// Infof logs info-level formatted messages
func Infof(format string, v ...interface{}) {
	logger.Infof(format, v...)
}

// Warn logs warning-level messages
func Warn(v ...interface{}) {
	logger.Warn(v...)
}

// Warnf logs warning-level formatted messages
func Warnf(format string, v ...interface{}) {
	logger.Warnf(format, v...)
}

// Error logs error-level messages
func Error(v ...interface{}) {
	logger.Error(v...)
}

// Errorf logs error-level formatted messages
func Errorf(format string, v ...interface{}) {
	logger.Errorf(format, v...)
}
