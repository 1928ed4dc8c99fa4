// Package log provides a global logger with configurable logging level. Messages are written to
// stderr through a zap console core.

package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level int

const (
	LevelNone    Level = iota // Disables logging.
	LevelError                // Logs anomalies that are not expected to occur during normal use.
	LevelWarning              // Logs anomalies that are expected to occur occasionally during normal use.
	LevelInfo                 // Logs major events.
	LevelDebug                // Logs detailed IO
)

var zapLevels = map[Level]zapcore.Level{
	LevelNone:    zapcore.FatalLevel + 1,
	LevelError:   zapcore.ErrorLevel,
	LevelWarning: zapcore.WarnLevel,
	LevelInfo:    zapcore.InfoLevel,
	LevelDebug:   zapcore.DebugLevel,
}

var (
	globalLogLevel = LevelError
	atomicLevel    = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	logMutex       sync.Mutex
	sugar          = newSugaredLogger(os.Stderr)
)

func newSugaredLogger(w zapcore.WriteSyncer) *zap.SugaredLogger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(w), atomicLevel)
	return zap.New(core).Sugar()
}

// SetOutput redirects log output.
func SetOutput(w zapcore.WriteSyncer) {
	logMutex.Lock()
	defer logMutex.Unlock()
	sugar = newSugaredLogger(w)
}

// RotatingFile is where SetFile sends log output. Fields other than Filename keep their
// defaults unless set before calling SetFile.
var RotatingFile = lumberjack.Logger{
	MaxSize:    10, // megabytes
	MaxBackups: 5,
	MaxAge:     30, // days
	Compress:   true,
}

// SetFile redirects log output to filename, rotating it as RotatingFile describes. An empty
// filename restores stderr.
func SetFile(filename string) {
	if filename == "" {
		SetOutput(os.Stderr)
		return
	}
	RotatingFile.Filename = filename
	SetOutput(zapcore.AddSync(&RotatingFile))
}

func SetLevel(level Level) {
	logMutex.Lock()
	defer logMutex.Unlock()
	zl, ok := zapLevels[level]
	if !ok {
		return
	}
	globalLogLevel = level
	atomicLevel.SetLevel(zl)
}

func logLevel() Level {
	logMutex.Lock()
	defer logMutex.Unlock()
	return globalLogLevel
}

func logger() *zap.SugaredLogger {
	logMutex.Lock()
	defer logMutex.Unlock()
	return sugar
}

func Debug(format string, a ...interface{}) {
	logger().Debugf(format, a...)
}
func Info(format string, a ...interface{}) {
	logger().Infof(format, a...)
}
func Warning(format string, a ...interface{}) {
	logger().Warnf(format, a...)
}
func Error(format string, a ...interface{}) {
	logger().Errorf(format, a...)
}

// Sync flushes buffered log entries. Call before the process exits.
func Sync() {
	_ = logger().Sync()
}
