package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/octabyte/clinic-portal/enums"
)

type Config struct {
	Level       string
	Env         string
	ServiceName string
}

// New builds the portal's JSON logger. Development environments get a
// console encoder so request logs stay readable in a terminal.
func New(cfg *Config) (*zap.Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	encoding := "json"
	if cfg.Env == "development" {
		encoding = "console"
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(getLogLevelFromString(cfg.Level)),
		Encoding:         encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"env":     cfg.Env,
			"service": cfg.ServiceName,
		},
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.WithOptions(zap.AddCallerSkip(1)), nil
}

// Init replaces zap's global logger. It panics on an unusable config since
// nothing can be reported without a logger.
func Init(cfg *Config) {
	logger, err := New(cfg)
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

func LogDebug(msg string, fields ...zap.Field) {
	zap.L().Debug(msg, fields...)
}

func LogDebugf(msg string, args ...interface{}) {
	zap.L().Debug(format(msg, args))
}

func LogInfo(msg string, fields ...zap.Field) {
	zap.L().Info(msg, fields...)
}

func LogInfof(msg string, args ...interface{}) {
	zap.L().Info(format(msg, args))
}

func LogWarn(msg string, fields ...zap.Field) {
	zap.L().Warn(msg, fields...)
}

func LogWarnf(msg string, args ...interface{}) {
	zap.L().Warn(format(msg, args))
}

func LogError(msg string, fields ...zap.Field) {
	zap.L().Error(msg, fields...)
}

func LogErrorf(msg string, args ...interface{}) {
	zap.L().Error(format(msg, args))
}

func LogFatal(msg string, fields ...zap.Field) {
	zap.L().Fatal(msg, fields...)
}

func format(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func getLogLevelFromString(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case enums.LogLevelDebug, "dbg":
		return zapcore.DebugLevel
	case enums.LogLevelWarn, "warning":
		return zapcore.WarnLevel
	case enums.LogLevelError, "err":
		return zapcore.ErrorLevel
	case enums.LogLevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func Sync() {
	_ = zap.L().Sync()
}
