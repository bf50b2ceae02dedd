package logger

import (
	"strings"
	"sync"

	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ rlog.Logger = (*RocketMQLogger)(nil)

// RocketMQLogger routes the RocketMQ client's rlog output into zap. The
// client is chatty, so it starts at warn level.
type RocketMQLogger struct {
	mutex  sync.RWMutex
	level  zap.AtomicLevel
	base   *zap.Logger
	logger *zap.Logger
}

func NewRocketMQLogger(base *zap.Logger) *RocketMQLogger {
	l := &RocketMQLogger{
		level: zap.NewAtomicLevelAt(zapcore.WarnLevel),
		base:  OrNop(base).Named("rocketmq"),
	}
	l.logger = l.base.WithOptions(zap.IncreaseLevel(l.level))
	return l
}

func (l *RocketMQLogger) current() *zap.Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.logger
}

func fields(values map[string]interface{}) []zap.Field {
	if len(values) == 0 {
		return nil
	}

	list := make([]zap.Field, 0, len(values))
	for key, value := range values {
		list = append(list, zap.Any(key, value))
	}
	return list
}

func (l *RocketMQLogger) Debug(msg string, values map[string]interface{}) {
	l.current().Debug(msg, fields(values)...)
}

func (l *RocketMQLogger) Info(msg string, values map[string]interface{}) {
	l.current().Info(msg, fields(values)...)
}

func (l *RocketMQLogger) Warning(msg string, values map[string]interface{}) {
	l.current().Warn(msg, fields(values)...)
}

func (l *RocketMQLogger) Error(msg string, values map[string]interface{}) {
	l.current().Error(msg, fields(values)...)
}

func (l *RocketMQLogger) Fatal(msg string, values map[string]interface{}) {
	l.current().Fatal(msg, fields(values)...)
}

// Level accepts the rlog level names: debug, info, warn, error, fatal.
func (l *RocketMQLogger) Level(level string) {
	switch strings.ToLower(level) {
	case "debug":
		l.level.SetLevel(zapcore.DebugLevel)
	case "info":
		l.level.SetLevel(zapcore.InfoLevel)
	case "warn", "warning":
		l.level.SetLevel(zapcore.WarnLevel)
	case "error":
		l.level.SetLevel(zapcore.ErrorLevel)
	case "fatal":
		l.level.SetLevel(zapcore.FatalLevel)
	}
}

// OutputPath tees client logs into path in addition to the base logger.
func (l *RocketMQLogger) OutputPath(path string) (err error) {
	sink, _, err := zap.Open(path)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, l.level)

	l.mutex.Lock()
	l.logger = l.base.WithOptions(
		zap.IncreaseLevel(l.level),
		zap.WrapCore(func(c zapcore.Core) zapcore.Core { return zapcore.NewTee(c, core) }),
	)
	l.mutex.Unlock()
	return nil
}

func (l *RocketMQLogger) Enabled(level zapcore.Level) bool {
	return l.level.Enabled(level)
}
