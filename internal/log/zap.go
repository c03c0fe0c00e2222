package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZap builds the operational logger. format "json" selects the production
// encoder; anything else gets the colored console encoder.
func NewZap(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "info":
		lvl = zapcore.InfoLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// ZapLogger keeps events in memory like MemoryLogger and mirrors each one to
// a zap logger.
type ZapLogger struct {
	MemoryLogger
	z *zap.Logger
}

func NewZapLogger(z *zap.Logger) *ZapLogger {
	if z == nil {
		z = zap.NewNop()
	}
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fields := []zap.Field{
		zap.Int("seq", l.seq),
		zap.Int("player", event.Player),
		zap.String("type", event.Type.String()),
	}
	if event.Card != "" {
		fields = append(fields, zap.String("card", event.Card))
	}
	if event.Type == EventIgnored {
		l.z.Info(event.Details, fields...)
		return
	}
	l.z.Debug(event.Details, fields...)
}
