// pattern: Imperative Shell

package logging

import (
	"log/slog"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NopLogger returns a logger that discards everything. Use in tests or
// when logging is not configured.
func NopLogger() *ScopedLogger {
	return &ScopedLogger{}
}

// NopProvider is a LoggerProvider handing out discard loggers.
type NopProvider struct{}

// For returns a no-op logger for any scope.
func (NopProvider) For(scope string) *ScopedLogger {
	return &ScopedLogger{scope: scope}
}

// TestManager is a LoggerProvider for tests: channel only, no file, debug
// level.
type TestManager struct {
	channelSink *ChannelSink
	baseZap     *zap.Logger
	loggers     map[string]*ScopedLogger
	mu          sync.RWMutex
}

// NewTestManager creates a test log manager writing only to a channel.
func NewTestManager(bufferSize int) *TestManager {
	channelSink := NewChannelSink(bufferSize)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(channelSink),
		zapcore.DebugLevel,
	)

	return &TestManager{
		channelSink: channelSink,
		baseZap:     zap.New(core),
		loggers:     make(map[string]*ScopedLogger),
	}
}

// For returns a scoped logger, mirroring the production Manager API.
func (m *TestManager) For(scope string) *ScopedLogger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[scope]; ok {
		return logger
	}

	zapLogger := m.baseZap.Named(scope)
	logger := &ScopedLogger{
		slog:  slog.New(&zapSlogHandler{zap: zapLogger, level: zapcore.DebugLevel}),
		zap:   zapLogger,
		scope: scope,
	}
	m.loggers[scope] = logger
	return logger
}

// Entries returns the channel of captured log entries.
func (m *TestManager) Entries() <-chan LogEntry {
	return m.channelSink.Entries()
}

// Close closes the capture channel.
func (m *TestManager) Close() error {
	return m.channelSink.Close()
}
