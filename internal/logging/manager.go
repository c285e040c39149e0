// pattern: Imperative Shell

package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for the log manager.
type Config struct {
	FilePath       string // path to the log file
	MaxSizeMB      int    // max size in MB before rotation
	MaxBackups     int    // old log files to keep
	MaxAgeDays     int    // days to keep old log files
	Level          string // minimum level (debug, info, warn, error)
	ChannelBufSize int    // buffer size for the live channel (default 1000)
}

// LoggerProvider is the interface for obtaining scoped loggers. Both
// Manager and TestManager implement it.
type LoggerProvider interface {
	For(scope string) *ScopedLogger
}

// ScopedLogger is the handle the rest of the engine logs through. Scopes
// are hierarchical, e.g. "session.alice" or "page.tree".
type ScopedLogger struct {
	slog  *slog.Logger
	zap   *zap.Logger
	scope string
}

// Debug logs at DEBUG level.
func (l *ScopedLogger) Debug(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Debug(msg, args...)
	}
}

// Info logs at INFO level.
func (l *ScopedLogger) Info(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Info(msg, args...)
	}
}

// Warn logs at WARN level.
func (l *ScopedLogger) Warn(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Warn(msg, args...)
	}
}

// Error logs at ERROR level.
func (l *ScopedLogger) Error(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Error(msg, args...)
	}
}

// With returns a logger with the given key-value pairs added to every
// entry.
func (l *ScopedLogger) With(args ...any) *ScopedLogger {
	if l.slog == nil {
		return l
	}
	return &ScopedLogger{slog: l.slog.With(args...), zap: l.zap, scope: l.scope}
}

// Scope returns the logger's hierarchical scope.
func (l *ScopedLogger) Scope() string {
	return l.scope
}

// Manager writes structured logs to a rotating file and mirrors them onto
// a channel the debug TUI tails.
type Manager struct {
	baseZap     *zap.Logger
	channelSink *ChannelSink
	fileWriter  *lumberjack.Logger
	loggers     map[string]*ScopedLogger
	mu          sync.RWMutex
	level       zapcore.Level
}

// NewManager creates a log manager with the given configuration.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("FilePath is required")
	}
	if cfg.ChannelBufSize == 0 {
		cfg.ChannelBufSize = 1000
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 5
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 7
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	channelSink := NewChannelSink(cfg.ChannelBufSize)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(fileWriter), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(channelSink), level),
	)

	return &Manager{
		baseZap:     zap.New(core),
		channelSink: channelSink,
		fileWriter:  fileWriter,
		loggers:     make(map[string]*ScopedLogger),
		level:       level,
	}, nil
}

// For returns a cached logger for the given scope.
func (m *Manager) For(scope string) *ScopedLogger {
	m.mu.RLock()
	if logger, ok := m.loggers[scope]; ok {
		m.mu.RUnlock()
		return logger
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[scope]; ok {
		return logger
	}

	zapLogger := m.baseZap.Named(scope)
	logger := &ScopedLogger{
		slog:  slog.New(&zapSlogHandler{zap: zapLogger, level: m.level}),
		zap:   zapLogger,
		scope: scope,
	}
	m.loggers[scope] = logger
	return logger
}

// Entries returns the channel of live log entries.
func (m *Manager) Entries() <-chan LogEntry {
	return m.channelSink.Entries()
}

// Cleanup drops cached loggers with the given scope prefix. Called when a
// session is destroyed so dead viewers don't pin loggers forever.
func (m *Manager) Cleanup(scopePrefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for scope := range m.loggers {
		if strings.HasPrefix(scope, scopePrefix) {
			delete(m.loggers, scope)
		}
	}
}

// Sync flushes buffered logs.
func (m *Manager) Sync() error {
	return m.baseZap.Sync()
}

// Close syncs and releases all resources.
func (m *Manager) Close() error {
	_ = m.Sync()
	_ = m.channelSink.Close()
	return m.fileWriter.Close()
}

// zapSlogHandler adapts zap.Logger to the slog.Handler interface so engine
// code logs through slog's key-value API while zap does the encoding.
type zapSlogHandler struct {
	zap    *zap.Logger
	level  zapcore.Level
	attrs  []slog.Attr
	groups []string
}

func (h *zapSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogToZapLevel(level) >= h.level
}

func (h *zapSlogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]zap.Field, 0, r.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		fields = append(fields, zap.Any(attr.Key, attr.Value.Any()))
	}
	r.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, zap.Any(attr.Key, attr.Value.Any()))
		return true
	})

	switch {
	case r.Level >= slog.LevelError:
		h.zap.Error(r.Message, fields...)
	case r.Level >= slog.LevelWarn:
		h.zap.Warn(r.Message, fields...)
	case r.Level >= slog.LevelInfo:
		h.zap.Info(r.Message, fields...)
	default:
		h.zap.Debug(r.Message, fields...)
	}
	return nil
}

func (h *zapSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &zapSlogHandler{zap: h.zap, level: h.level, attrs: merged, groups: h.groups}
}

func (h *zapSlogHandler) WithGroup(name string) slog.Handler {
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)
	return &zapSlogHandler{zap: h.zap.Named(name), level: h.level, attrs: h.attrs, groups: groups}
}

func slogToZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
