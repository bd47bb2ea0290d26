package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// File receives JSON log lines. Empty disables logging.
	File  string
	Level string
	Debug bool
}

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// Setup installs the process logger. The TUI owns the terminal, so logs only ever go
// to a file. The returned func flushes and restores the no-op logger.
func Setup(cfg Config) (func() error, error) {
	path := strings.TrimSpace(cfg.File)
	if path == "" {
		set(zap.NewNop())
		return func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		set(zap.NewNop())
		return nil, fmt.Errorf("log dir: %w", err)
	}

	level := zapcore.InfoLevel
	if s := strings.TrimSpace(cfg.Level); s != "" {
		if err := level.Set(s); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = !cfg.Debug

	l, err := zc.Build()
	if err != nil {
		set(zap.NewNop())
		return nil, fmt.Errorf("build logger: %w", err)
	}
	set(l)
	l.Info("logger initialized", zap.String("path", path), zap.String("level", level.String()))

	return func() error {
		_ = l.Sync()
		set(zap.NewNop())
		return nil
	}, nil
}

// L returns the process logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func set(l *zap.Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}
