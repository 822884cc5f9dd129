// Package debug provides the structured debug log for segbox.
// Logging is only enabled when --debug (or debug: true) is set at startup.
// Entries are JSON lines written to ~/.segbox/debug.log, truncated on each launch.
package debug

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogFileName is the name of the debug log file.
	LogFileName = "debug.log"
	// LogDirName is the name of the directory containing the log file.
	LogDirName = ".segbox"
)

type loggerContextKey struct{}

var (
	mu      sync.RWMutex
	enabled bool
	logger  = logr.Discard()
	zlog    *zap.Logger
	logFile *os.File

	// getLogPath is a function variable to allow overriding in tests.
	getLogPath = defaultGetLogPath
)

// Init initializes the debug logging system.
// If enable is false, all logging operations become no-ops.
func Init(enable bool) error {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if !enable {
		logger = logr.Discard()
		return nil
	}

	logPath, err := getLogPath()
	if err != nil {
		return fmt.Errorf("determine log path: %w", err)
	}

	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	//nolint:gosec // G304: Log path is computed from user home, not user input
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.MessageKey = "message"

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(f)),
		zap.NewAtomicLevelAt(zapcore.DebugLevel),
	)
	zlog = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	logger = zapr.NewLogger(zlog)
	logger.Info("segbox debug log started", "at", time.Now().Format(time.RFC3339))

	return nil
}

// Close flushes and closes the debug log file if open.
// Safe to call even if logging is disabled.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if zlog != nil {
		_ = zlog.Sync()
		zlog = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = logr.Discard()
}

// Logger returns the active logger, or a discarding logger when disabled.
func Logger() logr.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Log writes a structured debug entry if debug logging is enabled.
func Log(msg string, keysAndValues ...any) {
	mu.RLock()
	defer mu.RUnlock()

	if !enabled {
		return
	}
	logger.Info(msg, keysAndValues...)
}

// Logf writes a formatted debug entry if debug logging is enabled.
func Logf(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()

	if !enabled {
		return
	}
	logger.Info(fmt.Sprintf(format, v...))
}

// Error writes an error entry if debug logging is enabled.
func Error(err error, msg string, keysAndValues ...any) {
	mu.RLock()
	defer mu.RUnlock()

	if !enabled {
		return
	}
	logger.Error(err, msg, keysAndValues...)
}

// Enabled returns whether debug logging is currently enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// WithLogger attaches log to ctx.
func WithLogger(ctx context.Context, log logr.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger carried by ctx, falling back to Logger().
func FromContext(ctx context.Context) logr.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerContextKey{}).(logr.Logger); ok {
			return l
		}
	}
	return Logger()
}

// defaultGetLogPath returns the path to the debug log file.
func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath returns the path to the debug log file.
func GetLogPath() (string, error) {
	return getLogPath()
}
