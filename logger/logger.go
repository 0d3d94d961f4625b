// Package logger provides a global zap-based logger for PRX.
//
// The logger writes human-readable console output by default and
// structured JSON when requested (for piping into log collectors).
// All helpers are safe to call before Initialize; they no-op until
// the logger exists.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/teranos/PRX/errors"
)

// Logger is the global logger instance
var Logger *zap.SugaredLogger

// JSONOutput controls whether results are printed as JSON
var JSONOutput bool

func init() {
	// Start with a no-op logger so package-level calls before
	// Initialize never panic. Commands replace it during setup.
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger.
// level is one of debug, info, warn, error (case-insensitive);
// jsonOutput switches from the minimal console encoder to JSON lines.
func Initialize(level string, jsonOutput bool) error {
	JSONOutput = jsonOutput

	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}

	var logger *zap.Logger
	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(lvl)
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		logger, err = config.Build()
		if err != nil {
			return errors.Wrap(err, "failed to build JSON logger")
		}
	} else {
		core := zapcore.NewCore(
			newMinimalEncoder(),
			zapcore.AddSync(os.Stderr),
			lvl,
		)
		logger = zap.New(core)
	}

	Logger = logger.Sugar()
	return nil
}

// InitializeAtLevel is a convenience wrapper taking a zap level directly,
// used by commands that map -v flag counts to levels.
func InitializeAtLevel(lvl zapcore.Level, jsonOutput bool) error {
	return Initialize(lvl.String(), jsonOutput)
}

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, errors.Wrapf(errors.ErrInvalidConfig, "unknown log level %q", level)
	}
	return lvl, nil
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Info logs an info message
func Info(args ...interface{}) {
	if Logger != nil {
		Logger.Info(args...)
	}
}

// Infof logs a formatted info message
func Infof(template string, args ...interface{}) {
	if Logger != nil {
		Logger.Infof(template, args...)
	}
}

// Infow logs an info message with key-value pairs
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Warn logs a warning message
func Warn(args ...interface{}) {
	if Logger != nil {
		Logger.Warn(args...)
	}
}

// Warnf logs a formatted warning message
func Warnf(template string, args ...interface{}) {
	if Logger != nil {
		Logger.Warnf(template, args...)
	}
}

// Warnw logs a warning message with key-value pairs
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Error logs an error message
func Error(args ...interface{}) {
	if Logger != nil {
		Logger.Error(args...)
	}
}

// Errorf logs a formatted error message
func Errorf(template string, args ...interface{}) {
	if Logger != nil {
		Logger.Errorf(template, args...)
	}
}

// Errorw logs an error message with key-value pairs
func Errorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}

// Debug logs a debug message
func Debug(args ...interface{}) {
	if Logger != nil {
		Logger.Debug(args...)
	}
}

// Debugf logs a formatted debug message
func Debugf(template string, args ...interface{}) {
	if Logger != nil {
		Logger.Debugf(template, args...)
	}
}

// Debugw logs a debug message with key-value pairs
func Debugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}
