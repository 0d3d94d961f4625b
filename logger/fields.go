package logger

import "go.uber.org/zap"

// Standard field names for structured logging across PRX.
// Use these constants instead of raw strings to keep field names
// consistent and greppable.
const (
	// Prompts and resolution
	FieldPrompt   = "prompt"
	FieldRefs     = "refs"
	FieldFiles    = "files"
	FieldCommands = "commands"
	FieldDepth    = "depth"

	// Files and paths
	FieldPath  = "path"
	FieldDir   = "dir"
	FieldBytes = "bytes"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"

	// Components
	FieldComponent = "component"
)

// ComponentLogger returns a named logger for a specific component.
// The name shows up colorized in console output.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewWatcher() *Watcher {
//	    return &Watcher{logger: logger.ComponentLogger("watch")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context fields.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
