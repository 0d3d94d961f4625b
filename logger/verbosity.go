package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
const (
	VerbosityQuiet = 0 // no flags: warnings and errors only
	VerbosityInfo  = 1 // -v: + progress and operation summaries
	VerbosityDebug = 2 // -vv: + resolution steps, config, timing
)

// VerbosityToLevel maps -v flag counts to zap log levels.
// Anything past -vv stays at debug; zap has no finer levels.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
