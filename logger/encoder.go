package logger

import (
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"strconv"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// minimalEncoder renders compact single-line console output:
//
//	15:04:05  store  saved prompt  name=greeting bytes=124
//
// Timestamps and logger names are dimmed so the message stands out.
// Warnings and errors get a colored level tag; info lines get none.
type minimalEncoder struct {
	zapcore.Encoder
	pool buffer.Pool
}

// ANSI 256-color codes. One fixed palette; respects NO_COLOR via colorEnabled.
const (
	colorDim     = 245 // timestamps, separators
	colorWarnFg  = 214 // orange
	colorErrorFg = 203 // red
	colorValue   = 109 // muted blue for field values
)

// componentPalette colors logger names by hash so the same package
// always renders in the same color across a session.
var componentPalette = []int{108, 142, 175, 109, 208, 132}

var colorEnabled = true

func init() {
	if v, ok := os.LookupEnv("NO_COLOR"); ok && v != "" {
		colorEnabled = false
	}
}

func newMinimalEncoder() zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "name",
		MessageKey:     "msg",
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	return &minimalEncoder{
		Encoder: zapcore.NewConsoleEncoder(cfg),
		pool:    buffer.NewPool(),
	}
}

func (e *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: e.Encoder.Clone(),
		pool:    e.pool,
	}
}

func (e *minimalEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line := e.pool.Get()

	line.AppendString(fg(colorDim, entry.Time.Format("15:04:05")))
	line.AppendString("  ")

	if tag := levelTag(entry.Level); tag != "" {
		line.AppendString(tag)
		line.AppendString(" ")
	}

	if entry.LoggerName != "" {
		line.AppendString(componentColor(entry.LoggerName))
		line.AppendString("  ")
	}

	line.AppendString(entry.Message)

	for _, f := range fields {
		s := formatField(f)
		if s == "" {
			continue
		}
		line.AppendString("  ")
		line.AppendString(s)
	}

	line.AppendString("\n")
	return line, nil
}

// formatField renders a field as key=value. Every field is rendered;
// nothing is dropped based on key name.
func formatField(f zapcore.Field) string {
	key := f.Key
	var value string

	switch f.Type {
	case zapcore.StringType:
		value = f.String
	case zapcore.BoolType:
		value = fmt.Sprintf("%t", f.Integer == 1)
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		value = fmt.Sprintf("%d", f.Integer)
	case zapcore.Float64Type:
		value = strconv.FormatFloat(math.Float64frombits(uint64(f.Integer)), 'g', -1, 64)
	case zapcore.Float32Type:
		value = strconv.FormatFloat(float64(math.Float32frombits(uint32(f.Integer))), 'g', -1, 32)
	case zapcore.DurationType:
		value = fmt.Sprintf("%dms", f.Integer/1e6)
	case zapcore.ErrorType:
		if f.Interface == nil {
			return ""
		}
		if err, ok := f.Interface.(error); ok {
			return key + "=" + fg(colorErrorFg, err.Error())
		}
		value = fmt.Sprintf("%v", f.Interface)
	case zapcore.SkipType:
		return ""
	default:
		if f.Interface != nil {
			value = fmt.Sprintf("%v", f.Interface)
		} else if f.String != "" {
			value = f.String
		} else {
			value = fmt.Sprintf("%d", f.Integer)
		}
	}

	// duration_ms carries its unit in the key; show it with the value
	// so "duration_ms=42" reads as "duration=42ms".
	if key == FieldDurationMS {
		return "duration=" + fg(colorValue, value+"ms")
	}

	return key + "=" + fg(colorValue, value)
}

func levelTag(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return fg(colorWarnFg, "WARN")
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return fg(colorErrorFg, "ERROR")
	case zapcore.DebugLevel:
		return fg(colorDim, "debug")
	default:
		return ""
	}
}

// componentColor picks a stable palette color for a logger name.
func componentColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	idx := int(h.Sum32()) % len(componentPalette)
	if idx < 0 {
		idx += len(componentPalette)
	}
	return fg(componentPalette[idx], name)
}

func fg(color int, s string) string {
	if !colorEnabled || s == "" {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, s)
}
