package id3

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
)

// Level is a logging severity. Messages below the logger's level are
// discarded.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a level name to a Level, defaulting to LevelInfo
// for unknown names.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled diagnostic sink. The codec emits warnings
// through it while parsing; it never changes control flow. A nil
// *Logger is valid and discards everything.
type Logger struct {
	w     io.Writer
	level Level
	color bool
}

// NewLogger returns a logger writing to w at the given level.
func NewLogger(w io.Writer, level Level, color bool) *Logger {
	return &Logger{w: w, level: level, color: color}
}

// NewStderrLogger returns a logger writing to stderr, colored only
// when stderr is a terminal. The level is taken from the ID3TAG_LOG
// environment variable, defaulting to info.
func NewStderrLogger() *Logger {
	level := LevelInfo
	if s, ok := os.LookupEnv("ID3TAG_LOG"); ok {
		level = ParseLevel(s)
	}
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return NewLogger(os.Stderr, level, color)
}

func (l *Logger) logf(level Level, prefix, colorStyle, format string, args ...interface{}) {
	if l == nil || l.w == nil || level < l.level {
		return
	}
	msg := prefix + fmt.Sprintf(format, args...)
	if l.color && colorStyle != "" {
		msg = ansi.Color(msg, colorStyle)
	}
	fmt.Fprintln(l.w, msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, "", "", format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, "", "", format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarn, "warning: ", "yellow", format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, "error: ", "red", format, args...)
}
