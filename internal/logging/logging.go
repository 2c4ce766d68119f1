// Package logging builds the zerolog logger shared by every command.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects level, format and destinations.
type Options struct {
	Level  string // debug|info|warn|error|off
	Format string // console|json
	File   string // optional rotating log file
	Out    io.Writer
}

// ParseLevel maps a level name to a zerolog level. Unknown names mean info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a logger writing to opts.Out (stderr when nil) and, if
// opts.File is set, to a size-rotated file. The returned closer releases the
// file and is never nil.
func New(opts Options) (zerolog.Logger, io.Closer) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !strings.EqualFold(opts.Format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		closer = lj
		out = zerolog.MultiLevelWriter(out, lj)
	}
	l := zerolog.New(out).Level(ParseLevel(opts.Level)).With().Timestamp().Str("app", "modelguard").Logger()
	return l, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
