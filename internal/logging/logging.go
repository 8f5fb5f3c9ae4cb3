// Package logging builds the diagnostic logger. Diagnostics go to stderr
// (and optionally a rotated file); operator-facing markers are printed
// separately on stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cjfuller/labdb-manager/internal/config"
)

// Rotation settings for the optional log file.
const (
	LogMaxSizeMB  = 10
	LogMaxBackups = 5
	LogMaxAgeDays = 30
	LogCompress   = true

	logDirPermissions = 0o750
)

// Options select the logger configuration.
type Options struct {
	Level   string    // zerolog level name; empty means warn
	Debug   bool      // overrides Level with debug
	File    string    // optional rotated JSON log file
	Console io.Writer // defaults to os.Stderr
	NoColor bool
}

// ParseLevel resolves the effective level.
func ParseLevel(level string, debug bool) (zerolog.Level, error) {
	if debug {
		return zerolog.DebugLevel, nil
	}
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zerolog.WarnLevel, nil
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level '%s': %w", level, err)
	}
	return parsed, nil
}

// OptionsFromConfig builds options from the log section of the config.
func OptionsFromConfig(cfg config.Log, debug, noColor bool) Options {
	return Options{
		Level:   cfg.Level,
		Debug:   debug,
		File:    cfg.File,
		NoColor: noColor,
	}
}

// New creates a logger. The returned closer releases the log file, if any,
// and is never nil.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level, opts.Debug)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writer := consoleWriter(console, opts.NoColor)

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		fileWriter, err := newFileWriter(opts.File)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		closer = fileWriter
		writer = zerolog.MultiLevelWriter(writer, fileWriter)
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

// consoleWriter uses the human-readable format on a terminal and JSON
// otherwise.
func consoleWriter(w io.Writer, noColor bool) io.Writer {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return w
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    noColor || os.Getenv("NO_COLOR") != "",
	}
}

func newFileWriter(path string) (*lumberjack.Logger, error) {
	logPath, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(logPath), logDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    LogMaxSizeMB,
		MaxBackups: LogMaxBackups,
		MaxAge:     LogMaxAgeDays,
		Compress:   LogCompress,
	}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
