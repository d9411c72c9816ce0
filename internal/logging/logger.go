package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a logger at the given level. When file is set, JSON lines
// are appended to it; otherwise human-readable lines go to stderr so that
// report output on stdout stays clean.
//
// The level parameter can be one of: trace, debug, info, warn, error, fatal.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	if file == "" {
		l, err := NewWithWriter(level, zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})
		return l, closer, err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
	}

	osFile, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}
	closer = func() { _ = osFile.Close() }

	l, err := NewWithWriter(level, osFile)
	if err != nil {
		closer()
		return zerolog.Logger{}, func() {}, err
	}
	return l, closer, nil
}

// NewWithWriter returns a timestamped logger at the given level writing to w.
func NewWithWriter(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl), nil
}
