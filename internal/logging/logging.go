// Package logging builds the diagnostic logger used by the engine.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at the given level. An empty
// level means "warn".
func New(level string, w io.Writer, noColor bool) (zerolog.Logger, error) {
	if level == "" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
