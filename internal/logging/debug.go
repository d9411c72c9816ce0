package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// DebugEnabled returns true if debug mode is enabled via TL_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TL_DEBUG") != ""
}

// EffectiveLevel returns the level to log at: debug when TL_DEBUG is set,
// otherwise the configured level.
func EffectiveLevel(configured string) string {
	if DebugEnabled() {
		return zerolog.LevelDebugValue
	}
	return configured
}
