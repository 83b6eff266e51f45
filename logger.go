package jobsys

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// log is the package-level diagnostic logger. It defaults to a disabled
// logger so steal/sleep bookkeeping never costs anything on the hot path;
// callers opt in with SetLogger.
var log atomic.Pointer[zerolog.Logger]

func init() {
	disabled := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	log.Store(&disabled)
}

// SetLogger installs a logger for scheduler diagnostics: successful steals,
// workers going to sleep, and System initialization. Passing a logger at
// zerolog.Disabled (the default) costs nothing beyond a pointer load.
func SetLogger(l zerolog.Logger) {
	log.Store(&l)
}

// NewConsoleLogger returns a logger in the style of EasyRobot's
// pkg/logger: caller-annotated, human-readable console output on stderr.
func NewConsoleLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Timestamp().Logger()
}

func logger() *zerolog.Logger {
	return log.Load()
}
