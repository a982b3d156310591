// Package logging configures the global zerolog logger used across cifra.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger writes human-readable records to stderr so command output on
// stdout stays clean for piping.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

// SetLevel adjusts the global level from a verbosity name. Unknown names
// leave the level untouched.
func SetLevel(name string) {
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return
	}
	Logger = Logger.Level(level)
}

func Trace() *zerolog.Event { return Logger.Trace() }

func Debug() *zerolog.Event { return Logger.Debug() }

func Info() *zerolog.Event { return Logger.Info() }

func Warn() *zerolog.Event { return Logger.Warn() }

func Error() *zerolog.Event { return Logger.Error() }

func Err(err error) *zerolog.Event { return Logger.Err(err) }
