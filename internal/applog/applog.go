// Package applog constructs the runtime's single zerolog.Logger,
// replacing the teacher's log.Printf/log.Fatalf call sites with
// structured, leveled logging.
package applog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-pretty-printed logger at the given level,
// stamped with the current time on every event.
func New(level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
