package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	log  zerolog.Logger
)

// Get returns the process logger. The first call decides the level: debug
// when any argument is true, info otherwise. Debug mode also switches to the
// human readable console writer.
func Get(debug ...bool) zerolog.Logger {
	once.Do(func() {
		var out io.Writer = os.Stdout
		level := zerolog.InfoLevel
		if len(debug) > 0 && debug[0] {
			level = zerolog.DebugLevel
			out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		}
		zerolog.TimeFieldFormat = time.RFC3339
		log = zerolog.New(out).Level(level).With().Timestamp().Logger()
	})
	return log
}

// Nop is handy for tests and for callers that want silence.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
