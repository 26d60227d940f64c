// Package logger holds the process-wide zerolog logger for the job board.
//
// main calls Init exactly once after config is loaded; every other package
// reaches the same instance through Get. Each event carries a service field
// so log aggregation can tell this API apart from sibling services.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// serviceName is stamped on every event emitted by this process.
const serviceName = "job-board-api"

// Options selects the output shape of the process logger.
type Options struct {
	// Level is the minimum severity that gets written: trace, debug, info,
	// warn or error. Anything else falls back to info.
	Level string
	// Pretty switches to zerolog's console writer. JSON stays the default
	// so production output is machine-parseable.
	Pretty bool
	// Output overrides the destination. Nil means os.Stdout.
	Output io.Writer
}

var (
	once sync.Once
	root zerolog.Logger
	set  bool
)

// Init builds the process logger. Later calls return the logger from the
// first call unchanged, so handlers cannot accidentally reconfigure it.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		w := opts.Output
		if w == nil {
			w = os.Stdout
		}
		if opts.Pretty {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		root = zerolog.New(w).
			Level(level).
			With().
			Timestamp().
			Caller().
			Str("service", serviceName).
			Logger()
		set = true
	})
	return root
}

// Get returns the logger built by Init and panics when called before it.
// A silent fallback here would hide a wiring bug in main.
func Get() zerolog.Logger {
	if !set {
		panic("logger: Get called before Init")
	}
	return root
}

// Reset discards the singleton so tests can Init with their own options.
func Reset() {
	once = sync.Once{}
	root = zerolog.Logger{}
	set = false
}

var levels = map[string]zerolog.Level{
	"trace":   zerolog.TraceLevel,
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

func parseLevel(s string) zerolog.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}
