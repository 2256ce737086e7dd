package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the root logger every component logger derives from.
//   - level: trace, debug, info, warn, error, fatal or panic
//   - format: "pretty" for human-readable dev output, anything else
//     emits JSON lines
//
// An unparseable level falls back to info rather than failing the boot.
func Setup(level, format string) zerolog.Logger {
	var writer io.Writer
	switch format {
	case "pretty":
		writer = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	default:
		writer = os.Stdout
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Str("service", "assess-backend").
		Logger()
}
