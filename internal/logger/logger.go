package logger

import (
	"io"
	"os"

	"github.com/samber/do/v2"

	"github.com/rs/zerolog"

	"github.com/codozor/kubestrap/internal/config"
)

var Package = do.Package(
	do.Lazy(loggerProvider),
)

func loggerProvider(injector do.Injector) (zerolog.Logger, error) {
	var output io.Writer = os.Stderr

	configuration := do.MustInvoke[config.Configuration](injector)

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	level, err := zerolog.ParseLevel(configuration.Logs.Level)
	if err != nil || level == zerolog.NoLevel {
		// Invalid level, fallback to info
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if configuration.Logs.Pretty {
		output = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006/01/02 15:04:05.000"}
	}

	return zerolog.New(output).With().Timestamp().Logger(), nil
}
