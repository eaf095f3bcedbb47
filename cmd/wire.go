package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/bnema/kahadb-trace/internal/adapters/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	config config.Config
	logger zerolog.Logger
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"concise": config.KeyConcise,
	"verbose": config.KeyVerbose,
	"marker":  config.KeyMarker,
}

func wireApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg := viper.New()
	for flag, key := range flagKeys {
		if err := cfg.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind --%s flag: %w", flag, err)
		}
	}

	loaded, err := config.Load(cfg, opts.configFile)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), loaded.Verbose)
	if loaded.Source != "" {
		logger.Debug().Str("path", loaded.Source).Msg("loaded config file")
	}

	return &app{
		config: loaded,
		logger: logger,
	}, nil
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
