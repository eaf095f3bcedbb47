package cmd

import (
	"fmt"
	"io"

	textreporter "github.com/bnema/kahadb-trace/internal/adapters/render/text"
	filesource "github.com/bnema/kahadb-trace/internal/adapters/source/file"
	"github.com/bnema/kahadb-trace/internal/application"
	"github.com/spf13/cobra"
)

func runAnalyze(cmd *cobra.Command, opts *rootOptions, args []string) (err error) {
	app, err := wireApp(cmd, opts)
	if err != nil {
		return err
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	path, err := filesource.ResolvePath(arg, app.config.LogDir, app.config.LogFile)
	if err != nil {
		return err
	}

	reporter := textreporter.NewReporter(cmd.OutOrStdout(), textreporter.Options{Concise: app.config.Concise})
	if err := reporter.LogFile(path); err != nil {
		return err
	}

	src, err := openLog(cmd, path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close log file: %w", closeErr)
		}
	}()

	app.logger.Debug().Str("path", path).Bool("concise", app.config.Concise).Msg("analyzing log")

	analyzer := application.NewAnalyzer(reporter,
		application.WithLogger(app.logger),
		application.WithMarker(app.config.Marker),
	)

	result, err := analyzer.Analyze(cmd.Context(), src)
	if err != nil {
		return err
	}

	app.logger.Debug().
		Int("lines", result.LinesRead).
		Int("sessions", len(result.Sessions)).
		Int("malformed", result.MalformedLines).
		Msg("analysis finished")

	return nil
}

func openLog(cmd *cobra.Command, path string) (*filesource.Source, error) {
	if path == filesource.StdinName {
		return filesource.NewSource("stdin", io.NopCloser(cmd.InOrStdin())), nil
	}

	return filesource.Open(path)
}
