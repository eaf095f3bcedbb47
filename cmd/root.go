package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "kta [logfile]",
		Short: "KahaDB trace analyzer (kta): find journal files eligible for cleanup",
		Long: "kta reads a broker log captured with TRACE logging enabled for the KahaDB MessageDatabase, " +
			"replays the gc candidates trace and reports how many journal files each subsystem keeps alive " +
			"and how many are left as cleanup candidates. Pass - to read the log from stdin.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a TOML config file (default $HOME/.kahadb-trace/config.toml)")
	flags.Bool("concise", false, "Hide reduction lines that removed no journal files")
	flags.Bool("verbose", false, "Print debug diagnostics to stderr")
	flags.String("marker", "", "Logger name that identifies store trace lines (default MessageDatabase)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(opts),
	)

	return rootCmd
}
