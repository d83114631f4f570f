package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/corey/funclen/internal/app"
	"github.com/corey/funclen/internal/config"
)

// options holds the flag values shared by every command.
type options struct {
	configPath    string
	logLevel      string
	ignoreTest    bool
	lineLimit     int
	warningLimit  int
	disableOutput bool

	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{logger: zerolog.Nop()}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "funclen [path...]",
		Short: "Flag overly long Python functions",
		Long: "Analyzes Python files and directories and reports functions and methods whose\n" +
			"length exceeds the warning or error line limit. Exits 1 if any reaches the\n" +
			"error limit. Limits are read from [tool.FunctionLengthAnalyzer] in pyproject.toml.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultFile, "project file holding [tool."+config.Section+"]")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level for stderr diagnostics (debug, info, warn, error)")
	pf.BoolVar(&opts.ignoreTest, "ignore_test", false, "Ignore files starting with 'test_' and configured ignore files.")
	pf.IntVar(&opts.lineLimit, "line_limit", defaults.ErrorLineLimit, "Line limit error for functions (default from config).")
	pf.IntVar(&opts.warningLimit, "warning_line_limit", defaults.WarningLineLimit, "Line limit warning for functions (default from config).")
	pf.BoolVar(&opts.disableOutput, "disable_output", !defaults.EnableOutput, "Disable diagnostic output (default from config).")

	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// resolveSettings merges the project file (or defaults) with explicitly set flags.
func resolveSettings(cmd *cobra.Command, opts *options) (config.Config, bool) {
	cfg, err := config.Load(opts.configPath)
	loaded := err == nil
	if err != nil {
		opts.logger.Debug().Err(err).Msg("using default configuration")
	}

	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("line_limit") {
		o.ErrorLineLimit = &opts.lineLimit
	}
	if flags.Changed("warning_line_limit") {
		o.WarningLineLimit = &opts.warningLimit
	}
	if flags.Changed("disable_output") {
		enable := !opts.disableOutput
		o.EnableOutput = &enable
	}
	return cfg.Apply(o), loaded
}

func newApp(cmd *cobra.Command, opts *options) (*app.App, error) {
	parser, err := newParser()
	if err != nil {
		return nil, err
	}
	settings, _ := resolveSettings(cmd, opts)
	return app.New(app.Config{
		Settings:   settings,
		IgnoreTest: opts.ignoreTest,
		Parser:     parser,
		Out:        cmd.OutOrStdout(),
		Logger:     opts.logger,
	})
}

func runAnalyze(cmd *cobra.Command, opts *options, paths []string) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	if a.Run(paths) {
		return exitError{code: 1}
	}
	return nil
}
