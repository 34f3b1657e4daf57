// Package cli wires the command line. With no subcommand it starts the
// interactive interface; subcommands run one operation and exit.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nconklindev/diacritix/internal/app"
	"github.com/nconklindev/diacritix/internal/config"
	"github.com/nconklindev/diacritix/internal/logging"
	"github.com/nconklindev/diacritix/internal/mapping"
	"github.com/nconklindev/diacritix/internal/ui"

	"github.com/spf13/cobra"
)

// BuildInfo is stamped into the binary at release time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type runner struct {
	configDir  string
	compose    bool
	stripMarks bool

	cfg    *config.Config
	app    *app.App
	closer io.Closer
}

// Execute runs the command line and returns the process exit code.
func Execute(info BuildInfo) int {
	if err := NewRootCommand(info).Execute(); err != nil {
		return 1
	}
	return 0
}

func NewRootCommand(info BuildInfo) *cobra.Command {
	r := &runner{}

	rootCmd := &cobra.Command{
		Use:   "diacritix [file]",
		Short: "Replace accented and special characters in spreadsheets",
		Long: `diacritix rewrites the text cells of Excel and CSV files, replacing
accented letters, typographic quotes and other special characters using an
editable character table. The input file is never modified; the result is
written next to it with a suffix.

Run without a subcommand to start the interactive interface.`,
		Version:           info.Version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: r.setup,
		PersistentPostRun: r.teardown,
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			return ui.Run(r.app, file)
		},
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("diacritix %s\ncommit: %s\nbuilt: %s\n", info.Version, info.Commit, info.Date))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&r.configDir, "config-dir", "", "Directory holding the character table (default: $DIACRITIX_CONFIG_DIR or the user config dir)")
	flags.BoolVar(&r.compose, "compose", false, "Compose decomposed accents before replacing (default: $DIACRITIX_COMPOSE)")
	flags.BoolVar(&r.stripMarks, "strip-marks", false, "Remove accents left unmapped after replacing (default: $DIACRITIX_STRIP_MARKS)")

	rootCmd.AddCommand(
		newFixCommand(r),
		newAnalyzeCommand(r),
		newMapCommand(r),
		newConfigCommand(r),
	)
	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the app.
// The interactive interface owns the terminal, so it logs to a file.
func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("config-dir") {
		cfg.Paths.ConfigDir = r.configDir
	}
	if flags.Changed("compose") {
		cfg.Transform.Compose = r.compose
	}
	if flags.Changed("strip-marks") {
		cfg.Transform.StripMarks = r.stripMarks
	}
	if f := flags.Lookup("suffix"); f != nil && f.Changed {
		cfg.Transform.OutputSuffix = f.Value.String()
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	var logger *slog.Logger
	if cmd == cmd.Root() {
		logger, r.closer = logging.SetupFile(cfg.Logging.Level, cfg.Logging.Format, cfg.LogPath())
	} else {
		logger = logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	}

	r.cfg = cfg
	r.app = app.New(cfg, mapping.NewStore(cfg.MappingsPath(), logger), logger)
	return nil
}

func (r *runner) teardown(*cobra.Command, []string) {
	if r.closer != nil {
		r.closer.Close()
	}
}
