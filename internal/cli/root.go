package cli

import (
	"embed"
	"io/fs"

	"github.com/arthur-debert/delegate/internal/version"
	"github.com/arthur-debert/delegate/pkg/cobrax/topics"
	"github.com/arthur-debert/delegate/pkg/config"
	"github.com/arthur-debert/delegate/pkg/errors"
	"github.com/arthur-debert/delegate/pkg/logging"
	"github.com/arthur-debert/delegate/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// app is the state shared by the commands of one root
type app struct {
	files afero.Fs

	verbosity  int
	configFile string
	format     string

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(files afero.Fs) *cobra.Command {
	initTemplateFormatting()

	a := &app{files: files}

	rootCmd := &cobra.Command{
		Use:               "delegate",
		Short:             MsgRootShort,
		Long:              MsgRootLong,
		Version:           version.Version,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but still fail
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "f", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newDemoCmd())
	rootCmd.AddCommand(a.newBenchCmd())
	rootCmd.AddCommand(a.newGenConfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	// Topic-based help replaces the default help command
	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		_ = topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}

	return rootCmd
}

// setup runs before every command: logging first, then the configuration.
// Flags become the last configuration layer.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	logging.SetupLogger(a.verbosity)
	log.Debug().Str("command", cmd.Name()).Msg("Command started")

	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = a.format
	}
	if a.verbosity > 0 {
		overrides["log.verbosity"] = a.verbosity
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: a.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}

	if cfg.Log.Verbosity > a.verbosity {
		logging.SetupLogger(cfg.Log.Verbosity)
	}

	a.cfg = cfg
	return nil
}

// renderer builds the report renderer for the configured format
func (a *app) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// fail renders err through r when the configured format is structured and
// returns it. Terminal and text output leave the error to main.
func (a *app) fail(r ui.Renderer, err error) error {
	if err == nil {
		return nil
	}
	format, parseErr := ui.ParseFormat(a.cfg.Output.Format)
	if parseErr != nil || !format.Structured() {
		return err
	}
	if renderErr := r.RenderError(err); renderErr != nil {
		return renderErr
	}
	return err
}
