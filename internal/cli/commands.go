package cli

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/delegate/internal/version"
	"github.com/arthur-debert/delegate/pkg/bench"
	"github.com/arthur-debert/delegate/pkg/config"
	"github.com/arthur-debert/delegate/pkg/demo"
	"github.com/arthur-debert/delegate/pkg/errors"
	"github.com/arthur-debert/delegate/pkg/logging"
	"github.com/arthur-debert/delegate/pkg/paths"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func (a *app) newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "demo [section...]",
		Short:     MsgDemoShort,
		Long:      MsgDemoLong,
		Example:   MsgDemoExample,
		GroupID:   "core",
		ValidArgs: demo.Sections(),
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.demo")

			sections := args
			if len(sections) == 0 {
				sections = a.cfg.Demo.Sections
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			logger.Info().Strs("sections", sections).Msg("Starting demo")
			report, runErr := demo.Run(demo.Options{
				Sections:        sections,
				DelegateOptions: a.cfg.DelegateOptions(),
			})
			if report == nil {
				return a.fail(r, runErr)
			}
			if err := r.RenderResult(report); err != nil {
				return err
			}
			return runErr
		},
	}
}

func (a *app) newBenchCmd() *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:     "bench",
		Short:   MsgBenchShort,
		Long:    MsgBenchLong,
		Example: MsgBenchExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.cfg.Bench
			if cmd.Flags().Changed("iterations") {
				settings.Iterations = iterations
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			report, runErr := bench.Run(cmd.Context(), bench.Options{
				Iterations:      settings.Iterations,
				Warmup:          settings.Warmup,
				Timeout:         settings.Timeout,
				IDScope:         a.cfg.IDScope().String(),
				DelegateOptions: a.cfg.DelegateOptions(),
			})
			if report == nil || len(report.Runs) == 0 {
				return a.fail(r, runErr)
			}
			if err := r.RenderResult(report); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, MsgFlagIterations)

	return cmd
}

func (a *app) newGenConfigCmd() *cobra.Command {
	var write, force, effective bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if effective {
				content, err := a.cfg.Effective()
				if err != nil {
					return err
				}
				_, err = out.Write(content)
				return err
			}

			content := config.GenerateConfigContent()
			if !write {
				_, err := fmt.Fprint(out, content)
				return err
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			path := paths.ConfigFile()
			if err := writeConfigFile(a.files, path, content, force); err != nil {
				return a.fail(r, err)
			}
			return r.RenderMessage(fmt.Sprintf(MsgConfigWritten, path))
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	cmd.MarkFlagsMutuallyExclusive("write", "effective")

	return cmd
}

// writeConfigFile creates path and its parent directories. An existing file
// is only replaced with force.
func writeConfigFile(files afero.Fs, path, content string, force bool) error {
	exists, err := afero.Exists(files, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrOutputWrite, "failed to check %s", path)
	}
	if exists && !force {
		return errors.Newf(errors.ErrAlreadyExists, MsgErrConfigExists, path).
			WithDetail("path", path)
	}

	if err := files.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrOutputWrite, "failed to create %s", filepath.Dir(path))
	}
	if err := afero.WriteFile(files, path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrOutputWrite, "failed to write %s", path).
			WithDetail("path", path)
	}
	return nil
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd.Run == nil {
				return errors.New(errors.ErrNotFound, "help command not found")
			}
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "DELEGATE",
				Section: "1",
				Source:  "delegate " + version.Version,
				Manual:  "delegate manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
