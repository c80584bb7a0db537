// Package up implements the `shellup up` command.
package up

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shellup/shellup/pkg/bootstrap"
	"github.com/shellup/shellup/pkg/config"
	"github.com/shellup/shellup/pkg/executor"
	"github.com/shellup/shellup/pkg/filesystem"
	"github.com/shellup/shellup/pkg/paths"
	"github.com/shellup/shellup/pkg/plugins"
	"github.com/shellup/shellup/pkg/style"
	"github.com/shellup/shellup/pkg/types"
)

// NewCommand creates the up command
func NewCommand() *cobra.Command {
	var (
		configPath string
		workspace  string
	)

	cmd := &cobra.Command{
		Use:     "up",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUp(cmd, configPath, workspace)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the YAML or TOML configuration file")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "~/workspace", "Disk location to use as the workspace")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runUp(cmd *cobra.Command, configPath, workspace string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := paths.New(workspace, "")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), style.Header("Bootstrapping "+p.Workspace()))
	log.Info().Str("workspace", p.Workspace()).Msg("Workspace directory set")
	log.Info().Str("config", configPath).Msg("Configuration file set")

	boot := bootstrap.New(bootstrap.Options{
		FS:     filesystem.NewOS(),
		Runner: executor.New(),
		Cloner: plugins.NewGitCloner(),
		Paths:  p,
		Config: cfg,
	})

	var spin *spinner.Spinner
	if style.IsTTY() {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		spin.Suffix = " Bootstrapping workspace..."
		spin.Start()
	}

	env, err := boot.Run(cmd.Context(), types.EnvironmentFromOS())

	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	zsh, _ := env.Lookup("ZSH")
	fmt.Fprintln(cmd.OutOrStdout(), style.Success("Workspace bootstrapped"))
	fmt.Fprintf(cmd.OutOrStdout(), "  ZSH:    %s\n", zsh)
	fmt.Fprintf(cmd.OutOrStdout(), "  zshrc:  %s\n", p.Zshrc())
	fmt.Fprintln(cmd.OutOrStdout(), style.Warning("Open a new shell to pick up the environment"))

	return nil
}
