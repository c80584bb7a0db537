// Package commands assembles the shellup command tree.
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shellup/shellup/cmd/shellup/commands/genconfig"
	"github.com/shellup/shellup/cmd/shellup/commands/up"
	"github.com/shellup/shellup/internal/version"
	"github.com/shellup/shellup/pkg/logging"
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "shellup",
		Short: "Bootstrap a zsh workspace",
		Long: `shellup provisions a machine in one shot: it installs oh-my-zsh and the
pixi package manager inside a workspace directory, rewires the usual
home-directory locations as symlinks into that workspace, clones zsh
plugins, and assembles the final .zshrc.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity, defaultLogFile())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v DEBUG, -vv TRACE)")

	rootCmd.AddCommand(up.NewCommand())
	rootCmd.AddCommand(genconfig.NewCommand())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shellup version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func defaultLogFile() string {
	path, err := xdg.StateFile(filepath.Join("shellup", "shellup.log"))
	if err != nil {
		return ""
	}
	return path
}
