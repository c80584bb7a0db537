// Package genconfig implements the `shellup genconfig` command.
package genconfig

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shellup/shellup/pkg/config"
	"github.com/shellup/shellup/pkg/types"
)

const header = `# shellup configuration.
# Pass this file to 'shellup up --config'.
`

// NewCommand creates the genconfig command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "genconfig",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			sample := config.Default()
			sample.CustomZshrc = "~/dotfiles/zshrc.template"
			sample.ZshPlugins = []types.Plugin{
				{Name: "zsh-autosuggestions", Repo: "https://github.com/zsh-users/zsh-autosuggestions"},
				{Name: "zsh-syntax-highlighting", Repo: "https://github.com/zsh-users/zsh-syntax-highlighting"},
			}
			sample.PixiPackages = []string{"ripgrep", "fd-find", "just"}
			sample.AdditionalConfigs = []string{"~/dotfiles/aliases.zsh"}

			out, err := yaml.Marshal(sample)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), header)
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
