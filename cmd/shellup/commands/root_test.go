package commands_test

import (
	"bytes"
	"testing"

	"github.com/shellup/shellup/cmd/shellup/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := commands.NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "up")
	assert.Contains(t, names, "genconfig")
	assert.Contains(t, names, "version")
}

func TestUp_RequiresConfigFlag(t *testing.T) {
	root := commands.NewRootCmd()
	root.SetArgs([]string{"up"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}

func TestGenconfig_PrintsSample(t *testing.T) {
	root := commands.NewRootCmd()
	var out bytes.Buffer
	root.SetArgs([]string{"genconfig"})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "backup_zshrc: true")
	assert.Contains(t, out.String(), "zsh_plugins:")
	assert.Contains(t, out.String(), "zsh-autosuggestions")
}

func TestVersion(t *testing.T) {
	root := commands.NewRootCmd()
	root.SetArgs([]string{"version"})
	root.SetOut(&bytes.Buffer{})

	require.NoError(t, root.Execute())
}
