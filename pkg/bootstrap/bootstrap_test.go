// pkg/bootstrap/bootstrap_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem, fake runner and cloner (no network)
// PURPOSE: Test the full provisioning sequence end to end

package bootstrap_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shellup/shellup/pkg/bootstrap"
	"github.com/shellup/shellup/pkg/config"
	"github.com/shellup/shellup/pkg/errors"
	"github.com/shellup/shellup/pkg/paths"
	"github.com/shellup/shellup/pkg/testutil"
	"github.com/shellup/shellup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zshrcTemplate = `# shellup template
export ZSH="${ZSH_INSTALLATION_PATH}"
export XDG_CACHE_HOME=""
export PATH=${PIXI_BIN}:$PATH
plugins=(git)
`

type fixture struct {
	home   string
	ws     string
	paths  paths.Paths
	cfg    *config.Config
	runner *testutil.FakeRunner
	cloner *testutil.FakeCloner
	boot   *bootstrap.Bootstrap
}

func setup(t *testing.T, mutate func(cfg *config.Config)) *fixture {
	t.Helper()

	tmp := t.TempDir()
	home := testutil.CreateDir(t, tmp, "home")
	ws := filepath.Join(tmp, "workspace")

	p, err := paths.New(ws, home)
	require.NoError(t, err)

	template := testutil.CreateFile(t, tmp, "zshrc.template", zshrcTemplate)

	cfg := config.Default()
	cfg.CustomZshrc = template
	if mutate != nil {
		mutate(&cfg)
	}

	runner := &testutil.FakeRunner{}
	cloner := &testutil.FakeCloner{}

	boot := bootstrap.New(bootstrap.Options{
		Runner: runner,
		Cloner: cloner,
		Paths:  p,
		Config: &cfg,
	})

	return &fixture{home: home, ws: ws, paths: p, cfg: &cfg, runner: runner, cloner: cloner, boot: boot}
}

func TestRun_FullSequence(t *testing.T) {
	fx := setup(t, func(cfg *config.Config) {
		cfg.Proxy = "http://proxy.internal:3128"
		cfg.ZshPlugins = []types.Plugin{
			{Name: "zsh-autosuggestions", Repo: "https://github.com/zsh-users/zsh-autosuggestions"},
		}
		cfg.PixiPackages = []string{"ripgrep"}
	})

	// a pre-existing zshrc must be backed up, and stale ZSH state scrubbed
	testutil.CreateFile(t, fx.home, ".zshrc", "old config")
	env := types.Environment{
		"PATH":       "/usr/bin:/bin",
		"ZSH":        "/somewhere/stale",
		"ZSH_CUSTOM": "/somewhere/stale/custom",
		"PIXI_HOME":  "/stale/pixi",
	}

	finalEnv, err := fx.boot.Run(context.Background(), env)
	require.NoError(t, err)

	// backup of the old zshrc
	assert.Equal(t, "old config", testutil.ReadFile(t, filepath.Join(fx.home, ".zshrc.bak")))

	// both sites are symlinks into the workspace
	assert.Equal(t, fx.paths.OhMyZshInstall(), testutil.ReadSymlink(t, fx.paths.HomeOhMyZsh()))
	assert.Equal(t, fx.paths.PixiHome(), testutil.ReadSymlink(t, fx.paths.HomePixi()))

	// tokens replaced with resolved paths
	content := testutil.ReadFile(t, fx.paths.Zshrc())
	assert.Contains(t, content, `export ZSH="`+fx.paths.OhMyZshInstall()+`"`)
	assert.Contains(t, content, `export XDG_CACHE_HOME="`+fx.paths.CacheDir()+`"`)
	assert.Contains(t, content, `export PATH=`+fx.paths.PixiBin()+`:$PATH`)
	assert.NotContains(t, content, "${ZSH_INSTALLATION_PATH}")

	// cache dir created
	assert.True(t, testutil.DirExists(t, fx.paths.CacheDir()))

	// plugin cloned into $ZSH/custom/plugins
	assert.Equal(t, "https://github.com/zsh-users/zsh-autosuggestions",
		fx.cloner.Cloned[fx.paths.ZshPluginDir("zsh-autosuggestions")])

	// installers ran in order, through the shell
	shellCalls := fx.runner.ShellCalls()
	require.Len(t, shellCalls, 2)
	assert.Equal(t, config.DefaultOmzInstaller, shellCalls[0])
	assert.Equal(t, config.DefaultPixiInstaller, shellCalls[1])

	// pixi packages installed then updated
	var pixiCalls [][]string
	for _, c := range fx.runner.Calls {
		if c.Name == "pixi" {
			pixiCalls = append(pixiCalls, c.Args)
		}
	}
	assert.Equal(t, [][]string{
		{"global", "install", "ripgrep"},
		{"global", "update", "ripgrep"},
	}, pixiCalls)

	// returned environment reflects the run, process env untouched
	v, _ := finalEnv.Lookup("ZSH")
	assert.Equal(t, fx.paths.OhMyZshInstall(), v)
	_, ok := finalEnv.Lookup("ZSH_CUSTOM")
	assert.False(t, ok, "stale ZSH_* variables are scrubbed")
	_, ok = finalEnv.Lookup("PIXI_HOME")
	assert.False(t, ok, "stale PIXI* variables are scrubbed")
	v, _ = finalEnv.Lookup("PATH")
	assert.Equal(t, fx.paths.PixiBin()+":/usr/bin:/bin", v)
	v, _ = finalEnv.Lookup("http_proxy")
	assert.Equal(t, "http://proxy.internal:3128", v)

	// the installer environment carried the workspace ZSH path
	omzCall := fx.runner.Calls[0]
	installerZSH, _ := omzCall.Env.Lookup("ZSH")
	assert.Equal(t, fx.paths.OhMyZshInstall(), installerZSH)
}

func TestRun_NoBackupWhenDisabled(t *testing.T) {
	fx := setup(t, func(cfg *config.Config) {
		cfg.BackupZshrc = false
	})
	testutil.CreateFile(t, fx.home, ".zshrc", "old config")

	_, err := fx.boot.Run(context.Background(), types.Environment{"PATH": "/usr/bin"})
	require.NoError(t, err)

	assert.False(t, testutil.FileExists(t, filepath.Join(fx.home, ".zshrc.bak")))
}

func TestRun_ReplacesStaleHomeState(t *testing.T) {
	fx := setup(t, nil)

	// a stale real installation in the home directory
	stale := testutil.CreateDir(t, fx.home, ".oh-my-zsh")
	testutil.CreateFile(t, stale, "oh-my-zsh.sh", "stale")
	// and a dangling pixi symlink
	testutil.CreateSymlink(t, filepath.Join(fx.home, "gone"), filepath.Join(fx.home, ".pixi"))

	_, err := fx.boot.Run(context.Background(), types.Environment{"PATH": "/usr/bin"})
	require.NoError(t, err)

	assert.Equal(t, fx.paths.OhMyZshInstall(), testutil.ReadSymlink(t, fx.paths.HomeOhMyZsh()))
	assert.Equal(t, fx.paths.PixiHome(), testutil.ReadSymlink(t, fx.paths.HomePixi()))
}

func TestRun_MissingCustomZshrc(t *testing.T) {
	fx := setup(t, func(cfg *config.Config) {
		cfg.CustomZshrc = "/nonexistent/zshrc"
	})

	_, err := fx.boot.Run(context.Background(), types.Environment{"PATH": "/usr/bin"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingFile))
}

func TestRun_MissingAdditionalConfigAborts(t *testing.T) {
	missing := filepath.Join(os.TempDir(), "shellup-definitely-missing.zsh")
	fx := setup(t, func(cfg *config.Config) {
		cfg.AdditionalConfigs = []string{missing}
	})

	_, err := fx.boot.Run(context.Background(), types.Environment{"PATH": "/usr/bin"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingFile))
	assert.Equal(t, missing, errors.GetErrorDetails(err)["path"])
}

func TestRun_AppendsAdditionalConfigs(t *testing.T) {
	var fragment string
	fx := setup(t, nil)
	fragment = testutil.CreateFile(t, fx.ws, "aliases.zsh", "alias ll='ls -la'\n")
	fx.cfg.AdditionalConfigs = []string{fragment}

	_, err := fx.boot.Run(context.Background(), types.Environment{"PATH": "/usr/bin"})
	require.NoError(t, err)

	assert.Contains(t, testutil.ReadFile(t, fx.paths.Zshrc()), "alias ll='ls -la'")
}

func TestRun_InstallerFailureAborts(t *testing.T) {
	fx := setup(t, nil)
	fx.runner.FailOn = "ohmyzsh"

	_, err := fx.boot.Run(context.Background(), types.Environment{"PATH": "/usr/bin"})
	require.Error(t, err)

	// the failure happened before the zshrc was installed
	assert.False(t, testutil.FileExists(t, fx.paths.Zshrc()))
}

func TestNew_DefaultLoggerEmits(t *testing.T) {
	// a Bootstrap built without an explicit logger must still produce
	// operator progress output through the global logger
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	fx := setup(t, func(cfg *config.Config) {
		cfg.Proxy = "http://proxy.internal:3128"
	})

	fx.boot.SetupProxy(types.Environment{})

	assert.Contains(t, buf.String(), "Proxy configured")
}

func TestNew_ExplicitLoggerWins(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	fx := setup(t, func(cfg *config.Config) {
		cfg.Proxy = "http://proxy.internal:3128"
	})
	boot := bootstrap.New(bootstrap.Options{
		Runner: fx.runner,
		Cloner: fx.cloner,
		Paths:  fx.paths,
		Config: fx.cfg,
		Logger: &logger,
	})

	boot.SetupProxy(types.Environment{})

	assert.Contains(t, buf.String(), "Proxy configured")
}

func TestInstallJustCompletions(t *testing.T) {
	t.Run("skipped_when_absent", func(t *testing.T) {
		fx := setup(t, nil)
		env := types.Environment{"PATH": t.TempDir()}

		require.NoError(t, fx.boot.InstallJustCompletions(context.Background(), env))
		assert.Empty(t, fx.runner.Calls)
	})

	t.Run("runs_when_on_path", func(t *testing.T) {
		fx := setup(t, nil)
		binDir := t.TempDir()
		justPath := filepath.Join(binDir, "just")
		require.NoError(t, os.WriteFile(justPath, []byte("#!/bin/sh\n"), 0755))

		env := types.Environment{"PATH": binDir}
		require.NoError(t, fx.boot.InstallJustCompletions(context.Background(), env))

		calls := fx.runner.ShellCalls()
		require.Len(t, calls, 1)
		assert.Contains(t, calls[0], justPath)
		assert.Contains(t, calls[0], "--completions zsh")
		assert.Contains(t, calls[0], filepath.Join(fx.paths.ZshCustomDir(), "just.zsh"))
	})
}
