// Package bootstrap runs the provisioning sequence: proxy setup,
// oh-my-zsh installation, pixi installation, just completions, and
// additional zshrc fragments. Steps run in that fixed order; the first
// failure aborts the run, leaving a partial but inspectable state that a
// re-run converges from.
package bootstrap

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"

	"github.com/shellup/shellup/pkg/config"
	"github.com/shellup/shellup/pkg/errors"
	"github.com/shellup/shellup/pkg/filesystem"
	"github.com/shellup/shellup/pkg/link"
	"github.com/shellup/shellup/pkg/logging"
	"github.com/shellup/shellup/pkg/paths"
	"github.com/shellup/shellup/pkg/plugins"
	"github.com/shellup/shellup/pkg/types"
	"github.com/shellup/shellup/pkg/zshrc"
)

// Options configures a Bootstrap.
type Options struct {
	FS     types.FS
	Runner types.CommandRunner
	Cloner types.Cloner
	Paths  paths.Paths
	Config *config.Config

	// Logger overrides the default component logger when non-nil.
	Logger *zerolog.Logger
}

// Bootstrap drives one provisioning run.
type Bootstrap struct {
	fs      types.FS
	runner  types.CommandRunner
	paths   paths.Paths
	cfg     *config.Config
	plugins *plugins.Installer
	logger  zerolog.Logger
}

// New creates a Bootstrap from options. FS defaults to the OS filesystem
// and Cloner to the go-git cloner; Runner, Paths, and Config are required.
func New(opts Options) *Bootstrap {
	logger := logging.GetLogger("bootstrap")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	cloner := opts.Cloner
	if cloner == nil {
		cloner = plugins.NewGitCloner()
	}

	return &Bootstrap{
		fs:      fs,
		runner:  opts.Runner,
		paths:   opts.Paths,
		cfg:     opts.Config,
		plugins: plugins.NewInstaller(fs, cloner),
		logger:  logger,
	}
}

// Run executes the whole sequence and returns the final environment.
func (b *Bootstrap) Run(ctx context.Context, env types.Environment) (types.Environment, error) {
	env = b.SetupProxy(env)

	env, err := b.InitOhMyZsh(ctx, env)
	if err != nil {
		return env, err
	}

	env, err = b.InitPixi(ctx, env)
	if err != nil {
		return env, err
	}

	if err := b.InstallJustCompletions(ctx, env); err != nil {
		return env, err
	}

	if err := b.AppendAdditionalConfigs(); err != nil {
		return env, err
	}

	b.logger.Info().Str("zshrc", b.paths.Zshrc()).Msg("Bootstrap complete")
	return env, nil
}

// SetupProxy exports the configured proxy for every following command.
func (b *Bootstrap) SetupProxy(env types.Environment) types.Environment {
	if b.cfg.Proxy == "" {
		return env
	}
	env = env.Clone()
	env.Set("http_proxy", b.cfg.Proxy)
	env.Set("https_proxy", b.cfg.Proxy)
	b.logger.Info().Str("proxy", b.cfg.Proxy).Msg("Proxy configured")
	return env
}

// InitOhMyZsh installs oh-my-zsh into the workspace, links it into the
// home directory, installs the zshrc template, and clones the configured
// plugins.
func (b *Bootstrap) InitOhMyZsh(ctx context.Context, env types.Environment) (types.Environment, error) {
	env = env.Clone()

	for _, name := range env.Scrub("ZSH") {
		b.logger.Info().Str("variable", name).Msg("Removed environment variable")
	}

	if b.cfg.BackupZshrc {
		if _, err := link.Backup(b.fs, b.paths.Zshrc()); err != nil {
			return env, err
		}
	}

	// The upstream installer refuses to run over an existing
	// installation, so both the site and the target are cleared first.
	if err := b.clearEntry(b.paths.HomeOhMyZsh()); err != nil {
		return env, err
	}
	if err := b.clearEntry(b.paths.OhMyZshInstall()); err != nil {
		return env, err
	}

	env.Set("ZSH", b.paths.OhMyZshInstall())

	b.logger.Info().Msg("Attempting to install oh-my-zsh...")
	if _, err := b.runner.RunShell(ctx, env, b.cfg.OmzInstaller); err != nil {
		return env, err
	}
	b.logger.Info().Msg("Oh-my-zsh installed!")

	if err := link.Reconcile(b.fs, b.paths.OhMyZshInstall(), b.paths.HomeOhMyZsh()); err != nil {
		return env, err
	}

	if err := zshrc.Install(b.fs, b.cfg.CustomZshrc, b.paths.Zshrc()); err != nil {
		return env, err
	}
	if err := zshrc.ReplaceToken(b.fs, b.paths.Zshrc(), zshrc.TokenInstallPath,
		zshrc.InstallPathLine(b.paths.OhMyZshInstall())); err != nil {
		return env, err
	}
	if err := b.fs.MkdirAll(b.paths.CacheDir(), 0755); err != nil {
		return env, errors.Wrapf(err, errors.ErrFileAccess, "cannot create %s", b.paths.CacheDir())
	}
	if err := zshrc.ReplaceToken(b.fs, b.paths.Zshrc(), zshrc.TokenCacheHome,
		zshrc.CacheHomeLine(b.paths.CacheDir())); err != nil {
		return env, err
	}

	b.logger.Info().Msg("Initializing oh-my-zsh plugins...")
	if _, err := b.plugins.Install(ctx, b.paths.ZshCustomDir(), b.cfg.ZshPlugins); err != nil {
		return env, err
	}
	b.logger.Info().Msg("Initialized oh-my-zsh plugins!")

	return env, nil
}

// InitPixi links the pixi home into the workspace, runs the installer,
// patches the PATH line in the zshrc, and installs the configured
// packages.
func (b *Bootstrap) InitPixi(ctx context.Context, env types.Environment) (types.Environment, error) {
	env = env.Clone()

	for _, name := range env.Scrub("PIXI") {
		b.logger.Info().Str("variable", name).Msg("Removed environment variable")
	}

	if err := b.fs.MkdirAll(b.paths.PixiHome(), 0755); err != nil {
		return env, errors.Wrapf(err, errors.ErrFileAccess, "cannot create %s", b.paths.PixiHome())
	}
	if err := link.Reconcile(b.fs, b.paths.PixiHome(), b.paths.HomePixi()); err != nil {
		return env, err
	}

	if _, err := b.runner.RunShell(ctx, env, b.cfg.PixiInstaller); err != nil {
		return env, err
	}
	b.logger.Info().Msg("Installed pixi")

	if err := zshrc.ReplaceToken(b.fs, b.paths.Zshrc(), zshrc.TokenPixiBin,
		zshrc.PixiBinLine(b.paths.PixiBin())); err != nil {
		return env, err
	}

	env.PrependPath(b.paths.PixiBin())

	for _, pkg := range b.cfg.PixiPackages {
		if _, err := b.runner.Run(ctx, env, "pixi", "global", "install", pkg); err != nil {
			return env, err
		}
		if _, err := b.runner.Run(ctx, env, "pixi", "global", "update", pkg); err != nil {
			return env, err
		}
	}

	return env, nil
}

// InstallJustCompletions generates zsh completions for just when the
// binary is reachable through the environment's PATH.
func (b *Bootstrap) InstallJustCompletions(ctx context.Context, env types.Environment) error {
	justPath, found := lookPath(env, "just")
	if !found {
		b.logger.Debug().Msg("just not found on PATH, skipping completions")
		return nil
	}

	outPath := filepath.Join(b.paths.ZshCustomDir(), "just.zsh")
	script := shellquote.Join(justPath, "--completions", "zsh") + " >" + shellquote.Join(outPath)
	if _, err := b.runner.RunShell(ctx, env, script); err != nil {
		return err
	}

	b.logger.Info().Str("just", justPath).Msg("Installed just completions")
	return nil
}

// AppendAdditionalConfigs appends each configured fragment to the zshrc.
// The first missing fragment aborts the run.
func (b *Bootstrap) AppendAdditionalConfigs() error {
	for _, fragment := range b.cfg.AdditionalConfigs {
		resolved, err := filepath.Abs(fragment)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", fragment)
		}
		if err := zshrc.AppendFile(b.fs, b.paths.Zshrc(), resolved); err != nil {
			return err
		}
	}
	return nil
}

// clearEntry removes whatever occupies path: a symlink entry is unlinked,
// anything else is removed recursively.
func (b *Bootstrap) clearEntry(path string) error {
	info, err := b.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", path)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if err := b.fs.Remove(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove symlink %s", path)
		}
		return nil
	}

	b.logger.Debug().Str("path", path).Msg("Removing existing entry")
	if err := b.fs.RemoveAll(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove %s", path)
	}
	return nil
}

// lookPath searches the environment's PATH for an executable named name.
// exec.LookPath is not used because it consults the process environment,
// not the explicit one.
func lookPath(env types.Environment, name string) (string, bool) {
	pathVar, _ := env.Lookup("PATH")
	for _, dir := range filepath.SplitList(pathVar) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode().Perm()&0111 != 0 {
			return candidate, true
		}
	}
	return "", false
}
