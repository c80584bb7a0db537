// Package paths provides centralized path handling for shellup. It maps
// the conventional home-directory locations (link sites) and their
// workspace counterparts (link targets) so that every package agrees on
// the filesystem layout of a bootstrapped workspace.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/shellup/shellup/pkg/errors"
)

// Workspace entry names. These define shellup's workspace layout and are
// not user-configurable.
const (
	// OhMyZshDirName is the oh-my-zsh installation directory name, both in
	// the home directory (site) and the workspace (target)
	OhMyZshDirName = ".oh-my-zsh"

	// ZshrcName is the zsh startup file name
	ZshrcName = ".zshrc"

	// PixiHomeDirName is the pixi installation directory inside the workspace
	PixiHomeDirName = ".pixi_home"

	// PixiSiteDirName is the conventional pixi location in the home directory
	PixiSiteDirName = ".pixi"

	// CacheDirName is the cache directory inside the workspace
	CacheDirName = ".cache"

	// LogFileName is the name of the log file
	LogFileName = "shellup.log"
)

// Paths provides centralized path management for shellup
type Paths interface {
	Workspace() string
	Home() string
	Zshrc() string
	HomeOhMyZsh() string
	OhMyZshInstall() string
	ZshCustomDir() string
	ZshPluginDir(name string) string
	HomePixi() string
	PixiHome() string
	PixiBin() string
	CacheDir() string
	LogFilePath() string
}

type paths struct {
	workspace string
	home      string
}

// New creates a Paths instance rooted at the given workspace directory.
// An empty home resolves to the current user's home directory. The
// workspace may start with "~/".
func New(workspace, home string) (Paths, error) {
	if home == "" {
		resolved, err := GetHomeDirectory()
		if err != nil {
			return nil, err
		}
		home = resolved
	}

	expanded, err := ExpandHome(workspace)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve workspace path %s", workspace)
	}

	return &paths{workspace: abs, home: home}, nil
}

func (p *paths) Workspace() string {
	return p.workspace
}

func (p *paths) Home() string {
	return p.home
}

func (p *paths) Zshrc() string {
	return filepath.Join(p.home, ZshrcName)
}

func (p *paths) HomeOhMyZsh() string {
	return filepath.Join(p.home, OhMyZshDirName)
}

func (p *paths) OhMyZshInstall() string {
	return filepath.Join(p.workspace, OhMyZshDirName)
}

func (p *paths) ZshCustomDir() string {
	return filepath.Join(p.OhMyZshInstall(), "custom")
}

func (p *paths) ZshPluginDir(name string) string {
	return filepath.Join(p.ZshCustomDir(), "plugins", name)
}

func (p *paths) HomePixi() string {
	return filepath.Join(p.home, PixiSiteDirName)
}

func (p *paths) PixiHome() string {
	return filepath.Join(p.workspace, PixiHomeDirName)
}

// PixiBin goes through the home-directory symlink on purpose: the
// generated PATH entry must stay valid if the workspace moves and the
// link is re-pointed.
func (p *paths) PixiBin() string {
	return filepath.Join(p.HomePixi(), "bin")
}

func (p *paths) CacheDir() string {
	return filepath.Join(p.workspace, CacheDirName)
}

// LogFilePath returns the log file location under the XDG state
// directory, falling back to the working directory when that is not
// available.
func (p *paths) LogFilePath() string {
	path, err := xdg.StateFile(filepath.Join("shellup", LogFileName))
	if err != nil {
		return LogFileName
	}
	return path
}

// GetHomeDirectory returns the user's home directory. It first tries
// os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv("HOME")
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "~" {
		return GetHomeDirectory()
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		homeDir, err := GetHomeDirectory()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}
