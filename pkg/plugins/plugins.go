// Package plugins clones zsh plugin repositories into the oh-my-zsh
// custom plugins directory.
package plugins

import (
	"context"
	"io"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"

	"github.com/shellup/shellup/pkg/errors"
	"github.com/shellup/shellup/pkg/logging"
	"github.com/shellup/shellup/pkg/types"
)

// Installer places plugin repositories under customDir/plugins/<name>.
type Installer struct {
	fs     types.FS
	cloner types.Cloner
	logger zerolog.Logger
}

// NewInstaller creates an Installer using the given filesystem and cloner.
func NewInstaller(fs types.FS, cloner types.Cloner) *Installer {
	return &Installer{
		fs:     fs,
		cloner: cloner,
		logger: logging.GetLogger("plugins"),
	}
}

// Install clones each plugin that is not already present and returns the
// names of the plugins it cloned. Plugins whose directory exists are
// skipped, whatever their content.
func (i *Installer) Install(ctx context.Context, customDir string, plugins []types.Plugin) ([]string, error) {
	var installed []string
	for _, plugin := range plugins {
		path := filepath.Join(customDir, "plugins", plugin.Name)

		if _, err := i.fs.Lstat(path); err == nil {
			i.logger.Debug().Str("plugin", plugin.Name).Str("path", path).Msg("Plugin already present, skipping")
			continue
		} else if !os.IsNotExist(err) {
			return installed, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", path)
		}

		i.logger.Info().Str("plugin", plugin.Name).Str("repo", plugin.Repo).Msg("Cloning plugin")
		if err := i.cloner.Clone(ctx, plugin.Repo, path); err != nil {
			return installed, err
		}
		installed = append(installed, plugin.Name)
	}
	return installed, nil
}

// GitCloner implements types.Cloner with go-git, avoiding a dependency on
// a git binary on the host being provisioned.
type GitCloner struct {
	logger zerolog.Logger
}

// NewGitCloner creates a GitCloner.
func NewGitCloner() *GitCloner {
	return &GitCloner{logger: logging.GetLogger("gitcloner")}
}

var _ types.Cloner = (*GitCloner)(nil)

// Clone clones url into path with a shallow history.
func (c *GitCloner) Clone(ctx context.Context, url, path string) error {
	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:      url,
		Depth:    1,
		Progress: io.Discard,
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrGitClone, "failed to clone %s", url).
			WithDetail("repo", url).
			WithDetail("path", path)
	}
	c.logger.Debug().Str("repo", url).Str("path", path).Msg("Repository cloned")
	return nil
}
