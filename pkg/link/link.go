// Package link implements the path reconciler: it forces a conventional
// filesystem location (the site, e.g. ~/.oh-my-zsh) to be a symlink to an
// authoritative workspace path (the target), whatever occupied the site
// beforehand. It also holds the numbered-backup helper used for dotfiles.
package link

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/shellup/shellup/pkg/errors"
	"github.com/shellup/shellup/pkg/logging"
	"github.com/shellup/shellup/pkg/types"
)

// Reconcile makes site a symlink to target. The prior state of site
// decides how:
//
//   - absent: the link is created directly.
//   - symlink (valid or dangling): the link entry is removed, never
//     followed, and replaced.
//   - directory, target absent: the directory is renamed to target so its
//     content becomes the authoritative content.
//   - directory, target present: the directory is redundant and removed
//     recursively. This discards its content; a warning is logged.
//   - anything else (regular file, device, ...): ErrInvalidSiteType, site
//     is left untouched.
//
// Re-running converges to the same end state.
func Reconcile(fsys types.FS, target, site string) error {
	logger := logging.GetLogger("link")

	info, err := fsys.Lstat(site)
	if err != nil {
		if os.IsNotExist(err) {
			return makeLink(fsys, target, site)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", site)
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		if err := fsys.Remove(site); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove existing symlink %s", site)
		}

	case info.IsDir():
		if _, statErr := fsys.Stat(target); statErr != nil {
			if !os.IsNotExist(statErr) {
				return errors.Wrapf(statErr, errors.ErrFileAccess, "cannot inspect %s", target)
			}
			// Rescue: the site directory is the only copy of the content,
			// so it becomes the target.
			logger.Info().Str("site", site).Str("target", target).Msg("Moving existing directory into workspace")
			if err := fsys.Rename(site, target); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot move %s to %s", site, target)
			}
		} else {
			logger.Warn().Str("site", site).Msg("Existing directory is removed, its content is discarded")
			if err := fsys.RemoveAll(site); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove existing directory %s", site)
			}
		}

	default:
		return errors.Newf(errors.ErrInvalidSiteType, "%s exists and is not a symlink or directory", site).
			WithDetail("site", site).
			WithDetail("mode", info.Mode().String())
	}

	return makeLink(fsys, target, site)
}

func makeLink(fsys types.FS, target, site string) error {
	if err := fsys.Symlink(target, site); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot create symlink %s -> %s", site, target)
	}
	logger := logging.GetLogger("link")
	logger.Debug().Str("site", site).Str("target", target).Msg("Symlink created")
	return nil
}

// Backup copies path to a sibling with a numbered backup extension,
// probing .bak, .bak1, .bak2, ... for the first unused name, and returns
// the chosen backup path. A missing path is not an error: nothing is
// written and the returned path is empty.
func Backup(fsys types.FS, path string) (string, error) {
	logger := logging.GetLogger("link")

	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", path).Msg("Nothing to back up, file does not exist")
			return "", nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", path)
	}

	backupPath := path + ".bak"
	for counter := 1; ; counter++ {
		if _, err := fsys.Lstat(backupPath); os.IsNotExist(err) {
			break
		}
		backupPath = fmt.Sprintf("%s.bak%d", path, counter)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	if err := fsys.WriteFile(backupPath, data, info.Mode().Perm()); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot write backup %s", backupPath)
	}

	logger.Info().Str("path", path).Str("backup", backupPath).Msg("Backup created")
	return backupPath, nil
}
