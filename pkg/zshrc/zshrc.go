// Package zshrc rewrites the generated zsh startup file: installing the
// template, substituting its placeholder tokens with resolved paths, and
// appending extra config fragments.
package zshrc

import (
	"fmt"
	"os"
	"strings"

	"github.com/shellup/shellup/pkg/errors"
	"github.com/shellup/shellup/pkg/logging"
	"github.com/shellup/shellup/pkg/types"
)

// Placeholder tokens the zshrc template must carry. Substitution is
// literal and first-match-only.
const (
	TokenInstallPath = `export ZSH="${ZSH_INSTALLATION_PATH}"`
	TokenCacheHome   = `export XDG_CACHE_HOME=""`
	TokenPixiBin     = `export PATH=${PIXI_BIN}:$PATH`
)

// InstallPathLine renders the replacement for TokenInstallPath.
func InstallPathLine(installPath string) string {
	return fmt.Sprintf(`export ZSH="%s"`, installPath)
}

// CacheHomeLine renders the replacement for TokenCacheHome.
func CacheHomeLine(cacheDir string) string {
	return fmt.Sprintf(`export XDG_CACHE_HOME="%s"`, cacheDir)
}

// PixiBinLine renders the replacement for TokenPixiBin.
func PixiBinLine(pixiBin string) string {
	return fmt.Sprintf(`export PATH=%s:$PATH`, pixiBin)
}

// Install copies the zshrc template at src to dst. A missing template is
// a fatal configuration problem.
func Install(fsys types.FS, src, dst string) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrMissingFile, "custom zshrc file %s not found", src).
				WithDetail("path", src)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src)
	}
	if err := fsys.WriteFile(dst, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", dst)
	}
	logger := logging.GetLogger("zshrc")
	logger.Info().Str("src", src).Str("dst", dst).Msg("Installed zshrc template")
	return nil
}

// ReplaceToken substitutes the first occurrence of token in the file at
// path with value, rewriting the whole file in place. A token that does
// not occur is a no-op.
func ReplaceToken(fsys types.FS, path, token, value string) error {
	logger := logging.GetLogger("zshrc")

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrMissingFile, "zshrc file %s not found", path).
				WithDetail("path", path)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	content := string(data)
	if !strings.Contains(content, token) {
		logger.Debug().Str("path", path).Str("token", token).Msg("Token not present, nothing to replace")
		return nil
	}

	content = strings.Replace(content, token, value, 1)
	if err := rewrite(fsys, path, []byte(content)); err != nil {
		return err
	}

	logger.Debug().Str("path", path).Str("token", token).Msg("Token replaced")
	return nil
}

// AppendFile appends the content of fragment to the zshrc at path,
// verbatim. A missing fragment aborts the run; its path rides on the
// error so the operator sees which file is missing.
func AppendFile(fsys types.FS, path, fragment string) error {
	src, err := fsys.ReadFile(fragment)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrMissingFile, "additional config file %s not found", fragment).
				WithDetail("path", fragment)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", fragment)
	}

	dst, err := fsys.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	if err := rewrite(fsys, path, append(dst, src...)); err != nil {
		return err
	}

	logger := logging.GetLogger("zshrc")
	logger.Info().Str("fragment", fragment).Str("path", path).Msg("Appended additional config")
	return nil
}

// rewrite replaces the content of path in place, keeping its mode.
func rewrite(fsys types.FS, path string, data []byte) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", path)
	}
	if err := fsys.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", path)
	}
	return nil
}
