package types

import (
	"context"
	"io/fs"
)

// FS defines the filesystem operations shellup needs. The single
// implementation for real runs is filesystem.NewOS; tests that need to
// simulate failures provide their own.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}

// CommandRunner runs external commands with an explicit environment.
// Both methods block until the command exits and return its combined
// stdout/stderr output. A non-zero exit surfaces as ErrCommandFailed.
type CommandRunner interface {
	// Run executes name with args directly (no shell).
	Run(ctx context.Context, env Environment, name string, args ...string) ([]byte, error)

	// RunShell executes script through `sh -c`.
	RunShell(ctx context.Context, env Environment, script string) ([]byte, error)
}

// Cloner clones a git repository at url into path.
type Cloner interface {
	Clone(ctx context.Context, url, path string) error
}
