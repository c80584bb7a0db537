package testutil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/shellup/shellup/pkg/types"
)

// Call records a single command invocation seen by FakeRunner.
type Call struct {
	Name  string
	Args  []string
	Shell bool
	Env   types.Environment
}

// FakeRunner implements types.CommandRunner without touching the system.
// It records every call and can be scripted to fail on a substring match.
type FakeRunner struct {
	Calls []Call

	// FailOn makes any call whose rendered command contains the substring
	// return FailErr.
	FailOn  string
	FailErr error

	// Output is returned as the combined output of every call.
	Output []byte
}

func (r *FakeRunner) record(call Call) ([]byte, error) {
	r.Calls = append(r.Calls, call)
	rendered := call.Name + " " + strings.Join(call.Args, " ")
	if r.FailOn != "" && strings.Contains(rendered, r.FailOn) {
		if r.FailErr != nil {
			return nil, r.FailErr
		}
		return nil, fmt.Errorf("fake runner: scripted failure for %q", rendered)
	}
	return r.Output, nil
}

func (r *FakeRunner) Run(_ context.Context, env types.Environment, name string, args ...string) ([]byte, error) {
	return r.record(Call{Name: name, Args: args, Env: env.Clone()})
}

func (r *FakeRunner) RunShell(_ context.Context, env types.Environment, script string) ([]byte, error) {
	return r.record(Call{Name: script, Shell: true, Env: env.Clone()})
}

// ShellCalls returns the scripts passed to RunShell, in order.
func (r *FakeRunner) ShellCalls() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Shell {
			out = append(out, c.Name)
		}
	}
	return out
}

// FakeCloner implements types.Cloner by creating the destination
// directory and recording the clone.
type FakeCloner struct {
	Cloned map[string]string // path -> url
	Err    error
}

func (c *FakeCloner) Clone(_ context.Context, url, path string) error {
	if c.Err != nil {
		return c.Err
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return err
	}
	if c.Cloned == nil {
		c.Cloned = make(map[string]string)
	}
	c.Cloned[path] = url
	return nil
}

// failingFS wraps a types.FS and fails the named operation.
type failingFS struct {
	types.FS
	op string
}

// NewFailingFS returns an FS whose named operation (lstat, stat, rename,
// removeall, symlink, readfile, writefile) always fails with a permission
// error.
func NewFailingFS(base types.FS, op string) types.FS {
	return &failingFS{FS: base, op: op}
}

func (f *failingFS) fail(op, name string) error {
	return &fs.PathError{Op: op, Path: name, Err: fs.ErrPermission}
}

func (f *failingFS) Lstat(name string) (fs.FileInfo, error) {
	if f.op == "lstat" {
		return nil, f.fail("lstat", name)
	}
	return f.FS.Lstat(name)
}

func (f *failingFS) Stat(name string) (fs.FileInfo, error) {
	if f.op == "stat" {
		return nil, f.fail("stat", name)
	}
	return f.FS.Stat(name)
}

func (f *failingFS) Rename(oldpath, newpath string) error {
	if f.op == "rename" {
		return f.fail("rename", oldpath)
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *failingFS) RemoveAll(path string) error {
	if f.op == "removeall" {
		return f.fail("removeall", path)
	}
	return f.FS.RemoveAll(path)
}

func (f *failingFS) Symlink(oldname, newname string) error {
	if f.op == "symlink" {
		return f.fail("symlink", newname)
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *failingFS) ReadFile(name string) ([]byte, error) {
	if f.op == "readfile" {
		return nil, f.fail("open", name)
	}
	return f.FS.ReadFile(name)
}

func (f *failingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if f.op == "writefile" {
		return f.fail("open", name)
	}
	return f.FS.WriteFile(name, data, perm)
}
