// pkg/executor/executor_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real `sh` binary
// PURPOSE: Test command execution, environment injection, and failure wrapping

package executor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shellup/shellup/pkg/errors"
	"github.com/shellup/shellup/pkg/executor"
	"github.com/shellup/shellup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	r := executor.New()
	env := types.Environment{"PATH": "/usr/bin:/bin"}

	out, err := r.Run(context.Background(), env, "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", strings.TrimSpace(string(out)))
}

func TestRunner_RunShell_UsesEnvironment(t *testing.T) {
	r := executor.New()
	env := types.Environment{"PATH": "/usr/bin:/bin", "ZSH": "/ws/.oh-my-zsh"}

	out, err := r.RunShell(context.Background(), env, `printf '%s' "$ZSH"`)
	require.NoError(t, err)
	assert.Equal(t, "/ws/.oh-my-zsh", string(out))
}

func TestRunner_NonZeroExit(t *testing.T) {
	r := executor.New()
	env := types.Environment{"PATH": "/usr/bin:/bin"}

	out, err := r.RunShell(context.Background(), env, "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Contains(t, string(out), "boom")

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Contains(t, details["output"], "boom")
}

func TestRunner_MissingBinary(t *testing.T) {
	r := executor.New()
	env := types.Environment{"PATH": "/nonexistent"}

	_, err := r.Run(context.Background(), env, "/no/such/binary-xyz")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
}
