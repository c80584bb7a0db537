// Package executor provides the os/exec-backed CommandRunner used for
// installer scripts and package-manager invocations.
package executor

import (
	"context"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"

	"github.com/shellup/shellup/pkg/errors"
	"github.com/shellup/shellup/pkg/logging"
	"github.com/shellup/shellup/pkg/types"
)

// Runner executes external commands with an explicit environment and
// captured combined output.
type Runner struct {
	logger zerolog.Logger
}

// New creates a new Runner
func New() *Runner {
	return &Runner{
		logger: logging.GetLogger("executor"),
	}
}

var _ types.CommandRunner = (*Runner)(nil)

// Run executes name with args directly, without a shell.
func (r *Runner) Run(ctx context.Context, env types.Environment, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env.Strings()

	// shellquote.Join gives a copy-pasteable command line in the logs
	rendered := shellquote.Join(append([]string{name}, args...)...)
	start := time.Now()
	r.logger.Debug().Str("command", rendered).Msg("Executing command")

	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, errors.Wrapf(err, errors.ErrCommandFailed, "command failed: %s", rendered).
			WithDetail("output", string(output))
	}

	r.logger.Debug().
		Str("command", rendered).
		Dur("duration", time.Since(start)).
		Msg("Command completed")

	return output, nil
}

// RunShell executes script through `sh -c`.
func (r *Runner) RunShell(ctx context.Context, env types.Environment, script string) ([]byte, error) {
	return r.Run(ctx, env, "sh", "-c", script)
}
