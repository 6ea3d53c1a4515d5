package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
)

// maxReportedOutput caps how much command output ends up in an error.
const maxReportedOutput = 4096

// TestRunnerRepository runs the verification command as a child process.
type TestRunnerRepository struct{}

// NewTestRunnerRepository creates an os/exec backed test runner.
func NewTestRunnerRepository() repositories.TestRunnerRepository {
	return &TestRunnerRepository{}
}

// Run executes command in dir and fails with the exit code and combined
// output when the command does not succeed.
func (r *TestRunnerRepository) Run(ctx context.Context, command []string, dir string) error {
	if len(command) == 0 {
		return fmt.Errorf("%w: empty test command", entities.ErrConfiguration)
	}

	logger.Infof("Running tests: %s (in %s)", strings.Join(command, " "), dir)
	cmd := exec.CommandContext(ctx, command[0], command[1:]...) //nolint:gosec // command is user configured
	cmd.Dir = dir
	cmd.Env = os.Environ()

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if err == nil {
		logger.Debugf("Test output:\n%s", output.String())
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf(
			"%w: %q exited with code %d: %s",
			entities.ErrExternalProcess, strings.Join(command, " "), exitErr.ExitCode(), tail(output.String()),
		)
	}
	return fmt.Errorf("%w: failed to run %q: %w", entities.ErrExternalProcess, strings.Join(command, " "), err)
}

func tail(output string) string {
	output = strings.TrimSpace(output)
	if len(output) <= maxReportedOutput {
		return output
	}
	return "..." + output[len(output)-maxReportedOutput:]
}
