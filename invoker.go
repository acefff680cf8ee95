package main

import (
	"bytes"
	"context"
	"errors"
	"io"

	utilexec "k8s.io/utils/exec"
)

// runTool runs an external discovery tool once and returns its stdout.
// A non-zero exit code or any output on stderr fails the call.
func runTool(ctx context.Context, exec utilexec.Interface, name string, args ...string) ([]byte, error) {
	return runToolInput(ctx, exec, nil, name, args...)
}

// runToolInput is runTool with stdin attached to the command.
func runToolInput(ctx context.Context, exec utilexec.Interface, stdin io.Reader, name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, &ProcessError{Tool: name, Err: err}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.SetStdout(&stdout)
	cmd.SetStderr(&stderr)
	if stdin != nil {
		cmd.SetStdin(stdin)
	}

	if err := cmd.Run(); err != nil {
		var exitErr utilexec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitStatus() != 0 {
			return nil, &ProcessError{Tool: name, Code: exitErr.ExitStatus(), Stderr: stderr.String(), Err: err}
		}
		return nil, &ProcessError{Tool: name, Stderr: stderr.String(), Err: err}
	}

	if stderr.Len() > 0 {
		return nil, &ProcessError{Tool: name, Stderr: stderr.String()}
	}

	return stdout.Bytes(), nil
}
