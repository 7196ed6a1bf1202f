// SPDX-License-Identifier: MPL-2.0

// Package scaffold invokes the per-language module generators and copies
// their output into the solution's modules directory. Generator output is
// streamed to the structured log so a non-zero exit can be diagnosed without
// re-running the tool.
package scaffold

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/charmbracelet/log"
)

type (
	// Executor runs an external process in a working directory. Consumed by
	// the scaffolding workflow and faked in tests.
	Executor interface {
		Run(ctx context.Context, dir, name string, args ...string) error
	}

	// ExecExecutor is the real Executor, built on os/exec with line-wise
	// output streaming.
	ExecExecutor struct {
		Logger *log.Logger
	}
)

var _ Executor = (*ExecExecutor)(nil)

// ToolError reports an external scaffold tool that exited non-zero. Its
// output has already been streamed to the log by the time this is returned.
type ToolError struct {
	Tool     string
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("scaffold tool %q failed with exit code %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("scaffold tool %q failed: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Run implements Executor. The process inherits the parent environment and
// blocks until completion; cancellation before this point is the only way to
// stop a started generator.
func (e *ExecExecutor) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}
	sink := &logWriter{logger: logger.WithPrefix(name)}
	cmd.Stdout = sink
	cmd.Stderr = sink
	defer sink.Flush()

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &ToolError{Tool: name, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return &ToolError{Tool: name, ExitCode: -1, Err: err}
	}
	return nil
}

// logWriter forwards process output to the logger one line at a time.
type logWriter struct {
	logger *log.Logger
	buf    []byte
}

var _ io.Writer = (*logWriter)(nil)

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		line, rest, found := cutLine(w.buf)
		if !found {
			break
		}
		w.logger.Info(string(line))
		w.buf = rest
	}
	return len(p), nil
}

// Flush emits any trailing output that did not end in a newline.
func (w *logWriter) Flush() {
	if len(w.buf) > 0 {
		w.logger.Info(string(w.buf))
		w.buf = nil
	}
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	for i, c := range b {
		if c == '\n' {
			line = b[:i]
			if i > 0 && b[i-1] == '\r' {
				line = b[:i-1]
			}
			return line, b[i+1:], true
		}
	}
	return nil, b, false
}
