package export

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// runner executes a compiled ffmpeg command. Tests substitute a fake to
// inspect the generated argv without invoking ffmpeg.
type runner interface {
	Run(ctx context.Context, cmd *exec.Cmd) error
}

type execRunner struct{}

// Run starts the command and kills it when ctx is cancelled. The last
// stderr lines are preserved in the error; ffmpeg writes its diagnostics
// there and the exit status alone is useless.
func (execRunner) Run(ctx context.Context, cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %s", err, lastStderrLines(stderr.String(), 4))
		}
		return nil
	}
}

// lastStderrLines trims ffmpeg's banner noise down to the tail that
// actually describes the failure.
func lastStderrLines(out string, n int) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
