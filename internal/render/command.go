package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"pixcheck/internal/domain"
)

// CommandRenderer runs an external command per test case and reads the image from its stdout.
// "{name}" and "{mock}" in the command are replaced by the case name and mock path.
type CommandRenderer struct {
	args    []string
	dir     string
	timeout time.Duration
}

// NewCommandRenderer parses command into arguments; dir is the working directory
func NewCommandRenderer(command, dir string, timeout time.Duration) (*CommandRenderer, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, fmt.Errorf("render command is empty")
	}
	return &CommandRenderer{args: args, dir: dir, timeout: timeout}, nil
}

// Render executes the command for a single test case
func (r *CommandRenderer) Render(ctx context.Context, tc domain.TestCase) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	replacer := strings.NewReplacer("{name}", tc.Name, "{mock}", tc.MockPath)
	args := make([]string, len(r.args))
	for i, a := range r.args {
		args[i] = replacer.Replace(a)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, "PIXCHECK_CASE="+tc.Name, "PIXCHECK_MOCK="+tc.MockPath)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("render command %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("render command %s produced no image", args[0])
	}
	return stdout.Bytes(), nil
}
