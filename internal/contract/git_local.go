package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command in dir and returns its standard output.
func (c *LocalGitClient) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git %s failed: %s", strings.Join(args, " "), stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// CloneShallow implements the GitClient interface. History is truncated to a
// single commit because the metrics tool only reads the checked-out tree.
func (c *LocalGitClient) CloneShallow(ctx context.Context, url string, dest string) error {
	_, err := c.Run(ctx, "", "clone", "--depth", "1", url, dest)
	if err != nil {
		return fmt.Errorf("shallow clone of %s failed: %w", url, err)
	}
	return nil
}

// Version implements the GitClient interface.
func (c *LocalGitClient) Version(ctx context.Context) (string, error) {
	out, err := c.Run(ctx, "", "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
