package webhook

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

type (
	// Puller brings the deployed working copy up to date.
	Puller interface {
		Pull(ctx context.Context) (string, error)
	}

	// GitPuller fast-forwards a working copy from its origin with the git CLI.
	GitPuller struct {
		repoPath string
		timeout  time.Duration
	}
)

func NewGitPuller(repoPath string, timeout time.Duration) (*GitPuller, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve deploy dir %s: %w", repoPath, err)
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &GitPuller{repoPath: abs, timeout: timeout}, nil
}

func (g *GitPuller) Pull(ctx context.Context) (string, error) {
	return g.run(ctx, "pull", "--ff-only", "origin")
}

func (g *GitPuller) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("git %s: timeout after %v", args[0], g.timeout)
		}
		return strings.TrimSpace(stderr.String()), fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
