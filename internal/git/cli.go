package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/scmpanel/internal/logging"
	"github.com/charmbracelet/log"
)

// ErrNotARepo is returned when the path is not inside a Git repository.
var ErrNotARepo = errors.New("not a git repository")

// cmdTimeout bounds any single git invocation.
const cmdTimeout = 30 * time.Second

// CLIService implements Service by running the git binary. All commands
// are reads: they run with GIT_OPTIONAL_LOCKS=0 so a panel refresh never
// contends with the user's own git commands for index.lock.
type CLIService struct {
	root   string
	gitDir string
	logger *log.Logger
}

var _ Service = (*CLIService)(nil)

// NewCLIService opens the repository containing path.
func NewCLIService(path string, logger *log.Logger) (*CLIService, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	s := &CLIService{logger: logger}

	top, err := s.runIn(abs, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, ErrNotARepo)
	}
	s.root = strings.TrimSpace(top)

	gitDir, err := s.runIn(abs, "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("finding .git directory: %w", err)
	}
	gd := strings.TrimSpace(gitDir)
	if !filepath.IsAbs(gd) {
		gd = filepath.Join(abs, gd)
	}
	s.gitDir = filepath.Clean(gd)
	return s, nil
}

func (s *CLIService) RepoRoot() string { return s.root }

func (s *CLIService) GitDir() string { return s.gitDir }

// ── helpers ─────────────────────────────────────────────────────────────────

var readEnv = []string{"GIT_OPTIONAL_LOCKS=0"}

func (s *CLIService) run(args ...string) (string, error) {
	return s.runIn(s.root, args...)
}

func (s *CLIService) runIn(dir string, args ...string) (out string, err error) {
	done := logging.Op(s.logger, "git "+args[0], "args", strings.Join(args[1:], " "))
	defer func() { done(err) }()

	out, _, err = runGit(dir, args...)
	return out, err
}

// runGit executes git in dir with a timeout. Stdout and stderr are kept
// apart so warnings never end up in parsed output. The exit code is
// returned alongside the error for commands where non-zero is meaningful.
func runGit(dir string, args ...string) (string, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), readEnv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		return stdout.String(), code, fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), msg, err)
	}
	return stdout.String(), 0, nil
}

// ── Reads ───────────────────────────────────────────────────────────────────

// Head returns the current branch, or the short hash when detached.
func (s *CLIService) Head() (string, error) {
	ref, err := s.run("symbolic-ref", "--short", "HEAD")
	if err == nil {
		return strings.TrimSpace(ref), nil
	}
	hash, hashErr := s.run("rev-parse", "--short", "HEAD")
	if hashErr != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	return strings.TrimSpace(hash), nil
}

// Status lists changed, untracked and conflicted paths.
func (s *CLIService) Status() (*StatusResult, error) {
	out, err := s.run("status", "--porcelain=v1", "-z", "--untracked-files=all")
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}
	return ParseStatusOutput(out), nil
}

// Diff returns the patch for path. For an untracked path the unstaged diff
// shows the whole file as added.
func (s *CLIService) Diff(staged bool, path string) (string, error) {
	args := []string{"diff", "--color=never", "--no-ext-diff"}
	if staged {
		args = append(args, "--cached")
	}
	if path != "" {
		args = append(args, "--", path)
	}
	out, err := s.run(args...)
	if err != nil || out != "" || staged || path == "" {
		return out, err
	}
	// An empty worktree diff of an indexed path means nothing is unstaged.
	tracked, err := s.isTracked(path)
	if err != nil || tracked {
		return "", err
	}
	return s.diffUntracked(path)
}

// isTracked reports whether path is in the index.
func (s *CLIService) isTracked(path string) (bool, error) {
	done := logging.Op(s.logger, "git ls-files", "path", path)
	_, code, err := runGit(s.root, "ls-files", "--error-unmatch", "--", path)
	if code == 1 {
		err = nil
	}
	done(err)
	return code == 0, err
}

func (s *CLIService) diffUntracked(path string) (string, error) {
	if _, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(path))); err != nil {
		return "", nil
	}
	done := logging.Op(s.logger, "git diff --no-index", "path", path)
	// --no-index exits 1 when the files differ.
	out, code, err := runGit(s.root, "diff", "--color=never", "--no-index", "--", os.DevNull, path)
	if code == 1 {
		err = nil
	}
	done(err)
	return out, err
}
