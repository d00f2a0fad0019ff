package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/scmpanel/internal/logging"
	"github.com/Akashdeep-Patra/scmpanel/internal/scm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusOutput(t *testing.T) {
	out := "M  staged.go\x00 M dirty.go\x00MM both.go\x00?? new.txt\x00" +
		"R  new/name.go\x00old/name.go\x00UU conflict.go\x00AA added-twice.go\x00"

	st := ParseStatusOutput(out)

	require.Len(t, st.Staged, 3)
	assert.Equal(t, "staged.go", st.Staged[0].Path)
	assert.True(t, st.Staged[0].IsStaged)
	assert.Equal(t, "both.go", st.Staged[1].Path)
	assert.Equal(t, FileStatus{Staging: StatusRenamed, Worktree: StatusUnmodified, Path: "new/name.go", OrigPath: "old/name.go", IsStaged: true}, st.Staged[2])

	require.Len(t, st.Unstaged, 2)
	assert.Equal(t, "dirty.go", st.Unstaged[0].Path)
	assert.Equal(t, "both.go", st.Unstaged[1].Path)

	require.Len(t, st.Untracked, 1)
	assert.Equal(t, "new.txt", st.Untracked[0].Path)

	require.Len(t, st.Conflicts, 2)
	assert.Equal(t, 8, st.TotalCount())
}

func TestParseStatusOutput_Empty(t *testing.T) {
	st := ParseStatusOutput("")
	assert.Zero(t, st.TotalCount())
}

func TestParseStatusOutput_SkipsShortEntries(t *testing.T) {
	st := ParseStatusOutput("M\x00 M ok.go")
	require.Len(t, st.Unstaged, 1)
	assert.Equal(t, "ok.go", st.Unstaged[0].Path)
}

func TestStatusCodeLabel(t *testing.T) {
	assert.Equal(t, "Renamed", StatusRenamed.Label())
	assert.Equal(t, "", StatusUnmodified.Label())
}

func TestDiffFiles(t *testing.T) {
	st := ParseStatusOutput("M  b.go\x00 M a.go\x00MM c/d.go\x00?? e.txt\x00UU f.go\x00")

	files := DiffFiles("/repo", st)

	assert.Equal(t, []scm.DiffFile{
		{Path: filepath.Join("/repo", "a.go")},
		{Path: filepath.Join("/repo", "b.go"), Staged: true},
		{Path: filepath.Join("/repo", "c", "d.go"), Staged: true},
		{Path: filepath.Join("/repo", "e.txt")},
		{Path: filepath.Join("/repo", "f.go")},
	}, files)
	assert.Nil(t, DiffFiles("/repo", nil))
}

func TestRelPath(t *testing.T) {
	assert.Equal(t, "c/d.go", RelPath("/repo", filepath.Join("/repo", "c", "d.go")))
}

// ── Cache ───────────────────────────────────────────────────────────────────

type countingService struct {
	status, head, diff int
	err                error
}

func (s *countingService) RepoRoot() string { return "/repo" }
func (s *countingService) GitDir() string   { return "/repo/.git" }
func (s *countingService) Head() (string, error) {
	s.head++
	return "main", s.err
}
func (s *countingService) Status() (*StatusResult, error) {
	s.status++
	return &StatusResult{Untracked: []FileStatus{{Path: "x"}}}, s.err
}
func (s *countingService) Diff(bool, string) (string, error) {
	s.diff++
	return "", nil
}

func TestCachedService(t *testing.T) {
	inner := &countingService{}
	c := NewCachedService(inner, time.Minute)

	for range 3 {
		st, err := c.Status()
		require.NoError(t, err)
		assert.Equal(t, 1, st.TotalCount())
		head, err := c.Head()
		require.NoError(t, err)
		assert.Equal(t, "main", head)
		_, _ = c.Diff(false, "x")
	}
	assert.Equal(t, 1, inner.status)
	assert.Equal(t, 1, inner.head)
	assert.Equal(t, 3, inner.diff, "diffs are never cached")

	c.Invalidate()
	_, _ = c.Status()
	assert.Equal(t, 2, inner.status)

	assert.Equal(t, "/repo", c.RepoRoot())
	assert.Equal(t, "/repo/.git", c.GitDir())
}

func TestCachedService_CachesErrors(t *testing.T) {
	boom := errors.New("boom")
	inner := &countingService{err: boom}
	c := NewCachedService(inner, time.Minute)

	_, err := c.Head()
	assert.ErrorIs(t, err, boom)
	_, err = c.Head()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, inner.head)
}

func TestCachedService_Expires(t *testing.T) {
	inner := &countingService{}
	c := NewCachedService(inner, 10*time.Millisecond)

	_, _ = c.Status()
	time.Sleep(30 * time.Millisecond)
	_, _ = c.Status()
	assert.Equal(t, 2, inner.status)
}

// ── CLI ─────────────────────────────────────────────────────────────────────

func gitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "test"},
	} {
		_, _, err := runGit(dir, args...)
		require.NoError(t, err)
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCLIService(t *testing.T) {
	dir := gitRepo(t)
	writeFile(t, dir, "staged.txt", "one\n")
	writeFile(t, dir, "sub/new.txt", "two\n")
	_, _, err := runGit(dir, "add", "staged.txt")
	require.NoError(t, err)

	svc, err := NewCLIService(filepath.Join(dir, "sub"), logging.Discard())
	require.NoError(t, err)

	root, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(svc.RepoRoot())
	require.NoError(t, err)
	assert.Equal(t, root, gotRoot)
	assert.Equal(t, ".git", filepath.Base(svc.GitDir()))

	head, err := svc.Head()
	require.NoError(t, err)
	assert.NotEmpty(t, head)

	st, err := svc.Status()
	require.NoError(t, err)
	files := DiffFiles(svc.RepoRoot(), st)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(svc.RepoRoot(), "staged.txt"), files[0].Path)
	assert.True(t, files[0].Staged)
	assert.Equal(t, filepath.Join(svc.RepoRoot(), "sub", "new.txt"), files[1].Path)
	assert.False(t, files[1].Staged)

	diff, err := svc.Diff(true, "staged.txt")
	require.NoError(t, err)
	assert.Contains(t, diff, "+one")

	diff, err = svc.Diff(false, "sub/new.txt")
	require.NoError(t, err)
	assert.Contains(t, diff, "+two", "untracked files diff against nothing")
}

func TestCLIService_StagedOnlyChange(t *testing.T) {
	dir := gitRepo(t)
	writeFile(t, dir, "a.txt", "one\ntwo\nthree\n")
	for _, args := range [][]string{
		{"add", "a.txt"},
		{"-c", "commit.gpgsign=false", "commit", "-q", "-m", "init"},
	} {
		_, _, err := runGit(dir, args...)
		require.NoError(t, err)
	}
	writeFile(t, dir, "a.txt", "one\nTWO\nthree\n")
	writeFile(t, dir, "added.txt", "new\n")
	_, _, err := runGit(dir, "add", "a.txt", "added.txt")
	require.NoError(t, err)

	svc, err := NewCLIService(dir, logging.Discard())
	require.NoError(t, err)

	for _, path := range []string{"a.txt", "added.txt"} {
		t.Run(path, func(t *testing.T) {
			staged, err := svc.Diff(true, path)
			require.NoError(t, err)
			assert.NotEmpty(t, staged)

			unstaged, err := svc.Diff(false, path)
			require.NoError(t, err)
			assert.Empty(t, unstaged)
		})
	}
}

func TestNewCLIService_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := NewCLIService(dir, nil)
	assert.ErrorIs(t, err, ErrNotARepo)
}
