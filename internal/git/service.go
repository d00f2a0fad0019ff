package git

import (
	"path/filepath"
	"sort"

	"github.com/Akashdeep-Patra/scmpanel/internal/scm"
)

// Service is the read side of a repository the panel needs. The shell
// depends on this interface, never on exec directly, so tests can fake it.
type Service interface {
	RepoRoot() string
	GitDir() string
	Head() (string, error)
	Status() (*StatusResult, error)
	// Diff returns the patch for path: index against HEAD when staged,
	// worktree against index otherwise.
	Diff(staged bool, path string) (string, error)
}

// DiffFiles flattens a status listing into panel rows: one per path,
// absolute, sorted, with Staged set when the index has changes for it.
func DiffFiles(root string, st *StatusResult) []scm.DiffFile {
	if st == nil {
		return nil
	}
	staged := make(map[string]bool, st.TotalCount())
	var paths []string
	add := func(list []FileStatus) {
		for _, fs := range list {
			if _, seen := staged[fs.Path]; !seen {
				paths = append(paths, fs.Path)
				staged[fs.Path] = false
			}
			if fs.IsStaged {
				staged[fs.Path] = true
			}
		}
	}
	add(st.Staged)
	add(st.Unstaged)
	add(st.Untracked)
	add(st.Conflicts)
	sort.Strings(paths)

	files := make([]scm.DiffFile, len(paths))
	for i, p := range paths {
		files[i] = scm.DiffFile{
			Path:   filepath.Join(root, filepath.FromSlash(p)),
			Staged: staged[p],
		}
	}
	return files
}

// RelPath converts an absolute row path back to a repository path for git.
func RelPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
