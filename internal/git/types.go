package git

// StatusCode is one column of a porcelain status line.
type StatusCode byte

const (
	StatusUnmodified  StatusCode = ' '
	StatusModified    StatusCode = 'M'
	StatusTypeChanged StatusCode = 'T'
	StatusAdded       StatusCode = 'A'
	StatusDeleted     StatusCode = 'D'
	StatusRenamed     StatusCode = 'R'
	StatusCopied      StatusCode = 'C'
	StatusUnmerged    StatusCode = 'U'
	StatusUntracked   StatusCode = '?'
	StatusIgnored     StatusCode = '!'
)

func (s StatusCode) String() string { return string(s) }

// Label returns a human-readable description of the status.
func (s StatusCode) Label() string {
	switch s {
	case StatusModified:
		return "Modified"
	case StatusTypeChanged:
		return "Type Changed"
	case StatusAdded:
		return "Added"
	case StatusDeleted:
		return "Deleted"
	case StatusRenamed:
		return "Renamed"
	case StatusCopied:
		return "Copied"
	case StatusUnmerged:
		return "Unmerged"
	case StatusUntracked:
		return "Untracked"
	case StatusIgnored:
		return "Ignored"
	}
	return ""
}

func (s StatusCode) isMove() bool { return s == StatusRenamed || s == StatusCopied }

// FileStatus is the status of one path, relative to the repository root.
type FileStatus struct {
	Staging  StatusCode
	Worktree StatusCode
	Path     string
	OrigPath string // renames and copies only
	IsStaged bool
}

func (f FileStatus) conflicted() bool {
	return f.Staging == StatusUnmerged || f.Worktree == StatusUnmerged ||
		(f.Staging == StatusAdded && f.Worktree == StatusAdded) ||
		(f.Staging == StatusDeleted && f.Worktree == StatusDeleted)
}

// StatusResult groups a status listing. A path changed in both the index
// and the worktree appears in Staged and Unstaged.
type StatusResult struct {
	Staged    []FileStatus
	Unstaged  []FileStatus
	Untracked []FileStatus
	Conflicts []FileStatus
}

// TotalCount returns the number of entries across all groups.
func (sr *StatusResult) TotalCount() int {
	return len(sr.Staged) + len(sr.Unstaged) + len(sr.Untracked) + len(sr.Conflicts)
}
