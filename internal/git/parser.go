package git

import "strings"

// ParseStatusOutput parses `git status --porcelain=v1 -z`. Entries are
// NUL separated; renames and copies carry their source path in a second
// entry.
func ParseStatusOutput(out string) *StatusResult {
	result := &StatusResult{}

	next := func() (string, bool) {
		if out == "" {
			return "", false
		}
		nul := strings.IndexByte(out, '\x00')
		if nul < 0 {
			entry := out
			out = ""
			return entry, true
		}
		entry := out[:nul]
		out = out[nul+1:]
		return entry, true
	}

	for {
		entry, ok := next()
		if !ok {
			break
		}
		if len(entry) < 4 {
			continue
		}

		fs := FileStatus{
			Staging:  StatusCode(entry[0]),
			Worktree: StatusCode(entry[1]),
			Path:     entry[3:],
		}
		if fs.Staging.isMove() || fs.Worktree.isMove() {
			fs.OrigPath, _ = next()
		}

		switch {
		case fs.Staging == StatusUntracked && fs.Worktree == StatusUntracked:
			result.Untracked = append(result.Untracked, fs)
		case fs.Staging == StatusIgnored:
			// Only reported with --ignored.
		case fs.conflicted():
			result.Conflicts = append(result.Conflicts, fs)
		default:
			if fs.Staging != StatusUnmodified {
				staged := fs
				staged.IsStaged = true
				result.Staged = append(result.Staged, staged)
			}
			if fs.Worktree != StatusUnmodified {
				result.Unstaged = append(result.Unstaged, fs)
			}
		}
	}
	return result
}
