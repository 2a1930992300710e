// Package gitstatus annotates directory listings with version-control state.
// The probe is strictly best-effort: a missing git binary, a non-repository,
// a hung subprocess, or unparseable output all collapse to "no data".
package gitstatus

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shellman/shellman/internal/logging"
)

// DefaultTimeout bounds the synchronous wait on the status subprocess so a
// hung git never blocks the interactive loop.
const DefaultTimeout = 2 * time.Second

// Status codes attached to top-level entry names.
const (
	CodeUntracked = "?"
	CodeAdded     = "A"
	CodeModified  = "M"
	CodeDeleted   = "D"
	CodeRenamed   = "R"
	CodeChanged   = "~"
)

// Probe runs `git status --porcelain` and reduces the result to one code per
// top-level child of the probed directory.
type Probe struct {
	timeout time.Duration
	log     *logging.Logger
}

func New(timeout time.Duration, log *logging.Logger) *Probe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Probe{timeout: timeout, log: log}
}

// Run classifies the top-level entries of dir. It never fails: any error,
// timeout, or non-zero exit yields an empty map.
func (p *Probe) Run(dir string) map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		p.log.Debug("status probe yielded no data",
			zap.String("dir", dir), zap.Error(err))
		return map[string]string{}
	}
	return Parse(string(out))
}

// Parse reduces porcelain output to a map from top-level path segment to
// status code. Renames fold to their new name, nested paths to their first
// segment; a change anywhere under a subdirectory marks that subdirectory.
// When one line could carry several states, the XY column resolves in this
// order: untracked, added, modified, deleted, renamed, else a generic
// "changed" marker. Later lines for the same segment overwrite earlier ones.
func Parse(out string) map[string]string {
	statuses := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		xy := line[:2]
		path := strings.TrimSpace(line[3:])
		if i := strings.LastIndex(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		name := path
		if i := strings.IndexByte(path, '/'); i >= 0 {
			name = path[:i]
		}
		if name == "" {
			continue
		}
		statuses[name] = classify(xy)
	}
	return statuses
}

func classify(xy string) string {
	x, y := xy[0], xy[1]
	switch {
	case strings.TrimSpace(xy) == "??":
		return CodeUntracked
	case x == 'A' || y == 'A':
		return CodeAdded
	case x == 'M' || y == 'M':
		return CodeModified
	case x == 'D' || y == 'D':
		return CodeDeleted
	case x == 'R' || y == 'R':
		return CodeRenamed
	default:
		return CodeChanged
	}
}
