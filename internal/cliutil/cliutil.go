// internal/cliutil/cliutil.go
package cliutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// isLocal reports whether a positional names a local path (not stdin, not a URL).
func isLocal(s string) bool { return s != "-" && !strings.Contains(s, "://") }

// ExpandPositionals expands any globs among local path positionals.
// "-" and URLs pass through untouched. Order is preserved; matches of one
// pattern come out sorted, as filepath.Glob returns them.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		if !isLocal(a) || !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		out = append(out, m...)
	}
	return out, nil
}
