// internal/mitab/normalize.go
package mitab

import (
	"sort"
	"strings"
)

const (
	// DefaultNamespace is the only prefix stripped when none are configured.
	DefaultNamespace = "uniprotkb"
	// AnyNamespace recognizes every well-formed namespace token.
	AnyNamespace = "*"
)

// Normalizer strips recognized "<namespace>:" prefixes from interactor fields.
// The zero value is not usable; build one with NewNormalizer.
type Normalizer struct {
	any bool
	ns  map[string]struct{}
}

// NewNormalizer recognizes the given namespaces. Blank entries are ignored;
// an empty list falls back to DefaultNamespace.
func NewNormalizer(namespaces ...string) *Normalizer {
	n := &Normalizer{ns: make(map[string]struct{}, len(namespaces))}
	for _, s := range namespaces {
		s = strings.TrimSpace(s)
		switch s {
		case "":
			continue
		case AnyNamespace:
			n.any = true
		default:
			n.ns[s] = struct{}{}
		}
	}
	if !n.any && len(n.ns) == 0 {
		n.ns[DefaultNamespace] = struct{}{}
	}
	return n
}

// Namespaces returns the recognized namespaces in sorted order,
// AnyNamespace first when set.
func (n *Normalizer) Namespaces() []string {
	out := make([]string, 0, len(n.ns)+1)
	for s := range n.ns {
		out = append(out, s)
	}
	sort.Strings(out)
	if n.any {
		out = append([]string{AnyNamespace}, out...)
	}
	return out
}

// Normalize returns the identifier carried by raw. Recognized prefixes are
// stripped repeatedly, so Normalize(Normalize(x)) == Normalize(x). A prefix is
// kept when nothing would be left after it.
func (n *Normalizer) Normalize(raw string) string {
	id := raw
	for {
		i := strings.IndexByte(id, ':')
		if i <= 0 || i == len(id)-1 || !n.recognized(id[:i]) {
			return id
		}
		id = id[i+1:]
	}
}

func (n *Normalizer) recognized(tag string) bool {
	if n.any {
		return isNamespaceToken(tag)
	}
	_, ok := n.ns[tag]
	return ok
}

func isNamespaceToken(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '-', c == '.':
		default:
			return false
		}
	}
	return s != ""
}
