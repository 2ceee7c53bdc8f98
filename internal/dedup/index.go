package dedup

type fpSet map[uint64]struct{}

// Index is the symmetric identifier-pair index. Not safe for concurrent use.
type Index struct {
	adj   map[string]map[string]fpSet
	pairs int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{adj: make(map[string]map[string]fpSet)}
}

// Ensure creates empty fingerprint sets for a→b and b→a if missing.
// For a == b there is a single reflexive slot.
func (x *Index) Ensure(a, b string) {
	created := x.slot(a, b)
	if a != b {
		x.slot(b, a)
	}
	if created {
		x.pairs++
	}
}

func (x *Index) slot(a, b string) bool {
	partners, ok := x.adj[a]
	if !ok {
		partners = make(map[string]fpSet, 1)
		x.adj[a] = partners
	}
	if _, ok := partners[b]; ok {
		return false
	}
	partners[b] = make(fpSet, 1)
	return true
}

// Contains reports whether fp was recorded for the pair in the a→b direction.
func (x *Index) Contains(a, b string, fp uint64) bool {
	set, ok := x.adj[a][b]
	if !ok {
		return false
	}
	_, ok = set[fp]
	return ok
}

// Insert records fp under both a→b and b→a, creating entries as needed.
func (x *Index) Insert(a, b string, fp uint64) {
	x.Ensure(a, b)
	x.adj[a][b][fp] = struct{}{}
	x.adj[b][a][fp] = struct{}{}
}

// Seen checks fp against the pair and records it when new. It reports
// whether fp had been recorded before.
func (x *Index) Seen(a, b string, fp uint64) bool {
	x.Ensure(a, b)
	if x.Contains(a, b, fp) {
		return true
	}
	x.Insert(a, b, fp)
	return false
}

// Identifiers is the number of distinct identifiers in the index.
func (x *Index) Identifiers() int { return len(x.adj) }

// Pairs is the number of distinct unordered identifier pairs.
func (x *Index) Pairs() int { return x.pairs }

// Len is the number of distinct (pair, fingerprint) entries.
func (x *Index) Len() int {
	n := 0
	for a, partners := range x.adj {
		for b, set := range partners {
			if a <= b {
				n += len(set)
			}
		}
	}
	return n
}
