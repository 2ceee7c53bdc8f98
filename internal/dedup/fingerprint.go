package dedup

import "github.com/cespare/xxhash/v2"

// Fingerprint hashes a canonical content string. Stable for the life of the
// process, which is all the index needs.
func Fingerprint(canonical string) uint64 {
	return xxhash.Sum64String(canonical)
}
