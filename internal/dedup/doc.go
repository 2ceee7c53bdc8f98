// Package dedup holds the symmetric pair index used to detect interactions
// that were already written during one merge run.
//
// The index maps identifier → partner identifier → set of content
// fingerprints. Inserting under (a, b) also inserts under (b, a), so a
// lookup does not depend on which interactor came first in the raw line.
package dedup
