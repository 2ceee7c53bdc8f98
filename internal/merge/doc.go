// Package merge concatenates MITAB sources into one sink, dropping every
// line whose interaction was already written earlier in the run.
//
// Design:
//   - Sources are consumed strictly in order, one at a time, each opened
//     only when its turn comes.
//   - The first-seen line wins and is written byte for byte; later
//     duplicates are dropped, never merged.
//   - The pair index lives for one Merge call and is never shared.
package merge
