// Package parallel runs independent jobs concurrently and collects their
// outcomes in submission order.
//
// With fail-fast set, the first error cancels the context shared by the
// remaining jobs. Wait always lets every job settle, so a caller can treat
// any returned error as failure of the whole group.
package parallel
