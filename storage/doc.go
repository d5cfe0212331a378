// Package storage defines durable key-scoped storage used by the token cache and
// the key/value capability.
//
// It ships with an in-memory implementation for tests and single-process use,
// and an afs-backed implementation that persists every key as its own object
// under a base URL (local disk, memory or any afs-supported cloud storage).
package storage
