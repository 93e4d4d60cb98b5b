// Package config holds the apply subsystem's runtime knobs. Parsing a
// config file from disk is out of scope for this subsystem; callers build a
// Config and pass it in already populated.
package config

import "github.com/docker/go-units"

// Config controls the apply worker pool and the write-batch lifecycle of a
// single store.
type Config struct {
	// ApplyPoolSize is the number of apply workers multiplexing appliers.
	ApplyPoolSize int
	// ApplyMaxBatchSize bounds how many messages a single poller tick drains
	// from one applier's mailbox before yielding to the next applier.
	ApplyMaxBatchSize int
	// SyncLog makes every write batch commit count as synced, so the
	// delegate's lastSyncApplyIndex advances on each commit. The batch is
	// written through the same badger update either way; no separate fsync
	// is issued.
	SyncLog bool
	// UseDeleteRange is carried in the config but no apply path reads it:
	// a DeleteRange command always deletes its range key by key through
	// DeleteAllInRange(CF), and DeleteFilesInRange is not called.
	UseDeleteRange bool
	// ApplyWriteBatchShrinkSize is the byte threshold above which a write
	// batch's backing buffer is reallocated smaller after a flush, so one
	// unusually large batch doesn't pin memory forever.
	ApplyWriteBatchShrinkSize uint64
	// DataDir is the filesystem path the engine's data lives under; it's
	// consulted for disk headroom before scheduling a ComputeHash snapshot.
	DataDir string
}

// DefaultApplyWriteBatchShrinkSize mirrors the original raftstore default of
// 1MiB, expressed through go-units so the value is self-documenting.
var DefaultApplyWriteBatchShrinkSize = uint64(units.MiB)

// NewDefaultConfig returns the configuration a single-store test harness or
// the applyctl CLI runs with out of the box.
func NewDefaultConfig() *Config {
	return &Config{
		ApplyPoolSize:             2,
		ApplyMaxBatchSize:         64,
		SyncLog:                   false,
		UseDeleteRange:            true,
		ApplyWriteBatchShrinkSize: DefaultApplyWriteBatchShrinkSize,
		DataDir:                   "/tmp/tikv-apply",
	}
}

// ParseByteSize parses a human-readable size string such as "1MiB" using the
// same notation the rest of the corpus uses for storage sizing knobs.
func ParseByteSize(s string) (uint64, error) {
	v, err := units.RAMInBytes(s)
	if err != nil {
		return 0, err
	}
	return uint64(v), nil
}
