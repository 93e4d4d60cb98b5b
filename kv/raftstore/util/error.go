package util

import (
	"fmt"

	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
)

// ErrNotLeader is returned by the upper half, not by apply itself, but
// apply's error taxonomy mirrors it for completeness when wrapping
// responses for callers that share the same error-to-header conversion.
type ErrNotLeader struct {
	RegionId uint64
}

func (e *ErrNotLeader) Error() string {
	return fmt.Sprintf("region %d is not leader", e.RegionId)
}

// ErrRegionNotFound is a client-visible logical error: the router has no
// mailbox for the addressed region, deterministically on every replica.
type ErrRegionNotFound struct {
	RegionId uint64
}

func (e *ErrRegionNotFound) Error() string {
	return fmt.Sprintf("region %d is not found", e.RegionId)
}

// ErrEpochNotMatch is a client-visible logical error: the command's epoch
// is stale relative to the region's current epoch. CurrentRegions lets the
// caller retry against the up-to-date region descriptors.
type ErrEpochNotMatch struct {
	Message        string
	CurrentRegions []*metapb.Region
}

func (e *ErrEpochNotMatch) Error() string {
	return fmt.Sprintf("epoch not match, %s (current regions %v)", e.Message, e.CurrentRegions)
}

// ErrStaleCommand is a client-visible logical error: the command was
// proposed under a term this peer is no longer leader for.
type ErrStaleCommand struct{}

func (e *ErrStaleCommand) Error() string { return "stale command" }

// ErrKeyNotInRegion is a client-visible logical error: the key falls
// outside [StartKey, EndKey) of the addressed region.
type ErrKeyNotInRegion struct {
	Key      []byte
	Region   *metapb.Region
}

func (e *ErrKeyNotInRegion) Error() string {
	return fmt.Sprintf("key %x not in region %d [%x, %x)", e.Key, e.Region.Id, e.Region.StartKey, e.Region.EndKey)
}

// ErrTransportFull is a transport error: a mailbox is at capacity. It is
// retryable by the sender, unlike a logical error.
type ErrTransportFull struct{}

func (e *ErrTransportFull) Error() string { return "mailbox is full" }

// ErrTransportDisconnected is a transport error: the router has no mailbox
// and no miss policy handled it, meaning the region is gone from this
// store.
type ErrTransportDisconnected struct {
	RegionId uint64
}

func (e *ErrTransportDisconnected) Error() string {
	return fmt.Sprintf("region %d receiver disconnected", e.RegionId)
}
