// Package meta manages the durable per-region records (apply state, region
// local state) and an in-memory region tree used for router registration
// conflicts and adjacency queries.
package meta

import (
	"encoding/binary"

	"github.com/Connor1996/badger"
	"github.com/tikv-apply/raftapply/kv/util/engine_util"
	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
	rspb "github.com/tikv-apply/raftapply/proto/pkg/raft_serverpb"
)

var (
	regionStatePrefix = []byte("rs_")
	applyStatePrefix  = []byte("as_")
)

// RegionStateKey is the durable key for a region's RegionLocalState.
func RegionStateKey(regionID uint64) []byte {
	key := make([]byte, len(regionStatePrefix)+8)
	copy(key, regionStatePrefix)
	binary.BigEndian.PutUint64(key[len(regionStatePrefix):], regionID)
	return key
}

// ApplyStateKey is the durable key for a region's RaftApplyState. It is
// written in the same WriteBatch as the data mutations it accounts for, so
// a crash can never leave AppliedIndex ahead of the data it describes.
func ApplyStateKey(regionID uint64) []byte {
	key := make([]byte, len(applyStatePrefix)+8)
	copy(key, applyStatePrefix)
	binary.BigEndian.PutUint64(key[len(applyStatePrefix):], regionID)
	return key
}

// GetApplyState reads a region's apply state from db.
func GetApplyState(db *badger.DB, regionID uint64) (*rspb.RaftApplyState, error) {
	state := new(rspb.RaftApplyState)
	if err := engine_util.GetMeta(db, ApplyStateKey(regionID), state); err != nil {
		return nil, err
	}
	return state, nil
}

// GetRegionLocalState reads a region's local state from db.
func GetRegionLocalState(db *badger.DB, regionID uint64) (*rspb.RegionLocalState, error) {
	state := new(rspb.RegionLocalState)
	if err := engine_util.GetMeta(db, RegionStateKey(regionID), state); err != nil {
		return nil, err
	}
	return state, nil
}

// WriteRegionState buffers a region's meta plus lifecycle state into wb,
// to be committed together with whatever command produced the change
// (ChangePeer, BatchSplit, CommitMerge, RollbackMerge). PrepareMerge writes
// its Merging state with a merge state directly instead.
func WriteRegionState(wb *engine_util.WriteBatch, region *metapb.Region, state rspb.PeerState) error {
	regionState := &rspb.RegionLocalState{State: state, Region: region}
	return wb.SetMeta(RegionStateKey(region.Id), regionState)
}

// WriteApplyState buffers a region's apply state into wb, to be committed
// in the same batch as the data mutations it accounts for.
func WriteApplyState(wb *engine_util.WriteBatch, regionID uint64, state *rspb.RaftApplyState) error {
	return wb.SetMeta(ApplyStateKey(regionID), state)
}

// WriteInitialApplyState seeds a freshly split-off region's apply state at
// applied index 5 with a truncated state of index 5, term 5, the initial
// log position a newly created region starts from.
func WriteInitialApplyState(wb *engine_util.WriteBatch, regionID uint64) error {
	state := &rspb.RaftApplyState{
		AppliedIndex:   5,
		TruncatedState: &rspb.RaftTruncatedState{Index: 5, Term: 5},
	}
	return wb.SetMeta(ApplyStateKey(regionID), state)
}
