// Package raft_serverpb carries the on-disk apply-state records the apply
// delegate reads and writes on every flush: truncated state, apply state,
// merge state and region local state.
package raft_serverpb

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
)

type PeerState int32

const (
	PeerState_Normal      PeerState = 0
	PeerState_Applying    PeerState = 1
	PeerState_Tombstone   PeerState = 2
	PeerState_Merging     PeerState = 3
)

func (s PeerState) String() string {
	switch s {
	case PeerState_Normal:
		return "Normal"
	case PeerState_Applying:
		return "Applying"
	case PeerState_Tombstone:
		return "Tombstone"
	case PeerState_Merging:
		return "Merging"
	default:
		return "Unknown"
	}
}

// RaftTruncatedState records the index/term of the last log entry discarded
// by a CompactLog admin command.
type RaftTruncatedState struct {
	Index uint64 `protobuf:"varint,1,opt,name=index,proto3" json:"index,omitempty"`
	Term  uint64 `protobuf:"varint,2,opt,name=term,proto3" json:"term,omitempty"`
}

func (m *RaftTruncatedState) Reset()         { *m = RaftTruncatedState{} }
func (m *RaftTruncatedState) String() string { return proto.CompactTextString(m) }
func (*RaftTruncatedState) ProtoMessage()    {}

// RaftApplyState is the durable record of how far a region's apply cursor
// has advanced; it is written atomically with every batch of data mutations
// in the same write batch.
type RaftApplyState struct {
	AppliedIndex   uint64              `protobuf:"varint,1,opt,name=applied_index,json=appliedIndex,proto3" json:"applied_index,omitempty"`
	TruncatedState *RaftTruncatedState `protobuf:"bytes,2,opt,name=truncated_state,json=truncatedState,proto3" json:"truncated_state,omitempty"`
}

func (m *RaftApplyState) Reset()         { *m = RaftApplyState{} }
func (m *RaftApplyState) String() string { return proto.CompactTextString(m) }
func (*RaftApplyState) ProtoMessage()    {}

func (m *RaftApplyState) Marshal() ([]byte, error) { return proto.Marshal(m) }
func (m *RaftApplyState) Unmarshal(b []byte) error { return proto.Unmarshal(b, m) }

func (m *RaftApplyState) GetAppliedIndex() uint64 {
	if m != nil {
		return m.AppliedIndex
	}
	return 0
}

// MergeState tracks an in-progress region merge: the target region's state
// as last observed by the source, and the minimum commit index the source
// must reach before the merge can complete (the merge rendezvous of §4.F).
type MergeState struct {
	MinIndex uint64         `protobuf:"varint,1,opt,name=min_index,json=minIndex,proto3" json:"min_index,omitempty"`
	Target   *metapb.Region `protobuf:"bytes,2,opt,name=target,proto3" json:"target,omitempty"`
	Commit   uint64         `protobuf:"varint,3,opt,name=commit,proto3" json:"commit,omitempty"`
}

func (m *MergeState) Reset()         { *m = MergeState{} }
func (m *MergeState) String() string { return proto.CompactTextString(m) }
func (*MergeState) ProtoMessage()    {}

func (m *MergeState) Marshal() ([]byte, error) { return proto.Marshal(m) }
func (m *MergeState) Unmarshal(b []byte) error { return proto.Unmarshal(b, m) }

// RegionLocalState is the durable record of a region's meta plus lifecycle
// state (normal / merging / tombstone).
type RegionLocalState struct {
	State       PeerState      `protobuf:"varint,1,opt,name=state,proto3,enum=raft_serverpb.PeerState" json:"state,omitempty"`
	Region      *metapb.Region `protobuf:"bytes,2,opt,name=region,proto3" json:"region,omitempty"`
	MergeState  *MergeState    `protobuf:"bytes,3,opt,name=merge_state,json=mergeState,proto3" json:"merge_state,omitempty"`
}

func (m *RegionLocalState) Reset()         { *m = RegionLocalState{} }
func (m *RegionLocalState) String() string { return proto.CompactTextString(m) }
func (*RegionLocalState) ProtoMessage()    {}

func (m *RegionLocalState) Marshal() ([]byte, error) { return proto.Marshal(m) }
func (m *RegionLocalState) Unmarshal(b []byte) error { return proto.Unmarshal(b, m) }

func (m *RegionLocalState) GetRegion() *metapb.Region {
	if m != nil {
		return m.Region
	}
	return nil
}
