// Package eraftpb mirrors the subset of the Raft wire types the apply
// subsystem needs to decode committed entries. The real message set lives in
// the Raft library that replicates these entries; only the shapes consumed
// after commit are reproduced here.
package eraftpb

import "github.com/gogo/protobuf/proto"

type EntryType int32

const (
	EntryNormal     EntryType = 0
	EntryConfChange EntryType = 1
	// EntryConfChangeV2 is accepted on the wire but not supported by the
	// apply delegate; decoding one is fatal (see ConfChangeV2 open question).
	EntryConfChangeV2 EntryType = 2
)

func (t EntryType) String() string {
	switch t {
	case EntryNormal:
		return "EntryNormal"
	case EntryConfChange:
		return "EntryConfChange"
	case EntryConfChangeV2:
		return "EntryConfChangeV2"
	default:
		return "Unknown"
	}
}

// Entry is a single committed Raft log entry handed to the apply delegate.
type Entry struct {
	EntryType EntryType `protobuf:"varint,1,opt,name=entry_type,json=entryType,proto3,enum=eraftpb.EntryType" json:"entry_type,omitempty"`
	Term      uint64    `protobuf:"varint,2,opt,name=term,proto3" json:"term,omitempty"`
	Index     uint64    `protobuf:"varint,3,opt,name=index,proto3" json:"index,omitempty"`
	Data      []byte    `protobuf:"bytes,4,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *Entry) Reset()         { *m = Entry{} }
func (m *Entry) String() string { return proto.CompactTextString(m) }
func (*Entry) ProtoMessage()    {}

func (m *Entry) Marshal() ([]byte, error)  { return proto.Marshal(m) }
func (m *Entry) Unmarshal(b []byte) error  { return proto.Unmarshal(b, m) }

type ConfChangeType int32

const (
	ConfChangeType_AddNode       ConfChangeType = 0
	ConfChangeType_RemoveNode    ConfChangeType = 1
	ConfChangeType_AddLearnerNode ConfChangeType = 2
)

func (t ConfChangeType) String() string {
	switch t {
	case ConfChangeType_AddNode:
		return "AddNode"
	case ConfChangeType_RemoveNode:
		return "RemoveNode"
	case ConfChangeType_AddLearnerNode:
		return "AddLearnerNode"
	default:
		return "Unknown"
	}
}

// ConfChange is the payload of an EntryConfChange entry; Context carries the
// marshaled RaftCmdRequest that proposed the change.
type ConfChange struct {
	Id         uint64         `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	ChangeType ConfChangeType `protobuf:"varint,2,opt,name=change_type,json=changeType,proto3,enum=eraftpb.ConfChangeType" json:"change_type,omitempty"`
	NodeId     uint64         `protobuf:"varint,3,opt,name=node_id,json=nodeId,proto3" json:"node_id,omitempty"`
	Context    []byte         `protobuf:"bytes,4,opt,name=context,proto3" json:"context,omitempty"`
}

func (m *ConfChange) Reset()         { *m = ConfChange{} }
func (m *ConfChange) String() string { return proto.CompactTextString(m) }
func (*ConfChange) ProtoMessage()    {}

func (m *ConfChange) Marshal() ([]byte, error) { return proto.Marshal(m) }
func (m *ConfChange) Unmarshal(b []byte) error { return proto.Unmarshal(b, m) }
