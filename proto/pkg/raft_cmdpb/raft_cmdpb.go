// Package raft_cmdpb is the command envelope the apply delegate consumes:
// a RaftCmdRequest decoded from a committed normal entry's Data, carrying
// either a batch of data-plane Requests or a single AdminRequest, and the
// RaftCmdResponse it produces.
package raft_cmdpb

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tikv-apply/raftapply/proto/pkg/eraftpb"
	"github.com/tikv-apply/raftapply/proto/pkg/errorpb"
	"github.com/tikv-apply/raftapply/proto/pkg/import_sstpb"
	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
)

type CmdType int32

const (
	CmdType_Invalid     CmdType = 0
	CmdType_Get         CmdType = 1
	CmdType_Put         CmdType = 2
	CmdType_Delete      CmdType = 3
	CmdType_Snap        CmdType = 4
	CmdType_DeleteRange CmdType = 5
	CmdType_IngestSST   CmdType = 6
)

func (t CmdType) String() string {
	switch t {
	case CmdType_Get:
		return "Get"
	case CmdType_Put:
		return "Put"
	case CmdType_Delete:
		return "Delete"
	case CmdType_Snap:
		return "Snap"
	case CmdType_DeleteRange:
		return "DeleteRange"
	case CmdType_IngestSST:
		return "IngestSST"
	default:
		return "Invalid"
	}
}

type AdminCmdType int32

const (
	AdminCmdType_InvalidAdmin    AdminCmdType = 0
	AdminCmdType_ChangePeer      AdminCmdType = 1
	AdminCmdType_Split           AdminCmdType = 2
	AdminCmdType_CompactLog      AdminCmdType = 3
	AdminCmdType_TransferLeader  AdminCmdType = 4
	AdminCmdType_ComputeHash     AdminCmdType = 5
	AdminCmdType_VerifyHash      AdminCmdType = 6
	AdminCmdType_PrepareMerge    AdminCmdType = 7
	AdminCmdType_CommitMerge     AdminCmdType = 8
	AdminCmdType_RollbackMerge   AdminCmdType = 9
	AdminCmdType_BatchSplit      AdminCmdType = 10
)

func (t AdminCmdType) String() string {
	switch t {
	case AdminCmdType_ChangePeer:
		return "ChangePeer"
	case AdminCmdType_Split:
		return "Split"
	case AdminCmdType_CompactLog:
		return "CompactLog"
	case AdminCmdType_TransferLeader:
		return "TransferLeader"
	case AdminCmdType_ComputeHash:
		return "ComputeHash"
	case AdminCmdType_VerifyHash:
		return "VerifyHash"
	case AdminCmdType_PrepareMerge:
		return "PrepareMerge"
	case AdminCmdType_CommitMerge:
		return "CommitMerge"
	case AdminCmdType_RollbackMerge:
		return "RollbackMerge"
	case AdminCmdType_BatchSplit:
		return "BatchSplit"
	default:
		return "InvalidAdmin"
	}
}

// ---- data-plane requests/responses ----

type GetRequest struct {
	Cf  string `protobuf:"bytes,1,opt,name=cf,proto3" json:"cf,omitempty"`
	Key []byte `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
}

func (m *GetRequest) Reset()         { *m = GetRequest{} }
func (m *GetRequest) String() string { return proto.CompactTextString(m) }
func (*GetRequest) ProtoMessage()    {}

type GetResponse struct {
	Value []byte `protobuf:"bytes,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *GetResponse) Reset()         { *m = GetResponse{} }
func (m *GetResponse) String() string { return proto.CompactTextString(m) }
func (*GetResponse) ProtoMessage()    {}

type PutRequest struct {
	Cf    string `protobuf:"bytes,1,opt,name=cf,proto3" json:"cf,omitempty"`
	Key   []byte `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
	Value []byte `protobuf:"bytes,3,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *PutRequest) Reset()         { *m = PutRequest{} }
func (m *PutRequest) String() string { return proto.CompactTextString(m) }
func (*PutRequest) ProtoMessage()    {}

type PutResponse struct{}

func (m *PutResponse) Reset()         { *m = PutResponse{} }
func (m *PutResponse) String() string { return proto.CompactTextString(m) }
func (*PutResponse) ProtoMessage()    {}

type DeleteRequest struct {
	Cf  string `protobuf:"bytes,1,opt,name=cf,proto3" json:"cf,omitempty"`
	Key []byte `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
}

func (m *DeleteRequest) Reset()         { *m = DeleteRequest{} }
func (m *DeleteRequest) String() string { return proto.CompactTextString(m) }
func (*DeleteRequest) ProtoMessage()    {}

type DeleteResponse struct{}

func (m *DeleteResponse) Reset()         { *m = DeleteResponse{} }
func (m *DeleteResponse) String() string { return proto.CompactTextString(m) }
func (*DeleteResponse) ProtoMessage()    {}

type SnapRequest struct{}

func (m *SnapRequest) Reset()         { *m = SnapRequest{} }
func (m *SnapRequest) String() string { return proto.CompactTextString(m) }
func (*SnapRequest) ProtoMessage()    {}

type SnapResponse struct {
	Region *metapb.Region `protobuf:"bytes,1,opt,name=region,proto3" json:"region,omitempty"`
}

func (m *SnapResponse) Reset()         { *m = SnapResponse{} }
func (m *SnapResponse) String() string { return proto.CompactTextString(m) }
func (*SnapResponse) ProtoMessage()    {}

// DeleteRangeRequest removes [StartKey, EndKey) from a CF. NotifyOnly
// requests the exec result without the data actually being scheduled for
// deletion (still emits a DeleteRange exec result — see Open Question 3).
type DeleteRangeRequest struct {
	Cf         string `protobuf:"bytes,1,opt,name=cf,proto3" json:"cf,omitempty"`
	StartKey   []byte `protobuf:"bytes,2,opt,name=start_key,json=startKey,proto3" json:"start_key,omitempty"`
	EndKey     []byte `protobuf:"bytes,3,opt,name=end_key,json=endKey,proto3" json:"end_key,omitempty"`
	NotifyOnly bool   `protobuf:"varint,4,opt,name=notify_only,json=notifyOnly,proto3" json:"notify_only,omitempty"`
}

func (m *DeleteRangeRequest) Reset()         { *m = DeleteRangeRequest{} }
func (m *DeleteRangeRequest) String() string { return proto.CompactTextString(m) }
func (*DeleteRangeRequest) ProtoMessage()    {}

type DeleteRangeResponse struct{}

func (m *DeleteRangeResponse) Reset()         { *m = DeleteRangeResponse{} }
func (m *DeleteRangeResponse) String() string { return proto.CompactTextString(m) }
func (*DeleteRangeResponse) ProtoMessage()    {}

type IngestSSTRequest struct {
	Sst *import_sstpb.SSTMeta `protobuf:"bytes,1,opt,name=sst,proto3" json:"sst,omitempty"`
}

func (m *IngestSSTRequest) Reset()         { *m = IngestSSTRequest{} }
func (m *IngestSSTRequest) String() string { return proto.CompactTextString(m) }
func (*IngestSSTRequest) ProtoMessage()    {}

type IngestSSTResponse struct{}

func (m *IngestSSTResponse) Reset()         { *m = IngestSSTResponse{} }
func (m *IngestSSTResponse) String() string { return proto.CompactTextString(m) }
func (*IngestSSTResponse) ProtoMessage()    {}

// Request is a single data-plane command inside a RaftCmdRequest's batch.
type Request struct {
	CmdType     CmdType              `protobuf:"varint,1,opt,name=cmd_type,json=cmdType,proto3,enum=raft_cmdpb.CmdType" json:"cmd_type,omitempty"`
	Get         *GetRequest          `protobuf:"bytes,2,opt,name=get,proto3" json:"get,omitempty"`
	Put         *PutRequest          `protobuf:"bytes,3,opt,name=put,proto3" json:"put,omitempty"`
	Delete      *DeleteRequest       `protobuf:"bytes,4,opt,name=delete,proto3" json:"delete,omitempty"`
	Snap        *SnapRequest         `protobuf:"bytes,5,opt,name=snap,proto3" json:"snap,omitempty"`
	DeleteRange *DeleteRangeRequest  `protobuf:"bytes,6,opt,name=delete_range,json=deleteRange,proto3" json:"delete_range,omitempty"`
	IngestSst   *IngestSSTRequest    `protobuf:"bytes,7,opt,name=ingest_sst,json=ingestSst,proto3" json:"ingest_sst,omitempty"`
}

func (m *Request) Reset()         { *m = Request{} }
func (m *Request) String() string { return proto.CompactTextString(m) }
func (*Request) ProtoMessage()    {}

type Response struct {
	CmdType     CmdType              `protobuf:"varint,1,opt,name=cmd_type,json=cmdType,proto3,enum=raft_cmdpb.CmdType" json:"cmd_type,omitempty"`
	Get         *GetResponse         `protobuf:"bytes,2,opt,name=get,proto3" json:"get,omitempty"`
	Put         *PutResponse         `protobuf:"bytes,3,opt,name=put,proto3" json:"put,omitempty"`
	Delete      *DeleteResponse      `protobuf:"bytes,4,opt,name=delete,proto3" json:"delete,omitempty"`
	Snap        *SnapResponse        `protobuf:"bytes,5,opt,name=snap,proto3" json:"snap,omitempty"`
	DeleteRange *DeleteRangeResponse `protobuf:"bytes,6,opt,name=delete_range,json=deleteRange,proto3" json:"delete_range,omitempty"`
	IngestSst   *IngestSSTResponse   `protobuf:"bytes,7,opt,name=ingest_sst,json=ingestSst,proto3" json:"ingest_sst,omitempty"`
}

func (m *Response) Reset()         { *m = Response{} }
func (m *Response) String() string { return proto.CompactTextString(m) }
func (*Response) ProtoMessage()    {}

// ---- admin requests/responses ----

type ChangePeerRequest struct {
	ChangeType eraftpb.ConfChangeType `protobuf:"varint,1,opt,name=change_type,json=changeType,proto3,enum=eraftpb.ConfChangeType" json:"change_type,omitempty"`
	Peer       *metapb.Peer           `protobuf:"bytes,2,opt,name=peer,proto3" json:"peer,omitempty"`
}

func (m *ChangePeerRequest) Reset()         { *m = ChangePeerRequest{} }
func (m *ChangePeerRequest) String() string { return proto.CompactTextString(m) }
func (*ChangePeerRequest) ProtoMessage()    {}

type ChangePeerResponse struct {
	Region *metapb.Region `protobuf:"bytes,1,opt,name=region,proto3" json:"region,omitempty"`
}

func (m *ChangePeerResponse) Reset()         { *m = ChangePeerResponse{} }
func (m *ChangePeerResponse) String() string { return proto.CompactTextString(m) }
func (*ChangePeerResponse) ProtoMessage()    {}

type SplitRequest struct {
	SplitKey    []byte `protobuf:"bytes,1,opt,name=split_key,json=splitKey,proto3" json:"split_key,omitempty"`
	NewRegionId uint64 `protobuf:"varint,2,opt,name=new_region_id,json=newRegionId,proto3" json:"new_region_id,omitempty"`
	NewPeerIds  []uint64 `protobuf:"varint,3,rep,name=new_peer_ids,json=newPeerIds,proto3" json:"new_peer_ids,omitempty"`
}

func (m *SplitRequest) Reset()         { *m = SplitRequest{} }
func (m *SplitRequest) String() string { return proto.CompactTextString(m) }
func (*SplitRequest) ProtoMessage()    {}

// BatchSplitRequest carries one or more ordered split keys, producing
// len(Requests)+1 derived regions from the original region.
type BatchSplitRequest struct {
	Requests []*SplitRequest `protobuf:"bytes,1,rep,name=requests,proto3" json:"requests,omitempty"`
	RightDerive bool         `protobuf:"varint,2,opt,name=right_derive,json=rightDerive,proto3" json:"right_derive,omitempty"`
}

func (m *BatchSplitRequest) Reset()         { *m = BatchSplitRequest{} }
func (m *BatchSplitRequest) String() string { return proto.CompactTextString(m) }
func (*BatchSplitRequest) ProtoMessage()    {}

type BatchSplitResponse struct {
	Regions []*metapb.Region `protobuf:"bytes,1,rep,name=regions,proto3" json:"regions,omitempty"`
}

func (m *BatchSplitResponse) Reset()         { *m = BatchSplitResponse{} }
func (m *BatchSplitResponse) String() string { return proto.CompactTextString(m) }
func (*BatchSplitResponse) ProtoMessage()    {}

type CompactLogRequest struct {
	CompactIndex uint64 `protobuf:"varint,1,opt,name=compact_index,json=compactIndex,proto3" json:"compact_index,omitempty"`
	CompactTerm  uint64 `protobuf:"varint,2,opt,name=compact_term,json=compactTerm,proto3" json:"compact_term,omitempty"`
}

func (m *CompactLogRequest) Reset()         { *m = CompactLogRequest{} }
func (m *CompactLogRequest) String() string { return proto.CompactTextString(m) }
func (*CompactLogRequest) ProtoMessage()    {}

type CompactLogResponse struct{}

func (m *CompactLogResponse) Reset()         { *m = CompactLogResponse{} }
func (m *CompactLogResponse) String() string { return proto.CompactTextString(m) }
func (*CompactLogResponse) ProtoMessage()    {}

type TransferLeaderRequest struct {
	Peer *metapb.Peer `protobuf:"bytes,1,opt,name=peer,proto3" json:"peer,omitempty"`
}

func (m *TransferLeaderRequest) Reset()         { *m = TransferLeaderRequest{} }
func (m *TransferLeaderRequest) String() string { return proto.CompactTextString(m) }
func (*TransferLeaderRequest) ProtoMessage()    {}

type TransferLeaderResponse struct{}

func (m *TransferLeaderResponse) Reset()         { *m = TransferLeaderResponse{} }
func (m *TransferLeaderResponse) String() string { return proto.CompactTextString(m) }
func (*TransferLeaderResponse) ProtoMessage()    {}

// ComputeHashRequest schedules a consistency-check snapshot; the actual
// hashing is delegated to an external hasher.
type ComputeHashRequest struct {
	Context []byte `protobuf:"bytes,1,opt,name=context,proto3" json:"context,omitempty"`
}

func (m *ComputeHashRequest) Reset()         { *m = ComputeHashRequest{} }
func (m *ComputeHashRequest) String() string { return proto.CompactTextString(m) }
func (*ComputeHashRequest) ProtoMessage()    {}

type ComputeHashResponse struct {
	Index uint64 `protobuf:"varint,1,opt,name=index,proto3" json:"index,omitempty"`
}

func (m *ComputeHashResponse) Reset()         { *m = ComputeHashResponse{} }
func (m *ComputeHashResponse) String() string { return proto.CompactTextString(m) }
func (*ComputeHashResponse) ProtoMessage()    {}

type VerifyHashRequest struct {
	Index uint64 `protobuf:"varint,1,opt,name=index,proto3" json:"index,omitempty"`
	Hash  []byte `protobuf:"bytes,2,opt,name=hash,proto3" json:"hash,omitempty"`
}

func (m *VerifyHashRequest) Reset()         { *m = VerifyHashRequest{} }
func (m *VerifyHashRequest) String() string { return proto.CompactTextString(m) }
func (*VerifyHashRequest) ProtoMessage()    {}

type VerifyHashResponse struct{}

func (m *VerifyHashResponse) Reset()         { *m = VerifyHashResponse{} }
func (m *VerifyHashResponse) String() string { return proto.CompactTextString(m) }
func (*VerifyHashResponse) ProtoMessage()    {}

// PrepareMergeRequest begins the merge rendezvous from the source's side:
// MinIndex is the commit index the source must reach before the target may
// CommitMerge.
type PrepareMergeRequest struct {
	MinIndex uint64         `protobuf:"varint,1,opt,name=min_index,json=minIndex,proto3" json:"min_index,omitempty"`
	Target   *metapb.Region `protobuf:"bytes,2,opt,name=target,proto3" json:"target,omitempty"`
}

func (m *PrepareMergeRequest) Reset()         { *m = PrepareMergeRequest{} }
func (m *PrepareMergeRequest) String() string { return proto.CompactTextString(m) }
func (*PrepareMergeRequest) ProtoMessage()    {}

type PrepareMergeResponse struct{}

func (m *PrepareMergeResponse) Reset()         { *m = PrepareMergeResponse{} }
func (m *PrepareMergeResponse) String() string { return proto.CompactTextString(m) }
func (*PrepareMergeResponse) ProtoMessage()    {}

// CommitMergeRequest carries the source region's meta, the commit index it
// had reached when PrepareMerge was proposed on the source, and the source's
// log entries up to that index, which the source's own applier replays
// (handleCatchUpLogs) before the target folds the source in.
type CommitMergeRequest struct {
	Source      *metapb.Region    `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	CommitIndex uint64            `protobuf:"varint,2,opt,name=commit,proto3" json:"commit,omitempty"`
	Entries     []*eraftpb.Entry  `protobuf:"bytes,3,rep,name=entries,proto3" json:"entries,omitempty"`
}

func (m *CommitMergeRequest) Reset()         { *m = CommitMergeRequest{} }
func (m *CommitMergeRequest) String() string { return proto.CompactTextString(m) }
func (*CommitMergeRequest) ProtoMessage()    {}

type CommitMergeResponse struct{}

func (m *CommitMergeResponse) Reset()         { *m = CommitMergeResponse{} }
func (m *CommitMergeResponse) String() string { return proto.CompactTextString(m) }
func (*CommitMergeResponse) ProtoMessage()    {}

type RollbackMergeRequest struct {
	CommitIndex uint64 `protobuf:"varint,1,opt,name=commit,proto3" json:"commit,omitempty"`
}

func (m *RollbackMergeRequest) Reset()         { *m = RollbackMergeRequest{} }
func (m *RollbackMergeRequest) String() string { return proto.CompactTextString(m) }
func (*RollbackMergeRequest) ProtoMessage()    {}

type RollbackMergeResponse struct{}

func (m *RollbackMergeResponse) Reset()         { *m = RollbackMergeResponse{} }
func (m *RollbackMergeResponse) String() string { return proto.CompactTextString(m) }
func (*RollbackMergeResponse) ProtoMessage()    {}

type AdminRequest struct {
	CmdType        AdminCmdType           `protobuf:"varint,1,opt,name=cmd_type,json=cmdType,proto3,enum=raft_cmdpb.AdminCmdType" json:"cmd_type,omitempty"`
	ChangePeer     *ChangePeerRequest     `protobuf:"bytes,2,opt,name=change_peer,json=changePeer,proto3" json:"change_peer,omitempty"`
	Split          *SplitRequest          `protobuf:"bytes,3,opt,name=split,proto3" json:"split,omitempty"`
	BatchSplit     *BatchSplitRequest     `protobuf:"bytes,4,opt,name=splits,proto3" json:"splits,omitempty"`
	CompactLog     *CompactLogRequest     `protobuf:"bytes,5,opt,name=compact_log,json=compactLog,proto3" json:"compact_log,omitempty"`
	TransferLeader *TransferLeaderRequest `protobuf:"bytes,6,opt,name=transfer_leader,json=transferLeader,proto3" json:"transfer_leader,omitempty"`
	ComputeHash    *ComputeHashRequest    `protobuf:"bytes,7,opt,name=compute_hash,json=computeHash,proto3" json:"compute_hash,omitempty"`
	VerifyHash     *VerifyHashRequest     `protobuf:"bytes,8,opt,name=verify_hash,json=verifyHash,proto3" json:"verify_hash,omitempty"`
	PrepareMerge   *PrepareMergeRequest   `protobuf:"bytes,9,opt,name=prepare_merge,json=prepareMerge,proto3" json:"prepare_merge,omitempty"`
	CommitMerge    *CommitMergeRequest    `protobuf:"bytes,10,opt,name=commit_merge,json=commitMerge,proto3" json:"commit_merge,omitempty"`
	RollbackMerge  *RollbackMergeRequest  `protobuf:"bytes,11,opt,name=rollback_merge,json=rollbackMerge,proto3" json:"rollback_merge,omitempty"`
}

func (m *AdminRequest) Reset()         { *m = AdminRequest{} }
func (m *AdminRequest) String() string { return proto.CompactTextString(m) }
func (*AdminRequest) ProtoMessage()    {}

func (m *AdminRequest) GetCmdType() AdminCmdType {
	if m != nil {
		return m.CmdType
	}
	return AdminCmdType_InvalidAdmin
}

type AdminResponse struct {
	CmdType        AdminCmdType            `protobuf:"varint,1,opt,name=cmd_type,json=cmdType,proto3,enum=raft_cmdpb.AdminCmdType" json:"cmd_type,omitempty"`
	ChangePeer     *ChangePeerResponse     `protobuf:"bytes,2,opt,name=change_peer,json=changePeer,proto3" json:"change_peer,omitempty"`
	BatchSplit     *BatchSplitResponse     `protobuf:"bytes,3,opt,name=splits,proto3" json:"splits,omitempty"`
	CompactLog     *CompactLogResponse     `protobuf:"bytes,4,opt,name=compact_log,json=compactLog,proto3" json:"compact_log,omitempty"`
	TransferLeader *TransferLeaderResponse `protobuf:"bytes,5,opt,name=transfer_leader,json=transferLeader,proto3" json:"transfer_leader,omitempty"`
	ComputeHash    *ComputeHashResponse    `protobuf:"bytes,6,opt,name=compute_hash,json=computeHash,proto3" json:"compute_hash,omitempty"`
	VerifyHash     *VerifyHashResponse     `protobuf:"bytes,7,opt,name=verify_hash,json=verifyHash,proto3" json:"verify_hash,omitempty"`
	PrepareMerge   *PrepareMergeResponse   `protobuf:"bytes,8,opt,name=prepare_merge,json=prepareMerge,proto3" json:"prepare_merge,omitempty"`
	CommitMerge    *CommitMergeResponse    `protobuf:"bytes,9,opt,name=commit_merge,json=commitMerge,proto3" json:"commit_merge,omitempty"`
	RollbackMerge  *RollbackMergeResponse  `protobuf:"bytes,10,opt,name=rollback_merge,json=rollbackMerge,proto3" json:"rollback_merge,omitempty"`
}

func (m *AdminResponse) Reset()         { *m = AdminResponse{} }
func (m *AdminResponse) String() string { return proto.CompactTextString(m) }
func (*AdminResponse) ProtoMessage()    {}

// ---- request/response envelopes ----

type RaftRequestHeader struct {
	RegionId    uint64              `protobuf:"varint,1,opt,name=region_id,json=regionId,proto3" json:"region_id,omitempty"`
	Peer        *metapb.Peer        `protobuf:"bytes,2,opt,name=peer,proto3" json:"peer,omitempty"`
	RegionEpoch *metapb.RegionEpoch `protobuf:"bytes,3,opt,name=region_epoch,json=regionEpoch,proto3" json:"region_epoch,omitempty"`
	Term        uint64              `protobuf:"varint,4,opt,name=term,proto3" json:"term,omitempty"`
}

func (m *RaftRequestHeader) Reset()         { *m = RaftRequestHeader{} }
func (m *RaftRequestHeader) String() string { return proto.CompactTextString(m) }
func (*RaftRequestHeader) ProtoMessage()    {}

func (m *RaftRequestHeader) GetRegionId() uint64 {
	if m != nil {
		return m.RegionId
	}
	return 0
}

func (m *RaftRequestHeader) GetRegionEpoch() *metapb.RegionEpoch {
	if m != nil {
		return m.RegionEpoch
	}
	return nil
}

type RaftResponseHeader struct {
	Error       *errorpb.Error      `protobuf:"bytes,1,opt,name=error,proto3" json:"error,omitempty"`
	Uuid        []byte              `protobuf:"bytes,2,opt,name=uuid,proto3" json:"uuid,omitempty"`
	CurrentTerm uint64              `protobuf:"varint,3,opt,name=current_term,json=currentTerm,proto3" json:"current_term,omitempty"`
}

func (m *RaftResponseHeader) Reset()         { *m = RaftResponseHeader{} }
func (m *RaftResponseHeader) String() string { return proto.CompactTextString(m) }
func (*RaftResponseHeader) ProtoMessage()    {}

// RaftCmdRequest is what a committed normal entry's Data unmarshals into.
// Exactly one of Requests (batched data commands) or AdminRequest is set.
type RaftCmdRequest struct {
	Header       *RaftRequestHeader `protobuf:"bytes,1,opt,name=header,proto3" json:"header,omitempty"`
	Requests     []*Request         `protobuf:"bytes,2,rep,name=requests,proto3" json:"requests,omitempty"`
	AdminRequest *AdminRequest      `protobuf:"bytes,3,opt,name=admin_request,json=adminRequest,proto3" json:"admin_request,omitempty"`
}

func (m *RaftCmdRequest) Reset()         { *m = RaftCmdRequest{} }
func (m *RaftCmdRequest) String() string { return proto.CompactTextString(m) }
func (*RaftCmdRequest) ProtoMessage()    {}

func (m *RaftCmdRequest) Marshal() ([]byte, error) { return proto.Marshal(m) }
func (m *RaftCmdRequest) Unmarshal(b []byte) error { return proto.Unmarshal(b, m) }

func (m *RaftCmdRequest) GetHeader() *RaftRequestHeader {
	if m != nil {
		return m.Header
	}
	return nil
}

func (m *RaftCmdRequest) GetRequests() []*Request {
	if m != nil {
		return m.Requests
	}
	return nil
}

func (m *RaftCmdRequest) GetAdminRequest() *AdminRequest {
	if m != nil {
		return m.AdminRequest
	}
	return nil
}

type RaftCmdResponse struct {
	Header        *RaftResponseHeader `protobuf:"bytes,1,opt,name=header,proto3" json:"header,omitempty"`
	Responses     []*Response         `protobuf:"bytes,2,rep,name=responses,proto3" json:"responses,omitempty"`
	AdminResponse *AdminResponse      `protobuf:"bytes,3,opt,name=admin_response,json=adminResponse,proto3" json:"admin_response,omitempty"`
}

func (m *RaftCmdResponse) Reset()         { *m = RaftCmdResponse{} }
func (m *RaftCmdResponse) String() string { return proto.CompactTextString(m) }
func (*RaftCmdResponse) ProtoMessage()    {}

func (m *RaftCmdResponse) Marshal() ([]byte, error) { return proto.Marshal(m) }
func (m *RaftCmdResponse) Unmarshal(b []byte) error { return proto.Unmarshal(b, m) }
