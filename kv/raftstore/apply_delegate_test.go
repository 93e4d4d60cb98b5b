package raftstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikv-apply/raftapply/kv/config"
	"github.com/tikv-apply/raftapply/kv/raftstore/importer"
	"github.com/tikv-apply/raftapply/kv/raftstore/message"
	"github.com/tikv-apply/raftapply/kv/util/engine_util"
	"github.com/tikv-apply/raftapply/proto/pkg/eraftpb"
	"github.com/tikv-apply/raftapply/proto/pkg/import_sstpb"
	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
	"github.com/tikv-apply/raftapply/proto/pkg/raft_cmdpb"
	rspb "github.com/tikv-apply/raftapply/proto/pkg/raft_serverpb"
)

func newTestApplyContext(t *testing.T) *applyContext {
	t.Helper()
	dir := t.TempDir()
	db, err := engine_util.OpenDB(dir)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.NewDefaultConfig()
	cfg.DataDir = dir
	notifier := make(chan message.Msg, 64)
	router := newApplyRouter()
	host := NewCoprocessorHost()
	return newApplyContext("test", engine_util.NewEngines(db, db), importer.NewNoopImporter(), host, router, notifier, cfg)
}

func newTestRegion(id uint64, start, end []byte) *metapb.Region {
	return &metapb.Region{
		Id:          id,
		StartKey:    start,
		EndKey:      end,
		RegionEpoch: &metapb.RegionEpoch{ConfVer: 1, Version: 1},
		Peers:       []*metapb.Peer{{Id: 1, StoreId: 1}, {Id: 2, StoreId: 2}},
	}
}

func newTestDelegate(region *metapb.Region) *applyDelegate {
	return newApplyDelegateFromRegistration(1, 1, region, rspb.RaftApplyState{
		TruncatedState: &rspb.RaftTruncatedState{},
	}, 1)
}

func normalEntry(t *testing.T, index, term uint64, req *raft_cmdpb.RaftCmdRequest) eraftpb.Entry {
	t.Helper()
	data, err := req.Marshal()
	require.NoError(t, err)
	return eraftpb.Entry{EntryType: eraftpb.EntryNormal, Index: index, Term: term, Data: data}
}

func cmdHeader(region *metapb.Region) *raft_cmdpb.RaftRequestHeader {
	return &raft_cmdpb.RaftRequestHeader{RegionId: region.Id, RegionEpoch: region.RegionEpoch}
}

func putCmd(region *metapb.Region, key, value []byte) *raft_cmdpb.RaftCmdRequest {
	return &raft_cmdpb.RaftCmdRequest{
		Header: cmdHeader(region),
		Requests: []*raft_cmdpb.Request{
			{CmdType: raft_cmdpb.CmdType_Put, Put: &raft_cmdpb.PutRequest{Key: key, Value: value}},
		},
	}
}

func TestApplyDelegatePut(t *testing.T) {
	aCtx := newTestApplyContext(t)
	region := newTestRegion(1, nil, nil)
	d := newTestDelegate(region)

	entries := []eraftpb.Entry{normalEntry(t, 1, 1, putCmd(region, []byte("k1"), []byte("v1")))}
	d.handleRaftCommittedEntries(aCtx, entries)
	aCtx.flush()

	assert.Equal(t, uint64(1), d.applyState.AppliedIndex)
	val, err := engine_util.GetCF(aCtx.engines.Kv, engine_util.CfDefault, []byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), val)
}

func TestApplyDelegateDelete(t *testing.T) {
	aCtx := newTestApplyContext(t)
	region := newTestRegion(1, nil, nil)
	d := newTestDelegate(region)

	delCmd := &raft_cmdpb.RaftCmdRequest{
		Header: cmdHeader(region),
		Requests: []*raft_cmdpb.Request{
			{CmdType: raft_cmdpb.CmdType_Delete, Delete: &raft_cmdpb.DeleteRequest{Key: []byte("k1")}},
		},
	}
	entries := []eraftpb.Entry{
		normalEntry(t, 1, 1, putCmd(region, []byte("k1"), []byte("v1"))),
		normalEntry(t, 2, 1, delCmd),
	}
	d.handleRaftCommittedEntries(aCtx, entries)
	aCtx.flush()

	_, err := engine_util.GetCF(aCtx.engines.Kv, engine_util.CfDefault, []byte("k1"))
	assert.Error(t, err)
}

func TestApplyDelegateEpochMismatchAdvancesCursorButRejectsWrite(t *testing.T) {
	aCtx := newTestApplyContext(t)
	region := newTestRegion(1, nil, nil)
	d := newTestDelegate(region)

	stale := putCmd(region, []byte("k1"), []byte("v1"))
	stale.Header.RegionEpoch = &metapb.RegionEpoch{ConfVer: 1, Version: 0}

	d.handleRaftCommittedEntries(aCtx, []eraftpb.Entry{normalEntry(t, 1, 1, stale)})
	aCtx.flush()

	assert.Equal(t, uint64(1), d.applyState.AppliedIndex)
	_, err := engine_util.GetCF(aCtx.engines.Kv, engine_util.CfDefault, []byte("k1"))
	assert.Error(t, err)
}

func TestApplyDelegateIngestSstEpochMismatch(t *testing.T) {
	aCtx := newTestApplyContext(t)
	region := newTestRegion(1, nil, nil)
	d := newTestDelegate(region)

	sst := &import_sstpb.SSTMeta{
		Uuid:        []byte("uuid-1"),
		RegionId:    region.Id,
		RegionEpoch: &metapb.RegionEpoch{ConfVer: 1, Version: 9}, // differs from region's Version:1
		Cf:          engine_util.CfDefault,
		Range:       &import_sstpb.Range{Start: []byte("a"), End: []byte("z")},
	}
	req := &raft_cmdpb.RaftCmdRequest{
		Header: cmdHeader(region),
		Requests: []*raft_cmdpb.Request{{
			CmdType:   raft_cmdpb.CmdType_IngestSST,
			IngestSst: &raft_cmdpb.IngestSSTRequest{Sst: sst},
		}},
	}

	d.handleRaftCommittedEntries(aCtx, []eraftpb.Entry{normalEntry(t, 1, 1, req)})
	aCtx.flush()

	assert.Equal(t, uint64(1), d.applyState.AppliedIndex)
}

func TestApplyDelegateBatchSplitRightDerive(t *testing.T) {
	aCtx := newTestApplyContext(t)
	region := newTestRegion(1, []byte("a"), []byte("z"))
	d := newTestDelegate(region)

	split := &raft_cmdpb.RaftCmdRequest{
		Header: cmdHeader(region),
		AdminRequest: &raft_cmdpb.AdminRequest{
			CmdType: raft_cmdpb.AdminCmdType_BatchSplit,
			BatchSplit: &raft_cmdpb.BatchSplitRequest{
				RightDerive: true,
				Requests: []*raft_cmdpb.SplitRequest{
					{SplitKey: []byte("m"), NewRegionId: 2, NewPeerIds: []uint64{10, 20}},
				},
			},
		},
	}
	d.handleRaftCommittedEntries(aCtx, []eraftpb.Entry{normalEntry(t, 1, 1, split)})
	aCtx.flush()

	require.Len(t, aCtx.applyTaskResList, 0) // flushed already drains applyTaskResList via notifier
	// region 1 keeps the right half [m, z), derived region id stays 1.
	assert.Equal(t, []byte("m"), d.region.StartKey)
	assert.Equal(t, []byte("z"), d.region.EndKey)
	assert.Equal(t, uint64(1), d.region.Id)
}

func TestApplyDelegateRemoveNodeSelfMarksPendingRemove(t *testing.T) {
	aCtx := newTestApplyContext(t)
	region := newTestRegion(1, nil, nil)
	d := newTestDelegate(region)
	d.id = 1 // matches the peer at StoreId 1 in newTestRegion

	confChangeReq := &raft_cmdpb.RaftCmdRequest{
		Header: cmdHeader(region),
		AdminRequest: &raft_cmdpb.AdminRequest{
			CmdType: raft_cmdpb.AdminCmdType_ChangePeer,
			ChangePeer: &raft_cmdpb.ChangePeerRequest{
				ChangeType: eraftpb.ConfChangeType_RemoveNode,
				Peer:       region.Peers[0],
			},
		},
	}
	data, err := confChangeReq.Marshal()
	require.NoError(t, err)
	cc := &eraftpb.ConfChange{ChangeType: eraftpb.ConfChangeType_RemoveNode, Context: data}
	ccData, err := cc.Marshal()
	require.NoError(t, err)

	entry := eraftpb.Entry{EntryType: eraftpb.EntryConfChange, Index: 1, Term: 1, Data: ccData}
	d.handleRaftCommittedEntries(aCtx, []eraftpb.Entry{entry})
	aCtx.flush()

	assert.True(t, d.pendingRemove)
}
