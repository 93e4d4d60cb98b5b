package raftstore

import (
	"bytes"
	"fmt"
	"math"

	"github.com/Connor1996/badger"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/tikv-apply/raftapply/kv/raftstore/message"
	"github.com/tikv-apply/raftapply/kv/raftstore/meta"
	"github.com/tikv-apply/raftapply/kv/raftstore/util"
	"github.com/tikv-apply/raftapply/kv/util/engine_util"
	"github.com/tikv-apply/raftapply/proto/pkg/eraftpb"
	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
	"github.com/tikv-apply/raftapply/proto/pkg/raft_cmdpb"
	rspb "github.com/tikv-apply/raftapply/proto/pkg/raft_serverpb"
)

// Messages the router hands to an applier's handleTask.

type MsgApplyProposal struct {
	Id       uint64
	RegionId uint64
	Props    []*proposal
}

type proposal struct {
	isConfChange bool
	index        uint64
	term         uint64
	cb           *message.Callback
}

type MsgApplyCommitted struct {
	RegionId uint64
	Term     uint64
	Entries  []eraftpb.Entry
}

// MsgApplyRefresh re-registers an applier with a fresh region/term, e.g.
// after the upper half applied a snapshot out from under it.
type MsgApplyRefresh struct {
	Id     uint64
	Term   uint64
	Region *metapb.Region
}

type MsgApplyRes struct {
	regionID     uint64
	execResults  []execResult
	sizeDiffHint uint64
}

type MsgApplyDestroy struct {
	RegionId uint64
}

type MsgApplyChange struct {
	RegionId    uint64
	Enable      bool
	ObserveID   ObserveID
	Observer    CmdObserver
	RegionEpoch *metapb.RegionEpoch
	Cb          *message.Callback
}

type MsgApplySnapshot struct {
	RegionId uint64
	Sync     bool
	Cb       func(region *metapb.Region, applyState *rspb.RaftApplyState)
}

// MsgValidate is a test-only hook: it is queued through the region's
// mailbox like any other message, and the worker that handles it calls F
// with the applier's current region and apply state.
type MsgValidate struct {
	RegionId uint64
	F        func(region *metapb.Region, applyState *rspb.RaftApplyState)
}

// execResult is one of execResultChangePeer, execResultCompactLog,
// execResultSplitRegion, execResultPrepareMerge, execResultCommitMerge,
// execResultRollbackMerge, execResultComputeHash, execResultVerifyHash,
// execResultDeleteRange or execResultIngestSst.
type execResult = interface{}

type execResultChangePeer struct {
	confChange *eraftpb.ConfChange
	peer       *metapb.Peer
	region     *metapb.Region
}

type execResultCompactLog struct {
	truncatedIndex uint64
	firstIndex     uint64
}

type execResultSplitRegion struct {
	regions []*metapb.Region
	derived *metapb.Region
}

type execResultPrepareMerge struct {
	region *metapb.Region
	state  *rspb.MergeState
}

type execResultCommitMerge struct {
	region *metapb.Region
	source *metapb.Region
}

type execResultRollbackMerge struct {
	region *metapb.Region
	commit uint64
}

type execResultComputeHash struct {
	region *metapb.Region
	index  uint64
}

type execResultVerifyHash struct {
	index uint64
	hash  []byte
}

type execResultDeleteRange struct {
	startKey, endKey []byte
}

type execResultIngestSst struct{}

func notifyRegionRemoved(regionID, peerID uint64, cmd pendingCmd) {
	log.Debug("region is removed, notify commands", zap.Uint64("region", regionID),
		zap.Uint64("peer", peerID), zap.Uint64("index", cmd.index), zap.Uint64("term", cmd.term))
	cmd.cb.Done(ErrRespRegionNotFound(regionID))
}

func notifyStaleCommand(regionID, peerID, term uint64, cmd pendingCmd) {
	log.Info("command is stale, skip", zap.Uint64("region", regionID), zap.Uint64("peer", peerID),
		zap.Uint64("index", cmd.index), zap.Uint64("term", cmd.term))
	cmd.cb.Done(ErrRespStaleCommand(term))
}

// yieldState is the explicit suspension record an applier parks itself in
// when it must stop mid-batch, either because it just force-committed
// partway through a large batch of entries, or because it hit a
// CommitMerge that has to wait on the source region. Resuming replays
// pendingEntries, then drains pendingMsgs, exactly where execution left
// off.
type yieldState struct {
	pendingEntries []eraftpb.Entry
	pendingMsgs    []message.Msg
}

// waitMergeState tracks a target delegate paused inside CommitMerge: the
// rendezvous signal the source delegate writes its own region id into once
// its straggler log entries have all been replayed.
type waitMergeState struct {
	logsUpToDate *mergeSignal
}

// applyDelegate is the per-region apply state machine: it owns the pending
// command queue, the durable apply state, and the region descriptor as of
// the last command it executed.
type applyDelegate struct {
	id     uint64
	term   uint64
	region *metapb.Region
	tag    string

	stopped       bool
	pendingRemove bool

	pendingCmds pendingCmdQueue

	isMerging         bool
	lastMergeVersion  uint64
	yield             *yieldState
	waitMerge         *waitMergeState
	readySourceRegion uint64

	applyState       rspb.RaftApplyState
	appliedIndexTerm uint64

	observeID ObserveID

	sizeDiffHint uint64

	// written marks that this delegate has already forced one mid-tick
	// commit; a second force-commit condition in the same tick still
	// commits the buffered writes, then yields before executing the
	// entry, so one region can't hog a worker.
	written bool

	// lastSyncApplyIndex is the highest applied index as of the last
	// commit that counted as synced, i.e. ran with SyncLog configured or
	// syncLogHint set.
	lastSyncApplyIndex uint64
}

func newApplyDelegateFromRegistration(id, term uint64, region *metapb.Region, applyState rspb.RaftApplyState, appliedIndexTerm uint64) *applyDelegate {
	return &applyDelegate{
		id:               id,
		term:             term,
		region:           region,
		tag:              fmt.Sprintf("[region %d] %d", region.GetId(), id),
		applyState:       applyState,
		appliedIndexTerm: appliedIndexTerm,
	}
}

func (d *applyDelegate) regionID() uint64 { return d.region.GetId() }

func (d *applyDelegate) destroy(aCtx *applyContext) {
	log.Info("remove applier", zap.String("tag", d.tag))
	for _, cmd := range d.pendingCmds.normals {
		notifyRegionRemoved(d.region.Id, d.id, cmd)
	}
	d.pendingCmds.normals = nil
	if cmd := d.pendingCmds.takeConfChange(); cmd != nil {
		notifyRegionRemoved(d.region.Id, d.id, *cmd)
	}
	aCtx.host.UnregisterCmdObserver(d.region.Id)
	d.stopped = true
}

func (d *applyDelegate) handleRefresh(reg *MsgApplyRefresh) {
	log.Info("refresh the applier", zap.String("tag", d.tag), zap.Uint64("term", reg.Term))
	for _, cmd := range d.pendingCmds.normals {
		notifyStaleCommand(d.region.Id, d.id, d.term, cmd)
	}
	d.pendingCmds.normals = d.pendingCmds.normals[:0]
	if cmd := d.pendingCmds.takeConfChange(); cmd != nil {
		notifyStaleCommand(d.region.Id, d.id, d.term, *cmd)
	}
	d.id = reg.Id
	d.term = reg.Term
	d.region = reg.Region
	d.tag = fmt.Sprintf("[region %d] %d", reg.Region.Id, reg.Id)
}

func (d *applyDelegate) handleProposal(regionProposal *MsgApplyProposal) {
	regionID, peerID := d.region.Id, d.id
	if d.pendingRemove {
		for _, p := range regionProposal.Props {
			notifyStaleCommand(regionID, peerID, d.term, pendingCmd{index: p.index, term: p.term, cb: p.cb})
		}
		return
	}
	for _, p := range regionProposal.Props {
		cmd := pendingCmd{index: p.index, term: p.term, cb: p.cb}
		if p.isConfChange {
			if confCmd := d.pendingCmds.takeConfChange(); confCmd != nil {
				notifyStaleCommand(regionID, peerID, d.term, *confCmd)
			}
			d.pendingCmds.setConfChange(&cmd)
		} else {
			d.pendingCmds.appendNormal(cmd)
		}
	}
}

func (d *applyDelegate) writeApplyState(wb *engine_util.WriteBatch) {
	if err := meta.WriteApplyState(wb, d.region.Id, &d.applyState); err != nil {
		log.Fatal("failed to buffer apply state", zap.String("tag", d.tag), zap.Error(err))
	}
}

// resumePending checks whether a delegate parked in waitMerge/yield can
// continue: if it's waiting on the merge rendezvous, the source region
// must have signaled completion first. Returns true once the delegate has
// fully drained its yield state and is ready for normal dispatch again.
func (d *applyDelegate) resumePending(aCtx *applyContext) bool {
	if d.waitMerge != nil {
		sourceRegion := d.waitMerge.logsUpToDate.load()
		if sourceRegion == 0 {
			return false
		}
		d.readySourceRegion = sourceRegion
		d.waitMerge = nil
	}
	state := d.yield
	if state == nil {
		return true
	}
	d.yield = nil

	if len(state.pendingEntries) > 0 {
		d.handleRaftCommittedEntries(aCtx, state.pendingEntries)
		if d.yield != nil {
			d.yield.pendingMsgs = state.pendingMsgs
			return false
		}
	}
	if len(state.pendingMsgs) > 0 {
		for i := range state.pendingMsgs {
			d.handleTask(aCtx, state.pendingMsgs[i])
			if d.yield != nil {
				d.yield.pendingMsgs = append([]message.Msg{}, state.pendingMsgs[i+1:]...)
				return false
			}
		}
	}
	return d.yield == nil
}

func (d *applyDelegate) handleTask(aCtx *applyContext, msg message.Msg) {
	switch msg.Type {
	case message.MsgTypeApplyProposal:
		d.handleProposal(msg.Data.(*MsgApplyProposal))
	case message.MsgTypeApplyCommitted:
		m := msg.Data.(*MsgApplyCommitted)
		if len(m.Entries) == 0 || d.pendingRemove {
			return
		}
		d.term = m.Term
		d.handleRaftCommittedEntries(aCtx, m.Entries)
	case message.MsgTypeApplyRefresh:
		d.handleRefresh(msg.Data.(*MsgApplyRefresh))
	case message.MsgTypeApplyDestroy:
		d.destroy(aCtx)
	case message.MsgTypeApplyChange:
		d.handleChange(aCtx, msg.Data.(*MsgApplyChange))
	case message.MsgTypeApplySnapshot:
		d.handleSnapshot(aCtx, msg.Data.(*MsgApplySnapshot))
	case message.MsgTypeApplyCatchUpLogs:
		d.handleCatchUpLogs(aCtx, msg.Data.(*catchUpLogs))
	case message.MsgTypeApplyLogsUpToDate:
		// delivered to the target delegate purely to wake its poller; the
		// rendezvous signal itself already carries the payload.
	case message.MsgTypeValidate:
		v := msg.Data.(*MsgValidate)
		v.F(d.region, &d.applyState)
	}
}

// handleChange implements the observer enable/disable path of the Change
// message: it optionally forces a commit so a freshly attached observer's
// initial view reflects every write already buffered for this region.
func (d *applyDelegate) handleChange(aCtx *applyContext, m *MsgApplyChange) {
	err := util.CheckRegionEpoch(&raft_cmdpb.RaftCmdRequest{
		Header: &raft_cmdpb.RaftRequestHeader{RegionEpoch: m.RegionEpoch},
	}, d.region, true)
	if err == nil && !aCtx.wb.IsEmpty() {
		aCtx.commit(d)
	}
	if m.Enable {
		d.observeID = m.ObserveID
		aCtx.host.RegisterCmdObserver(d.region.Id, m.Observer)
	} else {
		aCtx.host.UnregisterCmdObserver(d.region.Id)
	}
	if m.Cb != nil {
		m.Cb.Done(ErrResp(err))
	}
}

// handleSnapshot implements the Snapshot message: when Sync is set and the
// write batch holds buffered writes, it writes this delegate's apply state
// and flushes the context first, so storage reflects every command the
// caller could observe as already applied. Cb receives the region and the
// apply state; no storage transaction is opened here.
func (d *applyDelegate) handleSnapshot(aCtx *applyContext, m *MsgApplySnapshot) {
	if m.Sync && !aCtx.wb.IsEmpty() {
		d.writeApplyState(aCtx.wb)
		aCtx.flush()
	}
	m.Cb(d.region, &d.applyState)
}

type applyResultType int

const (
	applyResultTypeNone applyResultType = iota
	applyResultTypeExecResult
	applyResultTypeWaitMergeSource
	// applyResultTypeYield marks the entry that triggered a second
	// force-commit within the same tick; the entry itself hasn't been
	// applied yet and is replayed from the front of pendingEntries.
	applyResultTypeYield
)

type applyResult struct {
	tp   applyResultType
	data interface{}
}

// handleRaftCommittedEntries is the apply delegate's main loop: it executes
// entries in index order, relying on the forced mid-tick commit in
// processRaftCmd for durability, and aggregates everything else into one
// batch committed at finishFor/flush. It may suspend mid-batch by
// recording a yieldState, either because a CommitMerge needs to wait on
// another region or because it already force-committed once this tick.
func (d *applyDelegate) handleRaftCommittedEntries(aCtx *applyContext, committedEntries []eraftpb.Entry) {
	if len(committedEntries) == 0 {
		return
	}
	aCtx.prepareFor(d)
	aCtx.committedCount += len(committedEntries)
	d.written = false

	var results []execResult
	for i := range committedEntries {
		entry := &committedEntries[i]
		if d.pendingRemove {
			break
		}
		expectedIndex := d.applyState.AppliedIndex + 1
		if expectedIndex != entry.Index {
			log.Fatal("applied index gap", zap.String("tag", d.tag),
				zap.Uint64("expected", expectedIndex), zap.Uint64("got", entry.Index))
		}
		var res applyResult
		switch entry.EntryType {
		case eraftpb.EntryNormal:
			res = d.handleRaftEntryNormal(aCtx, entry)
		case eraftpb.EntryConfChange:
			res = d.handleRaftEntryConfChange(aCtx, entry)
		case eraftpb.EntryConfChangeV2:
			log.Fatal("EntryConfChangeV2 is not supported", zap.String("tag", d.tag))
		}
		switch res.tp {
		case applyResultTypeNone:
		case applyResultTypeExecResult:
			results = append(results, res.data)
		case applyResultTypeYield:
			d.yield = &yieldState{pendingEntries: append([]eraftpb.Entry{}, committedEntries[i:]...)}
			aCtx.finishFor(d, results)
			return
		case applyResultTypeWaitMergeSource:
			aCtx.commit(d)
			d.yield = &yieldState{pendingEntries: append([]eraftpb.Entry{}, committedEntries[i:]...)}
			d.waitMerge = &waitMergeState{logsUpToDate: res.data.(*mergeSignal)}
			aCtx.finishFor(d, results)
			return
		}
	}
	aCtx.finishFor(d, results)
}

func (d *applyDelegate) handleRaftEntryNormal(aCtx *applyContext, entry *eraftpb.Entry) applyResult {
	index, term := entry.Index, entry.Term
	if len(entry.Data) > 0 {
		cmd := new(raft_cmdpb.RaftCmdRequest)
		if err := cmd.Unmarshal(entry.Data); err != nil {
			log.Fatal("failed to unmarshal raft cmd", zap.String("tag", d.tag), zap.Error(err))
		}
		return d.processRaftCmd(aCtx, index, term, cmd)
	}

	// An empty entry is produced when a peer becomes leader; there is no
	// command here, but every normal command proposed under an earlier
	// term is now guaranteed stale.
	d.applyState.AppliedIndex = index
	d.appliedIndexTerm = term
	for {
		cmd := d.pendingCmds.popNormal(math.MaxUint64, term-1)
		if cmd == nil {
			break
		}
		notifyStaleCommand(d.region.Id, d.id, term, *cmd)
	}
	return applyResult{}
}

func (d *applyDelegate) handleRaftEntryConfChange(aCtx *applyContext, entry *eraftpb.Entry) applyResult {
	index, term := entry.Index, entry.Term
	confChange := new(eraftpb.ConfChange)
	if err := confChange.Unmarshal(entry.Data); err != nil {
		log.Fatal("failed to unmarshal conf change", zap.String("tag", d.tag), zap.Error(err))
	}
	cmd := new(raft_cmdpb.RaftCmdRequest)
	if err := cmd.Unmarshal(confChange.Context); err != nil {
		log.Fatal("failed to unmarshal conf change context", zap.String("tag", d.tag), zap.Error(err))
	}
	result := d.processRaftCmd(aCtx, index, term, cmd)
	if result.tp == applyResultTypeYield {
		return result
	}
	if result.tp == applyResultTypeExecResult {
		cp := result.data.(*execResultChangePeer)
		cp.confChange = confChange
		return applyResult{tp: applyResultTypeExecResult, data: cp}
	}
	// The command failed: tell Raft the ConfChange was aborted so it
	// doesn't wait on an epoch bump that never happened.
	return applyResult{tp: applyResultTypeExecResult, data: &execResultChangePeer{confChange: confChange}}
}

func (d *applyDelegate) findCallback(index, term uint64, isConfChange bool) *message.Callback {
	regionID, peerID := d.region.Id, d.id
	if isConfChange {
		cmd := d.pendingCmds.takeConfChange()
		if cmd == nil {
			return nil
		}
		if cmd.index == index && cmd.term == term {
			return cmd.cb
		}
		notifyStaleCommand(regionID, peerID, term, *cmd)
		return nil
	}
	for {
		head := d.pendingCmds.popNormal(index, term)
		if head == nil {
			break
		}
		if head.index == index && head.term == term {
			return head.cb
		}
		notifyStaleCommand(regionID, peerID, term, *head)
	}
	return nil
}

func (d *applyDelegate) processRaftCmd(aCtx *applyContext, index, term uint64, cmd *raft_cmdpb.RaftCmdRequest) applyResult {
	if index == 0 {
		log.Fatal("process raft cmd needs a non-zero index", zap.String("tag", d.tag))
	}
	if shouldWriteToEngine(cmd) || aCtx.wb.ShouldWriteToEngine(writeBatchLimit) {
		alreadyWritten := d.written
		if !aCtx.wb.IsEmpty() {
			aCtx.commit(d)
		}
		d.written = true
		if alreadyWritten {
			return applyResult{tp: applyResultTypeYield}
		}
	}
	isConfChange := cmd.AdminRequest != nil && cmd.AdminRequest.CmdType == raft_cmdpb.AdminCmdType_ChangePeer
	resp, result := d.applyRaftCmd(aCtx, index, term, cmd)
	if result.tp == applyResultTypeWaitMergeSource {
		return result
	}
	log.Debug("applied command", zap.String("tag", d.tag), zap.Uint64("index", index))

	aCtx.host.OnApplyCmd(d.observeID, d.region.Id, Cmd{Index: index, Term: term, Request: cmd, Response: resp})
	BindRespTerm(resp, term)
	if shouldSyncLog(cmd) {
		aCtx.syncLogHint = true
	}
	cmdCB := d.findCallback(index, term, isConfChange)
	aCtx.cbs[len(aCtx.cbs)-1].push(cmdCB, resp)
	return result
}

// applyRaftCmd is the boundary between client-visible logical errors
// (rolled back and continued) and everything else. A save point is set
// before execution so a failed command's dirty writes never leak into the
// batch.
func (d *applyDelegate) applyRaftCmd(aCtx *applyContext, index, term uint64, req *raft_cmdpb.RaftCmdRequest) (*raft_cmdpb.RaftCmdResponse, applyResult) {
	if d.pendingRemove {
		log.Fatal("apply on a delegate pending removal", zap.String("tag", d.tag))
	}

	aCtx.execCtx = &applyExecContext{index: index, term: term, applyState: d.applyState}
	aCtx.wb.SetSavePoint()
	resp, result, err := d.execRaftCmd(aCtx, req)
	if err != nil {
		aCtx.wb.RollbackToSavePoint()
		if _, ok := err.(*util.ErrEpochNotMatch); ok {
			log.Debug("epoch not match", zap.String("tag", d.tag), zap.Error(err))
		} else {
			log.Error("execute raft command failed", zap.String("tag", d.tag), zap.Error(err))
		}
		resp = ErrResp(err)
		result = applyResult{}
	}
	if result.tp != applyResultTypeWaitMergeSource {
		d.applyState = aCtx.execCtx.applyState
		d.applyState.AppliedIndex = index
		d.appliedIndexTerm = term
	}
	aCtx.execCtx = nil

	if result.tp == applyResultTypeExecResult {
		switch x := result.data.(type) {
		case *execResultChangePeer:
			if x.region != nil {
				d.region = x.region
			}
		case *execResultSplitRegion:
			d.region = x.derived
		case *execResultCommitMerge:
			d.region = x.region
		case *execResultRollbackMerge:
			d.region = x.region
		case *execResultPrepareMerge:
			d.region = x.region
			d.isMerging = true
		}
	}
	return resp, result
}

func (d *applyDelegate) execRaftCmd(aCtx *applyContext, req *raft_cmdpb.RaftCmdRequest) (*raft_cmdpb.RaftCmdResponse, applyResult, error) {
	if err := util.CheckRegionEpoch(req, d.region, false); err != nil {
		return nil, applyResult{}, err
	}
	if req.AdminRequest != nil {
		return d.execAdminCmd(aCtx, req)
	}
	return d.execNormalCmd(aCtx, req)
}

func (d *applyDelegate) execAdminCmd(aCtx *applyContext, req *raft_cmdpb.RaftCmdRequest) (*raft_cmdpb.RaftCmdResponse, applyResult, error) {
	adminReq := req.AdminRequest
	cmdType := adminReq.CmdType
	if cmdType != raft_cmdpb.AdminCmdType_CompactLog {
		log.Info("execute admin command", zap.String("tag", d.tag),
			zap.Uint64("term", aCtx.execCtx.term), zap.Uint64("index", aCtx.execCtx.index),
			zap.String("command", cmdType.String()))
	}

	var adminResp *raft_cmdpb.AdminResponse
	var result applyResult
	var err error
	switch cmdType {
	case raft_cmdpb.AdminCmdType_ChangePeer:
		adminResp, result, err = d.execChangePeer(aCtx, adminReq)
	case raft_cmdpb.AdminCmdType_BatchSplit:
		adminResp, result, err = d.execBatchSplit(aCtx, adminReq)
	case raft_cmdpb.AdminCmdType_CompactLog:
		adminResp, result, err = d.execCompactLog(aCtx, adminReq)
	case raft_cmdpb.AdminCmdType_PrepareMerge:
		adminResp, result, err = d.execPrepareMerge(aCtx, adminReq)
	case raft_cmdpb.AdminCmdType_CommitMerge:
		adminResp, result, err = d.execCommitMerge(aCtx, adminReq)
	case raft_cmdpb.AdminCmdType_RollbackMerge:
		adminResp, result, err = d.execRollbackMerge(aCtx, adminReq)
	case raft_cmdpb.AdminCmdType_ComputeHash:
		adminResp, result, err = d.execComputeHash(aCtx, adminReq)
	case raft_cmdpb.AdminCmdType_VerifyHash:
		adminResp, result, err = d.execVerifyHash(aCtx, adminReq)
	case raft_cmdpb.AdminCmdType_TransferLeader:
		err = errors.New("transfer leader won't execute")
	default:
		err = errors.Errorf("unsupported admin command type %s", cmdType)
	}
	if err != nil {
		return nil, applyResult{}, err
	}
	if result.tp == applyResultTypeWaitMergeSource {
		return newCmdResp(), result, nil
	}
	adminResp.CmdType = cmdType
	resp := newCmdResp()
	resp.AdminResponse = adminResp
	return resp, result, nil
}

func (d *applyDelegate) execNormalCmd(aCtx *applyContext, req *raft_cmdpb.RaftCmdRequest) (*raft_cmdpb.RaftCmdResponse, applyResult, error) {
	requests := req.GetRequests()
	aCtx.host.PreApply(d.region, requests)
	resps := make([]*raft_cmdpb.Response, 0, len(requests))
	var result applyResult
	for _, r := range requests {
		var resp *raft_cmdpb.Response
		var err error
		switch r.CmdType {
		case raft_cmdpb.CmdType_Put:
			resp, err = d.handlePut(aCtx, r.Put)
		case raft_cmdpb.CmdType_Delete:
			resp, err = d.handleDelete(aCtx, r.Delete)
		case raft_cmdpb.CmdType_DeleteRange:
			var res execResult
			resp, res, err = d.handleDeleteRange(aCtx, r.DeleteRange)
			if res != nil {
				result = applyResult{tp: applyResultTypeExecResult, data: res}
			}
		case raft_cmdpb.CmdType_IngestSST:
			var res execResult
			resp, res, err = d.handleIngestSst(aCtx, r.IngestSst)
			if res != nil {
				result = applyResult{tp: applyResultTypeExecResult, data: res}
			}
		case raft_cmdpb.CmdType_Get:
			resp, err = d.handleGet(aCtx, r.Get)
		case raft_cmdpb.CmdType_Snap:
			resp = &raft_cmdpb.Response{Snap: &raft_cmdpb.SnapResponse{Region: d.region}}
		default:
			err = errors.Errorf("invalid cmd type %v", r.CmdType)
		}
		if err != nil {
			return nil, applyResult{}, err
		}
		resp.CmdType = r.CmdType
		resps = append(resps, resp)
	}
	aCtx.host.PostApply(d.region, resps)
	resp := newCmdResp()
	resp.Responses = resps
	return resp, result, nil
}

func (d *applyDelegate) handlePut(aCtx *applyContext, req *raft_cmdpb.PutRequest) (*raft_cmdpb.Response, error) {
	if err := util.CheckKeyInRegion(req.Key, d.region); err != nil {
		return nil, err
	}
	cf := req.Cf
	if cf == "" {
		cf = engine_util.CfDefault
	}
	aCtx.wb.SetCF(cf, req.Key, req.Value)
	d.sizeDiffHint += uint64(len(req.Key) + len(req.Value))
	return &raft_cmdpb.Response{Put: &raft_cmdpb.PutResponse{}}, nil
}

func (d *applyDelegate) handleDelete(aCtx *applyContext, req *raft_cmdpb.DeleteRequest) (*raft_cmdpb.Response, error) {
	if err := util.CheckKeyInRegion(req.Key, d.region); err != nil {
		return nil, err
	}
	cf := req.Cf
	if cf == "" {
		cf = engine_util.CfDefault
	}
	aCtx.wb.DeleteCF(cf, req.Key)
	if d.sizeDiffHint > uint64(len(req.Key)) {
		d.sizeDiffHint -= uint64(len(req.Key))
	} else {
		d.sizeDiffHint = 0
	}
	return &raft_cmdpb.Response{Delete: &raft_cmdpb.DeleteResponse{}}, nil
}

func (d *applyDelegate) handleGet(aCtx *applyContext, req *raft_cmdpb.GetRequest) (*raft_cmdpb.Response, error) {
	if err := util.CheckKeyInRegion(req.Key, d.region); err != nil {
		return nil, err
	}
	if !aCtx.wb.IsEmpty() {
		aCtx.commit(d)
	}
	cf := req.Cf
	if cf == "" {
		cf = engine_util.CfDefault
	}
	val, err := engine_util.GetCF(aCtx.engines.Kv, cf, req.Key)
	if err != nil && err != badger.ErrKeyNotFound {
		return nil, err
	}
	return &raft_cmdpb.Response{Get: &raft_cmdpb.GetResponse{Value: val}}, nil
}

// handleDeleteRange removes [StartKey, EndKey) from cf (or every CF if cf is
// empty). A NotifyOnly request skips the actual deletion, used when the
// range is already known to be empty and the caller just wants the exec
// result side effects (e.g. a downstream observer notification).
func (d *applyDelegate) handleDeleteRange(aCtx *applyContext, req *raft_cmdpb.DeleteRangeRequest) (*raft_cmdpb.Response, execResult, error) {
	if err := util.CheckKeyInRegion(req.StartKey, d.region); err != nil {
		return nil, nil, err
	}
	if err := util.CheckKeyInRegionExclusive(req.EndKey, d.region); err != nil {
		return nil, nil, err
	}
	resp := &raft_cmdpb.Response{DeleteRange: &raft_cmdpb.DeleteRangeResponse{}}
	if !req.NotifyOnly {
		var err error
		if req.Cf == "" {
			err = aCtx.engines.DeleteAllInRange(req.StartKey, req.EndKey)
		} else {
			err = aCtx.engines.DeleteAllInRangeCF(req.Cf, req.StartKey, req.EndKey)
		}
		if err != nil {
			return nil, nil, err
		}
	}
	return resp, &execResultDeleteRange{startKey: req.StartKey, endKey: req.EndKey}, nil
}

// handleIngestSst validates a staged SST file's region id, column family,
// range and epoch against the current region before handing it to the
// importer.
func (d *applyDelegate) handleIngestSst(aCtx *applyContext, req *raft_cmdpb.IngestSSTRequest) (*raft_cmdpb.Response, execResult, error) {
	sst := req.Sst
	if sst.RegionId != d.region.Id {
		return nil, nil, errors.Errorf("ingest sst is for region %d, not region %d", sst.RegionId, d.region.Id)
	}
	if sst.Cf != engine_util.CfDefault && sst.Cf != engine_util.CfWrite {
		return nil, nil, errors.Errorf("ingest sst cf %q is not supported", sst.Cf)
	}
	if err := util.CheckKeyInRegion(sst.Range.Start, d.region); err != nil {
		return nil, nil, err
	}
	if err := util.CheckKeyInRegionExclusive(sst.Range.End, d.region); err != nil {
		return nil, nil, err
	}
	current := d.region.GetRegionEpoch()
	if sst.RegionEpoch.GetConfVer() != current.GetConfVer() || sst.RegionEpoch.GetVersion() != current.GetVersion() {
		return nil, nil, &util.ErrEpochNotMatch{Message: "ingest sst epoch does not match region"}
	}
	if err := aCtx.importer.Ingest(sst, aCtx.engines.Kv); err != nil {
		return nil, nil, errors.Errorf("ingest sst failed: %v", err)
	}
	return &raft_cmdpb.Response{IngestSst: &raft_cmdpb.IngestSSTResponse{}}, &execResultIngestSst{}, nil
}

// execChangePeer adds, removes, or promotes a peer. Removing the peer that
// is this applier's own (identified by peer id, not store id) marks the
// delegate pendingRemove so the apply worker tears it down once the exec
// result has been flushed out.
func (d *applyDelegate) execChangePeer(aCtx *applyContext, req *raft_cmdpb.AdminRequest) (*raft_cmdpb.AdminResponse, applyResult, error) {
	cp := req.ChangePeer
	peer := cp.Peer
	region := new(metapb.Region)
	if err := util.CloneMsg(d.region, region); err != nil {
		return nil, applyResult{}, err
	}
	region.RegionEpoch.ConfVer++

	switch cp.ChangeType {
	case eraftpb.ConfChangeType_AddNode, eraftpb.ConfChangeType_AddLearnerNode:
		if exist := util.FindPeer(region, peer.StoreId); exist != nil {
			if cp.ChangeType != eraftpb.ConfChangeType_AddNode || !exist.IsLearner || exist.Id != peer.Id {
				return nil, applyResult{}, errors.Errorf("store %d already has a peer in region %d", peer.StoreId, region.Id)
			}
			exist.IsLearner = false
		} else {
			region.Peers = append(region.Peers, peer)
		}
	case eraftpb.ConfChangeType_RemoveNode:
		removed := util.RemovePeer(region, peer.StoreId)
		if removed == nil {
			return nil, applyResult{}, errors.Errorf("store %d has no peer in region %d", peer.StoreId, region.Id)
		}
		if removed.Id == d.id {
			d.pendingRemove = true
		}
	default:
		return nil, applyResult{}, errors.Errorf("unsupported conf change type %v", cp.ChangeType)
	}

	if err := meta.WriteRegionState(aCtx.wb, region, rspb.PeerState_Normal); err != nil {
		return nil, applyResult{}, err
	}
	log.Info("conf change applied", zap.String("tag", d.tag), zap.String("type", cp.ChangeType.String()),
		zap.Uint64("peer-store", peer.StoreId))

	resp := &raft_cmdpb.AdminResponse{ChangePeer: &raft_cmdpb.ChangePeerResponse{Region: region}}
	return resp, applyResult{tp: applyResultTypeExecResult, data: &execResultChangePeer{peer: peer, region: region}}, nil
}

// execBatchSplit carves the region into len(Requests)+1 pieces at the given
// ordered split keys. RightDerive controls whether the original region id
// keeps the rightmost or leftmost resulting segment; the rest become new
// regions seeded with a fresh apply state.
func (d *applyDelegate) execBatchSplit(aCtx *applyContext, req *raft_cmdpb.AdminRequest) (*raft_cmdpb.AdminResponse, applyResult, error) {
	splitReqs := req.BatchSplit
	n := len(splitReqs.Requests)
	if n == 0 {
		return nil, applyResult{}, errors.New("missing split requests")
	}

	derived := new(metapb.Region)
	if err := util.CloneMsg(d.region, derived); err != nil {
		return nil, applyResult{}, err
	}

	boundaries := make([][]byte, 0, n+2)
	boundaries = append(boundaries, derived.StartKey)
	for _, sr := range splitReqs.Requests {
		if err := util.CheckKeyInRegionExclusive(sr.SplitKey, d.region); err != nil {
			return nil, applyResult{}, err
		}
		if len(boundaries) > 1 && bytes.Compare(boundaries[len(boundaries)-1], sr.SplitKey) >= 0 {
			return nil, applyResult{}, errors.New("split keys must be strictly increasing")
		}
		boundaries = append(boundaries, sr.SplitKey)
	}
	boundaries = append(boundaries, derived.EndKey)

	derived.RegionEpoch.Version += uint64(n)

	newRegions := make([]*metapb.Region, 0, n)
	for i, sr := range splitReqs.Requests {
		var start, end []byte
		if splitReqs.RightDerive {
			start, end = boundaries[i], boundaries[i+1]
		} else {
			start, end = boundaries[i+1], boundaries[i+2]
		}
		newRegion := &metapb.Region{
			Id:       sr.NewRegionId,
			StartKey: start,
			EndKey:   end,
			RegionEpoch: &metapb.RegionEpoch{
				ConfVer: derived.RegionEpoch.ConfVer,
				Version: derived.RegionEpoch.Version,
			},
		}
		for j, p := range derived.Peers {
			peerID := uint64(0)
			if j < len(sr.NewPeerIds) {
				peerID = sr.NewPeerIds[j]
			}
			newRegion.Peers = append(newRegion.Peers, &metapb.Peer{Id: peerID, StoreId: p.StoreId, IsLearner: p.IsLearner})
		}
		newRegions = append(newRegions, newRegion)
		if err := meta.WriteRegionState(aCtx.wb, newRegion, rspb.PeerState_Normal); err != nil {
			return nil, applyResult{}, err
		}
		if err := meta.WriteInitialApplyState(aCtx.wb, newRegion.Id); err != nil {
			return nil, applyResult{}, err
		}
	}

	var allRegions []*metapb.Region
	if splitReqs.RightDerive {
		derived.StartKey = boundaries[n]
		allRegions = append(append(allRegions, newRegions...), derived)
	} else {
		derived.EndKey = boundaries[1]
		allRegions = append(append(allRegions, derived), newRegions...)
	}
	if err := meta.WriteRegionState(aCtx.wb, derived, rspb.PeerState_Normal); err != nil {
		return nil, applyResult{}, err
	}

	log.Info("region split", zap.String("tag", d.tag), zap.Int("into", len(allRegions)))
	resp := &raft_cmdpb.AdminResponse{BatchSplit: &raft_cmdpb.BatchSplitResponse{Regions: allRegions}}
	return resp, applyResult{tp: applyResultTypeExecResult, data: &execResultSplitRegion{regions: allRegions, derived: derived}}, nil
}

func (d *applyDelegate) execCompactLog(aCtx *applyContext, req *raft_cmdpb.AdminRequest) (*raft_cmdpb.AdminResponse, applyResult, error) {
	resp := &raft_cmdpb.AdminResponse{CompactLog: &raft_cmdpb.CompactLogResponse{}}
	if d.isMerging {
		log.Info("in merging mode, skip compact", zap.String("tag", d.tag))
		return resp, applyResult{}, nil
	}

	compactTerm := req.CompactLog.CompactTerm
	if compactTerm == 0 {
		log.Info("compact term missing, skip", zap.String("tag", d.tag))
		return nil, applyResult{}, errors.New("command format is outdated, please upgrade leader")
	}

	compactIndex := req.CompactLog.CompactIndex
	applyState := &aCtx.execCtx.applyState
	firstIndex := applyState.TruncatedState.Index + 1
	if compactIndex <= firstIndex {
		return resp, applyResult{}, nil
	}
	if compactIndex > applyState.AppliedIndex {
		return nil, applyResult{}, errors.New("compact index is greater than applied index")
	}
	applyState.TruncatedState.Index = compactIndex
	applyState.TruncatedState.Term = compactTerm

	return resp, applyResult{tp: applyResultTypeExecResult, data: &execResultCompactLog{truncatedIndex: compactIndex, firstIndex: firstIndex}}, nil
}

// execPrepareMerge marks the region as merging and records the rendezvous
// state (the target region and the minimum commit index the source must
// reach).
func (d *applyDelegate) execPrepareMerge(aCtx *applyContext, req *raft_cmdpb.AdminRequest) (*raft_cmdpb.AdminResponse, applyResult, error) {
	pm := req.PrepareMerge
	region := new(metapb.Region)
	if err := util.CloneMsg(d.region, region); err != nil {
		return nil, applyResult{}, err
	}
	region.RegionEpoch.Version++

	mergeState := &rspb.MergeState{MinIndex: pm.MinIndex, Target: pm.Target, Commit: aCtx.execCtx.index}
	regionState := &rspb.RegionLocalState{State: rspb.PeerState_Merging, Region: region, MergeState: mergeState}
	if err := aCtx.wb.SetMeta(meta.RegionStateKey(region.Id), regionState); err != nil {
		return nil, applyResult{}, err
	}

	log.Info("prepare merge", zap.String("tag", d.tag), zap.Uint64("target", pm.Target.Id))
	resp := &raft_cmdpb.AdminResponse{PrepareMerge: &raft_cmdpb.PrepareMergeResponse{}}
	return resp, applyResult{tp: applyResultTypeExecResult, data: &execResultPrepareMerge{region: region, state: mergeState}}, nil
}

// execCommitMerge is the target side of the merge rendezvous. If the source
// region hasn't signaled that its logs are replayed up to the commit index
// PrepareMerge recorded, this dispatches a CatchUpLogs task to the source's
// own applier and suspends this delegate until it signals back.
func (d *applyDelegate) execCommitMerge(aCtx *applyContext, req *raft_cmdpb.AdminRequest) (*raft_cmdpb.AdminResponse, applyResult, error) {
	cm := req.CommitMerge
	source := cm.Source

	if d.readySourceRegion != source.Id {
		signal := newMergeSignal()
		aCtx.router.scheduleTask(source.Id, message.NewPeerMsg(message.MsgTypeApplyCatchUpLogs, source.Id, &catchUpLogs{
			targetRegionID: d.region.Id,
			merge:          cm,
			logsUpToDate:   signal,
		}))
		log.Info("commit merge waiting on source logs", zap.String("tag", d.tag), zap.Uint64("source", source.Id))
		return nil, applyResult{tp: applyResultTypeWaitMergeSource, data: signal}, nil
	}
	d.readySourceRegion = 0
	d.isMerging = false

	region := new(metapb.Region)
	if err := util.CloneMsg(d.region, region); err != nil {
		return nil, applyResult{}, err
	}
	if bytes.Equal(region.EndKey, source.StartKey) {
		region.EndKey = source.EndKey
	} else {
		region.StartKey = source.StartKey
	}
	if source.RegionEpoch.GetVersion() >= region.RegionEpoch.Version {
		region.RegionEpoch.Version = source.RegionEpoch.GetVersion()
	}
	region.RegionEpoch.Version++

	if err := meta.WriteRegionState(aCtx.wb, region, rspb.PeerState_Normal); err != nil {
		return nil, applyResult{}, err
	}
	tombstoned := &metapb.Region{Id: source.Id, RegionEpoch: source.RegionEpoch}
	if err := meta.WriteRegionState(aCtx.wb, tombstoned, rspb.PeerState_Tombstone); err != nil {
		return nil, applyResult{}, err
	}

	log.Info("commit merge", zap.String("tag", d.tag), zap.Uint64("source", source.Id))
	resp := &raft_cmdpb.AdminResponse{CommitMerge: &raft_cmdpb.CommitMergeResponse{}}
	return resp, applyResult{tp: applyResultTypeExecResult, data: &execResultCommitMerge{region: region, source: source}}, nil
}

func (d *applyDelegate) execRollbackMerge(aCtx *applyContext, req *raft_cmdpb.AdminRequest) (*raft_cmdpb.AdminResponse, applyResult, error) {
	region := new(metapb.Region)
	if err := util.CloneMsg(d.region, region); err != nil {
		return nil, applyResult{}, err
	}
	region.RegionEpoch.Version++
	d.isMerging = false

	if err := meta.WriteRegionState(aCtx.wb, region, rspb.PeerState_Normal); err != nil {
		return nil, applyResult{}, err
	}

	log.Info("rollback merge", zap.String("tag", d.tag))
	resp := &raft_cmdpb.AdminResponse{RollbackMerge: &raft_cmdpb.RollbackMergeResponse{}}
	return resp, applyResult{tp: applyResultTypeExecResult, data: &execResultRollbackMerge{region: region, commit: req.RollbackMerge.CommitIndex}}, nil
}

// execComputeHash records a consistency-check request: the exec result
// carries the region and the index the command executed at. No storage
// snapshot is captured here, and no hash is computed in this subsystem.
func (d *applyDelegate) execComputeHash(aCtx *applyContext, req *raft_cmdpb.AdminRequest) (*raft_cmdpb.AdminResponse, applyResult, error) {
	index := aCtx.execCtx.index
	if !hasDiskHeadroom(aCtx.cfg.DataDir) {
		log.Warn("skipping compute hash scheduling, low disk headroom", zap.String("tag", d.tag), zap.String("dir", aCtx.cfg.DataDir))
		resp := &raft_cmdpb.AdminResponse{ComputeHash: &raft_cmdpb.ComputeHashResponse{Index: index}}
		return resp, applyResult{}, nil
	}
	resp := &raft_cmdpb.AdminResponse{ComputeHash: &raft_cmdpb.ComputeHashResponse{Index: index}}
	return resp, applyResult{tp: applyResultTypeExecResult, data: &execResultComputeHash{region: d.region, index: index}}, nil
}

func (d *applyDelegate) execVerifyHash(aCtx *applyContext, req *raft_cmdpb.AdminRequest) (*raft_cmdpb.AdminResponse, applyResult, error) {
	vh := req.VerifyHash
	resp := &raft_cmdpb.AdminResponse{VerifyHash: &raft_cmdpb.VerifyHashResponse{}}
	return resp, applyResult{tp: applyResultTypeExecResult, data: &execResultVerifyHash{index: vh.Index, hash: vh.Hash}}, nil
}
