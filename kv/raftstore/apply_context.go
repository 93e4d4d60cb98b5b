package raftstore

import (
	"github.com/opentracing/opentracing-go"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/tikv-apply/raftapply/kv/config"
	"github.com/tikv-apply/raftapply/kv/raftstore/importer"
	"github.com/tikv-apply/raftapply/kv/raftstore/message"
	"github.com/tikv-apply/raftapply/kv/util/engine_util"
	"github.com/tikv-apply/raftapply/proto/pkg/raft_cmdpb"
	rspb "github.com/tikv-apply/raftapply/proto/pkg/raft_serverpb"
)

// writeBatchLimit bounds how many buffered modifications an apply context
// will carry before forcing an intermediate commit, so one applier with an
// enormous batch of entries can't grow the write batch unboundedly between
// ticks.
const writeBatchLimit = 16

// applyExecContext is the per-command scratch state threaded through a
// single processRaftCmd/execRaftCmd call: the index/term it executes at,
// and the apply state as it stood immediately before that command.
type applyExecContext struct {
	index      uint64
	term       uint64
	applyState rspb.RaftApplyState
}

// applyCallback buckets every command callback belonging to one flush of
// one region's write batch, so they can all be invoked together right after
// that batch durably commits.
type applyCallback struct {
	regionID uint64
	cbs      []*message.Callback
}

func (c *applyCallback) invokeAll(host *CoprocessorHost) {
	host.OnFlushApply()
	for _, cb := range c.cbs {
		cb.Done(nil)
	}
}

func (c *applyCallback) push(cb *message.Callback, resp *raft_cmdpb.RaftCmdResponse) {
	if cb != nil {
		cb.Resp = resp
	}
	c.cbs = append(c.cbs, cb)
}

// applyContext carries the state shared by every applier a single apply
// worker handles during one tick: the buffered write batch, the callbacks
// waiting on it, and the exec results ready to flush out to the router.
//
// The lifecycle for one applier's batch of entries is:
// prepareFor -> commit [-> commit ...] -> finishFor, and flush() is called
// once per tick after every applier handled in that tick has gone through
// its own prepareFor/commit/finishFor cycle.
type applyContext struct {
	tag string

	cfg      *config.Config
	engines  *engine_util.Engines
	importer importer.SSTImporter
	host     *CoprocessorHost
	router   *ApplyRouter
	notifier chan<- message.Msg
	tracer   opentracing.Tracer

	wb *engine_util.WriteBatch

	cbs            []applyCallback
	applyTaskResList []*MsgApplyRes
	execCtx        *applyExecContext

	lastAppliedIndex uint64
	committedCount   int
	syncLogHint      bool
}

func newApplyContext(tag string, engines *engine_util.Engines, imp importer.SSTImporter,
	host *CoprocessorHost, router *ApplyRouter, notifier chan<- message.Msg, cfg *config.Config) *applyContext {
	return &applyContext{
		tag:      tag,
		cfg:      cfg,
		engines:  engines,
		importer: imp,
		host:     host,
		router:   router,
		notifier: notifier,
		tracer:   opentracing.GlobalTracer(),
		wb:       new(engine_util.WriteBatch),
	}
}

// prepareFor readies the context for applying entries to d: it allocates a
// callback bucket for d's region and snapshots d's currently durable apply
// state so commit() can tell whether anything actually needs writing.
func (ac *applyContext) prepareFor(d *applyDelegate) {
	if ac.wb == nil {
		ac.wb = new(engine_util.WriteBatch)
	}
	ac.cbs = append(ac.cbs, applyCallback{regionID: d.region.Id})
	ac.lastAppliedIndex = d.applyState.AppliedIndex
	d.observeID = ac.host.OnPrepareForApply(d.region.Id)
}

// commit persists d's apply state if it advanced since prepareFor, then
// forces a write-to-engine and immediately re-opens a fresh prepareFor so
// the delegate can keep consuming entries.
func (ac *applyContext) commit(d *applyDelegate) {
	if ac.lastAppliedIndex < d.applyState.AppliedIndex {
		d.writeApplyState(ac.wb)
	}
	ac.commitOpt(d, true)
}

func (ac *applyContext) commitOpt(d *applyDelegate, persistent bool) {
	if persistent {
		if ac.writeToDB() {
			d.lastSyncApplyIndex = d.applyState.AppliedIndex
		}
		ac.prepareFor(d)
	}
}

// writeToDB flushes the buffered write batch to the storage engine and
// invokes every callback queued against it. Any error here is fatal: a
// failed durable write means the apply cursor can no longer be trusted.
// It reports whether this flush counts as synced: either the config sets
// SyncLog or a buffered command required a sync. No separate fsync is
// issued; the batch goes through one badger update either way.
func (ac *applyContext) writeToDB() bool {
	span := ac.tracer.StartSpan("apply.commit")
	defer span.Finish()

	synced := false
	if !ac.wb.IsEmpty() {
		if err := ac.wb.WriteToDB(ac.engines.Kv); err != nil {
			log.Fatal("failed to write apply batch to engine", zap.String("tag", ac.tag), zap.Error(err))
		}
		synced = ac.cfg.SyncLog || ac.syncLogHint
		size := ac.wb.DataSize()
		ac.wb.Reset()
		if uint64(size) > ac.cfg.ApplyWriteBatchShrinkSize {
			ac.wb = new(engine_util.WriteBatch)
		}
		ac.syncLogHint = false
	}
	for _, cb := range ac.cbs {
		cb.invokeAll(ac.host)
	}
	ac.cbs = ac.cbs[:0]
	return synced
}

// finishFor closes out one applier's batch of committed entries: its apply
// state (unless it's being destroyed) is written, any remaining buffered
// writes are left for the tick's final flush, and its exec results are
// queued for notification.
func (ac *applyContext) finishFor(d *applyDelegate, results []execResult) {
	if !d.pendingRemove {
		d.writeApplyState(ac.wb)
	}
	ac.commitOpt(d, false)
	ac.applyTaskResList = append(ac.applyTaskResList, &MsgApplyRes{
		regionID:     d.region.Id,
		execResults:  results,
		sizeDiffHint: d.sizeDiffHint,
	})
	d.sizeDiffHint = 0
}

// flush is called once per poller tick: it writes out whatever is left in
// the batch and notifies the router of every exec result produced during
// the tick. It returns whether that final write happened under fsync
// semantics, so the caller can stamp the delegate it just flushed.
func (ac *applyContext) flush() bool {
	span := ac.tracer.StartSpan("apply.flush")
	defer span.Finish()

	synced := ac.writeToDB()
	for _, res := range ac.applyTaskResList {
		ac.notifier <- message.NewPeerMsg(message.MsgTypeApplyRes, res.regionID, res)
	}
	ac.applyTaskResList = ac.applyTaskResList[:0]
	ac.committedCount = 0
	return synced
}

// shouldWriteToEngine reports whether cmd must force an immediate commit of
// the in-flight batch before executing, because it either needs an
// up-to-date read of storage (ComputeHash, CommitMerge, RollbackMerge) or
// touches keys a buffered-but-unwritten mutation in the same batch might
// also touch (DeleteRange, IngestSst).
func shouldWriteToEngine(cmd *raft_cmdpb.RaftCmdRequest) bool {
	if cmd.AdminRequest != nil {
		switch cmd.AdminRequest.CmdType {
		case raft_cmdpb.AdminCmdType_ComputeHash, raft_cmdpb.AdminCmdType_CommitMerge,
			raft_cmdpb.AdminCmdType_RollbackMerge:
			return true
		}
	}
	for _, req := range cmd.GetRequests() {
		if req.DeleteRange != nil || req.IngestSst != nil {
			return true
		}
	}
	return false
}

// shouldSyncLog reports whether cmd requires fsync-on-commit: every admin
// command does, and so does IngestSst since its staged SST file is deleted
// shortly after ingest and couldn't be replayed from it a second time.
func shouldSyncLog(cmd *raft_cmdpb.RaftCmdRequest) bool {
	if cmd.AdminRequest != nil {
		return true
	}
	for _, req := range cmd.GetRequests() {
		if req.IngestSst != nil {
			return true
		}
	}
	return false
}
