package raftstore

import (
	"sync/atomic"

	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/tikv-apply/raftapply/kv/raftstore/message"
	"github.com/tikv-apply/raftapply/proto/pkg/eraftpb"
	"github.com/tikv-apply/raftapply/proto/pkg/raft_cmdpb"
)

// mergeSignal is the rendezvous point between a merge's target and source
// appliers: the target parks itself in waitMergeState until the source
// writes its own region id in here, meaning every straggler entry up to
// the merge's commit index has been replayed locally.
type mergeSignal struct {
	regionID uint64
}

func newMergeSignal() *mergeSignal {
	return &mergeSignal{}
}

func (s *mergeSignal) load() uint64 {
	return atomic.LoadUint64(&s.regionID)
}

func (s *mergeSignal) store(regionID uint64) {
	atomic.StoreUint64(&s.regionID, regionID)
}

// catchUpLogs is routed to the source region's applier when the target
// hits CommitMerge before the source has caught up: it carries the
// straggler entries the source must still apply (via the CommitMerge
// admin request itself, which embeds them) and the signal to flip once
// done.
type catchUpLogs struct {
	targetRegionID uint64
	merge          *raft_cmdpb.CommitMergeRequest
	logsUpToDate   *mergeSignal
}

// handleCatchUpLogs is the source delegate's side of the merge rendezvous.
// It replays whatever of the target's CommitMerge entries this delegate
// hasn't already applied, destroys itself since the region it served no
// longer exists once the merge commits, then signals the target so its
// CommitMerge can proceed.
func (d *applyDelegate) handleCatchUpLogs(aCtx *applyContext, c *catchUpLogs) {
	if d.pendingRemove {
		log.Fatal("source applier already destroyed mid-merge", zap.String("tag", d.tag))
	}

	pending := make([]eraftpb.Entry, 0, len(c.merge.Entries))
	for _, entry := range c.merge.Entries {
		if entry.Index <= d.applyState.AppliedIndex {
			continue
		}
		pending = append(pending, *entry)
	}
	if len(pending) > 0 {
		d.handleRaftCommittedEntries(aCtx, pending)
	}

	if d.applyState.AppliedIndex < c.merge.CommitIndex {
		log.Fatal("source region failed to catch up before merge commit index",
			zap.String("tag", d.tag), zap.Uint64("applied", d.applyState.AppliedIndex),
			zap.Uint64("commit", c.merge.CommitIndex))
	}

	log.Info("source region caught up for merge", zap.String("tag", d.tag),
		zap.Uint64("target", c.targetRegionID))
	regionID := d.region.Id
	d.destroy(aCtx)
	aCtx.router.Unregister(regionID)
	c.logsUpToDate.store(regionID)
	aCtx.router.scheduleTask(c.targetRegionID, message.NewPeerMsg(message.MsgTypeApplyLogsUpToDate, c.targetRegionID, nil))
}
