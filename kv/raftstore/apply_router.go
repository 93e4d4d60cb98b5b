package raftstore

import (
	"sync"

	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/tikv-apply/raftapply/kv/raftstore/message"
	"github.com/tikv-apply/raftapply/kv/raftstore/meta"
	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
	rspb "github.com/tikv-apply/raftapply/proto/pkg/raft_serverpb"
)

// mailboxBacklog bounds one region's pending message queue. The router
// treats a full mailbox the same as a missing one and falls back to the
// per-message miss policy, since a region that can't keep up with its own
// queue is effectively unreachable from the caller's point of view.
const mailboxBacklog = 4096

// readyQueueBacklog bounds how many distinct wake-ups the router can queue
// for the worker pool before it starts coalescing them; a region can only
// usefully be "ready" once at a time; a dropped duplicate wake is
// harmless because the next drain of its mailbox re-wakes it if anything
// is left.
const readyQueueBacklog = 4096

type mailbox struct {
	delegate *applyDelegate
	ch       chan message.Msg
}

// ApplyRouter dispatches messages to per-region appliers by region id and
// wakes the worker pool whenever a mailbox gains new work. A message
// addressed at a region with no mailbox, or whose mailbox is saturated,
// falls to missPolicy, which mirrors how each message type degrades when
// its target region turns out to be gone: proposals are dropped with their
// callers notified with RegionNotFound, changes answer with RegionNotFound,
// a snapshot request's callback is called with a nil region and apply
// state, a merge catch-up request sets its signal, and everything else is
// just logged.
type ApplyRouter struct {
	mu        sync.RWMutex
	mailboxes map[uint64]*mailbox
	regions   *meta.RegionTree
	ready     chan uint64
}

func newApplyRouter() *ApplyRouter {
	return &ApplyRouter{
		mailboxes: make(map[uint64]*mailbox),
		regions:   meta.NewRegionTree(),
		ready:     make(chan uint64, readyQueueBacklog),
	}
}

// Register creates a mailbox for d's region, ready to receive tasks. A
// region whose key range overlaps one already registered (other than
// itself, for a re-registration) is refused: the caller asked to bring up
// two appliers that would both claim the same keys.
func (r *ApplyRouter) Register(d *applyDelegate) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.regions.Overlaps(d.region) {
		log.Warn("refusing to register overlapping region", zap.Uint64("region", d.region.Id))
		return false
	}
	r.mailboxes[d.region.Id] = &mailbox{delegate: d, ch: make(chan message.Msg, mailboxBacklog)}
	r.regions.Insert(d.region)
	return true
}

// Unregister drops regionID's mailbox. Any message already queued on it is
// discarded; the caller is expected to have routed a Destroy message
// through first so pending commands get notified before this point.
func (r *ApplyRouter) Unregister(regionID uint64) {
	r.mu.Lock()
	if mb, ok := r.mailboxes[regionID]; ok {
		r.regions.Remove(mb.delegate.region)
	}
	delete(r.mailboxes, regionID)
	r.mu.Unlock()
}

// AdjacentRegion returns the registered region immediately to the right of
// region, or nil if none is registered.
func (r *ApplyRouter) AdjacentRegion(region *metapb.Region) *metapb.Region {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.regions.AdjacentAfter(region)
}

func (r *ApplyRouter) get(regionID uint64) *mailbox {
	r.mu.RLock()
	mb := r.mailboxes[regionID]
	r.mu.RUnlock()
	return mb
}

// NewApplier builds a fresh applier from a registration and registers it
// with router; this is the entry point the upper-half peer layer (or a
// debug harness) uses to bring a region's applier online. It reports
// whether registration succeeded.
func NewApplier(router *ApplyRouter, id, term uint64, region *metapb.Region, applyState rspb.RaftApplyState, appliedIndexTerm uint64) bool {
	d := newApplyDelegateFromRegistration(id, term, region, applyState, appliedIndexTerm)
	return router.Register(d)
}

// Schedule is the exported send path other packages use to deliver a
// message to a region's applier.
func (r *ApplyRouter) Schedule(regionID uint64, msg message.Msg) {
	r.scheduleTask(regionID, msg)
}

func (r *ApplyRouter) wake(regionID uint64) {
	select {
	case r.ready <- regionID:
	default:
	}
}

// scheduleTask is the router's send path: try to enqueue onto the target
// region's mailbox and wake a worker, or fall back to the miss policy if
// the region isn't (or is no longer) registered here.
func (r *ApplyRouter) scheduleTask(regionID uint64, msg message.Msg) {
	mb := r.get(regionID)
	if mb != nil {
		select {
		case mb.ch <- msg:
			r.wake(regionID)
			return
		default:
		}
	}
	r.missPolicy(regionID, msg)
}

func (r *ApplyRouter) missPolicy(regionID uint64, msg message.Msg) {
	switch msg.Type {
	case message.MsgTypeApplyProposal:
		props := msg.Data.(*MsgApplyProposal)
		log.Info("target region is not found, drop proposals", zap.Uint64("region", regionID))
		for _, p := range props.Props {
			notifyRegionRemoved(props.RegionId, props.Id, pendingCmd{index: p.index, term: p.term, cb: p.cb})
		}
	case message.MsgTypeApplyCommitted, message.MsgTypeApplyDestroy, message.MsgTypeApplyRefresh, message.MsgTypeNull:
		log.Info("target region is not found, drop message", zap.Uint64("region", regionID), zap.Int64("type", int64(msg.Type)))
	case message.MsgTypeApplySnapshot:
		log.Warn("region is removed before taking snapshot, are we shutting down?", zap.Uint64("region", regionID))
		if m, ok := msg.Data.(*MsgApplySnapshot); ok && m.Cb != nil {
			m.Cb(nil, nil)
		}
	case message.MsgTypeApplyCatchUpLogs:
		log.Warn("source region is removed before merge caught up, are we shutting down?", zap.Uint64("region", regionID))
		if c, ok := msg.Data.(*catchUpLogs); ok {
			c.logsUpToDate.store(regionID)
		}
	case message.MsgTypeApplyLogsUpToDate:
		log.Warn("target region is removed before merge completed, are we shutting down?", zap.Uint64("region", regionID))
	case message.MsgTypeApplyChange:
		log.Warn("target region is not found", zap.Uint64("region", regionID))
		if m, ok := msg.Data.(*MsgApplyChange); ok && m.Cb != nil {
			m.Cb.Done(ErrRespRegionNotFound(regionID))
		}
	case message.MsgTypeValidate:
		// test-only hook: silently dropped when the region is gone.
	}
}
