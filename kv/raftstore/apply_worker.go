package raftstore

import (
	"fmt"

	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/tikv-apply/raftapply/kv/config"
	"github.com/tikv-apply/raftapply/kv/raftstore/importer"
	"github.com/tikv-apply/raftapply/kv/raftstore/message"
	"github.com/tikv-apply/raftapply/kv/util/engine_util"
)

// ApplyBatchSystem owns the pool of apply workers servicing every mailbox
// registered with its router. Each worker runs its own applyContext, so
// write batches from different regions never interleave within one
// region's commit boundary even though many regions share the pool.
type ApplyBatchSystem struct {
	router *ApplyRouter
	stopCh chan struct{}
}

// CreateApplyBatchSystem builds a router and spins up cfg.ApplyPoolSize
// workers polling it, returning the router so callers can register
// appliers and schedule tasks against it.
func CreateApplyBatchSystem(cfg *config.Config, engines *engine_util.Engines, imp importer.SSTImporter,
	host *CoprocessorHost, notifier chan<- message.Msg) (*ApplyRouter, *ApplyBatchSystem) {
	router := newApplyRouter()
	sys := &ApplyBatchSystem{router: router, stopCh: make(chan struct{})}
	poolSize := cfg.ApplyPoolSize
	if poolSize == 0 {
		poolSize = 1
	}
	for i := 0; i < poolSize; i++ {
		w := &applyWorker{
			id:     i,
			router: router,
			aCtx:   newApplyContext(fmt.Sprintf("apply-worker-%d", i), engines, imp, host, router, notifier, cfg),
		}
		go w.poll(sys.stopCh)
	}
	return router, sys
}

func (s *ApplyBatchSystem) Shutdown() {
	close(s.stopCh)
}

// applyWorker is one poller: it blocks on the router's ready queue, and for
// each wake-up drains up to ApplyMaxBatchSize messages from that region's
// mailbox before flushing once and going back to sleep. This is the Go
// analogue of the original's per-tick batch_system poll loop, traded for an
// event-driven wake instead of a fixed tick.
type applyWorker struct {
	id     int
	router *ApplyRouter
	aCtx   *applyContext
}

func (w *applyWorker) poll(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case regionID := <-w.router.ready:
			w.handleRegion(regionID)
		}
	}
}

func (w *applyWorker) handleRegion(regionID uint64) {
	mb := w.router.get(regionID)
	if mb == nil {
		return
	}
	d := mb.delegate
	if d.stopped {
		return
	}
	if !d.resumePending(w.aCtx) {
		if w.aCtx.flush() {
			d.lastSyncApplyIndex = d.applyState.AppliedIndex
		}
		return
	}

	batchSize := int(w.aCtx.cfg.ApplyMaxBatchSize)
	if batchSize <= 0 {
		batchSize = 1
	}
drain:
	for i := 0; i < batchSize && !d.stopped; i++ {
		select {
		case msg := <-mb.ch:
			d.handleTask(w.aCtx, msg)
			if d.yield != nil {
				break drain
			}
		default:
			break drain
		}
	}
	if w.aCtx.flush() {
		d.lastSyncApplyIndex = d.applyState.AppliedIndex
	}

	if d.pendingRemove && !d.stopped {
		log.Info("applier pending removal, destroying", zap.String("tag", d.tag))
		d.destroy(w.aCtx)
		w.router.Unregister(regionID)
		return
	}
	if !d.stopped && len(mb.ch) > 0 {
		w.router.wake(regionID)
	}
}
