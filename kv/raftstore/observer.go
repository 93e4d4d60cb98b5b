package raftstore

import (
	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
	"github.com/tikv-apply/raftapply/proto/pkg/raft_cmdpb"
)

// ObserveID tags a single observation session on an applier; it lets an
// observer correlate on_prepare_for_apply/on_apply_cmd/on_flush_apply calls
// for one Change request without the applier needing to know what the
// observer does with them.
type ObserveID uint64

// Cmd is the normalized unit a CmdObserver sees: the request that was
// applied and the response it produced.
type Cmd struct {
	Index    uint64
	Term     uint64
	Request  *raft_cmdpb.RaftCmdRequest
	Response *raft_cmdpb.RaftCmdResponse
}

// QueryObserver hooks the data-plane command path, invoked around every
// normal Get/Put/Delete/Snap/DeleteRange/IngestSst batch.
type QueryObserver interface {
	PreApplyQuery(region *metapb.Region, requests []*raft_cmdpb.Request)
	PostApplyQuery(region *metapb.Region, responses []*raft_cmdpb.Response)
}

// CmdObserver streams every applied command to an external watcher: it's
// how a downstream consumer, a change-feed or a test harness, sees what an
// applier did without the applier depending on it directly.
type CmdObserver interface {
	OnPrepareForApply(id ObserveID, regionID uint64)
	OnApplyCmd(id ObserveID, regionID uint64, cmd Cmd)
	OnFlushApply()
}

// CoprocessorHost fans observer calls out to every registered observer.
// Appliers hold one host reference each; enabling/disabling observation is
// the Change message's job (message.MsgTypeApplyChange).
type CoprocessorHost struct {
	queryObservers []QueryObserver
	cmdObservers   map[uint64]CmdObserver
}

func NewCoprocessorHost() *CoprocessorHost {
	return &CoprocessorHost{cmdObservers: make(map[uint64]CmdObserver)}
}

func (h *CoprocessorHost) RegisterQueryObserver(o QueryObserver) {
	h.queryObservers = append(h.queryObservers, o)
}

// RegisterCmdObserver attaches a cmd observer under regionID; only one may
// be registered per region at a time, mirroring the original's per-region
// observe slot.
func (h *CoprocessorHost) RegisterCmdObserver(regionID uint64, o CmdObserver) {
	h.cmdObservers[regionID] = o
}

func (h *CoprocessorHost) UnregisterCmdObserver(regionID uint64) {
	delete(h.cmdObservers, regionID)
}

func (h *CoprocessorHost) PreApply(region *metapb.Region, requests []*raft_cmdpb.Request) {
	for _, o := range h.queryObservers {
		o.PreApplyQuery(region, requests)
	}
}

func (h *CoprocessorHost) PostApply(region *metapb.Region, responses []*raft_cmdpb.Response) {
	for _, o := range h.queryObservers {
		o.PostApplyQuery(region, responses)
	}
}

func (h *CoprocessorHost) OnPrepareForApply(regionID uint64) ObserveID {
	if o, ok := h.cmdObservers[regionID]; ok {
		id := ObserveID(regionID)
		o.OnPrepareForApply(id, regionID)
		return id
	}
	return 0
}

func (h *CoprocessorHost) OnApplyCmd(id ObserveID, regionID uint64, cmd Cmd) {
	if o, ok := h.cmdObservers[regionID]; ok && id != 0 {
		o.OnApplyCmd(id, regionID, cmd)
	}
}

func (h *CoprocessorHost) OnFlushApply() {
	for _, o := range h.cmdObservers {
		o.OnFlushApply()
	}
}
