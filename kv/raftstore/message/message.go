// Package message defines the envelope the router dispatches to appliers:
// a MsgType tag plus an untyped payload, and the Callback a proposer blocks
// on for the eventual RaftCmdResponse.
package message

type MsgType int64

const (
	MsgTypeNull MsgType = iota
	// MsgTypeApplyProposal carries newly-proposed commands' callbacks so the
	// applier can match them to the committed entries that will execute
	// them.
	MsgTypeApplyProposal
	// MsgTypeApplyCommitted carries a batch of newly committed raft log
	// entries for the applier to execute.
	MsgTypeApplyCommitted
	// MsgTypeApplyRefresh re-registers an applier, e.g. after a snapshot
	// reset the peer's term/region out from under any stale pending
	// commands.
	MsgTypeApplyRefresh
	// MsgTypeApplyRes reports exec results back to the peer/router layer
	// once a batch has been flushed to storage.
	MsgTypeApplyRes
	// MsgTypeApplyDestroy tears an applier down: its pending commands are
	// notified and it processes no further messages.
	MsgTypeApplyDestroy
	// MsgTypeApplyChange toggles whether a cmd observer is attached to an
	// applier, used by the test/debug surface to watch applied commands
	// without threading extra plumbing through every call site.
	MsgTypeApplyChange
	// MsgTypeApplySnapshot asks an applier for its current region and
	// apply state, flushing the write batch first when the request sets
	// Sync and writes are buffered.
	MsgTypeApplySnapshot
	// MsgTypeApplyCatchUpLogs hands the source applier of a merge the
	// CommitMerge request, whose entries it must still replay up to the
	// request's commit index, plus the signal to set once done.
	MsgTypeApplyCatchUpLogs
	// MsgTypeApplyLogsUpToDate wakes a merge target's applier after the
	// source has stored its region id in the rendezvous signal.
	MsgTypeApplyLogsUpToDate
	// MsgTypeValidate is a test-only hook: it is queued through the
	// region's mailbox, and the worker that handles it calls the attached
	// closure with the applier's current region and apply state.
	MsgTypeValidate
)

// Msg is the unit the router moves between callers and appliers.
type Msg struct {
	Type     MsgType
	RegionID uint64
	Data     interface{}
}

// NewPeerMsg builds a Msg addressed at regionID.
func NewPeerMsg(tp MsgType, regionID uint64, data interface{}) Msg {
	return Msg{Type: tp, RegionID: regionID, Data: data}
}
