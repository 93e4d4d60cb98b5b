package raftstore

import (
	"github.com/tikv-apply/raftapply/kv/raftstore/message"
)

// shrinkPendingCmdQueueCap mirrors the original's threshold for releasing a
// normals queue's backing array once it drains below this size, after
// having grown past it — otherwise a single large backlog would pin
// memory for the queue's entire remaining lifetime.
const shrinkPendingCmdQueueCap = 64

// pendingCmd is a proposed command awaiting the committed entry that will
// execute it, carrying the callback its proposer is blocked on.
type pendingCmd struct {
	index uint64
	term  uint64
	cb    *message.Callback
}

// pendingCmdQueue holds every command this peer has proposed but not yet
// seen committed: a FIFO of normal commands plus a single conf-change slot,
// since only one conf change may be outstanding at a time.
type pendingCmdQueue struct {
	normals    []pendingCmd
	confChange *pendingCmd
}

// popNormal pops the head of the normal queue iff it was proposed at or
// before (term, index) — i.e. (head.term, head.index) <= (term, index) —
// leaving it in place otherwise, since a later-proposed command cannot be
// the one the current committed entry corresponds to.
func (q *pendingCmdQueue) popNormal(index, term uint64) *pendingCmd {
	if len(q.normals) == 0 {
		return nil
	}
	cmd := q.normals[0]
	if cmd.term > term || (cmd.term == term && cmd.index > index) {
		return nil
	}
	q.normals = q.normals[1:]
	if cap(q.normals) > shrinkPendingCmdQueueCap && len(q.normals) < shrinkPendingCmdQueueCap {
		shrunk := make([]pendingCmd, len(q.normals))
		copy(shrunk, q.normals)
		q.normals = shrunk
	}
	return &cmd
}

func (q *pendingCmdQueue) appendNormal(cmd pendingCmd) {
	q.normals = append(q.normals, cmd)
}

// takeConfChange removes and returns the pending conf change, if any. No
// term check is needed: a conf change survives leadership churn since it
// isn't re-proposed the way normal commands can be.
func (q *pendingCmdQueue) takeConfChange() *pendingCmd {
	cmd := q.confChange
	q.confChange = nil
	return cmd
}

func (q *pendingCmdQueue) setConfChange(cmd *pendingCmd) {
	q.confChange = cmd
}
