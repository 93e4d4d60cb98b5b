package message

import (
	"github.com/Connor1996/badger"
	"github.com/tikv-apply/raftapply/proto/pkg/raft_cmdpb"
)

// Callback is how a proposer learns the outcome of a command it proposed.
// The apply delegate fills Resp then calls Done, which unblocks whatever
// channel or waitgroup the proposer is parked on. The apply delegate does
// not set Txn.
type Callback struct {
	Resp *raft_cmdpb.RaftCmdResponse
	Txn  *badger.Txn
	done chan struct{}
}

func NewCallback() *Callback {
	return &Callback{done: make(chan struct{})}
}

// Done marks the callback complete, optionally recording resp if the
// caller hasn't already set one (a later Done from a stale-command path
// must not clobber an earlier real response).
func (cb *Callback) Done(resp *raft_cmdpb.RaftCmdResponse) {
	if cb == nil {
		return
	}
	if resp != nil && cb.Resp == nil {
		cb.Resp = resp
	}
	close(cb.done)
}

// WaitResp blocks until Done has been called and returns the response.
func (cb *Callback) WaitResp() *raft_cmdpb.RaftCmdResponse {
	<-cb.done
	return cb.Resp
}
