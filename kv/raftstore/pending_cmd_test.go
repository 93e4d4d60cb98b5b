package raftstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikv-apply/raftapply/kv/raftstore/message"
)

func TestPendingCmdQueueNormalFIFO(t *testing.T) {
	q := &pendingCmdQueue{}
	q.appendNormal(pendingCmd{index: 1, term: 1, cb: &message.Callback{}})
	q.appendNormal(pendingCmd{index: 2, term: 1, cb: &message.Callback{}})

	cmd := q.popNormal(1, 1)
	require.NotNil(t, cmd)
	assert.Equal(t, uint64(1), cmd.index)

	cmd = q.popNormal(2, 1)
	require.NotNil(t, cmd)
	assert.Equal(t, uint64(2), cmd.index)

	assert.Nil(t, q.popNormal(3, 1))
}

func TestPendingCmdQueuePopNormalDrainsStale(t *testing.T) {
	q := &pendingCmdQueue{}
	q.appendNormal(pendingCmd{index: 1, term: 1, cb: &message.Callback{}})
	q.appendNormal(pendingCmd{index: 2, term: 1, cb: &message.Callback{}})

	// popNormal(index, term) pops anything proposed under an earlier term,
	// whatever its own index, until it reaches one that isn't stale yet.
	cmd := q.popNormal(5, 2)
	require.NotNil(t, cmd)
	assert.Equal(t, uint64(1), cmd.index)
	cmd = q.popNormal(5, 2)
	require.NotNil(t, cmd)
	assert.Equal(t, uint64(2), cmd.index)
}

func TestPendingCmdQueueConfChangeSlot(t *testing.T) {
	q := &pendingCmdQueue{}
	assert.Nil(t, q.takeConfChange())

	first := pendingCmd{index: 3, term: 1, cb: &message.Callback{}}
	q.setConfChange(&first)

	taken := q.takeConfChange()
	require.NotNil(t, taken)
	assert.Equal(t, uint64(3), taken.index)
	assert.Nil(t, q.takeConfChange())
}
