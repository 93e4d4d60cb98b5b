package raftstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeSignalLoadStore(t *testing.T) {
	s := newMergeSignal()
	assert.Equal(t, uint64(0), s.load())

	s.store(42)
	assert.Equal(t, uint64(42), s.load())
}
