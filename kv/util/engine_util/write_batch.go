package engine_util

import (
	"github.com/Connor1996/badger"
)

type modify struct {
	cf     string
	key    []byte
	value  []byte // nil means delete
}

func (m *modify) size() int {
	return len(m.cf) + len(m.key) + len(m.value)
}

// WriteBatch buffers a set of CF-qualified puts/deletes that the apply
// context commits atomically with the region's apply state. It supports a
// single save point so a failed command's dirty writes can be rolled back
// without discarding the rest of the batch.
type WriteBatch struct {
	entries  []*modify
	size     int
	savePoint int
	savePointSize int
}

func (wb *WriteBatch) SetCF(cf string, key, value []byte) {
	wb.entries = append(wb.entries, &modify{cf: cf, key: append([]byte{}, key...), value: append([]byte{}, value...)})
	wb.size += len(cf) + len(key) + len(value)
}

func (wb *WriteBatch) DeleteCF(cf string, key []byte) {
	wb.entries = append(wb.entries, &modify{cf: cf, key: append([]byte{}, key...), value: nil})
	wb.size += len(cf) + len(key)
}

// SetMeta marshals a proto-like message and stores it under key in the
// default CF; it's how apply state and region local state ride in the same
// batch as the data mutations that produced them.
func (wb *WriteBatch) SetMeta(key []byte, msg interface {
	Marshal() ([]byte, error)
}) error {
	data, err := msg.Marshal()
	if err != nil {
		return err
	}
	wb.SetCF(CfDefault, key, data)
	return nil
}

// Count returns the number of buffered modifications.
func (wb *WriteBatch) Count() int { return len(wb.entries) }

// DataSize returns the approximate buffered byte size.
func (wb *WriteBatch) DataSize() int { return wb.size }

// IsEmpty reports whether any modification is buffered.
func (wb *WriteBatch) IsEmpty() bool { return len(wb.entries) == 0 }

// SetSavePoint marks the current end of the batch as a rollback point. Only
// one save point is ever active; a new call overwrites the previous one,
// matching how the apply delegate brackets a single command at a time.
func (wb *WriteBatch) SetSavePoint() {
	wb.savePoint = len(wb.entries)
	wb.savePointSize = wb.size
}

// RollbackToSavePoint discards every modification appended since the last
// SetSavePoint, used when a command fails partway through execution.
func (wb *WriteBatch) RollbackToSavePoint() {
	wb.entries = wb.entries[:wb.savePoint]
	wb.size = wb.savePointSize
}

// PopSavePoint discards the save point without rolling back, once the
// bracketed command has succeeded.
func (wb *WriteBatch) PopSavePoint() {
	wb.savePoint = len(wb.entries)
	wb.savePointSize = wb.size
}

// Reset clears the batch for reuse, keeping its backing slice; replacing
// an oversized batch with a fresh one is left to the caller.
func (wb *WriteBatch) Reset() {
	wb.entries = wb.entries[:0]
	wb.size = 0
	wb.savePoint = 0
	wb.savePointSize = 0
}

// ShouldWriteToEngine reports whether the batch has accumulated enough
// writes that the apply context should force a commit before continuing,
// bounding memory and replay cost if the process crashes mid-tick.
func (wb *WriteBatch) ShouldWriteToEngine(writeBatchLimit int) bool {
	return len(wb.entries) >= writeBatchLimit
}

// WriteToDB applies every buffered modification to db in a single
// transaction.
func (wb *WriteBatch) WriteToDB(db *badger.DB) error {
	if len(wb.entries) == 0 {
		return nil
	}
	return db.Update(func(txn *badger.Txn) error {
		for _, e := range wb.entries {
			k := KeyWithCF(e.cf, e.key)
			if e.value == nil {
				if err := txn.Delete(k); err != nil && err != badger.ErrKeyNotFound {
					return err
				}
				continue
			}
			if err := txn.SetEntry(&badger.Entry{Key: k, Value: e.value}); err != nil {
				return err
			}
		}
		return nil
	})
}

// KeyWithCF prefixes key with its column family so unrelated CFs never
// collide inside the single badger keyspace.
func KeyWithCF(cf string, key []byte) []byte {
	buf := make([]byte, 0, len(cf)+1+len(key))
	buf = append(buf, cf...)
	buf = append(buf, '_')
	buf = append(buf, key...)
	return buf
}
