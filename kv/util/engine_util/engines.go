package engine_util

import (
	"bytes"

	"github.com/Connor1996/badger"
)

// Engines bundles the two badger instances a store runs: Kv holds region
// data plus apply/region state, Raft holds the raft log. The apply
// subsystem only ever touches Kv directly; Raft is owned by the log layer.
type Engines struct {
	Kv  *badger.DB
	Raft *badger.DB
}

func NewEngines(kv, raft *badger.DB) *Engines {
	return &Engines{Kv: kv, Raft: raft}
}

// OpenDB opens a badger instance rooted at dir, creating it if absent.
func OpenDB(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions
	opts.Dir = dir
	opts.ValueDir = dir
	return badger.Open(opts)
}

// GetCF fetches a single key from a column family, returning
// badger.ErrKeyNotFound untouched so callers can distinguish "absent" from
// a real I/O error.
func GetCF(db *badger.DB, cf string, key []byte) ([]byte, error) {
	var val []byte
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(KeyWithCF(cf, key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

// GetMeta reads a key and unmarshals it into msg, used for apply state and
// region local state lookups.
func GetMeta(db *badger.DB, key []byte, msg interface {
	Unmarshal([]byte) error
}) error {
	val, err := GetCF(db, CfDefault, key)
	if err != nil {
		return err
	}
	return msg.Unmarshal(val)
}

// Snapshot opens a read-only transaction against the current state of Kv.
// The apply path does not call it; the Snap data command answers with the
// region descriptor alone.
func (en *Engines) Snapshot() *badger.Txn {
	return en.Kv.NewTransaction(false)
}

// DeleteFilesInRangeCF drops whole SST files fully contained in
// [startKey, endKey) without an explicit per-key delete, approximating
// RocksDB's DeleteFilesInRange: badger doesn't expose file-level deletion,
// so this degrades to DeleteAllInRangeCF, matching the teaching engine's
// behavior of treating the two as equivalent at this scale.
func (en *Engines) DeleteFilesInRangeCF(cf string, startKey, endKey []byte) error {
	return en.DeleteAllInRangeCF(cf, startKey, endKey)
}

// DeleteAllInRangeCF deletes every key of cf in [startKey, endKey) by
// iterating and batching point deletes, mirroring the DeleteByKey strategy
// of the original engine's delete_all_in_range_cf.
func (en *Engines) DeleteAllInRangeCF(cf string, startKey, endKey []byte) error {
	const maxBatch = 256
	for {
		wb := new(WriteBatch)
		done := true
		err := en.Kv.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = false
			it := txn.NewIterator(opts)
			defer it.Close()
			cfPrefix := KeyWithCF(cf, nil)
			prefix := KeyWithCF(cf, startKey)
			upper := KeyWithCF(cf, endKey)
			count := 0
			for it.Seek(prefix); it.Valid(); it.Next() {
				k := it.Item().KeyCopy(nil)
				if !bytes.HasPrefix(k, cfPrefix) {
					break
				}
				if len(endKey) > 0 && string(k) >= string(upper) {
					break
				}
				wb.DeleteCF(cf, k[len(cf)+1:])
				count++
				if count >= maxBatch {
					done = false
					break
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		if err := wb.WriteToDB(en.Kv); err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// DeleteAllInRange deletes [startKey, endKey) across every column family,
// used by DeleteRange when Cf is empty.
func (en *Engines) DeleteAllInRange(startKey, endKey []byte) error {
	for _, cf := range CFs {
		if err := en.DeleteAllInRangeCF(cf, startKey, endKey); err != nil {
			return err
		}
	}
	return nil
}
