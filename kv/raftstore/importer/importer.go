// Package importer models the external SST importer the IngestSst write
// command hands staged files off to. The actual file staging and physical
// deletion lives in a separate service (sst_importer in the original); this
// subsystem only needs the narrow interface it calls through.
package importer

import (
	"github.com/Connor1996/badger"
	"github.com/tikv-apply/raftapply/proto/pkg/import_sstpb"
)

// SSTImporter ingests and deletes previously staged SST files.
type SSTImporter interface {
	// Ingest moves a staged SST file's contents into db under the column
	// family named in meta.
	Ingest(meta *import_sstpb.SSTMeta, db *badger.DB) error
	// Delete removes a staged SST file from the importer's local staging
	// directory without touching db.
	Delete(meta *import_sstpb.SSTMeta) error
}

// noopImporter is a test double: Ingest and Delete both succeed without
// touching any file or database, so apply delegate tests can exercise
// IngestSst's epoch/range validation without standing up real SST files.
type noopImporter struct {
	ingested []*import_sstpb.SSTMeta
	deleted  []*import_sstpb.SSTMeta
}

// NewNoopImporter returns an SSTImporter suitable for tests.
func NewNoopImporter() SSTImporter {
	return &noopImporter{}
}

func (n *noopImporter) Ingest(meta *import_sstpb.SSTMeta, db *badger.DB) error {
	n.ingested = append(n.ingested, meta)
	return nil
}

func (n *noopImporter) Delete(meta *import_sstpb.SSTMeta) error {
	n.deleted = append(n.deleted, meta)
	return nil
}
