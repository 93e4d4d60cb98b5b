// Package import_sstpb describes SST files bulk-ingested by the IngestSst
// write command. The importer that physically stages and deletes these files
// is an external collaborator (see kv/raftstore/importer).
package import_sstpb

import (
	"github.com/gogo/protobuf/proto"
	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
)

// Range is the key range covered by an SST file, used to validate that the
// file's contents fall inside the target region before ingesting it.
type Range struct {
	Start []byte `protobuf:"bytes,1,opt,name=start,proto3" json:"start,omitempty"`
	End   []byte `protobuf:"bytes,2,opt,name=end,proto3" json:"end,omitempty"`
}

func (m *Range) Reset()         { *m = Range{} }
func (m *Range) String() string { return proto.CompactTextString(m) }
func (*Range) ProtoMessage()    {}

// SSTMeta identifies a staged SST file and the region/epoch/cf it is meant
// for; IngestSst validates RegionId, Cf, RegionEpoch and Range against the
// applying region before calling into the importer. Uuid and Length are
// not checked.
type SSTMeta struct {
	Uuid        []byte             `protobuf:"bytes,1,opt,name=uuid,proto3" json:"uuid,omitempty"`
	RegionId    uint64             `protobuf:"varint,2,opt,name=region_id,json=regionId,proto3" json:"region_id,omitempty"`
	RegionEpoch *metapb.RegionEpoch `protobuf:"bytes,3,opt,name=region_epoch,json=regionEpoch,proto3" json:"region_epoch,omitempty"`
	Cf          string             `protobuf:"bytes,4,opt,name=cf,proto3" json:"cf,omitempty"`
	Range       *Range             `protobuf:"bytes,5,opt,name=range,proto3" json:"range,omitempty"`
	Length      uint64             `protobuf:"varint,6,opt,name=length,proto3" json:"length,omitempty"`
}

func (m *SSTMeta) Reset()         { *m = SSTMeta{} }
func (m *SSTMeta) String() string { return proto.CompactTextString(m) }
func (*SSTMeta) ProtoMessage()    {}
