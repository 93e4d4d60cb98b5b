package raftstore

import (
	"fmt"

	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/tikv-apply/raftapply/kv/raftstore/util"
	"github.com/tikv-apply/raftapply/proto/pkg/errorpb"
	"github.com/tikv-apply/raftapply/proto/pkg/raft_cmdpb"
)

func newCmdResp() *raft_cmdpb.RaftCmdResponse {
	return &raft_cmdpb.RaftCmdResponse{Header: &raft_cmdpb.RaftResponseHeader{}}
}

// ErrResp converts one of the four client-visible logical errors into a
// RaftCmdResponse header; any other error type is a programming error and
// is intentionally not handled here, since it should have been classified
// as fatal before reaching this call.
func ErrResp(err error) *raft_cmdpb.RaftCmdResponse {
	resp := newCmdResp()
	resp.Header.Error = errToErrorpb(err)
	if coded := ToErrCode(err); coded != nil {
		log.Debug("command rejected", zap.String("code", fmt.Sprint(coded.Code())), zap.Error(err))
	}
	return resp
}

func errToErrorpb(err error) *errorpb.Error {
	e := &errorpb.Error{Message: err.Error()}
	switch x := err.(type) {
	case *util.ErrRegionNotFound:
		e.RegionNotFound = &errorpb.RegionNotFound{RegionId: x.RegionId}
	case *util.ErrEpochNotMatch:
		e.EpochNotMatch = &errorpb.EpochNotMatch{CurrentRegions: x.CurrentRegions}
	case *util.ErrStaleCommand:
		e.StaleCommand = &errorpb.StaleCommand{}
	case *util.ErrKeyNotInRegion:
		e.KeyNotInRegion = &errorpb.KeyNotInRegion{
			Key: x.Key, RegionId: x.Region.Id, StartKey: x.Region.StartKey, EndKey: x.Region.EndKey,
		}
	}
	return e
}

// ErrRespRegionNotFound builds the response an applier returns when a
// command arrives for a region it no longer hosts (the applier is being
// destroyed).
func ErrRespRegionNotFound(regionID uint64) *raft_cmdpb.RaftCmdResponse {
	return ErrResp(&util.ErrRegionNotFound{RegionId: regionID})
}

// ErrRespStaleCommand builds the response for a command proposed under a
// term this peer is no longer leader for.
func ErrRespStaleCommand(term uint64) *raft_cmdpb.RaftCmdResponse {
	resp := ErrResp(&util.ErrStaleCommand{})
	BindRespTerm(resp, term)
	return resp
}

// BindRespTerm stamps the term a command executed under onto its response
// header, so a proposer can detect it lost leadership mid-flight.
func BindRespTerm(resp *raft_cmdpb.RaftCmdResponse, term uint64) {
	if resp.Header == nil {
		resp.Header = &raft_cmdpb.RaftResponseHeader{}
	}
	resp.Header.CurrentTerm = term
}
