package raftstore

import (
	"github.com/pingcap/errcode"

	"github.com/tikv-apply/raftapply/kv/raftstore/util"
)

var (
	codeRegionNotFound = errcode.NewCode("apply.region_not_found")
	codeEpochNotMatch  = errcode.NewCode("apply.epoch_not_match")
	codeStaleCommand   = errcode.NewCode("apply.stale_command")
	codeKeyNotInRegion = errcode.NewCode("apply.key_not_in_region")
)

// codedError pairs one of the four client-visible logical errors with a
// stable errcode.Code, so an upper-half caller can switch on Code() instead
// of type-asserting the concrete *util.Err* type.
type codedError struct {
	error
	code errcode.Code
}

func (e codedError) Code() errcode.Code { return e.code }

// ToErrCode tags err with the code an upper-half caller should switch on,
// or returns nil if err isn't one of the apply subsystem's client-visible
// logical errors (a fatal or transport error has no code here: it should
// never reach a client response).
func ToErrCode(err error) errcode.ErrorCode {
	switch err.(type) {
	case *util.ErrRegionNotFound:
		return codedError{err, codeRegionNotFound}
	case *util.ErrEpochNotMatch:
		return codedError{err, codeEpochNotMatch}
	case *util.ErrStaleCommand:
		return codedError{err, codeStaleCommand}
	case *util.ErrKeyNotInRegion:
		return codedError{err, codeKeyNotInRegion}
	default:
		return nil
	}
}
