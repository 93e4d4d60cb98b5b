package util

import (
	"bytes"
	"fmt"

	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
	"github.com/tikv-apply/raftapply/proto/pkg/raft_cmdpb"
)

// CheckRegionEpoch validates a command's epoch against region's current
// epoch: any difference in a field the command type checks (Version,
// ConfVer or both) is rejected. includeRegion only decides whether the
// returned error carries region as the current region.
func CheckRegionEpoch(req *raft_cmdpb.RaftCmdRequest, region *metapb.Region, includeRegion bool) error {
	checkVer, checkConfVer := false, false
	if req.AdminRequest == nil {
		checkVer = true
	} else {
		switch req.AdminRequest.CmdType {
		case raft_cmdpb.AdminCmdType_CompactLog, raft_cmdpb.AdminCmdType_TransferLeader,
			raft_cmdpb.AdminCmdType_ComputeHash, raft_cmdpb.AdminCmdType_VerifyHash:
			// these admin commands don't change the region range or peer set.
		case raft_cmdpb.AdminCmdType_Split, raft_cmdpb.AdminCmdType_BatchSplit,
			raft_cmdpb.AdminCmdType_PrepareMerge, raft_cmdpb.AdminCmdType_CommitMerge,
			raft_cmdpb.AdminCmdType_RollbackMerge:
			checkVer = true
		case raft_cmdpb.AdminCmdType_ChangePeer:
			checkConfVer = true
		default:
			checkVer = true
			checkConfVer = true
		}
	}

	if !checkVer && !checkConfVer {
		return nil
	}

	epoch := req.GetHeader().GetRegionEpoch()
	if epoch == nil {
		return nil
	}

	current := region.GetRegionEpoch()
	if checkVer && epoch.GetVersion() != current.GetVersion() {
		return staleEpochErr(region, includeRegion)
	}
	if checkConfVer && epoch.GetConfVer() != current.GetConfVer() {
		return staleEpochErr(region, includeRegion)
	}
	return nil
}

func staleEpochErr(region *metapb.Region, includeRegion bool) error {
	msg := fmt.Sprintf("current epoch of region %d is %s", region.Id, region.GetRegionEpoch())
	var regions []*metapb.Region
	if includeRegion {
		regions = []*metapb.Region{region}
	}
	return &ErrEpochNotMatch{Message: msg, CurrentRegions: regions}
}

// CheckKeyInRegion reports whether key falls inside [StartKey, EndKey) of
// region, treating an empty EndKey as +infinity.
func CheckKeyInRegion(key []byte, region *metapb.Region) error {
	if bytes.Compare(key, region.StartKey) >= 0 &&
		(len(region.EndKey) == 0 || bytes.Compare(key, region.EndKey) < 0) {
		return nil
	}
	return &ErrKeyNotInRegion{Key: key, Region: region}
}

// CheckKeyInRegionExclusive accepts key in (StartKey, EndKey]: unlike
// CheckKeyInRegion it rejects a key equal to StartKey and accepts one equal
// to EndKey, used to validate a range's end boundary against the region end.
func CheckKeyInRegionExclusive(key []byte, region *metapb.Region) error {
	if bytes.Compare(key, region.StartKey) > 0 &&
		(len(region.EndKey) == 0 || bytes.Compare(key, region.EndKey) <= 0) {
		return nil
	}
	return &ErrKeyNotInRegion{Key: key, Region: region}
}

// FindPeer returns the peer on storeID if present in region.
func FindPeer(region *metapb.Region, storeID uint64) *metapb.Peer {
	for _, p := range region.Peers {
		if p.StoreId == storeID {
			return p
		}
	}
	return nil
}

// RemovePeer removes and returns the peer on storeID from region, if
// present.
func RemovePeer(region *metapb.Region, storeID uint64) *metapb.Peer {
	for i, p := range region.Peers {
		if p.StoreId == storeID {
			region.Peers = append(region.Peers[:i], region.Peers[i+1:]...)
			return p
		}
	}
	return nil
}

// PeerEqual reports whether two peers refer to the same replica identity.
func PeerEqual(a, b *metapb.Peer) bool {
	return a.Id == b.Id && a.StoreId == b.StoreId && a.IsLearner == b.IsLearner
}

// marshaler/unmarshaler is the minimal shape CloneMsg needs from a
// gogo/protobuf-generated message.
type marshaler interface {
	Marshal() ([]byte, error)
}
type unmarshaler interface {
	Unmarshal([]byte) error
}

// CloneMsg deep-copies src into dst by round-tripping through Marshal, the
// same trick the teaching raftstore uses to avoid hand-written deep-copy
// methods for every generated message.
func CloneMsg(src marshaler, dst unmarshaler) error {
	data, err := src.Marshal()
	if err != nil {
		return err
	}
	return dst.Unmarshal(data)
}

// IsInitialMsg reports whether a committed entry represents the very first
// command a newly created peer will see: any ChangePeer admin request, or a
// request with an empty current epoch.
func IsInitialMsg(req *raft_cmdpb.RaftCmdRequest) bool {
	if req.AdminRequest != nil && req.AdminRequest.CmdType == raft_cmdpb.AdminCmdType_ChangePeer {
		return true
	}
	epoch := req.GetHeader().GetRegionEpoch()
	return epoch != nil && epoch.GetConfVer() == 0 && epoch.GetVersion() == 0
}
