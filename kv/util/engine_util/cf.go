package engine_util

// Column families the apply subsystem writes into. raft_cmdpb requests name
// one of these explicitly, or fall back to CfDefault.
const (
	CfDefault = "default"
	CfWrite   = "write"
	CfLock    = "lock"
)

// CFs lists every data column family, used when iterating or clearing a
// region's full key space (e.g. DeleteRange with an empty Cf).
var CFs = [...]string{CfDefault, CfWrite, CfLock}
