package raftstore

import (
	"github.com/pingcap/log"
	"github.com/shirou/gopsutil/disk"
	"go.uber.org/zap"
)

// minDiskHeadroomRatio is the fraction of free space below which a new
// ComputeHash snapshot shouldn't be scheduled: hashing walks the entire
// engine and can itself need scratch space, so starting one while the
// disk is nearly full risks making a bad situation worse.
const minDiskHeadroomRatio = 0.1

// hasDiskHeadroom reports whether path's filesystem has at least
// minDiskHeadroomRatio free. A stat failure is treated as "don't block" —
// this is a best-effort scheduling guard, not a correctness requirement,
// so a host gopsutil can't read shouldn't stall hash scheduling entirely.
func hasDiskHeadroom(path string) bool {
	usage, err := disk.Usage(path)
	if err != nil {
		log.Warn("failed to stat disk usage, skipping headroom check", zap.String("path", path), zap.Error(err))
		return true
	}
	return 1-usage.UsedPercent/100 >= minDiskHeadroomRatio
}
