// Command applyctl exercises the apply subsystem end to end without the
// rest of the store: it wires a router and worker pool over a scratch
// badger instance and drives it through a couple of debug subcommands.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/disk"
	"github.com/spf13/cobra"

	"github.com/tikv-apply/raftapply/kv/config"
	"github.com/tikv-apply/raftapply/kv/raftstore"
	"github.com/tikv-apply/raftapply/kv/raftstore/importer"
	"github.com/tikv-apply/raftapply/kv/raftstore/message"
	"github.com/tikv-apply/raftapply/kv/util/engine_util"
	"github.com/tikv-apply/raftapply/proto/pkg/metapb"
	rspb "github.com/tikv-apply/raftapply/proto/pkg/raft_serverpb"
)

var dataDir string

func main() {
	root := &cobra.Command{
		Use:   "applyctl",
		Short: "exercise the apply subsystem without the rest of the store",
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "badger data directory (validate defaults to a throwaway temp dir, disk to the current directory)")
	root.AddCommand(validateCmd(), diskCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "register a throwaway region and round-trip a Validate message through the router",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, cleanup, err := resolveDataDir()
			if err != nil {
				return err
			}
			defer cleanup()

			cfg := config.NewDefaultConfig()
			cfg.DataDir = dir

			kv, err := engine_util.OpenDB(dir)
			if err != nil {
				return fmt.Errorf("open engine: %w", err)
			}
			defer kv.Close()
			engines := engine_util.NewEngines(kv, kv)

			host := raftstore.NewCoprocessorHost()
			notifier := make(chan message.Msg, 16)
			router, sys := raftstore.CreateApplyBatchSystem(cfg, engines, importer.NewNoopImporter(), host, notifier)
			defer sys.Shutdown()

			region := &metapb.Region{
				Id:          1,
				RegionEpoch: &metapb.RegionEpoch{ConfVer: 1, Version: 1},
				Peers:       []*metapb.Peer{{Id: 1, StoreId: 1}},
			}
			applyState := rspb.RaftApplyState{
				AppliedIndex:   5,
				TruncatedState: &rspb.RaftTruncatedState{Index: 5, Term: 5},
			}
			if !raftstore.NewApplier(router, 1, 1, region, applyState, 5) {
				return fmt.Errorf("registering region 1 was refused")
			}

			done := make(chan *metapb.Region, 1)
			router.Schedule(1, message.NewPeerMsg(message.MsgTypeValidate, 1, &raftstore.MsgValidate{
				RegionId: 1,
				F: func(r *metapb.Region, _ *rspb.RaftApplyState) {
					done <- r
				},
			}))

			select {
			case r := <-done:
				fmt.Printf("region %d validated: start=%q end=%q conf_ver=%d version=%d\n",
					r.Id, r.StartKey, r.EndKey, r.RegionEpoch.ConfVer, r.RegionEpoch.Version)
			case <-time.After(5 * time.Second):
				return fmt.Errorf("timed out waiting for the apply worker to process the Validate message")
			}
			return nil
		},
	}
}

func diskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disk",
		Short: "report the free-space headroom ComputeHash scheduling checks before scheduling a hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dataDir
			if dir == "" {
				dir = "."
			}
			usage, err := disk.Usage(dir)
			if err != nil {
				return fmt.Errorf("stat disk usage at %s: %w", dir, err)
			}
			fmt.Printf("%s: %.1f%% used, %d bytes free\n", dir, usage.UsedPercent, usage.Free)
			return nil
		},
	}
}

func resolveDataDir() (dir string, cleanup func(), err error) {
	if dataDir != "" {
		return dataDir, func() {}, nil
	}
	tmp, err := os.MkdirTemp("", "applyctl-")
	if err != nil {
		return "", nil, err
	}
	return tmp, func() { os.RemoveAll(tmp) }, nil
}
