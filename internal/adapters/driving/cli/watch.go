package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/huynhsang/contentkit/internal/adapters/driven/source/filesystem"
	"github.com/huynhsang/contentkit/internal/core/ports/driving"
	"github.com/huynhsang/contentkit/internal/core/services"
)

var (
	watchJobs   int
	watchDrafts bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild on source changes",
	Long: `Builds once, then watches the collection source directories and
rebuilds whenever files change. A failed rebuild keeps the previous
generation live. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&watchJobs, "jobs", "j", 0, "number of concurrent document compilations (default: one per CPU)")
	watchCmd.Flags().BoolVar(&watchDrafts, "drafts", false, "include documents marked draft")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	s, err := newStack(watchJobs, watchDrafts)
	if err != nil {
		return err
	}
	defer s.Close()

	watcher, err := filesystem.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := services.NewWatchService(
		s.builder,
		watcher,
		s.cfg.DomainCollections(),
		func(result *driving.BuildResult, err error) {
			printReport(cmd, result, err)
		},
	)

	err = svc.Run(ctx)
	if ctx.Err() != nil {
		// Interrupted by the user, not a failure.
		return nil
	}
	return err
}
