package services

import (
	"context"
	"fmt"

	"github.com/huynhsang/contentkit/internal/core/domain"
	"github.com/huynhsang/contentkit/internal/core/ports/driven"
	"github.com/huynhsang/contentkit/internal/core/ports/driving"
	"github.com/huynhsang/contentkit/internal/logger"
)

// WatchService rebuilds whenever a source directory changes. A failed
// rebuild is reported and the previous generation stays live, so the
// rendering layer never regresses to a broken state.
type WatchService struct {
	builder     driving.Builder
	watcher     driven.SourceWatcher
	collections []domain.Collection

	// onResult receives every build result, including failed ones.
	// Used by the CLI to print rebuild reports.
	onResult func(*driving.BuildResult, error)
}

// NewWatchService creates a watch service. onResult may be nil.
func NewWatchService(
	builder driving.Builder,
	watcher driven.SourceWatcher,
	collections []domain.Collection,
	onResult func(*driving.BuildResult, error),
) *WatchService {
	return &WatchService{
		builder:     builder,
		watcher:     watcher,
		collections: collections,
		onResult:    onResult,
	}
}

// Run performs an initial build, then rebuilds on every change event until
// ctx is cancelled. The initial build failing is not fatal: watch mode
// exists to iterate on broken content.
func (s *WatchService) Run(ctx context.Context) error {
	s.report(s.builder.Build(ctx))

	events, err := s.watcher.Watch(ctx, s.collections)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	logger.Info("Watching %d collection(s) for changes", len(s.collections))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			logger.Debug("Change in collection %s, rebuilding", ev.Collection)
			s.report(s.builder.Build(ctx))
		}
	}
}

func (s *WatchService) report(result *driving.BuildResult, err error) {
	if err != nil {
		logger.Warn("Build failed, previous generation stays live: %v", err)
	}
	if s.onResult != nil {
		s.onResult(result, err)
	}
}
