// Package cli wires the content pipeline to its cobra command surface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/huynhsang/contentkit/internal/adapters/driven/config/file"
	"github.com/huynhsang/contentkit/internal/adapters/driven/source/filesystem"
	"github.com/huynhsang/contentkit/internal/adapters/driven/storage/memory"
	"github.com/huynhsang/contentkit/internal/adapters/driven/storage/sqlite"
	"github.com/huynhsang/contentkit/internal/assemble"
	"github.com/huynhsang/contentkit/internal/core/ports/driven"
	"github.com/huynhsang/contentkit/internal/core/services"
	"github.com/huynhsang/contentkit/internal/logger"
)

// version is set by Execute before any command runs.
var version = "dev"

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "contentkit",
	Short: "Compile markdown collections into render-ready documents",
	Long: `contentkit compiles markdown content collections (blog posts,
documentation pages) into validated, transformed, render-ready documents.

Front matter is validated per collection schema, code fences are
highlighted with per-line metadata, and each document gets a derived
slug, reading time and resolved author.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to contentkit.toml")
}

// Execute runs the root command.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// stack is the assembled build pipeline for one command invocation.
type stack struct {
	cfg     *configfile.SiteConfig
	builder *services.BuildService
	store   *memory.Store
	cache   driven.BuildCache
}

// Close releases the stack's resources.
func (s *stack) Close() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
}

// newStack loads the configuration and wires the build service.
func newStack(jobs int, drafts bool) (*stack, error) {
	cfg, err := configfile.Load(configPath)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if jobs > 0 {
		workers = jobs
	}

	var cache driven.BuildCache
	if cfg.Cache.Enabled {
		c, err := sqlite.NewCache(cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("open build cache: %w", err)
		}
		cache = c
	}

	store := memory.NewStore()
	builder := services.NewBuildService(
		services.BuildConfig{
			Collections:   cfg.DomainCollections(),
			Workers:       workers,
			IncludeDrafts: drafts,
		},
		filesystem.NewSource(),
		store,
		cache,
		assemble.New(assemble.Config{
			DefaultLocale: cfg.DefaultLocale,
			Authors:       cfg.DomainAuthors(),
		}),
	)

	return &stack{cfg: cfg, builder: builder, store: store, cache: cache}, nil
}
