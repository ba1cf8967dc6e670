package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	buildJobs   int
	buildDrafts bool
	buildOut    string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile all collections once",
	Long: `Compiles every configured collection into a complete generation.

All document failures are collected and reported together; the build
succeeds only when every document compiled. With --out, the compiled
documents are exported as one JSON file per collection.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0, "number of concurrent document compilations (default: one per CPU)")
	buildCmd.Flags().BoolVar(&buildDrafts, "drafts", false, "include documents marked draft")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "directory to export compiled collections as JSON")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	s, err := newStack(buildJobs, buildDrafts)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.builder.Build(cmd.Context())
	printReport(cmd, result, err)
	if err != nil {
		return err
	}

	if buildOut != "" {
		if err := exportCollections(cmd, s); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

// exportCollections writes one <collection>.json per configured collection
// into the --out directory.
func exportCollections(cmd *cobra.Command, s *stack) error {
	if err := os.MkdirAll(buildOut, 0o755); err != nil {
		return err
	}

	for _, col := range s.cfg.DomainCollections() {
		docs, err := s.store.Collection(cmd.Context(), col.Name)
		if err != nil {
			return fmt.Errorf("read collection %s: %w", col.Name, err)
		}

		payload, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("serialise collection %s: %w", col.Name, err)
		}

		out := filepath.Join(buildOut, col.Name+".json")
		if err := os.WriteFile(out, payload, 0o644); err != nil {
			return err
		}
		cmd.Printf("Exported %d document(s) to %s\n", len(docs), out)
	}
	return nil
}
