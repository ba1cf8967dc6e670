package cli

import (
	"errors"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/huynhsang/contentkit/internal/core/domain"
	"github.com/huynhsang/contentkit/internal/core/ports/driving"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// printReport renders one build outcome. The per-document failure list is
// already ordered by collection then path.
func printReport(cmd *cobra.Command, result *driving.BuildResult, err error) {
	if result == nil {
		if err != nil {
			cmd.PrintErrln(failureStyle.Render("Build failed:"), err)
		}
		return
	}

	if result.Failed() {
		cmd.PrintErrln(failureStyle.Render("Build failed"))
		for _, docErr := range result.Errors {
			cmd.PrintErrf("  %s %v\n", pathStyle.Render(docErr.Collection+"/"+docErr.Path+":"), docErr.Err)
			printFieldDetail(cmd, docErr.Err)
		}
		return
	}
	if err != nil {
		cmd.PrintErrln(failureStyle.Render("Build failed:"), err)
		return
	}

	names := make([]string, 0, len(result.Compiled))
	for name := range result.Compiled {
		names = append(names, name)
	}
	sort.Strings(names)

	cmd.Println(successStyle.Render("Build succeeded"))
	for _, name := range names {
		cmd.Printf("  %s: %d document(s)\n", name, result.Compiled[name])
	}
	if result.CacheHits > 0 {
		cmd.Println(dimStyle.Render("  cache hits:"), result.CacheHits)
	}
	cmd.Println(dimStyle.Render("  generation:"), result.GenerationID)
}

// printFieldDetail expands schema validation failures into their per-field
// violations, one line each.
func printFieldDetail(cmd *cobra.Command, err error) {
	var schemaErr *domain.SchemaValidationError
	if !errors.As(err, &schemaErr) {
		return
	}
	for _, field := range schemaErr.Fields {
		cmd.PrintErrf("      %s: %s\n", field.Field, field.Message)
	}
}
