package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

var (
	previewJSON bool
	previewFull bool
)

var (
	unitNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	unitMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var previewCmd = &cobra.Command{
	Use:   "preview [session-id]",
	Short: "Extract preview units from a session's latest reply",
	Long: `Runs the extraction pipeline over the session's most recent model
reply and prints the resulting preview units.

With --json the units are printed as a JSON document in the shape the
browser sandbox consumes. Without it, a human-readable summary is
shown; add --full to include each unit's code.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewJSON, "json", false, "output units as JSON")
	previewCmd.Flags().BoolVar(&previewFull, "full", false, "include unit code in the summary")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	result, err := previewService.Preview(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	if previewJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if result.Generating {
		cmd.Println("Reply still generating (or session has no model reply yet).")
		return nil
	}
	if len(result.Units) == 0 {
		cmd.Println("No previewable code in the latest reply.")
		return nil
	}

	for _, unit := range result.Units {
		printUnit(cmd, unit)
	}
	return nil
}

func printUnit(cmd *cobra.Command, unit domain.PreviewUnit) {
	kind := "markup"
	if unit.IsExecutable {
		kind = "script"
	}
	cmd.Printf("%s %s\n", unitNameStyle.Render(unit.Name), unitMetaStyle.Render("["+unit.ID+", "+kind+"]"))
	if unit.FallbackExportName != "" {
		cmd.Println(unitMetaStyle.Render("  fallback export: " + unit.FallbackExportName))
	}
	if previewFull {
		cmd.Println(unit.Code)
	}
	cmd.Println()
}
