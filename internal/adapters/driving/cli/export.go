package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atelier-labs/forgeview-cli/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Export a session transcript",
	Long: `Exports a session's full transcript in a machine-readable format.

Supported formats: json, yaml, markdown. Writes to stdout unless
--output names a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format (json, yaml, markdown)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	sessionID := args[0]
	history, err := chatService.History(context.Background(), sessionID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(history) == 0 {
		return fmt.Errorf("session %s has no messages", sessionID)
	}

	exporter, err := export.NewExporter(exportFormat)
	if err != nil {
		return err
	}

	transcript := export.NewTranscript(sessionID, "", history)

	out := cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := exporter.Export(transcript, out); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if exportOutput != "" {
		cmd.Printf("Exported session %s to %s\n", sessionID, exportOutput)
	}
	return nil
}
