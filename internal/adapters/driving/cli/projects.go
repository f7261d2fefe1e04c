package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

var (
	projectsVersion int
	projectsJSON    bool
	projectsFull    bool
)

var (
	projectNameStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62"))

	projectMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Inspect generated projects",
}

var projectsFilesCmd = &cobra.Command{
	Use:   "files [session-id]",
	Short: "Show the files of a session's generated project",
	Long: `Prints the files stored for the project a session generated.

Each generation turn is stored as a new version; --version selects an
earlier one (the default is the current version). With --json the files
are printed as a JSON document; add --full to include file contents in
the summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectsFiles,
}

func init() {
	projectsFilesCmd.Flags().IntVar(&projectsVersion, "version", 0, "project version (default current)")
	projectsFilesCmd.Flags().BoolVar(&projectsJSON, "json", false, "output files as JSON")
	projectsFilesCmd.Flags().BoolVar(&projectsFull, "full", false, "include file contents in the summary")
	projectsCmd.AddCommand(projectsFilesCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjectsFiles(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	project, files, err := projectService.Files(context.Background(), args[0], projectsVersion)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println("No generated project for this session.")
			return nil
		}
		return fmt.Errorf("project files: %w", err)
	}

	if projectsJSON {
		data, err := json.MarshalIndent(files, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal files: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	version := projectsVersion
	if version == 0 {
		version = project.CurrentVersion
	}
	cmd.Printf("%s %s\n", projectNameStyle.Render(project.Name),
		projectMetaStyle.Render(fmt.Sprintf("[version %d, %d files]", version, len(files))))
	for _, f := range files {
		cmd.Printf("  %s\n", f.Path)
		if f.Description != "" {
			cmd.Println(projectMetaStyle.Render("    " + f.Description))
		}
		if projectsFull {
			cmd.Println(f.Content)
		}
	}
	return nil
}
