package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Print a session's transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	history, err := chatService.History(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(history) == 0 {
		cmd.Println("No messages in this session.")
		return nil
	}

	for _, msg := range history {
		label := "you"
		if msg.Role == domain.RoleModel {
			label = "model"
		}
		cmd.Println(roleStyle.Render(label + ":"))
		cmd.Println(msg.Content)
		cmd.Println()
	}
	return nil
}
