package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	chatSession  string
	chatNoStream bool
)

var (
	sessionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	roleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send a message and stream the model's reply",
	Long: `Sends one message to the model and prints the reply as it streams.

Without --session a new session is started and its id printed, so the
conversation can be continued, previewed, or exported later.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "", "continue an existing session")
	chatCmd.Flags().BoolVar(&chatNoStream, "no-stream", false, "wait for the complete reply instead of streaming")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx := context.Background()

	var onDelta func(string) error
	if !chatNoStream {
		onDelta = func(delta string) error {
			fmt.Fprint(os.Stdout, delta)
			return nil
		}
	}

	turn, err := chatService.Send(ctx, chatSession, args[0], onDelta)
	if err != nil {
		// A stream can fail mid-reply; show what arrived before failing.
		if turn.Reply != "" && !chatNoStream {
			cmd.Println()
			cmd.PrintErrln(errStyle.Render("stream interrupted: " + err.Error()))
			cmd.Println(sessionStyle.Render("session " + turn.SessionID))
			return nil
		}
		return fmt.Errorf("chat failed: %w", err)
	}

	if chatNoStream {
		cmd.Println(roleStyle.Render("model:"))
		cmd.Println(turn.Reply)
	} else {
		cmd.Println()
	}
	cmd.Println()
	cmd.Println(sessionStyle.Render("session " + turn.SessionID))
	return nil
}

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
