package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration value and persists it immediately.

Common keys:
  llm.provider                 gemini or ollama
  llm.api_key                  API key for the hosted provider
  llm.model                    model name override
  llm.base_url                 API endpoint override
  chat.token_budget            prompt token budget (default 16000)
  chat.max_messages            context window message cap (default 10)
  chat.rate_per_hour           per-session message limit (0 = unlimited)
  preview.join_model_messages  trailing model messages joined for preview`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	cmd.Printf("Config file: %s\n\n", configStore.Path())

	keys := []string{
		driven.ConfigLLMProvider,
		driven.ConfigLLMAPIKey,
		driven.ConfigLLMModel,
		driven.ConfigLLMBaseURL,
		driven.ConfigChatTokenBudget,
		driven.ConfigChatMaxMessages,
		driven.ConfigChatRatePerHour,
		driven.ConfigPreviewJoinModels,
	}
	sort.Strings(keys)

	for _, key := range keys {
		val, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %s = (not set)\n", key)
			continue
		}
		if key == driven.ConfigLLMAPIKey {
			val = maskAPIKey(fmt.Sprint(val))
		}
		cmd.Printf("  %s = %v\n", key, val)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	key, raw := args[0], args[1]

	// Store integers as integers so GetInt works on reload.
	var value any = raw
	if n, err := strconv.Atoi(raw); err == nil {
		value = n
	} else if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	shown := fmt.Sprint(value)
	if key == driven.ConfigLLMAPIKey {
		shown = maskAPIKey(raw)
	}
	cmd.Printf("Set %s = %s\n", key, shown)
	return nil
}

// maskAPIKey hides all but the edges of a secret.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
