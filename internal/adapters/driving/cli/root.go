// Package cli implements the forgeview command-line interface.
// Commands are thin: they parse flags, call the driving services, and
// format output. All behaviour lives in the core.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atelier-labs/forgeview-cli/internal/adapters/driven/config/file"
	"github.com/atelier-labs/forgeview-cli/internal/adapters/driven/llm/gemini"
	"github.com/atelier-labs/forgeview-cli/internal/adapters/driven/llm/ollama"
	"github.com/atelier-labs/forgeview-cli/internal/adapters/driven/storage/memory"
	"github.com/atelier-labs/forgeview-cli/internal/adapters/driven/storage/sqlite"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driven"
	"github.com/atelier-labs/forgeview-cli/internal/core/ports/driving"
	"github.com/atelier-labs/forgeview-cli/internal/core/services"
	"github.com/atelier-labs/forgeview-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	flagVerbose   bool
	flagConfigDir string
)

// Package-level services, wired by initServices. Tests inject fakes
// directly.
var (
	configStore    driven.ConfigStore
	chatService    driving.ChatService
	previewService driving.PreviewService
	sessionService driving.SessionService
	projectService driving.ProjectService

	store       *sqlite.Store
	promptStore *file.PromptStore
)

var rootCmd = &cobra.Command{
	Use:   "forgeview",
	Short: "Chat with a model and preview the UI code it generates",
	Long: `Forgeview is a conversational UI builder for the terminal.

Describe the interface you want, and the model replies with runnable
React components or whole multi-file projects. Forgeview extracts the
code from each reply, normalises it for a sandboxed browser preview,
and keeps every session and generated project on disk.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

// Execute runs the root command.
func Execute() error {
	defer teardown()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default ~/.forgeview)")
}

// initConfig opens the configuration store if not already injected.
func initConfig() error {
	if configStore != nil {
		return nil
	}
	cfg, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	configStore = cfg
	return nil
}

// initServices wires the full service graph: config, durable storage,
// session cache, model provider, and the driving services.
func initServices() error {
	if err := initConfig(); err != nil {
		return err
	}
	if chatService != nil && previewService != nil && sessionService != nil {
		return nil
	}

	var err error
	store, err = sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	model, err := buildProvider(configStore)
	if err != nil {
		return err
	}

	cache := memory.NewSessionCache()
	messages := store.MessageStore()
	projects := store.ProjectStore()

	chatCfg := services.ChatConfig{
		TokenBudget: configStore.GetInt(driven.ConfigChatTokenBudget),
		MaxMessages: configStore.GetInt(driven.ConfigChatMaxMessages),
		RatePerHour: configStore.GetInt(driven.ConfigChatRatePerHour),
	}
	chat := services.NewChatService(model, cache, messages, projects, chatCfg)

	promptStore, err = file.NewPromptStore("")
	if err != nil {
		logger.Warn("Prompt store unavailable: %v", err)
	} else {
		chat.SetPromptStore(promptStore)
		if err := promptStore.Watch(); err != nil {
			logger.Debug("Prompt hot reload disabled: %v", err)
		}
	}

	chatService = chat
	previewService = services.NewPreviewService(cache, messages, configStore.GetInt(driven.ConfigPreviewJoinModels))
	sessionService = services.NewSessionService(cache, messages)
	projectService = services.NewProjectService(projects)
	return nil
}

// buildProvider constructs the configured model provider.
func buildProvider(cfg driven.ConfigStore) (driven.ModelProvider, error) {
	provider := strings.ToLower(cfg.GetString(driven.ConfigLLMProvider))
	switch provider {
	case "", "gemini":
		apiKey := cfg.GetString(driven.ConfigLLMAPIKey)
		if apiKey == "" {
			return nil, errors.New("no API key configured: run 'forgeview config set llm.api_key <key>' or switch to ollama")
		}
		return gemini.NewModelProvider(gemini.Config{
			APIKey:  apiKey,
			BaseURL: cfg.GetString(driven.ConfigLLMBaseURL),
			Model:   cfg.GetString(driven.ConfigLLMModel),
		})
	case "ollama":
		return ollama.NewModelProvider(ollama.Config{
			BaseURL: cfg.GetString(driven.ConfigLLMBaseURL),
			Model:   cfg.GetString(driven.ConfigLLMModel),
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm.provider %q (supported: gemini, ollama)", provider)
	}
}

// teardown releases resources acquired by initServices.
func teardown() {
	if promptStore != nil {
		_ = promptStore.Close()
	}
	if store != nil {
		_ = store.Close()
	}
}
