package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewModelsCmd creates the command that prints a provider's model catalog
func NewModelsCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	return &cobra.Command{
		Use:   "models [provider]",
		Short: "List the models a provider offers",
		Long: `Ask the chat server which models a provider offers, in the order the
picker would show them. The provider defaults to --provider or the
configured default_provider.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := ""
			if len(args) > 0 {
				provider = args[0]
			}
			return runModels(cmd.Context(), deps, provider)
		},
	}
}

func runModels(ctx context.Context, deps *Dependencies, provider string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := loadSettings(deps)
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = cfg.DefaultProvider
	}

	backend, err := deps.NewBackend(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	names, err := backend.Models(ctx, provider)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	if len(names) == 0 {
		fmt.Fprintf(deps.Stderr, "No models available for %s\n", provider)
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}
