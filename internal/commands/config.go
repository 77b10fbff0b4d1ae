package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/chatwidget/internal/config"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the path of the configuration file and the settings in effect,
after --server, --provider and --model have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(deps)
		},
	}
}

func showConfig(deps *Dependencies) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	cfg := loadSettings(deps)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "# %s\n", path)
	fmt.Fprintln(deps.Stdout, string(data))
	if modelFlag != "" {
		fmt.Fprintf(deps.Stdout, "# model: %s\n", modelFlag)
	}
	return nil
}
