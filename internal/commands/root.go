// Package commands provides CLI commands for chatwidget.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/chatwidget/internal/config"
)

var (
	// Global flags
	serverFlag   string
	providerFlag string
	modelFlag    string
	outputFlag   string
	fileFlag     string
	verboseFlag  bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the chatwidget command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()

	cmd := &cobra.Command{
		Use:   "chatwidget [prompt]",
		Short: "Terminal chat widget for LLM providers",
		Long: `chatwidget is a small chat client and backend. The client renders a
conversation, posts each message to the backend's /api/chat endpoint and
offers a model picker fed by /api/models. The backend proxies to Gemini or
LM Studio.

Examples:
  chatwidget serve                      Start the backend on $PORT
  chatwidget chat                       Start interactive chat
  chatwidget models lmstudio            List models offered by LM Studio
  chatwidget "What is Go?"              Send a single message
  chatwidget -f prompt.md               Read prompt from file
  cat prompt.md | chatwidget            Read prompt from stdin
  chatwidget "Hello" -o response.md     Save response to file`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(deps.Stderr, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "chatwidget %s (built %s)\n", Version, BuildTime)
				return nil
			}

			prompt, ok, err := readPrompt(deps, args)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}
			return runQuery(cmd.Context(), deps, prompt, !deps.IsTTY())
		},
	}

	cmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Chat server URL (default from config)")
	cmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "Provider to use (gemini, lmstudio)")
	cmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (empty = provider default)")
	cmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log diagnostics to stderr")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewServeCmd(deps))
	cmd.AddCommand(NewModelsCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// Execute runs the root command
func Execute() {
	deps := NewDependencies()
	if err := NewRootCmd(deps).Execute(); err != nil {
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

// readPrompt picks the prompt from -f, piped stdin or the positional
// argument, in that order. ok is false when none was given.
func readPrompt(deps *Dependencies, args []string) (string, bool, error) {
	if fileFlag != "" {
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if deps.Stdin != nil {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(data) > 0 || len(args) == 0 {
			return string(data), true, nil
		}
	}

	if len(args) > 0 {
		return args[0], true, nil
	}
	return "", false, nil
}

// loadSettings loads the user config and applies the global flags to it
func loadSettings(deps *Dependencies) config.Config {
	cfg, err := deps.LoadConfig()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: %v, using defaults\n", err)
	}
	return applyFlags(cfg)
}

// applyFlags overrides cfg with whatever global flags were set
func applyFlags(cfg config.Config) config.Config {
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}
	if providerFlag != "" {
		cfg.DefaultProvider = strings.ToLower(providerFlag)
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	return cfg
}
