package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diogo/chatwidget/internal/config"
	"github.com/diogo/chatwidget/internal/providers"
	"github.com/diogo/chatwidget/internal/server"
)

// upstreamTimeout bounds each call the backend makes to a provider
const upstreamTimeout = 120 * time.Second

// NewServeCmd creates the backend server command
func NewServeCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat backend",
		Long: `Run the HTTP backend the chat widget talks to.

Settings come from the environment (or a .env file in the working directory):
  LLM_PROVIDER          default provider (gemini)
  GEMINI_API_KEY        Gemini API key
  GEMINI_MODEL          default Gemini model (models/gemini-2.5-flash)
  LMSTUDIO_BASE_URL     LM Studio endpoint (http://localhost:1234/v1)
  LMSTUDIO_MODEL        LM Studio model, empty or "auto" for the first loaded
  MAX_MESSAGE_CHARS     longest accepted message (4000)
  MAX_HISTORY           history turns forwarded upstream (20)
  CHAT_RATE_LIMIT       chat requests per second per client, 0 = off
  PORT                  listen port (5000)
  LOG_LEVEL             debug, info, warn, error (info)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := config.LoadServer()
			if port > 0 {
				cfg.Port = port
			}
			return runServe(ctx, deps, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides PORT)")
	return cmd
}

func runServe(ctx context.Context, deps *Dependencies, cfg config.ServerConfig) error {
	logger := newLogger(deps.Stderr, cfg.LogLevel)
	log.Logger = logger

	doer, err := providers.NewHTTPClient(upstreamTimeout)
	if err != nil {
		return fmt.Errorf("failed to create provider client: %w", err)
	}
	registry := providers.NewDefaultRegistry(cfg, doer)

	if _, err := registry.Get(cfg.DefaultProvider); err != nil {
		logger.Warn().Str("provider", cfg.DefaultProvider).Msg("LLM_PROVIDER is not a known provider")
	}
	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set, gemini chat requests will fail")
	}

	srv := server.New(cfg, registry, server.WithLogger(logger))
	return srv.Run(ctx)
}
