package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/labdecoder/labdecoder/internal/config"
	"github.com/labdecoder/labdecoder/internal/home"
	"github.com/labdecoder/labdecoder/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the labdecoder server",
	Long: `Start the labdecoder HTTP server.

The server provides:
  - POST /api/upload  - Upload a lab-report PDF and extract results
  - POST /api/explain - Explain every extracted result
  - POST /api/ask     - Answer a follow-up question
  - GET  /api/summary - Summarize the results
  - POST /api/clear   - Drop the session
  - GET  /health      - Basic server health check
  - GET  /ready       - Readiness check (includes knowledge store status)

Examples:
  labdecoder serve                    # Start on default port 8080
  labdecoder serve --port 3000        # Start on custom port
  labdecoder serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cfgMgr, err := config.NewManager(cfgPath(h))
		if err != nil {
			return err
		}
		cfgMgr.WatchConfig()

		cfg := cfgMgr.Get()
		if cfg.Knowledge.DBPath == config.Default().Knowledge.DBPath {
			cfg.Knowledge.DBPath = h.KnowledgeDBPath()
		}

		host := serveHost
		if host == "" {
			host = cfg.Server.Host
		}
		port := servePort
		if port == "" {
			port = cfg.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:   host,
			Port:   port,
			App:    cfg,
			Logger: logger,
		})
		if err != nil {
			return err
		}

		// Blocks until shutdown
		return srv.Start(ctx)
	},
}

// cfgPath resolves the config file: an explicit --config wins,
// otherwise the home directory copy is used when present.
func cfgPath(h *home.Dir) string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(h.ConfigPath()); err == nil {
		return h.ConfigPath()
	}
	return ""
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
