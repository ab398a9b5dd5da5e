package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/config"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the carousel as MCP tools and the slides and portfolio content
as resources, so AI agents can browse the projects.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")

		return withSite(cmd, func(ctx context.Context, cfg *config.Config, site *folio.Site, logger *slog.Logger) error {
			srv := site.MCP()
			switch transport {
			case "stdio":
				// Ensure logs don't corrupt JSON-RPC on Stdout
				log.SetOutput(os.Stderr)
				logger.Info("Starting folio MCP Server (Stdio)...")
				return srv.ServeStdio()
			case "sse":
				port := cfg.MCP.Port
				addr := fmt.Sprintf("%s:%d", cfg.Server.Host, port)
				logger.Info("Starting folio MCP Server (SSE)", "addr", addr)
				if err := srv.ServeSSE(ctx, addr, fmt.Sprintf("http://localhost:%d", port)); err != nil {
					return err
				}
				logger.Info("MCP Server stopped gracefully")
				return nil
			default:
				return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE, config key mcp.port)")
}
