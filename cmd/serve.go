package cmd

import (
	"fmt"

	"github.com/mj1618/desktop-agent/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing desktop-agent tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes snapshot and action tools.
The server keeps one session, so IDs from refresh_snapshot stay valid for the
following actions until the next refresh.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  desktop-agent serve
  desktop-agent serve --transport streamable-http --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default from config, stdio)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http transport (default from config, 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := server.Config{
		Transport: appConfig.Server.Transport,
		Port:      appConfig.Server.Port,
	}
	if t, _ := cmd.Flags().GetString("transport"); t != "" {
		cfg.Transport = t
	}
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		cfg.Port = p
	}

	sess, err := openSession(*appConfig)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	return server.New(sess).Serve(cfg)
}
