package cli

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/mcp"
)

const defaultMCPHost = "127.0.0.1"

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the classify, extract, prepare, suggest_tags and
reconcile_tags tools and the kb://tags resource. It never publishes.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead; Prometheus metrics are then
served on /metrics. The HTTP server has no authentication and binds to
127.0.0.1 unless --host says otherwise. Its extract and prepare tools read
local files and fetch URLs, so only widen the bind on a trusted network.

Examples:
  # Stdio mode (default, for desktop assistants)
  kb mcp serve

  # HTTP mode on loopback (for MCP Inspector, scraping)
  kb mcp serve --port 8080

  # HTTP mode on every interface
  kb mcp serve --port 8080 --host 0.0.0.0

Assistant configuration:
  {
    "mcpServers": {
      "kb": {
        "command": "/path/to/kb",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().String("host", defaultMCPHost, "HTTP bind address")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Classify: classifyService,
		Pipeline: pipelineService,
		Tags:     tagService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}
	if metricsHandler != nil {
		server.SetMetricsHandler(metricsHandler)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	startWatcher(ctx)

	if port > 0 {
		host, err := cmd.Flags().GetString("host")
		if err != nil {
			return fmt.Errorf("getting host flag: %w", err)
		}
		addr := listenAddr(host, port)
		// stdout is free in HTTP mode; in stdio mode it carries JSON-RPC.
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// listenAddr joins host and port, falling back to loopback for an empty host.
func listenAddr(host string, port int) string {
	if host == "" {
		host = defaultMCPHost
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// startWatcher runs the prompt watcher until ctx is cancelled.
func startWatcher(ctx context.Context) {
	if promptWatcher == nil {
		return
	}
	go promptWatcher.Run(ctx)
}
