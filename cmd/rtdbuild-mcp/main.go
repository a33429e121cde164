package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/rtdbuild/internal/config"
	"github.com/ludo-technologies/rtdbuild/internal/logger"
	"github.com/ludo-technologies/rtdbuild/internal/version"
	"github.com/ludo-technologies/rtdbuild/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet(version.Name+"-mcp", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "Configuration file path (default: discovered per checkout)")
	logLevel := flags.String("log-level", "info", "Log level: debug, info, warn or error")
	logJSON := flags.Bool("log-json", false, "Emit JSON log lines")
	_ = flags.Parse(os.Args[1:])

	// MCP uses stdout for JSON-RPC
	log := logger.New(&logger.Config{
		Level:      *logLevel,
		Output:     os.Stderr,
		JSON:       *logJSON,
		TimeFormat: logger.DefaultConfig().TimeFormat,
	})

	var cfg *config.Config
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	server := mcpserver.NewMCPServer(
		version.Name,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)
	mcp.RegisterTools(server, mcp.NewDependencies(cfg, *configPath, log))

	log.Info("starting MCP server", "name", version.Name, "version", version.Short())
	log.Info("registered tools", "tools", []string{"render_conf_py", "locate_conf_py"})

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
