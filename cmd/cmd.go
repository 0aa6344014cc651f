// Package cmd provides the CLI commands for the knowledge server.
//
// Commands:
//   - serve: HTTP server exposing the knowledge tools over JSON-RPC, SSE
//     and direct endpoints
//   - tools: print the tool descriptors and exit
//
// Signal handling and graceful shutdown are implemented via context
// cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
)

// Name and Version identify the server in the initialize handshake and on
// /health.
const (
	Name    = "duracube-knowledge"
	Version = "1.2.0"
)

// Execute is the main entry point for the knowledge server CLI.
func Execute() error {
	// Initialize logger once at entry point
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "serve":
		return runServe()
	case "tools":
		return runTools()
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("DuraCube knowledge server - contract-review knowledge over MCP and HTTP")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  kb-server serve [addr]  Start the HTTP server (default: " + defaultAddrHelp + ")")
	fmt.Println("  kb-server tools         Print the exposed tool descriptors")
	fmt.Println("  kb-server --version     Show version information")
	fmt.Println("  kb-server --help        Show this help")
	fmt.Println()
	fmt.Println("Endpoints:")
	fmt.Println("  POST /mcp, /messages    JSON-RPC envelope (initialize, tools/list, tools/call)")
	fmt.Println("  GET  /sse               Event stream announcing the legacy message path")
	fmt.Println("  POST /tools/<name>      Direct tool endpoints, bare document responses")
	fmt.Println("  GET  /health, /tools    Discovery")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DURACUBE_ADDR           Listen address override")
	fmt.Println("  DURACUBE_DATA_DIR       Directory overriding embedded knowledge documents")
	fmt.Println("  DEBUG                   Enable debug logging")
}

// runVersion displays version information.
func runVersion() {
	fmt.Printf("%s %s\n", Name, Version)
}
