package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/duracube/kb-server/internal/config"
	"github.com/duracube/kb-server/internal/mcpwire"
)

// runTools prints the tool descriptors as JSON, the same list tools/list
// reports. Useful for wiring up clients without starting the server.
func runTools() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	registry, err := buildRegistry(cfg, slog.Default())
	if err != nil {
		return err
	}

	dispatcher := mcpwire.NewDispatcher(Name, Version, registry, slog.Default())
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(mcpwire.ListToolsResult{Tools: dispatcher.Descriptors()}); err != nil {
		return fmt.Errorf("encoding tool descriptors: %w", err)
	}
	return nil
}
