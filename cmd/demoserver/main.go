// Command demoserver starts a stand-in analysis service with canned fixtures.
// Usage: go run ./cmd/demoserver [port]
// Default port: 8000
package main

import (
	"log"
	"os"
	"strconv"

	"github.com/raysh454/repopulse/internal/demoserver"
	"github.com/raysh454/repopulse/internal/logging"
)

func main() {
	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	logger := logging.NewStdoutLogger("demoserver")
	for _, f := range demoserver.AllFixtures() {
		logger.Info("fixture available", logging.Field{Key: "repo", Value: f.Slug}, logging.Field{Key: "description", Value: f.Description})
	}

	server := demoserver.NewDemoServer(cfg, logger)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
