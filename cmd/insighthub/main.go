// Command insighthub loads the three prepared datasets and serves the
// aggregation tool catalog over stdio, for any JSON-RPC tool-calling client.
package main

import (
	"log"
	"os"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/insights"
	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/tools"
)

func main() {
	// stdout carries the protocol; all logging goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}

	// A load failure is fatal: the hub cannot answer questions with a
	// partial view of the data.
	hub, err := insights.NewHub(cfg.DataDir, cfg.Datasets)
	if err != nil {
		log.Fatalf("❌ FATAL: Could not load datasets: %v", err)
	}
	log.Printf("✅ Datasets loaded: %d events, %d articles, %d blog posts.",
		hub.Events.Len(), hub.Articles.Len(), hub.BlogPosts.Len())

	manager := tools.NewInsightManager(hub)
	log.Printf("✅ Tool catalog ready with %d tools.", manager.Count())

	server := newStdioServer(manager, os.Stdout)
	if err := server.serve(os.Stdin); err != nil {
		log.Fatalf("❌ stdin read error: %v", err)
	}
}
