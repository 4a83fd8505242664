// Command fetcher refreshes the local dataset snapshots from the Wix HTTP
// functions. Each route downloads one collection family with a short-lived
// signed token, persists the raw JSON under the data directory, and exposes
// Prometheus metrics for the refresh traffic.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/wix"
)

// main is the composition root: it loads configuration, initializes all
// services, injects dependencies, and starts the server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("❌ FATAL: Could not connect to Redis: %v", err)
		}
		log.Printf("✅ Redis response cache enabled (TTL %s).", cfg.CacheTTL)
	} else {
		log.Println("WARNING: REDIS_ADDR not set, refreshing without a response cache.")
	}

	wixClient, err := wix.NewClient(cfg.AuthSecret)
	if err != nil {
		log.Fatalf("❌ FATAL: Could not create Wix client: %v", err)
	}

	metrics := newFetchMetrics(prometheus.DefaultRegisterer)
	handler := NewFetcherHandler(cfg, wixClient, rdb, metrics)
	log.Println("✅ All services initialized.")

	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := newRouter(handler)

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// newRouter wires the refresh endpoints and the metrics scrape point.
func newRouter(handler *FetcherHandler) *gin.Engine {
	engine := gin.Default()
	engine.GET("/events", handler.HandleEvents)
	engine.GET("/collections/:collection", handler.HandleCollections)
	engine.GET("/blog/posts", handler.HandleBlogPosts)
	engine.GET("/blog/:taxonomy", handler.HandleBlogTaxonomies)
	engine.GET("/members", handler.HandleMembers)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return engine
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Fetcher is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
