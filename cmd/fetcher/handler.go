package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/wix"
)

// FetcherHandler refreshes the local JSON snapshots from the Wix HTTP
// functions. Each endpoint downloads one collection family, persists it under
// the data directory, and reports how many records arrived.
type FetcherHandler struct {
	cfg     *AppConfig
	wix     *wix.Client
	rdb     *redis.Client // nil when no response cache is configured
	metrics *fetchMetrics
}

func NewFetcherHandler(cfg *AppConfig, wixClient *wix.Client, rdb *redis.Client, metrics *fetchMetrics) *FetcherHandler {
	return &FetcherHandler{cfg: cfg, wix: wixClient, rdb: rdb, metrics: metrics}
}

func (h *FetcherHandler) HandleEvents(c *gin.Context) {
	h.refresh(c, "events", h.cfg.Events, "wix_events_data.json")
}

func (h *FetcherHandler) HandleBlogPosts(c *gin.Context) {
	h.refresh(c, "blog_posts", h.cfg.BlogPosts, "wix_blog_posts_data.json")
}

func (h *FetcherHandler) HandleMembers(c *gin.Context) {
	h.refresh(c, "members", h.cfg.Members, "wix_members_data.json")
}

// HandleCollections serves /collections/:collection for the CMS-backed
// article collections. The collection name travels to Wix as a query
// parameter on the shared endpoint.
func (h *FetcherHandler) HandleCollections(c *gin.Context) {
	collection := c.Param("collection")
	switch collection {
	case "articles", "articles-category":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid collection type: %s", collection)})
		return
	}

	route := h.cfg.Collections
	route.Endpoint = appendQuery(route.Endpoint, "collection", collection)
	h.refresh(c, "collections:"+collection, route, fmt.Sprintf("wix_%s_data.json", collection))
}

// HandleBlogTaxonomies serves /blog/:taxonomy for the category and tag
// lookup tables.
func (h *FetcherHandler) HandleBlogTaxonomies(c *gin.Context) {
	taxonomy := c.Param("taxonomy")
	switch taxonomy {
	case "categories", "tags":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid blog taxonomy: %s", taxonomy)})
		return
	}

	route := h.cfg.Taxonomies
	route.Endpoint = appendQuery(route.Endpoint, "taxonomy", taxonomy)
	h.refresh(c, "blog:"+taxonomy, route, fmt.Sprintf("wix_blog_%s_data.json", taxonomy))
}

// refresh is the shared download path: resolve the records (Redis cache
// first, then Wix), persist them next to the other snapshots, and answer
// with the record count.
func (h *FetcherHandler) refresh(c *gin.Context, name string, route RouteConfig, localFile string) {
	if route.Endpoint == "" || route.Subject == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Route %s is not configured", name)})
		return
	}

	start := time.Now()
	records, cached, err := h.resolveRecords(c, name, route)
	if err != nil {
		h.metrics.observeFetch(name, "error", time.Since(start))
		log.Printf("❌ Fetch failed for %s: %v", name, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	localPath := filepath.Join(h.cfg.DataDir, localFile)
	if err := wix.WriteRecords(localPath, records); err != nil {
		h.metrics.observeFetch(name, "error", time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.metrics.observeFetch(name, "success", time.Since(start))
	cacheStatus := "MISS"
	if cached {
		cacheStatus = "HIT"
	}
	log.Printf("✅ Refreshed %s: %d records (cache %s).", name, len(records), cacheStatus)
	c.JSON(http.StatusOK, gin.H{
		"collection":   name,
		"count":        len(records),
		"file":         localFile,
		"cache_status": cacheStatus,
	})
}

// resolveRecords consults the Redis response cache before going to Wix, so
// repeated refreshes inside the TTL window do not hammer the site backend.
func (h *FetcherHandler) resolveRecords(c *gin.Context, name string, route RouteConfig) ([]any, bool, error) {
	ctx := c.Request.Context()
	cacheKey := "wixfetch:" + name

	if h.rdb != nil {
		if raw, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var records []any
			if err := json.Unmarshal([]byte(raw), &records); err == nil {
				h.metrics.cacheHits.WithLabelValues(name).Inc()
				return records, true, nil
			}
		}
	}

	records, err := h.wix.FetchCollection(ctx, route.Endpoint, route.Subject)
	if err != nil {
		return nil, false, err
	}

	if h.rdb != nil {
		if raw, err := json.Marshal(records); err == nil {
			if err := h.rdb.Set(ctx, cacheKey, raw, h.cfg.CacheTTL).Err(); err != nil {
				log.Printf("WARNING: Could not cache %s response: %v", name, err)
			}
		}
	}
	return records, false, nil
}

func appendQuery(endpoint, key, value string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + key + "=" + value
}
