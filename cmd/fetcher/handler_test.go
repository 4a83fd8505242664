package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/wix"
)

const testSecret = "fetcher-test-secret"

// newWixBackend fakes the Wix HTTP functions: it validates the signed token
// and answers with a canned record set per subject.
func newWixBackend(t *testing.T, records map[string][]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return []byte(testSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		payload, ok := records[claims.Subject]
		if !ok {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		// Echo the query string back so tests can assert it reached Wix.
		if q := r.URL.RawQuery; q != "" {
			payload = append(append([]any(nil), payload...), map[string]any{"query": q})
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
}

func newTestHandler(t *testing.T, backendURL string) (*FetcherHandler, *gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	cfg := &AppConfig{
		DataDir:     dataDir,
		AuthSecret:  testSecret,
		CacheTTL:    time.Minute,
		Events:      RouteConfig{Subject: "events-reader", Endpoint: backendURL + "/events"},
		BlogPosts:   RouteConfig{Subject: "blog-reader", Endpoint: backendURL + "/blog"},
		Collections: RouteConfig{Subject: "cms-reader", Endpoint: backendURL + "/collections"},
		Taxonomies:  RouteConfig{Subject: "taxonomy-reader", Endpoint: backendURL + "/taxonomies"},
	}

	wixClient, err := wix.NewClient(testSecret)
	require.NoError(t, err)

	handler := NewFetcherHandler(cfg, wixClient, nil, newFetchMetrics(prometheus.NewRegistry()))
	engine := gin.New()
	engine.GET("/events", handler.HandleEvents)
	engine.GET("/collections/:collection", handler.HandleCollections)
	engine.GET("/blog/posts", handler.HandleBlogPosts)
	engine.GET("/blog/:taxonomy", handler.HandleBlogTaxonomies)
	engine.GET("/members", handler.HandleMembers)
	return handler, engine, dataDir
}

func doRequest(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(rec, req)
	return rec
}

func TestHandleEventsDownloadsAndPersists(t *testing.T) {
	backend := newWixBackend(t, map[string][]any{
		"events-reader": {
			map[string]any{"title": "Spring Meetup"},
			map[string]any{"title": "Autumn Workshop"},
		},
	})
	defer backend.Close()

	_, engine, dataDir := newTestHandler(t, backend.URL)

	rec := doRequest(engine, "/events")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, "MISS", body["cache_status"])

	raw, err := os.ReadFile(filepath.Join(dataDir, "wix_events_data.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Spring Meetup")
}

func TestHandleCollectionsForwardsCollectionName(t *testing.T) {
	backend := newWixBackend(t, map[string][]any{"cms-reader": {}})
	defer backend.Close()

	_, engine, dataDir := newTestHandler(t, backend.URL)

	rec := doRequest(engine, "/collections/articles")
	require.Equal(t, http.StatusOK, rec.Code)

	// The backend echoes the query string into the record set.
	raw, err := os.ReadFile(filepath.Join(dataDir, "wix_articles_data.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "collection=articles")
}

func TestHandleCollectionsRejectsUnknownName(t *testing.T) {
	backend := newWixBackend(t, nil)
	defer backend.Close()

	_, engine, _ := newTestHandler(t, backend.URL)

	rec := doRequest(engine, "/collections/secrets")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid collection type")
}

func TestHandleBlogTaxonomiesRoutes(t *testing.T) {
	backend := newWixBackend(t, map[string][]any{
		"blog-reader":     {map[string]any{"title": "First Post"}},
		"taxonomy-reader": {map[string]any{"label": "community"}},
	})
	defer backend.Close()

	_, engine, dataDir := newTestHandler(t, backend.URL)

	rec := doRequest(engine, "/blog/posts")
	require.Equal(t, http.StatusOK, rec.Code)
	raw, err := os.ReadFile(filepath.Join(dataDir, "wix_blog_posts_data.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "First Post")

	rec = doRequest(engine, "/blog/tags")
	require.Equal(t, http.StatusOK, rec.Code)
	raw, err = os.ReadFile(filepath.Join(dataDir, "wix_blog_tags_data.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "taxonomy=tags")

	rec = doRequest(engine, "/blog/authors")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshReportsUnconfiguredRoute(t *testing.T) {
	backend := newWixBackend(t, nil)
	defer backend.Close()

	_, engine, _ := newTestHandler(t, backend.URL)

	// Members route was left without a subject and endpoint.
	rec := doRequest(engine, "/members")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "not configured")
}

func TestRefreshSurfacesBackendRejection(t *testing.T) {
	backend := newWixBackend(t, nil) // no subject is accepted
	defer backend.Close()

	_, engine, _ := newTestHandler(t, backend.URL)

	rec := doRequest(engine, "/events")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
