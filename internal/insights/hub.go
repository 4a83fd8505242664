// Package insights is the query/aggregation catalog: a fixed set of read-only
// operations over the three normalized datasets (events, articles, blog
// posts). Every operation is a pure function of the loaded data and its
// arguments and returns a JSON-serializable mapping, so results can be handed
// to the tool-calling client verbatim. Recoverable problems (an unresolvable
// month name, an empty filtered set) come back as {"error": ...} or
// {"message": ...} mappings, never as Go errors.
package insights

import (
	"fmt"
	"path/filepath"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/dataset"
)

// Sources names the three dataset files inside the data directory.
type Sources struct {
	Events    string `yaml:"events"`
	Articles  string `yaml:"articles"`
	BlogPosts string `yaml:"blog_posts"`
}

// DefaultSources returns the conventional file names produced by the data
// preparation step.
func DefaultSources() Sources {
	return Sources{
		Events:    "events.json",
		Articles:  "articles.json",
		BlogPosts: "blog_posts.json",
	}
}

// Hub holds the three datasets for the lifetime of the process. It is built
// once at startup and read-only afterwards, so concurrent queries need no
// coordination.
type Hub struct {
	Events    *dataset.Dataset
	Articles  *dataset.Dataset
	BlogPosts *dataset.Dataset
}

// NewHub loads and normalizes the three datasets from dataDir. Any load
// failure is fatal for the caller: the hub cannot answer questions with a
// partial view of the data.
func NewHub(dataDir string, src Sources) (*Hub, error) {
	events, err := dataset.Load(filepath.Join(dataDir, src.Events), dataset.Options{
		DateField:   "date",
		NestedField: "eventGuests",
	})
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	articles, err := dataset.Load(filepath.Join(dataDir, src.Articles), dataset.Options{
		DateField: "publishedDate",
	})
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}

	blogPosts, err := dataset.Load(filepath.Join(dataDir, src.BlogPosts), dataset.Options{
		DateField:        "publishedDate",
		NestedField:      "metrics",
		MultiValueFields: []string{"categories", "tags"},
	})
	if err != nil {
		return nil, fmt.Errorf("load blog posts: %w", err)
	}

	return &Hub{Events: events, Articles: articles, BlogPosts: blogPosts}, nil
}
