package tools

import (
	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/insights"
)

// --- Blog stats ---

type BlogStatsTool struct {
	hub *insights.Hub
}

var _ Executor = (*BlogStatsTool)(nil)

func NewBlogStatsTool(hub *insights.Hub) *BlogStatsTool {
	return &BlogStatsTool{hub: hub}
}

func (t *BlogStatsTool) Definition() Tool {
	return NewFunctionTool(
		"get_blog_stats",
		"Retrieves analytical data for blog posts, including frequency and timing. "+
			"Use this tool to answer how many blog posts were published (total_posts), "+
			"which month or time of year was the most active (monthly_distribution, mapping month numbers 1-12 to post counts), "+
			"and what the titles of relevant posts are (sample_titles).",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"year_val": {
					Type:        "integer",
					Description: "Optional calendar year to restrict the stats to. Omit for all time.",
				},
				"category": {
					Type:        "string",
					Description: "Optional blog category filter. Matches posts whose categories include this value.",
				},
				"tag": {
					Type:        "string",
					Description: "Optional blog tag filter. Matches posts whose tags include this value.",
				},
			},
		},
	)
}

func (t *BlogStatsTool) Execute(arguments string) (string, error) {
	var args struct {
		YearVal  int    `json:"year_val"`
		Category string `json:"category"`
		Tag      string `json:"tag"`
	}
	if err := decodeArgs(arguments, &args); err != nil {
		return "", err
	}
	return marshalResult(t.hub.BlogStats(args.YearVal, args.Category, args.Tag))
}

// --- Blog metadata ---

type BlogMetadataTool struct {
	hub *insights.Hub
}

var _ Executor = (*BlogMetadataTool)(nil)

func NewBlogMetadataTool(hub *insights.Hub) *BlogMetadataTool {
	return &BlogMetadataTool{hub: hub}
}

func (t *BlogMetadataTool) Definition() Tool {
	return NewFunctionTool(
		"list_blog_metadata",
		"Returns unique tags and categories from blog posts.",
		JSONSchema{Type: "object"},
	)
}

func (t *BlogMetadataTool) Execute(string) (string, error) {
	return marshalResult(t.hub.BlogMetadata())
}
