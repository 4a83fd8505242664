package tools

import (
	"encoding/json"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/insights"
)

// monthValDescription is shared by the three count tools. The resolver
// accepts month numbers and Hungarian month names or abbreviations.
const monthValDescription = "Optional month filter: a month number (1-12) or a Hungarian month name or abbreviation, e.g. 'február', 'feb' or 'Már.'. Omit for the full year."

// countArgs is the shared argument shape of the count tools. month_val is
// decoded as any because the model may send either a number or a name.
type countArgs struct {
	YearVal  int `json:"year_val"`
	MonthVal any `json:"month_val"`
}

// decodeArgs unmarshals a tool-call argument payload, tolerating the empty
// string some clients send for tools without arguments.
func decodeArgs(arguments string, v any) error {
	if arguments == "" {
		arguments = "{}"
	}
	return json.Unmarshal([]byte(arguments), v)
}

// marshalResult serializes an operation's result mapping for the model.
func marshalResult(result map[string]any) (string, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func countSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]*JSONSchema{
			"year_val": {
				Type:        "integer",
				Description: "The calendar year to count, e.g. 2024.",
			},
			"month_val": {
				Type:        "string",
				Description: monthValDescription,
			},
		},
		Required: []string{"year_val"},
	}
}

// --- Events count ---

type EventsCountTool struct {
	hub *insights.Hub
}

var _ Executor = (*EventsCountTool)(nil)

func NewEventsCountTool(hub *insights.Hub) *EventsCountTool {
	return &EventsCountTool{hub: hub}
}

func (t *EventsCountTool) Definition() Tool {
	return NewFunctionTool(
		"get_events_count",
		"Returns the count of events for a specific year and optional month.",
		countSchema(),
	)
}

func (t *EventsCountTool) Execute(arguments string) (string, error) {
	var args countArgs
	if err := decodeArgs(arguments, &args); err != nil {
		return "", err
	}
	return marshalResult(t.hub.EventsCount(args.YearVal, args.MonthVal))
}

// --- Articles count ---

type ArticlesCountTool struct {
	hub *insights.Hub
}

var _ Executor = (*ArticlesCountTool)(nil)

func NewArticlesCountTool(hub *insights.Hub) *ArticlesCountTool {
	return &ArticlesCountTool{hub: hub}
}

func (t *ArticlesCountTool) Definition() Tool {
	return NewFunctionTool(
		"get_articles_count",
		"Returns the count of articles for a specific year and optional month.",
		countSchema(),
	)
}

func (t *ArticlesCountTool) Execute(arguments string) (string, error) {
	var args countArgs
	if err := decodeArgs(arguments, &args); err != nil {
		return "", err
	}
	return marshalResult(t.hub.ArticlesCount(args.YearVal, args.MonthVal))
}

// --- Blog posts count ---

type BlogPostsCountTool struct {
	hub *insights.Hub
}

var _ Executor = (*BlogPostsCountTool)(nil)

func NewBlogPostsCountTool(hub *insights.Hub) *BlogPostsCountTool {
	return &BlogPostsCountTool{hub: hub}
}

func (t *BlogPostsCountTool) Definition() Tool {
	return NewFunctionTool(
		"get_blog_posts_count",
		"Returns the count of blog posts for a specific year and optional month.",
		countSchema(),
	)
}

func (t *BlogPostsCountTool) Execute(arguments string) (string, error) {
	var args countArgs
	if err := decodeArgs(arguments, &args); err != nil {
		return "", err
	}
	return marshalResult(t.hub.BlogPostsCount(args.YearVal, args.MonthVal))
}

// --- Total events count ---

type TotalEventsCountTool struct {
	hub *insights.Hub
}

var _ Executor = (*TotalEventsCountTool)(nil)

func NewTotalEventsCountTool(hub *insights.Hub) *TotalEventsCountTool {
	return &TotalEventsCountTool{hub: hub}
}

func (t *TotalEventsCountTool) Definition() Tool {
	return NewFunctionTool(
		"get_total_events_count",
		"Returns the total number of events in the database across all time.",
		JSONSchema{Type: "object"},
	)
}

func (t *TotalEventsCountTool) Execute(string) (string, error) {
	return marshalResult(t.hub.TotalEventsCount())
}
