package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/dataset"
	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/insights"
)

func testHub() *insights.Hub {
	events := dataset.FromRecords([]dataset.Row{
		{"title": "Feb Meetup", "date": "2024-02-10", "location": "ONLINE",
			"categories": "community", "eventGuests": map[string]any{"going": 10.0, "total": 25.0}},
		{"title": "May Talk", "date": "2024-05-01", "location": "VENUE", "categories": "community"},
	}, dataset.Options{DateField: "date", NestedField: "eventGuests"})

	articles := dataset.FromRecords(nil, dataset.Options{DateField: "publishedDate"})

	blogPosts := dataset.FromRecords([]dataset.Row{
		{"title": "Post One", "publishedDate": "2025-02-03", "categories": "news", "tags": []any{"ai"}},
	}, dataset.Options{DateField: "publishedDate", NestedField: "metrics", MultiValueFields: []string{"categories", "tags"}})

	return &insights.Hub{Events: events, Articles: articles, BlogPosts: blogPosts}
}

func decode(t *testing.T, payload string) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &result))
	return result
}

func TestManagerRegistersFullCatalog(t *testing.T) {
	manager := NewInsightManager(testHub())

	assert.Equal(t, 8, manager.Count())
	assert.Equal(t, []string{
		"get_articles_count",
		"get_attendance_stats",
		"get_blog_posts_count",
		"get_blog_stats",
		"get_events_by_location",
		"get_events_count",
		"get_total_events_count",
		"list_blog_metadata",
	}, manager.Names())

	// Definitions come back in registration order so the LLM always sees a
	// stable catalog.
	defs := manager.Definitions()
	require.Len(t, defs, 8)
	assert.Equal(t, "get_events_count", defs[0].Function.Name)
	assert.Equal(t, ToolTypeFunction, defs[0].Type)
}

func TestExecuteEventsCount(t *testing.T) {
	manager := NewInsightManager(testHub())

	out, err := manager.Execute("get_events_count", `{"year_val": 2024, "month_val": "feb"}`)
	require.NoError(t, err)

	result := decode(t, out)
	assert.Equal(t, float64(2024), result["year"])
	assert.Equal(t, "feb", result["month"])
	assert.Equal(t, float64(1), result["events_count"])
}

func TestExecuteInvalidMonthReturnsErrorMapping(t *testing.T) {
	manager := NewInsightManager(testHub())

	out, err := manager.Execute("get_events_count", `{"year_val": 2024, "month_val": "Q1"}`)
	require.NoError(t, err, "an unresolvable month is a result mapping, not a Go error")
	assert.Equal(t, map[string]any{"error": "Invalid month name: Q1"}, decode(t, out))
}

func TestExecuteToolsWithoutArguments(t *testing.T) {
	manager := NewInsightManager(testHub())

	out, err := manager.Execute("get_total_events_count", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"total_events": float64(2)}, decode(t, out))

	out, err = manager.Execute("list_blog_metadata", "{}")
	require.NoError(t, err)
	result := decode(t, out)
	assert.Equal(t, []any{"news"}, result["unique_categories"])
	assert.Equal(t, []any{"ai"}, result["unique_tags"])
}

func TestExecuteUnknownToolFails(t *testing.T) {
	manager := NewInsightManager(testHub())

	_, err := manager.Execute("get_members_count", "{}")
	assert.Error(t, err)
}

func TestExecuteMalformedArgumentsFails(t *testing.T) {
	manager := NewInsightManager(testHub())

	_, err := manager.Execute("get_events_count", `{"year_val": `)
	assert.Error(t, err)
}

func TestAttendanceStatsThroughTool(t *testing.T) {
	manager := NewInsightManager(testHub())

	out, err := manager.Execute("get_attendance_stats", `{"year_val": 2024}`)
	require.NoError(t, err)

	result := decode(t, out)
	star, ok := result["star_event"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Feb Meetup", star["title"])
	assert.Equal(t, float64(25), star["attendance"])
}
