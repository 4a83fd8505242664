package tools

import (
	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/insights"
)

// NewInsightManager builds a Manager with the full aggregation catalog
// registered over the given hub. Both the stdio tool server and the
// in-process client use this same catalog.
func NewInsightManager(hub *insights.Hub) *Manager {
	m := NewManager()
	m.Register(NewEventsCountTool(hub))
	m.Register(NewArticlesCountTool(hub))
	m.Register(NewBlogPostsCountTool(hub))
	m.Register(NewTotalEventsCountTool(hub))
	m.Register(NewEventsByLocationTool(hub))
	m.Register(NewAttendanceStatsTool(hub))
	m.Register(NewBlogStatsTool(hub))
	m.Register(NewBlogMetadataTool(hub))
	return m
}
