package tools

import (
	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/insights"
)

// --- Events by location ---

type EventsByLocationTool struct {
	hub *insights.Hub
}

var _ Executor = (*EventsByLocationTool)(nil)

func NewEventsByLocationTool(hub *insights.Hub) *EventsByLocationTool {
	return &EventsByLocationTool{hub: hub}
}

func (t *EventsByLocationTool) Definition() Tool {
	return NewFunctionTool(
		"get_events_by_location",
		"Returns the count of ONLINE vs VENUE events.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"year_val": {
					Type:        "integer",
					Description: "Optional calendar year to restrict the breakdown to. Omit for all time.",
				},
			},
		},
	)
}

func (t *EventsByLocationTool) Execute(arguments string) (string, error) {
	var args struct {
		YearVal int `json:"year_val"`
	}
	if err := decodeArgs(arguments, &args); err != nil {
		return "", err
	}
	return marshalResult(t.hub.EventsByLocation(args.YearVal))
}

// --- Attendance stats ---

type AttendanceStatsTool struct {
	hub *insights.Hub
}

var _ Executor = (*AttendanceStatsTool)(nil)

func NewAttendanceStatsTool(hub *insights.Hub) *AttendanceStatsTool {
	return &AttendanceStatsTool{hub: hub}
}

func (t *AttendanceStatsTool) Definition() Tool {
	return NewFunctionTool(
		"get_attendance_stats",
		"Calculates total attendance and identifies the most popular (star) event.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"year_val": {
					Type:        "integer",
					Description: "Optional calendar year to restrict the stats to. Omit for all time.",
				},
				"category": {
					Type:        "string",
					Description: "Optional event category to restrict the stats to (exact match).",
				},
			},
		},
	)
}

func (t *AttendanceStatsTool) Execute(arguments string) (string, error) {
	var args struct {
		YearVal  int    `json:"year_val"`
		Category string `json:"category"`
	}
	if err := decodeArgs(arguments, &args); err != nil {
		return "", err
	}
	return marshalResult(t.hub.AttendanceStats(args.YearVal, args.Category))
}
