package insights

import (
	"fmt"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/dataset"
)

// EventsCount returns the number of events in a year, optionally narrowed to
// a single month.
func (h *Hub) EventsCount(yearVal int, monthVal any) map[string]any {
	return countByPeriod(h.Events, "events_count", yearVal, monthVal)
}

// ArticlesCount returns the number of articles in a year, optionally narrowed
// to a single month.
func (h *Hub) ArticlesCount(yearVal int, monthVal any) map[string]any {
	return countByPeriod(h.Articles, "articles_count", yearVal, monthVal)
}

// BlogPostsCount returns the number of blog posts in a year, optionally
// narrowed to a single month.
func (h *Hub) BlogPostsCount(yearVal int, monthVal any) map[string]any {
	return countByPeriod(h.BlogPosts, "blog_posts_count", yearVal, monthVal)
}

// TotalEventsCount returns the unconditional row count of the events dataset,
// including rows whose date could not be parsed.
func (h *Hub) TotalEventsCount() map[string]any {
	return map[string]any{"total_events": h.Events.Len()}
}

// EventsByLocation breaks events down into ONLINE vs VENUE counts, optionally
// restricted to one year. Rows with any other location value are counted in
// neither bucket, and total is the sum of the two buckets.
func (h *Hub) EventsByLocation(yearVal int) map[string]any {
	online, venue := 0, 0
	for i := 0; i < h.Events.Len(); i++ {
		if yearVal != 0 {
			d, ok := h.Events.Date(i)
			if !ok || d.Year() != yearVal {
				continue
			}
		}
		loc, _ := h.Events.Str(i, "location")
		switch loc {
		case "ONLINE":
			online++
		case "VENUE":
			venue++
		}
	}

	var yearLabel any = "All Time"
	if yearVal != 0 {
		yearLabel = yearVal
	}
	return map[string]any{
		"year":         yearLabel,
		"online_count": online,
		"venue_count":  venue,
		"total":        online + venue,
	}
}

// countByPeriod implements the shared year/month filter contract of the three
// count operations. Rows without a parseable date fail every comparison and
// are excluded.
func countByPeriod(ds *dataset.Dataset, countKey string, yearVal int, monthVal any) map[string]any {
	monthNum, monthLabel, ok := ResolveMonth(monthVal)
	if !ok {
		return map[string]any{"error": fmt.Sprintf("Invalid month name: %v", monthVal)}
	}

	count := 0
	for i := 0; i < ds.Len(); i++ {
		if yearVal != 0 || monthNum != 0 {
			d, valid := ds.Date(i)
			if !valid {
				continue
			}
			if yearVal != 0 && d.Year() != yearVal {
				continue
			}
			if monthNum != 0 && int(d.Month()) != monthNum {
				continue
			}
		}
		count++
	}

	return map[string]any{
		"year":   yearVal,
		"month":  monthLabel,
		countKey: count,
	}
}
