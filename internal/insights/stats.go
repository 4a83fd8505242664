package insights

import (
	"sort"
)

// AttendanceStats sums "going" attendance over the filtered events and picks
// the star event: the row with the highest total attendance, ties broken by
// first occurrence in the original record order. The category filter is an
// exact match against the event's categories value.
func (h *Hub) AttendanceStats(yearVal int, category string) map[string]any {
	events := h.Events

	totalGoing := 0.0
	matched := 0
	firstIdx := -1
	starIdx := -1
	starTotal := 0.0

	for i := 0; i < events.Len(); i++ {
		if yearVal != 0 {
			d, ok := events.Date(i)
			if !ok || d.Year() != yearVal {
				continue
			}
		}
		if category != "" {
			c, _ := events.Str(i, "categories")
			if c != category {
				continue
			}
		}

		matched++
		if firstIdx < 0 {
			firstIdx = i
		}
		if going, ok := events.Num(i, "eventGuests_going"); ok {
			totalGoing += going
		}
		if total, ok := events.Num(i, "eventGuests_total"); ok {
			if starIdx < 0 || total > starTotal {
				starIdx = i
				starTotal = total
			}
		}
	}

	if matched == 0 {
		return map[string]any{"message": "No data found for the given filters."}
	}
	if starIdx < 0 {
		// No filtered row carried attendance metrics at all.
		starIdx = firstIdx
	}

	var yearLabel any = "All Time"
	if yearVal != 0 {
		yearLabel = yearVal
	}
	categoryLabel := "All Categories"
	if category != "" {
		categoryLabel = category
	}

	title, _ := events.Str(starIdx, "title")
	location, _ := events.Str(starIdx, "location")
	dateLabel := ""
	if d, ok := events.Date(starIdx); ok {
		dateLabel = d.Format("2006-01-02")
	}

	return map[string]any{
		"filter_year":      yearLabel,
		"filter_category":  categoryLabel,
		"total_attendance": int(totalGoing),
		"star_event": map[string]any{
			"title":      title,
			"attendance": int(starTotal),
			"date":       dateLabel,
			"location":   location,
		},
	}
}

// BlogStats reports post frequency and timing for the filtered blog posts:
// the total count, a month-number distribution over posts with a valid date,
// and the first five titles in original order. Category and tag filters are
// membership tests, so they match whether the underlying field held a bare
// scalar or a list.
func (h *Hub) BlogStats(yearVal int, category, tag string) map[string]any {
	posts := h.BlogPosts

	totalPosts := 0
	monthly := make(map[int]int)
	var titles []string

	for i := 0; i < posts.Len(); i++ {
		if yearVal != 0 {
			d, ok := posts.Date(i)
			if !ok || d.Year() != yearVal {
				continue
			}
		}
		if category != "" && !containsValue(posts.Strings(i, "categories"), category) {
			continue
		}
		if tag != "" && !containsValue(posts.Strings(i, "tags"), tag) {
			continue
		}

		totalPosts++
		if d, ok := posts.Date(i); ok {
			monthly[int(d.Month())]++
		}
		if len(titles) < 5 {
			if title, ok := posts.Str(i, "title"); ok {
				titles = append(titles, title)
			}
		}
	}

	if totalPosts == 0 {
		return map[string]any{"message": "No blog posts found for these filters."}
	}

	var yearLabel any = "All Time"
	if yearVal != 0 {
		yearLabel = yearVal
	}

	return map[string]any{
		"total_posts":          totalPosts,
		"filter_year":          yearLabel,
		"monthly_distribution": monthly,
		"sample_titles":        titles,
	}
}

// BlogMetadata unions the category and tag values of every blog post into two
// sorted sets.
func (h *Hub) BlogMetadata() map[string]any {
	posts := h.BlogPosts

	catSet := make(map[string]bool)
	tagSet := make(map[string]bool)
	for i := 0; i < posts.Len(); i++ {
		for _, c := range posts.Strings(i, "categories") {
			catSet[c] = true
		}
		for _, t := range posts.Strings(i, "tags") {
			tagSet[t] = true
		}
	}

	return map[string]any{
		"unique_categories": sortedKeys(catSet),
		"unique_tags":       sortedKeys(tagSet),
		"total_tag_count":   len(tagSet),
	}
}

func containsValue(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
