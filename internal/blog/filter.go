// Package blog filters and decorates the blog index.
package blog

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"portfolio-backend/internal/models"
)

// Time windows accepted by Filter.Time.
const (
	TimeAll   = "all"
	TimeToday = "today"
	TimeWeek  = "week"
	TimeMonth = "month"
	TimeYear  = "year"
)

type Filter struct {
	Search     string
	Time       string
	Categories []string
}

// ParseFilter reads q, time and cat (repeatable) from a query string.
func ParseFilter(values url.Values) Filter {
	f := Filter{
		Search: strings.TrimSpace(values.Get("q")),
		Time:   strings.ToLower(strings.TrimSpace(values.Get("time"))),
	}
	for _, c := range values["cat"] {
		if c = strings.TrimSpace(c); c != "" {
			f.Categories = append(f.Categories, c)
		}
	}
	if f.Time == "" {
		f.Time = TimeAll
	}
	return f
}

// Active reports whether any filter narrows the list. The featured layout is
// only used when none does.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Search) != "" || f.windowStart(time.Now()) != nil || len(f.Categories) > 0
}

// Apply keeps the posts matching every set filter, preserving order.
func (f Filter) Apply(posts []models.Post, now time.Time) []models.Post {
	start := f.windowStart(now)
	query := strings.ToLower(strings.TrimSpace(f.Search))

	selected := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		selected[c] = true
	}

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if start != nil && p.PublishedAt.Before(*start) {
			continue
		}
		if len(selected) > 0 && !hasCategory(p, selected) {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (f Filter) windowStart(now time.Time) *time.Time {
	var start time.Time
	switch f.Time {
	case TimeToday:
		y, m, d := now.Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case TimeWeek:
		start = now.AddDate(0, 0, -7)
	case TimeMonth:
		start = now.AddDate(0, -1, 0)
	case TimeYear:
		start = now.AddDate(-1, 0, 0)
	default:
		return nil
	}
	return &start
}

func hasCategory(p models.Post, selected map[string]bool) bool {
	for _, c := range p.Categories {
		if selected[c.Title] {
			return true
		}
	}
	return false
}

func matches(p models.Post, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Excerpt), query) {
		return true
	}
	for _, c := range p.Categories {
		if strings.Contains(strings.ToLower(c.Title), query) {
			return true
		}
	}
	return false
}

// Categories returns the sorted, de-duplicated category titles of posts.
func Categories(posts []models.Post) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range posts {
		for _, c := range p.Categories {
			if !seen[c.Title] {
				seen[c.Title] = true
				out = append(out, c.Title)
			}
		}
	}
	sort.Strings(out)
	return out
}

// CategoryTitles lists the categories of one post.
func CategoryTitles(p models.Post) []string {
	out := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		out = append(out, c.Title)
	}
	return out
}
