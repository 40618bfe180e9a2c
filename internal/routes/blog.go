package routes

import (
	"strconv"
	"strings"
	"time"
)

// BlogEntry is the slice of a blog post needed to derive its route.
type BlogEntry struct {
	ID        int
	Title     string
	Excerpt   string
	Author    string
	Category  string
	Published time.Time
	HTML      string
}

// BlogPath returns the route path of post id.
func BlogPath(id int) string {
	return "/blog/" + strconv.Itoa(id)
}

// BlogRoute derives the route of a blog post. The title is suffixed with
// blogName, the description is the excerpt and the keywords are the base
// keywords plus the first three words of the post title.
func BlogRoute(e BlogEntry, blogName string, baseKeywords []string) Route {
	title := e.Title
	if blogName != "" {
		title += " | " + blogName
	}
	words := strings.Split(e.Title, " ")
	if len(words) > 3 {
		words = words[:3]
	}
	keywords := make([]string, 0, len(baseKeywords)+1)
	keywords = append(keywords, baseKeywords...)
	keywords = append(keywords, strings.Join(words, " "))

	return Route{
		Path:        BlogPath(e.ID),
		Title:       title,
		Description: e.Excerpt,
		Keywords:    keywords,
		OGType:      OGTypeArticle,
		Article: &Article{
			PostID:    e.ID,
			Author:    e.Author,
			Category:  e.Category,
			Published: e.Published,
			HTML:      e.HTML,
		},
	}
}

// AddBlogPosts appends one route per entry. An entry whose path is already
// registered (for example by a manifest) is skipped.
func (t *Table) AddBlogPosts(entries []BlogEntry, blogName string, baseKeywords []string) error {
	for _, e := range entries {
		if _, exists := t.Get(BlogPath(e.ID)); exists {
			continue
		}
		if err := t.Add(BlogRoute(e, blogName, baseKeywords)); err != nil {
			return err
		}
	}
	return nil
}
