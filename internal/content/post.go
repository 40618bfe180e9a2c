package content

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/routes"
)

// dateLayouts are accepted for the front matter date field.
var dateLayouts = []string{"January 2, 2006", "2006-01-02", time.RFC3339}

// Post is a single blog article.
type Post struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Author      string    `json:"author"`
	Date        string    `json:"date"`
	Published   time.Time `json:"published,omitzero"`
	ReadTime    string    `json:"readTime,omitempty"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	Tags        []string  `json:"tags,omitempty"`
	Content     string    `json:"-"` // Markdown body
	HTML        string    `json:"-"`
	Fingerprint string    `json:"fingerprint"`
	Source      string    `json:"source,omitempty"`
}

type postFrontMatter struct {
	ID       int      `yaml:"id"`
	Title    string   `yaml:"title"`
	Excerpt  string   `yaml:"excerpt"`
	Author   string   `yaml:"author"`
	Date     string   `yaml:"date"`
	ReadTime string   `yaml:"read_time"`
	Category string   `yaml:"category"`
	Featured bool     `yaml:"featured"`
	Tags     []string `yaml:"tags"`
}

// Path is the route path of the post.
func (p Post) Path() string { return routes.BlogPath(p.ID) }

// Entry converts the post into the data needed for its route.
func (p Post) Entry() routes.BlogEntry {
	return routes.BlogEntry{
		ID:        p.ID,
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		Author:    p.Author,
		Category:  p.Category,
		Published: p.Published,
		HTML:      p.HTML,
	}
}

// ParsePost decodes a Markdown document with front matter. source names the
// document in error messages.
func ParsePost(source string, data []byte) (Post, error) {
	fm, body, had, err := splitFrontMatter(data)
	if err != nil {
		return Post{}, contentErr(err, source, "invalid front matter")
	}
	if !had {
		return Post{}, ferrors.ContentError("blog post has no front matter").
			WithContext("file", source).Build()
	}

	var meta postFrontMatter
	if err := yaml.Unmarshal(fm, &meta); err != nil {
		return Post{}, contentErr(err, source, "failed to parse front matter")
	}
	if meta.ID <= 0 {
		return Post{}, ferrors.ContentError("blog post id must be a positive integer").
			WithContext("file", source).Build()
	}
	if strings.TrimSpace(meta.Title) == "" {
		return Post{}, ferrors.ContentError("blog post title is required").
			WithContext("file", source).Build()
	}

	post := Post{
		ID:       meta.ID,
		Title:    strings.TrimSpace(meta.Title),
		Excerpt:  strings.TrimSpace(meta.Excerpt),
		Author:   meta.Author,
		Date:     meta.Date,
		ReadTime: meta.ReadTime,
		Category: meta.Category,
		Featured: meta.Featured,
		Tags:     meta.Tags,
		Content:  string(body),
		Source:   source,
	}
	if meta.Date != "" {
		t, err := parseDate(meta.Date)
		if err != nil {
			return Post{}, contentErr(err, source, "invalid post date")
		}
		post.Published = t
	}

	if post.HTML, err = RenderMarkdown(body); err != nil {
		return Post{}, contentErr(err, source, "failed to render markdown")
	}
	if post.Fingerprint, err = fingerprint(fm, body); err != nil {
		return Post{}, contentErr(err, source, "failed to fingerprint post")
	}
	return post, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func contentErr(err error, source, msg string) error {
	return ferrors.WrapError(err, ferrors.CategoryContent, msg).WithContext("file", source).Build()
}

// Posts is a list of posts in id order.
type Posts []Post

// newPosts sorts by id and rejects duplicate ids.
func newPosts(list []Post) (Posts, error) {
	slices.SortStableFunc(list, func(a, b Post) int { return cmp.Compare(a.ID, b.ID) })
	for i := 1; i < len(list); i++ {
		if list[i].ID == list[i-1].ID {
			return nil, ferrors.ContentError("duplicate blog post id").
				WithContext("id", list[i].ID).
				WithContext("file", list[i].Source).
				WithContext("other", list[i-1].Source).Build()
		}
	}
	return Posts(list), nil
}

// ByID returns the post with the given id.
func (ps Posts) ByID(id int) (Post, bool) {
	i, found := slices.BinarySearchFunc(ps, id, func(p Post, id int) int { return cmp.Compare(p.ID, id) })
	if !found {
		return Post{}, false
	}
	return ps[i], true
}

// Newest returns the posts ordered by publication date, newest first.
// Undated posts sort last; ties keep id order.
func (ps Posts) Newest() Posts {
	out := slices.Clone(ps)
	slices.SortStableFunc(out, func(a, b Post) int {
		return b.Published.Compare(a.Published)
	})
	return out
}

// Featured returns the featured posts in id order.
func (ps Posts) Featured() Posts {
	var out Posts
	for _, p := range ps {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (ps Posts) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range ps {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Entries returns route entries for every post.
func (ps Posts) Entries() []routes.BlogEntry {
	out := make([]routes.BlogEntry, len(ps))
	for i, p := range ps {
		out[i] = p.Entry()
	}
	return out
}

// Fingerprint combines the post fingerprints into one digest that changes
// whenever any post is added, removed or edited.
func (ps Posts) Fingerprint() string {
	h := sha256.New()
	for _, p := range ps {
		fmt.Fprintf(h, "%d:%s\n", p.ID, p.Fingerprint)
	}
	return hex.EncodeToString(h.Sum(nil))
}
