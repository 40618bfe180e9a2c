// Package search implements the site search over static pages and blog posts.
package search

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// Mode selects which fields are matched.
type Mode string

const (
	// ModeFull is the search page: pages by title, description or keyword and
	// posts by title, excerpt, category, author or body.
	ModeFull Mode = "full"
	// ModeQuick is the header search bar: pages by title or keyword, posts
	// without the body, truncated excerpts and at most QuickLimit results.
	ModeQuick Mode = "quick"
)

// ParseMode maps a query parameter to a Mode; anything but "quick" is full.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeQuick)) {
		return ModeQuick
	}
	return ModeFull
}

// Result types.
const (
	TypePage = "page"
	TypeBlog = "blog"
)

const (
	// QuickLimit caps quick-mode results.
	QuickLimit = 8
	// quickExcerptLen is the excerpt length shown by quick mode.
	quickExcerptLen = 80
)

// Result is one search hit.
type Result struct {
	Title       string `json:"title"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	Category    string `json:"category,omitempty"`
	Author      string `json:"author,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Query parameters. Limit <= 0 means unlimited in full mode and QuickLimit in
// quick mode.
type Query struct {
	Text  string
	Mode  Mode
	Limit int
}

type pageDoc struct {
	page               content.Page
	title, description string
	keywords           []string
}

type postDoc struct {
	post                                   content.Post
	title, excerpt, category, author, body string
}

// Index holds case-folded copies of the searchable fields. It is immutable
// and safe for concurrent use.
type Index struct {
	pages      []pageDoc
	quickPages []pageDoc
	posts      []postDoc
}

// NewIndex builds an index over pages and posts, preserving their order.
func NewIndex(pages []content.Page, posts content.Posts) *Index {
	fold := cases.Fold()
	idx := &Index{
		pages: foldPages(pages),
		posts: make([]postDoc, 0, len(posts)),
	}
	idx.quickPages = idx.pages
	for _, p := range posts {
		idx.posts = append(idx.posts, postDoc{
			post:     p,
			title:    fold.String(p.Title),
			excerpt:  fold.String(p.Excerpt),
			category: fold.String(p.Category),
			author:   fold.String(p.Author),
			body:     fold.String(p.Content),
		})
	}
	return idx
}

// WithQuickPages returns a copy of idx whose quick mode matches pages
// instead of the full page list. An empty list keeps the full list.
func (idx *Index) WithQuickPages(pages []content.Page) *Index {
	out := *idx
	if len(pages) > 0 {
		out.quickPages = foldPages(pages)
	}
	return &out
}

func foldPages(pages []content.Page) []pageDoc {
	fold := cases.Fold()
	docs := make([]pageDoc, 0, len(pages))
	for _, p := range pages {
		kws := make([]string, len(p.Keywords))
		for i, kw := range p.Keywords {
			kws[i] = fold.String(kw)
		}
		docs = append(docs, pageDoc{
			page:        p,
			title:       fold.String(p.Title),
			description: fold.String(p.Description),
			keywords:    kws,
		})
	}
	return docs
}

// FromLibrary indexes a loaded content library.
func FromLibrary(lib *content.Library) *Index {
	return NewIndex(lib.Pages, lib.Posts).WithQuickPages(lib.QuickPages)
}

// Search runs q. A blank query returns no results. Pages come before posts.
func (idx *Index) Search(q Query) []Result {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return []Result{}
	}
	term := cases.Fold().String(text)
	quick := q.Mode == ModeQuick
	limit := q.Limit
	if quick && (limit <= 0 || limit > QuickLimit) {
		limit = QuickLimit
	}

	results := []Result{}
	full := func() bool { return limit > 0 && len(results) >= limit }

	pages := idx.pages
	if quick {
		pages = idx.quickPages
	}
	for _, d := range pages {
		if full() {
			return results
		}
		match := strings.Contains(d.title, term) || anyContains(d.keywords, term)
		if !quick {
			match = match || strings.Contains(d.description, term)
		}
		if !match {
			continue
		}
		r := Result{Title: d.page.Title, Path: d.page.Path, Type: TypePage}
		if !quick {
			r.Description = d.page.Description
		}
		results = append(results, r)
	}

	for _, d := range idx.posts {
		if full() {
			return results
		}
		match := strings.Contains(d.title, term) ||
			strings.Contains(d.excerpt, term) ||
			strings.Contains(d.category, term) ||
			strings.Contains(d.author, term)
		if !quick {
			match = match || strings.Contains(d.body, term)
		}
		if !match {
			continue
		}
		r := Result{Title: d.post.Title, Path: d.post.Path(), Type: TypeBlog}
		if quick {
			r.Excerpt = truncate(d.post.Excerpt, quickExcerptLen)
		} else {
			r.Description = d.post.Excerpt
			r.Category = d.post.Category
			r.Author = d.post.Author
			r.Date = d.post.Date
		}
		results = append(results, r)
	}
	return results
}

func anyContains(list []string, term string) bool {
	for _, s := range list {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// truncate keeps the first n runes of s and appends "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}

// Split separates page results from blog results, keeping order.
func Split(results []Result) (pages, posts []Result) {
	for _, r := range results {
		if r.Type == TypeBlog {
			posts = append(posts, r)
		} else {
			pages = append(pages, r)
		}
	}
	return pages, posts
}

// Summary is the line shown above the results: "" for a blank query,
// otherwise a "No results" or "Found N result(s)" sentence.
func Summary(query string, count int) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}
	if count == 0 {
		return fmt.Sprintf("No results found for \"%s\"", query)
	}
	noun := "results"
	if count == 1 {
		noun = "result"
	}
	return fmt.Sprintf("Found %d %s for \"%s\"", count, noun, query)
}
