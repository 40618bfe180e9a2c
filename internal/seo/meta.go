// Package seo assembles per-page metadata: meta tags, Open Graph values,
// JSON-LD structured data and social share links.
package seo

import (
	"slices"

	"git.home.luguber.info/inful/sitegen/internal/routes"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

// Meta is the resolved metadata of one document.
type Meta struct {
	Path        string          `json:"path"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Keywords    []string        `json:"keywords"`
	OGType      routes.OGType   `json:"ogType"`
	Canonical   string          `json:"canonical"`
	OGImage     string          `json:"ogImage"`
	NoIndex     bool            `json:"noIndex,omitempty"`
	Article     *routes.Article `json:"article,omitempty"`
}

// Override replaces route values for a single document. Keywords are merged
// into the route keywords rather than replacing them.
type Override struct {
	Title       string
	Description string
	Keywords    []string
	OGType      routes.OGType
	OGImage     string
}

// Resolve builds the metadata for path. Values come from the override first,
// then the route registered for path, then the home route.
func Resolve(s site.Site, table *routes.Table, path string, o Override) Meta {
	r, _ := table.Lookup(path)
	return FromRoute(s, r, o)
}

// FromRoute builds the metadata of a known route.
func FromRoute(s site.Site, r routes.Route, o Override) Meta {
	m := Meta{
		Path:        r.Path,
		Title:       firstNonEmpty(o.Title, r.Title),
		Description: firstNonEmpty(o.Description, r.Description),
		Keywords:    MergeKeywords(r.Keywords, o.Keywords),
		OGType:      r.OGType,
		Canonical:   s.CanonicalURL(r.Canonical()),
		OGImage:     firstNonEmpty(o.OGImage, s.OGImage),
		NoIndex:     r.NoIndex,
		Article:     r.Article,
	}
	if o.OGType != "" {
		m.OGType = o.OGType
	}
	if m.OGType == "" {
		m.OGType = routes.OGTypeWebsite
	}
	return m
}

// MergeKeywords appends extra to base, dropping duplicates while keeping the
// first occurrence order.
func MergeKeywords(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, k := range list {
			if !slices.Contains(out, k) {
				out = append(out, k)
			}
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
