// Package routes holds the route table: per-path SEO metadata shared by the
// prerenderer, the HTTP runtime and the search index.
package routes

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/foundation/normalization"
)

// OGType is the Open Graph object type of a page.
type OGType string

const (
	OGTypeWebsite OGType = "website"
	OGTypeArticle OGType = "article"
	OGTypeProfile OGType = "profile"
)

var ogTypeNormalizer = normalization.NewNormalizer(map[string]OGType{
	"website": OGTypeWebsite,
	"article": OGTypeArticle,
	"profile": OGTypeProfile,
}, OGTypeWebsite)

// ParseOGType maps raw onto an OGType. Empty input is "website".
func ParseOGType(raw string) (OGType, error) {
	if strings.TrimSpace(raw) == "" {
		return OGTypeWebsite, nil
	}
	return ogTypeNormalizer.NormalizeWithError(raw)
}

// Route is the metadata of one page.
type Route struct {
	Path          string   `yaml:"path" json:"path"`
	Title         string   `yaml:"title" json:"title"`
	Description   string   `yaml:"description" json:"description"`
	Keywords      []string `yaml:"keywords" json:"keywords"`
	OGType        OGType   `yaml:"og_type,omitempty" json:"ogType"`
	CanonicalPath string   `yaml:"canonical_path,omitempty" json:"canonicalPath,omitempty"`
	NoIndex       bool     `yaml:"no_index,omitempty" json:"noIndex,omitempty"`
	Article       *Article `yaml:"article,omitempty" json:"article,omitempty"`
}

// Article carries the extra metadata of blog post routes.
type Article struct {
	PostID    int       `yaml:"post_id" json:"postId"`
	Author    string    `yaml:"author,omitempty" json:"author,omitempty"`
	Category  string    `yaml:"category,omitempty" json:"category,omitempty"`
	Published time.Time `yaml:"published,omitempty" json:"published,omitzero"`
	HTML      string    `yaml:"-" json:"-"` // sanitised body, embedded for crawlers
}

// Canonical returns the canonical path of the route.
func (r Route) Canonical() string {
	if r.CanonicalPath != "" {
		return r.CanonicalPath
	}
	return r.Path
}

// Headline is the title up to the first " | " separator.
func (r Route) Headline() string {
	head, _, _ := strings.Cut(r.Title, " | ")
	return head
}

// IsBlogPost reports whether the route is an individual post under /blog/.
func (r Route) IsBlogPost() bool {
	return strings.HasPrefix(r.Path, "/blog/")
}

// IsService reports whether the route belongs to the services section.
func (r Route) IsService() bool {
	return strings.HasPrefix(r.Path, "/services")
}

// OutputFile is the path of the rendered document relative to the dist dir:
// "/" is "index.html", "/a/b" is "a/b/index.html".
func (r Route) OutputFile() string {
	if r.Path == "/" {
		return "index.html"
	}
	return strings.TrimPrefix(r.Path, "/") + "/index.html"
}

func (r Route) validate() error {
	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("route path %q must start with '/'", r.Path)
	}
	if strings.Contains(r.Path, "..") || strings.ContainsAny(r.Path, "?#\\ ") {
		return fmt.Errorf("route path %q contains invalid characters", r.Path)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("route %s: title cannot be empty", r.Path)
	}
	if _, err := ParseOGType(string(r.OGType)); err != nil {
		return fmt.Errorf("route %s: og type: %w", r.Path, err)
	}
	return nil
}

// CleanPath strips a trailing slash and adds a leading one. "" becomes "/".
func CleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}
