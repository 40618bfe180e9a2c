package seo

import (
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitegen/internal/routes"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

const schemaContext = "https://schema.org"

// Node is one JSON-LD object.
type Node map[string]any

// JSON marshals the node with the given indent. It returns "{}" on error.
func (n Node) JSON(indent string) string {
	var (
		b   []byte
		err error
	)
	if indent == "" {
		b, err = json.Marshal(n)
	} else {
		b, err = json.MarshalIndent(n, "", indent)
	}
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Type returns the @type of the node.
func (n Node) Type() string {
	t, _ := n["@type"].(string)
	return t
}

func ref(id string) Node { return Node{"@id": id} }

// Organization describes the firm, including its founder.
func Organization(s site.Site) Node {
	n := Node{
		"@context":    schemaContext,
		"@type":       "Organization",
		"@id":         s.OrganizationID(),
		"name":        s.LegalName,
		"url":         s.Domain,
		"logo":        s.Logo,
		"description": s.Description,
		"email":       s.Email,
		"telephone":   s.Phone,
		"founder": Node{
			"@type":    "Person",
			"name":     s.Founder,
			"jobTitle": s.FounderTitle,
			"url":      s.CanonicalURL("/about"),
		},
	}
	if len(s.AlternateNames) > 0 {
		n["alternateName"] = s.AlternateNames
	}
	if len(s.FounderAlternateNames) > 0 {
		n["founder"].(Node)["alternateName"] = s.FounderAlternateNames
	}
	return n
}

// Person is the founder profile published on the about page.
func Person(s site.Site) Node {
	n := Node{
		"@context":    schemaContext,
		"@type":       "Person",
		"name":        s.Founder,
		"jobTitle":    s.FounderProfileTitle,
		"description": s.FounderBio,
		"url":         s.CanonicalURL("/about"),
		"worksFor":    ref(s.OrganizationID()),
	}
	if len(s.FounderAlternateNames) > 0 {
		n["alternateName"] = s.FounderAlternateNames
	}
	return n
}

// WebSite describes the site with a search action pointing at /search.
func WebSite(s site.Site) Node {
	return Node{
		"@context":  schemaContext,
		"@type":     "WebSite",
		"name":      s.Name,
		"url":       s.Domain,
		"publisher": ref(s.OrganizationID()),
		"potentialAction": Node{
			"@type":       "SearchAction",
			"target":      s.CanonicalURL("/search") + "?q={search_term_string}",
			"query-input": "required name=search_term_string",
		},
	}
}

// Article describes a blog post.
func Article(s site.Site, m Meta) Node {
	author := s.Founder
	if m.Article != nil && m.Article.Author != "" {
		author = m.Article.Author
	}
	n := Node{
		"@context":    schemaContext,
		"@type":       "Article",
		"headline":    headline(m.Title),
		"description": m.Description,
		"author":      Node{"@type": "Person", "name": author},
		"publisher":   ref(s.OrganizationID()),
		"url":         s.CanonicalURL(m.Path),
	}
	if m.Article != nil {
		if !m.Article.Published.IsZero() {
			n["datePublished"] = m.Article.Published.Format(time.DateOnly)
		}
		if m.Article.Category != "" {
			n["articleSection"] = m.Article.Category
		}
	}
	return n
}

// Service describes one of the services pages.
func Service(s site.Site, m Meta) Node {
	return Node{
		"@context":    schemaContext,
		"@type":       "Service",
		"name":        headline(m.Title),
		"description": m.Description,
		"provider":    ref(s.OrganizationID()),
		"url":         s.CanonicalURL(m.Path),
	}
}

// BreadcrumbItem maps a name to an absolute URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds a schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) Node {
	el := make([]Node, 0, len(items))
	for i, it := range items {
		el = append(el, Node{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return Node{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Breadcrumbs lists Home, each ancestor and the page itself. Ancestors
// without a route fall back to their title-cased path segment.
func Breadcrumbs(s site.Site, table *routes.Table, path string) []BreadcrumbItem {
	caser := cases.Title(language.English) // Casers are not safe for concurrent use
	items := []BreadcrumbItem{{Name: "Home", Item: s.Domain}}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := range segments {
		p := "/" + strings.Join(segments[:i+1], "/")
		name := caser.String(strings.ReplaceAll(segments[i], "-", " "))
		if r, ok := table.Get(p); ok {
			name = headline(r.Title)
		}
		items = append(items, BreadcrumbItem{Name: name, Item: s.CanonicalURL(p)})
	}
	return items
}

// StructuredData returns every JSON-LD node for a page. The Organization
// node is always first; page-type nodes follow.
func StructuredData(s site.Site, table *routes.Table, m Meta) []Node {
	nodes := []Node{Organization(s)}
	switch {
	case m.Path == routes.HomePath:
		nodes = append(nodes, WebSite(s))
	case m.Path == "/about":
		nodes = append(nodes, Person(s))
	}
	if strings.HasPrefix(m.Path, "/blog/") {
		nodes = append(nodes, Article(s, m))
	}
	if strings.HasPrefix(m.Path, "/services") {
		nodes = append(nodes, Service(s, m))
	}
	if strings.Count(strings.Trim(m.Path, "/"), "/") >= 1 {
		nodes = append(nodes, BreadcrumbList(Breadcrumbs(s, table, m.Path)))
	}
	return nodes
}

func headline(title string) string {
	h, _, _ := strings.Cut(title, " | ")
	return h
}
