package prerender

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/routes"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap renders sitemap.xml for every indexable route of table.
func Sitemap(s site.Site, table *routes.Table) ([]byte, error) {
	set := urlSet{XMLNS: sitemapNS}
	seen := make(map[string]bool)
	for _, r := range table.Routes() {
		if r.NoIndex {
			continue
		}
		loc := s.CanonicalURL(r.Canonical())
		if seen[loc] {
			continue
		}
		seen[loc] = true
		u := sitemapURL{Loc: loc, ChangeFreq: "monthly", Priority: "0.7"}
		switch {
		case r.Path == routes.HomePath:
			u.ChangeFreq, u.Priority = "weekly", "1.0"
		case r.Article != nil:
			u.Priority = "0.6"
			if !r.Article.Published.IsZero() {
				u.LastMod = r.Article.Published.Format(time.DateOnly)
			}
		}
		set.URLs = append(set.URLs, u)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Robots renders robots.txt; the sitemap line is included when withSitemap is set.
func Robots(s site.Site, withSitemap bool) []byte {
	var buf bytes.Buffer
	buf.WriteString("User-agent: *\nAllow: /\nDisallow: /search\n")
	if withSitemap {
		fmt.Fprintf(&buf, "\nSitemap: %s\n", s.CanonicalURL("/sitemap.xml"))
	}
	return buf.Bytes()
}
