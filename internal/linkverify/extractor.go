package linkverify

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL        string // The URL or path
	Text       string // Link text/title
	Tag        string // HTML tag (a, img, script, link, etc.)
	Attribute  string // Attribute containing the link (href, src, etc.)
	IsInternal bool   // True if link is internal to the site
}

// ExtractLinks extracts all links from an HTML file.
func ExtractLinks(htmlPath string, baseURL string) ([]Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").WithContext("html_path", htmlPath).Build()
	}
	defer func() {
		_ = file.Close()
	}()

	return ExtractLinksFromReader(file, baseURL)
}

// ExtractLinksFromReader extracts all links from an HTML reader.
func ExtractLinksFromReader(r io.Reader, baseURL string) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid base URL").WithContext("base_url", baseURL).Build()
	}

	var links []Link
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if l, ok := elementLink(n, base); ok {
				links = append(links, l)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(doc)
	return links, nil
}

// elementLink returns the link carried by n, if its tag carries one.
func elementLink(n *html.Node, base *url.URL) (Link, bool) {
	var attr, text string
	switch n.Data {
	case "a":
		attr, text = "href", extractText(n)
	case "link":
		// canonical and og links point at the public host, not at dist.
		if rel := getAttr(n, "rel"); rel == "canonical" || rel == "alternate" || rel == "preconnect" || rel == "dns-prefetch" {
			return Link{}, false
		}
		attr, text = "href", getAttr(n, "rel")
	case "img":
		attr, text = "src", getAttr(n, "alt")
	case "script", "video", "audio", "source":
		attr = "src"
	default:
		return Link{}, false
	}
	v := strings.TrimSpace(getAttr(n, attr))
	if v == "" {
		return Link{}, false
	}
	return Link{
		URL:        v,
		Text:       text,
		Tag:        n.Data,
		Attribute:  attr,
		IsInternal: isInternalLink(v, base),
	}, true
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}
	return strings.TrimSpace(text.String())
}

// isInternalLink reports whether linkURL targets the site itself.
// Special schemes (mailto, tel, javascript, data) are never internal.
func isInternalLink(linkURL string, baseURL *url.URL) bool {
	if isSpecial(linkURL) {
		return false
	}
	u, err := url.Parse(linkURL)
	if err != nil {
		return false
	}
	if u.Scheme == "" && u.Host == "" {
		return true
	}
	return baseURL != nil && u.Host == baseURL.Host
}

func isSpecial(linkURL string) bool {
	for _, p := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(linkURL, p) {
			return true
		}
	}
	return false
}

// ShouldVerifyLink reports whether link is an internal target worth resolving.
func ShouldVerifyLink(link Link) bool {
	if link.URL == "" || strings.HasPrefix(link.URL, "#") {
		return false
	}
	return link.IsInternal
}
