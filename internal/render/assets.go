package render

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"golang.org/x/net/html"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

const (
	DefaultScript     = "/assets/index.js"
	DefaultStylesheet = "/assets/index.css"
)

// Assets are the production bundle references of the single-page app.
type Assets struct {
	Script     string   `json:"script"`
	Stylesheet string   `json:"stylesheet"`
	Preloads   []string `json:"preloads,omitempty"`
}

// DefaultAssets is used when the built index.html is missing or does not
// reference a bundle.
func DefaultAssets() Assets {
	return Assets{Script: DefaultScript, Stylesheet: DefaultStylesheet}
}

// ReadAssets extracts bundle references from the built index.html at path.
// A missing file yields DefaultAssets.
func ReadAssets(path string) (Assets, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultAssets(), nil
		}
		return Assets{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to open index.html").
			WithContext("path", path).Build()
	}
	defer func() { _ = f.Close() }()
	return ExtractAssets(f)
}

// ExtractAssets finds the first module script, the first stylesheet and any
// module preloads in an HTML document. Missing references fall back to the
// defaults.
func ExtractAssets(r io.Reader) (Assets, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Assets{}, ferrors.WrapError(err, ferrors.CategoryRender, "failed to parse index.html").Build()
	}

	var a Assets
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script":
				if a.Script == "" && attr(n, "type") == "module" {
					a.Script = attr(n, "src")
				}
			case "link":
				rels := strings.Fields(strings.ToLower(attr(n, "rel")))
				href := attr(n, "href")
				switch {
				case href == "":
				case a.Stylesheet == "" && slices.Contains(rels, "stylesheet"):
					a.Stylesheet = href
				case slices.Contains(rels, "modulepreload"):
					a.Preloads = append(a.Preloads, href)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if a.Script == "" {
		a.Script = DefaultScript
	}
	if a.Stylesheet == "" {
		a.Stylesheet = DefaultStylesheet
	}
	return a, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
