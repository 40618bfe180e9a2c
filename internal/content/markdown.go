package content

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	articlePolicy = newArticlePolicy()
)

func newArticlePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// RenderMarkdown converts a Markdown body to sanitised HTML.
func RenderMarkdown(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return "", err
	}
	return articlePolicy.Sanitize(buf.String()), nil
}

// SanitizeHTML applies the article policy to an HTML fragment.
func SanitizeHTML(s string) string {
	return articlePolicy.Sanitize(s)
}
