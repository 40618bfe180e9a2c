package seo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/routes"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

func testTable(t *testing.T) *routes.Table {
	t.Helper()
	tbl := routes.Default()
	require.NoError(t, tbl.AddBlogPosts([]routes.BlogEntry{{
		ID:        3,
		Title:     "Preparing for Your First Accreditation Site Visit: A Comprehensive Guide",
		Excerpt:   "Practical guidance.",
		Category:  "Site Visits",
		Published: time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC),
	}}, "Eric A. Brichto Blog", site.Default().BlogKeywords))
	return tbl
}

func TestResolvePrecedence(t *testing.T) {
	s := site.Default()
	tbl := routes.Default()

	m := Resolve(s, tbl, "/about", Override{})
	assert.Equal(t, "About Eric A. Brichto, Esq. | Clarivis Consulting Group", m.Title)
	assert.Equal(t, routes.OGTypeProfile, m.OGType)
	assert.Equal(t, "https://www.clarivisgroup.com/about", m.Canonical)
	assert.Equal(t, s.OGImage, m.OGImage)

	m = Resolve(s, tbl, "/about", Override{
		Title:    "Custom",
		Keywords: []string{"Eric Brichto", "new keyword"},
		OGType:   routes.OGTypeWebsite,
		OGImage:  "https://cdn.example.com/x.png",
	})
	assert.Equal(t, "Custom", m.Title)
	assert.Equal(t, "new keyword", m.Keywords[len(m.Keywords)-1])
	assert.Equal(t, 1, countOf(m.Keywords, "Eric Brichto"))
	assert.Equal(t, routes.OGTypeWebsite, m.OGType)
	assert.Equal(t, "https://cdn.example.com/x.png", m.OGImage)
	assert.NotEmpty(t, m.Description)
}

func TestResolveUnknownPathUsesHome(t *testing.T) {
	s := site.Default()
	m := Resolve(s, routes.Default(), "/nope", Override{})
	assert.Equal(t, "/", m.Path)
	assert.Equal(t, "https://www.clarivisgroup.com", m.Canonical)
}

func TestMergeKeywords(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, MergeKeywords([]string{"a", "b"}, []string{"b", "c", "a"}))
	assert.Equal(t, []string{}, MergeKeywords(nil, nil))
}

func TestStructuredDataByPage(t *testing.T) {
	s := site.Default()
	tbl := testTable(t)

	types := func(path string) []string {
		r, ok := tbl.Get(path)
		require.True(t, ok, path)
		var out []string
		for _, n := range StructuredData(s, tbl, FromRoute(s, r, Override{})) {
			out = append(out, n.Type())
		}
		return out
	}

	assert.Equal(t, []string{"Organization", "WebSite"}, types("/"))
	assert.Equal(t, []string{"Organization", "Person"}, types("/about"))
	assert.Equal(t, []string{"Organization", "Service"}, types("/services"))
	assert.Equal(t, []string{"Organization", "Service", "BreadcrumbList"}, types("/services/training"))
	assert.Equal(t, []string{"Organization", "Article", "BreadcrumbList"}, types("/blog/3"))
	assert.Equal(t, []string{"Organization"}, types("/pricing"))
}

func TestOrganizationNode(t *testing.T) {
	s := site.Default()
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(Organization(s).JSON("  ")), &got))

	assert.Equal(t, "https://www.clarivisgroup.com/#organization", got["@id"])
	assert.Equal(t, "Clarivis Consulting Group, LLC", got["name"])
	assert.Equal(t, []any{"Clarivis Group", "Clarivis", "ClarivIsGroup"}, got["alternateName"])
	founder := got["founder"].(map[string]any)
	assert.Equal(t, "Founder & Principal", founder["jobTitle"])
	assert.Equal(t, "https://www.clarivisgroup.com/about", founder["url"])
}

func TestArticleNode(t *testing.T) {
	s := site.Default()
	tbl := testTable(t)
	r, _ := tbl.Get("/blog/3")

	n := Article(s, FromRoute(s, r, Override{}))
	assert.Equal(t, "Preparing for Your First Accreditation Site Visit: A Comprehensive Guide", n["headline"])
	assert.Equal(t, "2025-12-28", n["datePublished"])
	assert.Equal(t, "Site Visits", n["articleSection"])
	assert.Equal(t, Node{"@type": "Person", "name": "Eric A. Brichto, Esq."}, n["author"])
	assert.Equal(t, "https://www.clarivisgroup.com/blog/3", n["url"])
}

func TestBreadcrumbs(t *testing.T) {
	s := site.Default()
	tbl := routes.Default()
	items := Breadcrumbs(s, tbl, "/government/post-award")
	require.Len(t, items, 3)
	assert.Equal(t, "Home", items[0].Name)
	assert.Equal(t, "Government Contract Support", items[1].Name)
	assert.Equal(t, "Post-Award Contract Support", items[2].Name)

	items = Breadcrumbs(s, routes.NewTable(), "/case-studies/x")
	assert.Equal(t, "Case Studies", items[1].Name)
}

func TestShare(t *testing.T) {
	links := Share("https://www.clarivisgroup.com/blog/1", "Data & Decisions")
	assert.Equal(t, "https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Fwww.clarivisgroup.com%2Fblog%2F1", links.LinkedIn)
	assert.Equal(t, "https://twitter.com/intent/tweet?url=https%3A%2F%2Fwww.clarivisgroup.com%2Fblog%2F1&text=Data%20%26%20Decisions", links.Twitter)
	assert.Equal(t, "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fwww.clarivisgroup.com%2Fblog%2F1&quote=Data%20%26%20Decisions", links.Facebook)
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "it's%20(ok)!", EncodeURIComponent("it's (ok)!"))
	assert.Equal(t, "%C3%A9", EncodeURIComponent("é"))
}

func countOf(list []string, v string) int {
	n := 0
	for _, x := range list {
		if x == v {
			n++
		}
	}
	return n
}
