package routes

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()

	require.Equal(t, 22, tbl.Len())
	paths := tbl.Paths()
	assert.Equal(t, "/", paths[0])
	assert.Equal(t, "/leadership", paths[len(paths)-1])

	about, ok := tbl.Get("/about")
	require.True(t, ok)
	assert.Equal(t, OGTypeProfile, about.OGType)

	for _, r := range tbl.Routes() {
		assert.NotEmpty(t, r.Description, r.Path)
		assert.NotEmpty(t, r.Keywords, r.Path)
	}
}

func TestLookupFallsBackToHome(t *testing.T) {
	tbl := Default()

	r, found := tbl.Lookup("/does-not-exist")
	assert.False(t, found)
	assert.Equal(t, "/", r.Path)

	r, found = tbl.Lookup("/services/")
	assert.True(t, found)
	assert.Equal(t, "/services", r.Path)
}

func TestAddRejectsInvalidRoutes(t *testing.T) {
	tests := []struct {
		name  string
		route Route
	}{
		{"query in path", Route{Path: "/a?b", Title: "x"}},
		{"empty title", Route{Path: "/x"}},
		{"bad og type", Route{Path: "/x", Title: "x", OGType: "video"}},
		{"traversal", Route{Path: "/../etc", Title: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTable().Add(tt.route)
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
		})
	}

	tbl := NewTable()
	require.NoError(t, tbl.Add(Route{Path: "/a", Title: "A"}))
	err := tbl.Add(Route{Path: "/a/", Title: "A again"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate route")
}

func TestCleanPath(t *testing.T) {
	assert.Equal(t, "/", CleanPath(""))
	assert.Equal(t, "/", CleanPath("/"))
	assert.Equal(t, "/about", CleanPath("about/"))
	assert.Equal(t, "/a/b", CleanPath(" /a/b/ "))
}

func TestAddDefaultsOGType(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Add(Route{Path: "/", Title: "Home", OGType: "Article"}))
	require.NoError(t, tbl.Add(Route{Path: "/x", Title: "X"}))

	home, _ := tbl.Home()
	assert.Equal(t, OGTypeArticle, home.OGType)
	x, _ := tbl.Get("/x")
	assert.Equal(t, OGTypeWebsite, x.OGType)
}

func TestBlogRoute(t *testing.T) {
	published := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	r := BlogRoute(BlogEntry{
		ID:        12,
		Title:     "The Ten Commandments of Site Visits",
		Excerpt:   "Essential principles for site visit success.",
		Author:    "Eric A. Brichto, Esq.",
		Published: published,
	}, "Eric A. Brichto Blog", []string{"Eric Brichto", "accreditation", "healthcare education", "compliance"})

	want := Route{
		Path:        "/blog/12",
		Title:       "The Ten Commandments of Site Visits | Eric A. Brichto Blog",
		Description: "Essential principles for site visit success.",
		Keywords:    []string{"Eric Brichto", "accreditation", "healthcare education", "compliance", "The Ten Commandments"},
		OGType:      OGTypeArticle,
		Article:     &Article{PostID: 12, Author: "Eric A. Brichto, Esq.", Published: published},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Fatalf("BlogRoute mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "The Ten Commandments of Site Visits", r.Headline())
	assert.True(t, r.IsBlogPost())
	assert.Equal(t, "blog/12/index.html", r.OutputFile())
}

func TestBlogRouteShortTitle(t *testing.T) {
	r := BlogRoute(BlogEntry{ID: 1, Title: "Hello"}, "", nil)
	assert.Equal(t, "Hello", r.Title)
	assert.Equal(t, []string{"Hello"}, r.Keywords)
}

func TestAddBlogPostsSkipsExisting(t *testing.T) {
	tbl := Default()
	require.NoError(t, tbl.Add(Route{Path: "/blog/1", Title: "Pinned", OGType: OGTypeArticle}))

	err := tbl.AddBlogPosts([]BlogEntry{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}}, "Blog", nil)
	require.NoError(t, err)

	one, _ := tbl.Get("/blog/1")
	assert.Equal(t, "Pinned", one.Title)
	two, ok := tbl.Get("/blog/2")
	require.True(t, ok)
	assert.Equal(t, "Two | Blog", two.Title)
	assert.Equal(t, 24, tbl.Len())
}

func TestManifestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Default()))

	tbl, err := Parse(buf.Bytes())
	require.NoError(t, err)
	if diff := cmp.Diff(Default().Routes(), tbl.Routes()); diff != "" {
		t.Fatalf("manifest round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseManifest(t *testing.T) {
	tbl, err := Parse([]byte(`
routes:
  - path: /
    title: Home
    description: Start here
    keywords: [a, b]
  - path: /team
    title: Team
    og_type: profile
    canonical_path: /about
`))
	require.NoError(t, err)
	team, ok := tbl.Get("/team")
	require.True(t, ok)
	assert.Equal(t, "/about", team.Canonical())
	assert.Equal(t, OGTypeProfile, team.OGType)

	_, err = Parse([]byte("routes:\n  - path: /x\n    title: X\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "home route")

	_, err = Parse([]byte("routes:\n  - path: /\n    titel: typo\n"))
	require.Error(t, err)
}

func TestSorted(t *testing.T) {
	tbl := Default()
	sorted := tbl.Sorted()
	require.Len(t, sorted, tbl.Len())
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, sorted[i-1].Path, sorted[i].Path)
	}
	assert.Equal(t, "/", tbl.Routes()[0].Path, "table order is untouched")
}
