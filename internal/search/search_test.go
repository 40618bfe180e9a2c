package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

func fixture() *Index {
	pages := []content.Page{
		{Title: "Services", Path: "/services", Description: "Accreditation consulting services", Keywords: []string{"self-study", "mock visit"}},
		{Title: "About Eric A. Brichto", Path: "/about", Description: "Founder and principal consultant", Keywords: []string{"founder"}},
		{Title: "Contact", Path: "/contact", Description: "Get in touch", Keywords: []string{"email"}},
	}
	posts := content.Posts{
		{ID: 1, Title: "Navigating Accreditation", Excerpt: strings.Repeat("a", 100), Author: "Eric A. Brichto, Esq.", Category: "Accreditation", Date: "January 5, 2026", Content: "Body mentions ÉTUDE and site visits."},
		{ID: 2, Title: "Compliance Checklists", Excerpt: "Short excerpt", Author: "Eric A. Brichto, Esq.", Category: "Compliance", Date: "January 12, 2026", Content: "Nothing else."},
	}
	return NewIndex(pages, posts)
}

func TestSearchBlankQuery(t *testing.T) {
	idx := fixture()
	assert.Empty(t, idx.Search(Query{Text: "   "}))
	assert.NotNil(t, idx.Search(Query{Text: ""}))
	assert.Equal(t, "", Summary("  ", 0))
}

func TestSearchFullMode(t *testing.T) {
	idx := fixture()

	res := idx.Search(Query{Text: "ACCREDITATION"})
	require.Len(t, res, 2)
	assert.Equal(t, Result{Title: "Services", Path: "/services", Type: TypePage, Description: "Accreditation consulting services"}, res[0])
	assert.Equal(t, "/blog/1", res[1].Path)
	assert.Equal(t, "Accreditation", res[1].Category)
	assert.Equal(t, "January 5, 2026", res[1].Date)

	// Body text and Unicode case folding.
	res = idx.Search(Query{Text: "étude"})
	require.Len(t, res, 1)
	assert.Equal(t, "/blog/1", res[0].Path)

	// Keywords are matched case-insensitively.
	res = idx.Search(Query{Text: "Mock Visit"})
	require.Len(t, res, 1)
	assert.Equal(t, "/services", res[0].Path)
}

func TestSearchQuickMode(t *testing.T) {
	idx := fixture()

	// Descriptions and bodies are not searched.
	assert.Empty(t, idx.Search(Query{Text: "get in touch", Mode: ModeQuick}))
	assert.Empty(t, idx.Search(Query{Text: "site visits", Mode: ModeQuick}))

	res := idx.Search(Query{Text: "brichto", Mode: ModeQuick})
	require.Len(t, res, 3)
	assert.Equal(t, TypePage, res[0].Type)
	assert.Empty(t, res[0].Description)
	assert.Equal(t, strings.Repeat("a", 80)+"...", res[1].Excerpt)
	assert.Equal(t, "Short excerpt...", res[2].Excerpt)
	assert.Empty(t, res[1].Author)
}

func TestSearchLimit(t *testing.T) {
	idx := fixture()
	res := idx.Search(Query{Text: "brichto", Limit: 2})
	require.Len(t, res, 2)
	assert.Equal(t, "/blog/1", res[1].Path)
}

func TestQuickModeCapsResults(t *testing.T) {
	lib := &content.Library{Posts: content.DefaultPosts(), Pages: content.DefaultPages()}
	idx := FromLibrary(lib)

	full := idx.Search(Query{Text: "accreditation"})
	require.Greater(t, len(full), QuickLimit)
	quick := idx.Search(Query{Text: "accreditation", Mode: ModeQuick, Limit: 50})
	assert.Len(t, quick, QuickLimit)
}

func TestQuickModeUsesHeaderPageList(t *testing.T) {
	idx := FromLibrary(&content.Library{
		Pages:      content.DefaultPages(),
		QuickPages: content.DefaultQuickPages(),
	})
	titles := func(q string, mode Mode) []string {
		pages, _ := Split(idx.Search(Query{Text: q, Mode: mode}))
		out := []string{}
		for _, p := range pages {
			out = append(out, p.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Compliance Consulting"}, titles("consulting", ModeQuick))
	assert.Equal(t, []string{"Education & Training"}, titles("work", ModeQuick))
	assert.Empty(t, titles("executive", ModeQuick))
	assert.Contains(t, titles("government", ModeQuick), "Government")

	// Full mode keeps the search page list.
	assert.Contains(t, titles("executive", ModeFull), "Interim Leadership")
	assert.Contains(t, titles("consulting", ModeFull), "Home")
}

func TestWithQuickPagesEmptyKeepsFullList(t *testing.T) {
	idx := fixture().WithQuickPages(nil)
	res := idx.Search(Query{Text: "contact", Mode: ModeQuick})
	require.Len(t, res, 1)
	assert.Equal(t, "/contact", res[0].Path)
}

func TestSplitAndSummary(t *testing.T) {
	res := fixture().Search(Query{Text: "accreditation"})
	pages, posts := Split(res)
	assert.Len(t, pages, 1)
	assert.Len(t, posts, 1)

	assert.Equal(t, `Found 2 results for "accreditation"`, Summary("accreditation", 2))
	assert.Equal(t, `Found 1 result for "x"`, Summary("x", 1))
	assert.Equal(t, `No results found for "zzz"`, Summary("zzz", 0))
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeQuick, ParseMode(" Quick "))
	assert.Equal(t, ModeFull, ParseMode(""))
	assert.Equal(t, ModeFull, ParseMode("other"))
}
