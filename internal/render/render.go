// Package render produces the pre-rendered HTML documents of the site.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/routes"
	"git.home.luguber.info/inful/sitegen/internal/seo"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var documentTemplate = template.Must(
	template.New("document.html.tmpl").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/document.html.tmpl"),
)

// jsonLDIndent matches the indentation of the script blocks in the document.
const jsonLDIndent = "      "

type documentData struct {
	Lang           string
	Site           site.Site
	Meta           seo.Meta
	Assets         Assets
	StructuredData []template.JS
	Headline       string
	ArticleHTML    template.HTML
	Share          *seo.ShareLinks
}

// Renderer renders route documents for one site and asset set.
type Renderer struct {
	site   site.Site
	table  *routes.Table
	assets Assets
}

// New creates a renderer. The table supplies the home fallback and
// breadcrumb names.
func New(s site.Site, table *routes.Table, assets Assets) *Renderer {
	return &Renderer{site: s, table: table, assets: assets}
}

// Document renders the full HTML document of a route.
func (r *Renderer) Document(route routes.Route) ([]byte, error) {
	meta := seo.FromRoute(r.site, route, seo.Override{})
	nodes := seo.StructuredData(r.site, r.table, meta)

	data := r.baseData(meta)
	data.StructuredData = make([]template.JS, len(nodes))
	for i, n := range nodes {
		data.StructuredData[i] = template.JS(n.JSON(jsonLDIndent))
	}
	if route.Article != nil && route.Article.HTML != "" {
		data.Headline = route.Headline()
		data.ArticleHTML = template.HTML(route.Article.HTML) //nolint:gosec // sanitised by the content loader
		share := seo.Share(meta.Canonical, data.Headline)
		data.Share = &share
	}
	return r.execute(data, route.Path)
}

// NotFound renders the 404 document from the home route. It carries the
// home meta with a "/" canonical URL and no structured data.
func (r *Renderer) NotFound() ([]byte, error) {
	home, ok := r.table.Home()
	if !ok {
		return nil, ferrors.RenderError("route table has no home route").Build()
	}
	meta := seo.FromRoute(r.site, home, seo.Override{OGType: routes.OGTypeWebsite})
	meta.Canonical = r.site.RootURL()
	meta.Article = nil
	return r.execute(r.baseData(meta), "404")
}

func (r *Renderer) baseData(meta seo.Meta) documentData {
	return documentData{
		Lang:   lang(r.site.Locale),
		Site:   r.site,
		Meta:   meta,
		Assets: r.assets,
	}
}

func (r *Renderer) execute(data documentData, name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRender, "failed to render document").
			WithContext("route", name).Build()
	}
	return buf.Bytes(), nil
}

// lang turns a locale such as "en_US" into an HTML language tag ("en").
func lang(locale string) string {
	l, _, _ := strings.Cut(locale, "_")
	if l == "" {
		return "en"
	}
	return strings.ToLower(l)
}
