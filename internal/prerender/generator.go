package prerender

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitegen/internal/config"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/linkverify"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/render"
	"git.home.luguber.info/inful/sitegen/internal/routes"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

const (
	notFoundFile = "404.html"
	sitemapFile  = "sitemap.xml"
	robotsFile   = "robots.txt"
)

// Result summarises a prerender run.
type Result struct {
	Generated int           // route documents plus the 404 page
	Skipped   int           // files left untouched by an incremental build
	Files     []string      // dist-relative files written
	Duration  time.Duration
	Links     *linkverify.Report
}

// Generator renders the route table into a dist directory.
type Generator struct {
	build       config.BuildConfig
	site        site.Site
	table       *routes.Table
	recorder    metrics.Recorder
	fingerprint string
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) { g.recorder = metrics.OrNoop(r) }
}

// WithFingerprint stores the content fingerprint in the build manifest.
func WithFingerprint(fp string) Option {
	return func(g *Generator) { g.fingerprint = fp }
}

// New returns a Generator for the given build settings, site identity and routes.
func New(build config.BuildConfig, s site.Site, table *routes.Table, opts ...Option) *Generator {
	g := &Generator{
		build:    build,
		site:     s.WithDefaults(),
		table:    table,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type output struct {
	rel  string
	data []byte
}

// Run renders every route, the 404 page and the optional sitemap and robots
// files. It fails when the dist directory does not exist.
func (g *Generator) Run(ctx context.Context) (res Result, err error) {
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		g.recorder.ObserveBuildDuration(res.Duration)
		switch {
		case err == nil:
			g.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			g.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
		default:
			g.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		}
	}()

	dist := g.build.DistDir
	if st, statErr := os.Stat(dist); statErr != nil || !st.IsDir() {
		return res, ferrors.FileSystemError("dist directory does not exist").
			UserAction().
			WithContext("dist_dir", dist).
			WithContext("hint", "build the client bundle first").
			Build()
	}
	slog.Info("Starting prerender", logfields.Path(dist), logfields.Count(g.table.Len()))

	assets, err := render.ReadAssets(filepath.Join(dist, "index.html"))
	if err != nil {
		return res, err
	}
	renderer := render.New(g.site, g.table, assets)

	docs, err := g.renderRoutes(ctx, renderer)
	if err != nil {
		return res, err
	}
	notFound, err := renderer.NotFound()
	if err != nil {
		g.recorder.IncPage(metrics.PageFailed)
		return res, err
	}
	docs = append(docs, output{rel: notFoundFile, data: notFound})
	res.Generated = len(docs)

	extra, err := g.extras()
	if err != nil {
		return res, err
	}

	prev := newManifest()
	if g.build.Incremental {
		prev = ReadManifest(dist)
	}
	next := newManifest()
	next.Fingerprint = g.fingerprint

	for i, o := range append(docs, extra...) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		hash := hashContent(o.data)
		next.Files[o.rel] = hash
		isDoc := i < len(docs)
		if g.build.Incremental && prev.Unchanged(dist, o.rel, hash) {
			res.Skipped++
			if isDoc {
				g.recorder.IncPage(metrics.PageSkipped)
			}
			slog.Debug("Unchanged", logfields.Output(o.rel))
			continue
		}
		if err := writeAtomic(filepath.Join(dist, filepath.FromSlash(o.rel)), o.data); err != nil {
			if isDoc {
				g.recorder.IncPage(metrics.PageFailed)
			}
			return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write output").
				WithContext("file", o.rel).Build()
		}
		if isDoc {
			g.recorder.IncPage(metrics.PageRendered)
		}
		res.Files = append(res.Files, o.rel)
		slog.Info("Generated", logfields.Output(o.rel))
	}

	next.GeneratedAt = time.Now().UTC()
	if err := next.write(dist); err != nil {
		return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write build manifest").Build()
	}

	if g.build.VerifyLinks {
		pages := make([]string, 0, len(docs))
		for _, d := range docs {
			pages = append(pages, d.rel)
		}
		rep, verr := linkverify.New(dist, g.site.Domain).VerifyPages(ctx, pages)
		if verr != nil {
			return res, verr
		}
		res.Links = &rep
		if !rep.OK() {
			return res, ferrors.ValidationError("generated documents contain broken internal links").
				WithContext("broken", len(rep.Broken)).Build()
		}
	}

	slog.Info("Prerender complete",
		logfields.Count(res.Generated),
		slog.Int("skipped", res.Skipped),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return res, nil
}

// renderRoutes renders all route documents concurrently, preserving table order.
func (g *Generator) renderRoutes(ctx context.Context, renderer *render.Renderer) ([]output, error) {
	list := g.table.Routes()
	docs := make([]output, len(list))

	eg, egCtx := errgroup.WithContext(ctx)
	limit := g.build.Concurrency
	if limit <= 0 {
		limit = 1
	}
	eg.SetLimit(limit)
	for i, r := range list {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := renderer.Document(r)
			if err != nil {
				g.recorder.IncPage(metrics.PageFailed)
				slog.Error("Render failed", logfields.Route(r.Path), logfields.Error(err))
				return err
			}
			docs[i] = output{rel: r.OutputFile(), data: data}
			slog.Debug("Rendered", logfields.Route(r.Path), logfields.Output(docs[i].rel))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (g *Generator) extras() ([]output, error) {
	var out []output
	if g.build.Sitemap {
		data, err := Sitemap(g.site, g.table)
		if err != nil {
			return nil, err
		}
		out = append(out, output{rel: sitemapFile, data: data})
	}
	if g.build.Robots {
		out = append(out, output{rel: robotsFile, data: Robots(g.site, g.build.Sitemap)})
	}
	return out, nil
}
