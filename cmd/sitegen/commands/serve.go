package commands

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitegen/internal/build"
	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/daemon"
	"git.home.luguber.info/inful/sitegen/internal/inquiry"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/server"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr     string        `help:"Public listen address (overrides server.addr)"`
	Watch    bool          `short:"w" help:"Rebuild when content files change"`
	Interval time.Duration `help:"Periodic rebuild interval (overrides schedule.interval)"`
	NoBuild  bool          `name:"no-build" help:"Serve the dist directory without an initial build"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	if s.Watch {
		cfg.Schedule.Watch = true
	}
	if s.Interval > 0 {
		cfg.Schedule.Interval = s.Interval
	}
	return serve(g.context(), cfg, !s.NoBuild)
}

func serve(ctx context.Context, cfg *config.Config, initialBuild bool) error {
	var (
		rec         metrics.Recorder = metrics.NoopRecorder{}
		metricsHTTP http.Handler
	)
	if cfg.Monitoring.Metrics.Enabled {
		reg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		metricsHTTP = metrics.HTTPHandler(reg)
	}

	holder := server.NewContent(server.Snapshot{Site: cfg.Site})
	d := daemon.New(cfg, build.NewBuildService().WithRecorder(rec), holder)
	if initialBuild {
		if _, err := d.Rebuild(ctx, daemon.ReasonStartup); err != nil {
			return err
		}
	} else {
		lib, table, err := build.LoadSite(cfg)
		if err != nil {
			return err
		}
		holder.Store(server.NewSnapshot(cfg.Site, lib, table))
	}

	svc, closeInquiries, err := newInquiryService(ctx, cfg, rec)
	if err != nil {
		return err
	}
	defer closeInquiries()

	srv := server.New(cfg.Server, cfg.Monitoring, server.Options{
		DistDir:        cfg.Build.DistDir,
		Content:        holder,
		Inquiries:      svc,
		Recorder:       rec,
		MetricsHandler: metricsHTTP,
	})

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error { return srv.Run(egCtx) })
	eg.Go(func() error { return d.Run(egCtx) })
	return eg.Wait()
}

// newInquiryService wires the SQLite store and the optional Resend and
// JetStream delivery channels.
func newInquiryService(ctx context.Context, cfg *config.Config, rec metrics.Recorder) (*inquiry.Service, func(), error) {
	store, err := inquiry.NewSQLiteStore(cfg.Inquiry.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	closers := []func() error{store.Close}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				slog.Warn("Close failed", logfields.Error(err))
			}
		}
	}

	opts := []inquiry.Option{inquiry.WithRecorder(rec)}
	if n := cfg.Inquiry.Notify; n.Enabled {
		opts = append(opts, inquiry.WithNotifier(inquiry.NewResendNotifier(n, cfg.Site.Name)))
	}
	if ev := cfg.Inquiry.Events; ev.Enabled {
		pub, err := inquiry.NewJetStreamPublisher(ctx, ev)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, pub.Close)
		opts = append(opts, inquiry.WithPublisher(pub))
	}
	return inquiry.NewService(cfg.Inquiry, store, opts...), closeAll, nil
}
