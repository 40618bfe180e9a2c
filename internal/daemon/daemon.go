// Package daemon keeps a served site current: it rebuilds when content files
// change and on a fixed interval, and publishes each successful build to the
// HTTP runtime.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitegen/internal/build"
	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/server"
)

// Rebuild reasons.
const (
	ReasonStartup  = "startup"
	ReasonWatch    = "watch"
	ReasonSchedule = "schedule"
)

// Daemon drives rebuilds for a running server.
type Daemon struct {
	cfg      *config.Config
	builder  build.Service
	content  *server.Content
	triggers chan string
}

// New creates a daemon that builds with builder and publishes into content.
func New(cfg *config.Config, builder build.Service, content *server.Content) *Daemon {
	return &Daemon{
		cfg:      cfg,
		builder:  builder,
		content:  content,
		triggers: make(chan string, 1),
	}
}

// Rebuild runs one build and, when content loaded, swaps the served route
// table and search index. Unchanged inputs skip prerendering.
func (d *Daemon) Rebuild(ctx context.Context, reason string) (*build.Result, error) {
	res, err := d.builder.Run(ctx, build.Request{Config: d.cfg, SkipIfUnchanged: true, Reason: reason})
	if err != nil {
		return res, err
	}
	if res != nil && res.Table != nil && res.Library != nil {
		d.content.Store(server.NewSnapshot(d.cfg.Site, res.Library, res.Table))
	}
	return res, nil
}

// Trigger queues a rebuild. A rebuild already queued absorbs the request.
func (d *Daemon) Trigger(reason string) {
	select {
	case d.triggers <- reason:
	default:
	}
}

// Run starts the configured watcher and scheduler and processes rebuild
// requests until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if d.cfg.Schedule.Watch {
		w, err := d.startWatcher(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := w.Stop(); err != nil {
				slog.Warn("Failed to stop content watcher", logfields.Error(err))
			}
		}()
	}

	if interval := d.cfg.Schedule.Interval; interval > 0 {
		sched, err := NewScheduler()
		if err != nil {
			return err
		}
		if _, err := sched.ScheduleEvery("rebuild", interval, func() {
			d.rebuildLogged(ctx, ReasonSchedule)
		}); err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case reason := <-d.triggers:
			d.rebuildLogged(ctx, reason)
		}
	}
}

func (d *Daemon) rebuildLogged(ctx context.Context, reason string) {
	if _, err := d.Rebuild(ctx, reason); err != nil {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return
		}
		slog.Error("Rebuild failed", slog.String("reason", reason), logfields.Error(err))
	}
}

func (d *Daemon) startWatcher(ctx context.Context) (*Watcher, error) {
	w, err := NewWatcher(d.cfg.Schedule.Debounce, func() { d.Trigger(ReasonWatch) })
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*Watcher, error) {
		_ = w.Stop()
		return nil, err
	}

	if dir := d.cfg.Content.BlogDir; dir != "" {
		if err := w.AddTree(dir); err != nil {
			return fail(err)
		}
	}
	for _, file := range []string{
		d.cfg.Content.PagesFile,
		d.cfg.Build.RoutesFile,
		filepath.Join(d.cfg.Build.DistDir, "index.html"),
	} {
		if file == "" {
			continue
		}
		if _, err := os.Stat(filepath.Dir(file)); err != nil {
			slog.Warn("Not watching file, directory missing", logfields.File(file))
			continue
		}
		if err := w.AddFile(file); err != nil {
			return fail(err)
		}
	}
	w.Start(ctx)
	return w, nil
}
