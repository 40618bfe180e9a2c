package build

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/content"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/prerender"
	"git.home.luguber.info/inful/sitegen/internal/render"
	"git.home.luguber.info/inful/sitegen/internal/retry"
	"git.home.luguber.info/inful/sitegen/internal/routes"
)

// GitSyncer updates a local content checkout and returns its HEAD commit.
type GitSyncer interface {
	Sync(ctx context.Context) (string, error)
}

// GitSyncerFactory creates a GitSyncer for a content source.
type GitSyncerFactory func(cfg config.GitSourceConfig) GitSyncer

// DefaultService is the standard implementation of Service.
// It orchestrates: git sync → content load → route table → prerender.
type DefaultService struct {
	gitFactory GitSyncerFactory
	recorder   metrics.Recorder
	policy     retry.Policy

	// builds share one dist directory, so they never overlap
	mu sync.Mutex
}

// NewBuildService creates a DefaultService backed by go-git.
func NewBuildService() *DefaultService {
	return &DefaultService{
		gitFactory: func(cfg config.GitSourceConfig) GitSyncer {
			return content.NewGitSource(cfg)
		},
		recorder: metrics.NoopRecorder{},
		policy:   retry.DefaultPolicy(),
	}
}

// WithGitSyncerFactory replaces the git implementation (for testing).
func (s *DefaultService) WithGitSyncerFactory(f GitSyncerFactory) *DefaultService {
	s.gitFactory = f
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultService) WithRecorder(r metrics.Recorder) *DefaultService {
	s.recorder = metrics.OrNoop(r)
	return s
}

// WithRetryPolicy sets the policy used for git synchronisation.
func (s *DefaultService) WithRetryPolicy(p retry.Policy) *DefaultService {
	s.policy = p
	return s
}

// Run executes the build pipeline.
func (s *DefaultService) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Config == nil {
		return nil, ferrors.ValidationError("build request has no configuration").Build()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := req.Config
	res := &Result{Status: StatusFailed, StartTime: time.Now()}
	defer func() { res.Duration = time.Since(res.StartTime) }()

	reason := req.Reason
	if reason == "" {
		reason = "manual"
	}
	slog.Info("Build started", slog.String("reason", reason), logfields.Path(cfg.Build.DistDir))

	if g := cfg.Content.Git; g != nil {
		commit, err := s.syncGit(ctx, *g)
		if err != nil {
			return s.fail(ctx, res, err)
		}
		res.Commit = commit
	}

	lib, table, err := LoadSite(cfg)
	if err != nil {
		return s.fail(ctx, res, err)
	}
	res.Library = lib
	res.Table = table

	assets, err := render.ReadAssets(filepath.Join(cfg.Build.DistDir, "index.html"))
	if err != nil {
		return s.fail(ctx, res, err)
	}
	fp, err := Fingerprint(cfg, lib, table, assets)
	if err != nil {
		return s.fail(ctx, res, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to fingerprint build inputs").Build())
	}
	res.Fingerprint = fp

	if req.SkipIfUnchanged {
		prev := prerender.ReadManifest(cfg.Build.DistDir)
		switch {
		case prev.Fingerprint != fp:
		case !prev.Intact(cfg.Build.DistDir):
			slog.Info("Inputs unchanged but dist output drifted, rebuilding", slog.String("fingerprint", short(fp)))
		default:
			res.Status = StatusSkipped
			slog.Info("Build skipped, inputs unchanged", slog.String("fingerprint", short(fp)))
			return res, nil
		}
	}

	gen := prerender.New(cfg.Build, cfg.Site, table,
		prerender.WithRecorder(s.recorder),
		prerender.WithFingerprint(fp))
	out, err := gen.Run(ctx)
	res.Prerender = out
	if err != nil {
		return s.fail(ctx, res, err)
	}

	res.Status = StatusSuccess
	slog.Info("Build complete",
		logfields.Count(out.Generated),
		slog.Int("skipped", out.Skipped),
		slog.String("fingerprint", short(fp)),
		logfields.DurationMS(float64(time.Since(res.StartTime).Milliseconds())))
	return res, nil
}

func (s *DefaultService) syncGit(ctx context.Context, g config.GitSourceConfig) (string, error) {
	syncer := s.gitFactory(g)
	var commit string
	err := s.policy.Do(ctx, "git_sync", s.recorder, func(ctx context.Context) error {
		var err error
		commit, err = syncer.Sync(ctx)
		return err
	})
	if err != nil {
		return "", err
	}
	slog.Info("Content repository synced", logfields.URL(g.URL), slog.String("commit", short(commit)))
	return commit, nil
}

func (s *DefaultService) fail(ctx context.Context, res *Result, err error) (*Result, error) {
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		res.Status = StatusCancelled
	}
	slog.Error("Build failed", slog.String("status", string(res.Status)), logfields.Error(err))
	return res, err
}

// LoadSite loads the content library and the route table, including one
// route per blog post.
func LoadSite(cfg *config.Config) (*content.Library, *routes.Table, error) {
	lib, err := content.Load(cfg.Content)
	if err != nil {
		return nil, nil, err
	}
	table := routes.Default()
	if cfg.Build.RoutesFile != "" {
		if table, err = routes.Load(cfg.Build.RoutesFile); err != nil {
			return nil, nil, err
		}
	}
	if err := table.AddBlogPosts(lib.Posts.Entries(), cfg.Site.BlogName, cfg.Site.BlogKeywords); err != nil {
		return nil, nil, err
	}
	return lib, table, nil
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
