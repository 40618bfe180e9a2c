package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"git.home.luguber.info/inful/sitegen/internal/config"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// GitSource keeps a local checkout of a content repository up to date.
type GitSource struct {
	cfg config.GitSourceConfig
}

// NewGitSource creates a source for cfg.
func NewGitSource(cfg config.GitSourceConfig) *GitSource {
	return &GitSource{cfg: cfg}
}

// Dir is the checkout directory.
func (g *GitSource) Dir() string { return g.cfg.Dir }

// Sync clones the repository, or pulls when a checkout already exists.
// It returns the commit hash of HEAD afterwards.
func (g *GitSource) Sync(ctx context.Context) (string, error) {
	auth, err := gitAuth(g.cfg.Auth)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryConfig, "failed to set up git authentication").Build()
	}

	if _, err := os.Stat(filepath.Join(g.cfg.Dir, ".git")); errors.Is(err, fs.ErrNotExist) {
		return g.clone(ctx, auth)
	}
	return g.pull(ctx, auth)
}

func (g *GitSource) clone(ctx context.Context, auth transport.AuthMethod) (string, error) {
	slog.Debug("Cloning content repository", logfields.URL(g.cfg.URL), logfields.Path(g.cfg.Dir))

	if err := os.MkdirAll(filepath.Dir(g.cfg.Dir), 0o750); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create checkout parent").Build()
	}
	opts := &git.CloneOptions{URL: g.cfg.URL, Auth: auth}
	if g.cfg.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(g.cfg.Branch)
		opts.SingleBranch = true
	}
	repo, err := git.PlainCloneContext(ctx, g.cfg.Dir, false, opts)
	if err != nil {
		return "", g.gitErr(err, "failed to clone content repository")
	}
	head, err := headHash(repo)
	if err != nil {
		return "", g.gitErr(err, "failed to resolve HEAD")
	}
	slog.Info("Content repository cloned", logfields.URL(g.cfg.URL), slog.String("commit", short(head)))
	return head, nil
}

func (g *GitSource) pull(ctx context.Context, auth transport.AuthMethod) (string, error) {
	repo, err := git.PlainOpen(g.cfg.Dir)
	if err != nil {
		return "", g.gitErr(err, "failed to open content checkout")
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", g.gitErr(err, "failed to get worktree")
	}
	opts := &git.PullOptions{RemoteName: "origin", Auth: auth}
	if g.cfg.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(g.cfg.Branch)
		opts.SingleBranch = true
	}
	err = wt.PullContext(ctx, opts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return "", g.gitErr(err, "failed to pull content repository")
	}
	head, herr := headHash(repo)
	if herr != nil {
		return "", g.gitErr(herr, "failed to resolve HEAD")
	}
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		slog.Debug("Content repository already up to date", slog.String("commit", short(head)))
	} else {
		slog.Info("Content repository updated", logfields.URL(g.cfg.URL), slog.String("commit", short(head)))
	}
	return head, nil
}

// gitErr classifies a git failure. Credential and missing-repository errors
// need user action; anything else may be transient.
func (g *GitSource) gitErr(err error, msg string) error {
	b := ferrors.WrapError(err, ferrors.CategoryGit, msg).
		WithContext("url", g.cfg.URL).
		WithContext("dir", g.cfg.Dir)
	if permanentGitErr(err) {
		return b.UserAction().Build()
	}
	return b.Retryable().Build()
}

func permanentGitErr(err error) bool {
	return errors.Is(err, transport.ErrAuthenticationRequired) ||
		errors.Is(err, transport.ErrAuthorizationFailed) ||
		errors.Is(err, transport.ErrRepositoryNotFound)
}

func gitAuth(a *config.AuthConfig) (transport.AuthMethod, error) {
	if a == nil {
		return nil, nil
	}
	switch a.Type {
	case config.AuthTypeBasic:
		return &githttp.BasicAuth{Username: a.Username, Password: a.Password}, nil
	case config.AuthTypeToken:
		// Most forges accept any username with a token as password.
		return &githttp.BasicAuth{Username: "token", Password: a.Token}, nil
	case config.AuthTypeSSH:
		keys, err := gitssh.NewPublicKeysFromFile("git", a.KeyPath, "")
		if err != nil {
			return nil, fmt.Errorf("load ssh key %s: %w", a.KeyPath, err)
		}
		return keys, nil
	default:
		return nil, nil
	}
}

func headHash(repo *git.Repository) (string, error) {
	ref, err := repo.Head()
	if err != nil {
		return "", err
	}
	return ref.Hash().String(), nil
}

func short(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
