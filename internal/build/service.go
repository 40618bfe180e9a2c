package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/prerender"
	"git.home.luguber.info/inful/sitegen/internal/routes"
)

// Service executes site builds.
type Service interface {
	Run(ctx context.Context, req Request) (*Result, error)
}

// Request contains the inputs of one build.
type Request struct {
	Config *config.Config

	// SkipIfUnchanged skips prerendering when the fingerprint recorded in the
	// dist manifest matches the current inputs.
	SkipIfUnchanged bool

	// Reason is logged with the build, e.g. "watch" or "schedule".
	Reason string
}

// Status is the outcome of a build.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
	StatusCancelled Status = "cancelled"
)

// IsSuccess reports whether the dist directory reflects the current inputs.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess || s == StatusSkipped
}

// Result contains the outcome of a build.
type Result struct {
	Status      Status
	Fingerprint string
	Commit      string // HEAD of the git content source, if any

	// Library and Table are set whenever content loading succeeded, including
	// skipped builds, so callers can refresh the search index.
	Library *content.Library
	Table   *routes.Table

	Prerender prerender.Result
	StartTime time.Time
	Duration  time.Duration
}
