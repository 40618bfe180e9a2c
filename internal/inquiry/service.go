package inquiry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitegen/internal/config"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/retry"
)

// Receipt is returned for an accepted submission.
type Receipt struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
	Message   string    `json:"message"`
}

// Service accepts inquiry submissions.
type Service struct {
	catalog   Catalog
	delay     time.Duration
	store     Store
	notifier  Notifier
	publisher Publisher
	policy    retry.Policy
	recorder  metrics.Recorder
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier enables e-mail notifications.
func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }

// WithPublisher enables inquiry events.
func WithPublisher(p Publisher) Option { return func(s *Service) { s.publisher = p } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) { s.recorder = metrics.OrNoop(r) }
}

// WithDelay overrides the simulated submission delay.
func WithDelay(d time.Duration) Option { return func(s *Service) { s.delay = max(d, 0) } }

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// NewService returns a Service storing submissions in store.
func NewService(cfg config.InquiryConfig, store Store, opts ...Option) *Service {
	s := &Service{
		catalog:  CatalogFromConfig(cfg),
		delay:    max(cfg.SubmitDelay, 0),
		store:    store,
		policy:   retry.FromConfig(cfg.Retry),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the accepted choices of the pricing form.
func (s *Service) Catalog() Catalog { return s.catalog }

// Submit validates and records form. Validation failures are returned as
// ValidationErrors. Delivery failures are logged and do not fail the call.
func (s *Service) Submit(ctx context.Context, form Form) (Receipt, error) {
	kind := string(form.Kind())

	if err := form.Validate(s.catalog); err != nil {
		s.recorder.IncInquiry(kind, metrics.InquiryInvalid)
		return Receipt{}, err
	}

	if err := s.wait(ctx); err != nil {
		s.recorder.IncInquiry(kind, metrics.InquiryFailed)
		return Receipt{}, err
	}

	payload, err := json.Marshal(form)
	if err != nil {
		s.recorder.IncInquiry(kind, metrics.InquiryFailed)
		return Receipt{}, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode inquiry").Build()
	}
	p := form.contact()
	inq := Inquiry{
		ID:           uuid.NewString(),
		Kind:         form.Kind(),
		CreatedAt:    s.now().UTC(),
		Name:         p.Name,
		Email:        p.Email,
		Organization: p.Organization,
		Subject:      p.Subject,
		Payload:      payload,
	}

	if err := s.store.Save(ctx, inq); err != nil {
		s.recorder.IncInquiry(kind, metrics.InquiryFailed)
		return Receipt{}, ferrors.WrapError(err, ferrors.CategoryStorage, "failed to store inquiry").
			WithContext("inquiry_id", inq.ID).Build()
	}

	if s.notifier != nil {
		s.deliver(ctx, "email", inq, s.notifier.Notify)
	}
	if s.publisher != nil {
		s.deliver(ctx, "events", inq, s.publisher.Publish)
	}

	s.recorder.IncInquiry(kind, metrics.InquiryAccepted)
	slog.Info("Inquiry accepted", logfields.InquiryID(inq.ID), logfields.Kind(kind))
	return Receipt{ID: inq.ID, Kind: inq.Kind, CreatedAt: inq.CreatedAt, Message: SuccessMessage}, nil
}

// List returns recent submissions, newest first.
func (s *Service) List(ctx context.Context, kind Kind, limit int) ([]Inquiry, error) {
	list, err := s.store.List(ctx, kind, limit)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryStorage, "failed to list inquiries").Build()
	}
	return list, nil
}

// wait sleeps for the configured delay or until ctx is done.
func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) deliver(ctx context.Context, channel string, inq Inquiry, fn func(context.Context, Inquiry) error) {
	err := s.policy.Do(ctx, channel, s.recorder, func(ctx context.Context) error {
		return fn(ctx, inq)
	})
	if err == nil {
		return
	}
	s.recorder.IncDeliveryFailure(channel)
	level := slog.LevelWarn
	if errors.Is(err, context.Canceled) {
		level = slog.LevelInfo
	}
	slog.Log(ctx, level, "Inquiry delivery failed",
		logfields.InquiryID(inq.ID),
		slog.String("channel", channel),
		logfields.Error(err))
}
