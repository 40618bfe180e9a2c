package inquiry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/sitegen/internal/config"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// Publisher emits an event for every accepted inquiry.
type Publisher interface {
	Publish(ctx context.Context, inq Inquiry) error
}

// Event is the message published for an inquiry. The form payload is not
// included.
type Event struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"kind"`
	CreatedAt    time.Time `json:"created_at"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Organization string    `json:"organization,omitempty"`
	Subject      string    `json:"subject"`
}

type streamPublisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// JetStreamPublisher publishes inquiry events to a JetStream stream.
type JetStreamPublisher struct {
	conn    *nats.Conn
	js      streamPublisher
	subject string
}

// NewJetStreamPublisher connects to NATS and makes sure the stream exists.
// Events go to "<subject>.<kind>".
func NewJetStreamPublisher(ctx context.Context, cfg config.EventsConfig) (*JetStreamPublisher, error) {
	conn, err := nats.Connect(cfg.URL, nats.Name("sitegen"))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to connect to NATS").
			WithContext("url", cfg.URL).Build()
	}
	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        cfg.Stream,
		Description: "Inquiry submissions",
		Subjects:    []string{cfg.Subject + ".>"},
	}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create stream %s: %w", cfg.Stream, err)
	}

	slog.Info("NATS publisher initialized for inquiries",
		logfields.URL(cfg.URL),
		logfields.Subject(cfg.Subject),
		slog.String("stream", cfg.Stream))
	return &JetStreamPublisher{conn: conn, js: js, subject: cfg.Subject}, nil
}

// Publish sends the event with the inquiry id as message id so redelivered
// submissions are de-duplicated by the server.
func (p *JetStreamPublisher) Publish(ctx context.Context, inq Inquiry) error {
	data, err := json.Marshal(Event{
		ID:           inq.ID,
		Kind:         inq.Kind,
		CreatedAt:    inq.CreatedAt,
		Name:         inq.Name,
		Email:        inq.Email,
		Organization: inq.Organization,
		Subject:      inq.Subject,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.subject + "." + string(inq.Kind)
	if _, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(inq.ID)); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to publish inquiry event").
			Retryable().
			WithContext("subject", subject).
			Build()
	}
	slog.Debug("Published inquiry event", logfields.InquiryID(inq.ID), logfields.Subject(subject))
	return nil
}

// Close drains the NATS connection.
func (p *JetStreamPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
