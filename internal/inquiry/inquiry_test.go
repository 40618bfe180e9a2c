package inquiry

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
)

func validPricing() *PricingForm {
	return &PricingForm{
		OrganizationName: "  Example College ",
		ContactName:      "Dana Reyes",
		Email:            "dana@example.edu",
		ProgramType:      "Nursing Education",
		Services:         []string{"self-study", "mock-visit"},
		Timeline:         "soon",
	}
}

func catalog() Catalog { return CatalogFromConfig(config.InquiryConfig{}) }

func TestPricingFormValidation(t *testing.T) {
	f := validPricing()
	require.NoError(t, f.Validate(catalog()))
	assert.Equal(t, "Example College", f.OrganizationName)

	bad := &PricingForm{
		OrganizationName: "   ",
		ContactName:      strings.Repeat("x", 101),
		Email:            "not-an-email",
		Phone:            strings.Repeat("1", 21),
		Services:         nil,
		AdditionalInfo:   strings.Repeat("y", 1001),
	}
	err := bad.Validate(catalog())
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, map[string]string{
		"organizationName": "Organization name is required",
		"contactName":      "Contact name must be less than 100 characters",
		"email":            "Invalid email address",
		"phone":            "Phone number must be less than 20 characters",
		"programType":      "Please select a program type",
		"services":         "Please select at least one service",
		"additionalInfo":   "Additional information must be less than 1000 characters",
	}, verrs.Map())
	assert.Equal(t, "organizationName", verrs[0].Field)
}

func TestPricingFormCatalogChecks(t *testing.T) {
	f := validPricing()
	f.ProgramType = "Astronomy"
	f.Services = []string{"self-study", "juggling"}
	f.Timeline = "someday"
	var verrs ValidationErrors
	require.ErrorAs(t, f.Validate(catalog()), &verrs)
	assert.Equal(t, "Please select a valid program type", verrs.Map()["programType"])
	assert.Equal(t, `Unknown service "juggling"`, verrs.Map()["services"])
	assert.Equal(t, "Please select a valid timeline", verrs.Map()["timeline"])
}

func TestContactFormValidation(t *testing.T) {
	ok := &ContactForm{Name: "Sam", Email: "sam@example.org", Message: " Hello "}
	require.NoError(t, ok.Validate(catalog()))
	assert.Equal(t, "Hello", ok.Message)
	assert.Equal(t, "Contact form message", ok.contact().Subject)

	bad := &ContactForm{Email: "x@y.z", Subject: strings.Repeat("s", 151), Message: strings.Repeat("m", 2001)}
	var verrs ValidationErrors
	require.ErrorAs(t, bad.Validate(catalog()), &verrs)
	assert.Equal(t, map[string]string{
		"name":    "Name is required",
		"subject": "Subject must be less than 150 characters",
		"message": "Message must be less than 2000 characters",
	}, verrs.Map())
}

func TestLengthLimitsCountUTF16Units(t *testing.T) {
	// 50 emoji are 100 UTF-16 units: at the limit.
	f := &ContactForm{Name: strings.Repeat("😀", 50), Email: "sam@example.org", Message: "Hi"}
	require.NoError(t, f.Validate(catalog()))

	f = &ContactForm{Name: strings.Repeat("😀", 51), Email: "sam@example.org", Message: "Hi"}
	var verrs ValidationErrors
	require.ErrorAs(t, f.Validate(catalog()), &verrs)
	assert.Equal(t, "Name must be less than 100 characters", verrs.Map()["name"])

	// BMP characters count once.
	f = &ContactForm{Name: strings.Repeat("é", 100), Email: "sam@example.org", Message: "Hi"}
	require.NoError(t, f.Validate(catalog()))
}

func TestParseKindAndNewForm(t *testing.T) {
	k, err := ParseKind(" Pricing ")
	require.NoError(t, err)
	assert.Equal(t, KindPricing, k)
	_, err = ParseKind("careers")
	require.Error(t, err)

	f, err := NewForm(KindContact)
	require.NoError(t, err)
	assert.IsType(t, &ContactForm{}, f)
}

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "inquiries.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreListsNewestFirst(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, k := range []Kind{KindPricing, KindContact, KindPricing} {
		require.NoError(t, s.Save(ctx, Inquiry{
			ID:        string(rune('a' + i)),
			Kind:      k,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Name:      "n",
			Email:     "e@x.io",
			Payload:   []byte(`{}`),
		}))
	}

	all, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, base.Add(2*time.Minute), all[0].CreatedAt)

	pricing, err := s.List(ctx, KindPricing, 1)
	require.NoError(t, err)
	require.Len(t, pricing, 1)
	assert.Equal(t, "c", pricing[0].ID)
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls int
	fail  int
}

func (f *fakeNotifier) Notify(context.Context, Inquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.fail {
		return ferrors.NetworkError("resend unavailable").Retryable().Build()
	}
	return nil
}

type fakePublisher struct{ got []Inquiry }

func (f *fakePublisher) Publish(_ context.Context, inq Inquiry) error {
	f.got = append(f.got, inq)
	return errors.New("nats down")
}

type countingRecorder struct {
	metrics.NoopRecorder
	mu        sync.Mutex
	results   []metrics.InquiryResult
	delivered map[string]int
}

func (c *countingRecorder) IncInquiry(_ string, r metrics.InquiryResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
}

func (c *countingRecorder) IncDeliveryFailure(channel string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delivered[channel]++
}

func testConfig() config.InquiryConfig {
	return config.InquiryConfig{Retry: config.RetryConfig{Backoff: config.RetryBackoffFixed, Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 2}}
}

func TestServiceSubmit(t *testing.T) {
	store := newStore(t)
	notifier := &fakeNotifier{fail: 1}
	publisher := &fakePublisher{}
	rec := &countingRecorder{delivered: map[string]int{}}
	fixed := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	svc := NewService(testConfig(), store,
		WithNotifier(notifier),
		WithPublisher(publisher),
		WithRecorder(rec),
		WithDelay(0),
		WithClock(func() time.Time { return fixed }))

	receipt, err := svc.Submit(context.Background(), validPricing())
	require.NoError(t, err)
	assert.Equal(t, SuccessMessage, receipt.Message)
	assert.Equal(t, KindPricing, receipt.Kind)
	assert.Len(t, receipt.ID, 36)
	assert.Equal(t, fixed, receipt.CreatedAt)

	// The notifier succeeded on retry; the publisher failure is only counted.
	assert.Equal(t, 2, notifier.calls)
	require.Len(t, publisher.got, 1)
	assert.Equal(t, 1, rec.delivered["events"])
	assert.Zero(t, rec.delivered["email"])
	assert.Equal(t, []metrics.InquiryResult{metrics.InquiryAccepted}, rec.results)

	list, err := svc.List(context.Background(), KindPricing, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, receipt.ID, list[0].ID)
	assert.Equal(t, "Example College", list[0].Organization)
	assert.Equal(t, "Pricing inquiry: Nursing Education", list[0].Subject)
	assert.Contains(t, string(list[0].Payload), `"services":["self-study","mock-visit"]`)
}

func TestServiceSubmitInvalid(t *testing.T) {
	rec := &countingRecorder{delivered: map[string]int{}}
	svc := NewService(testConfig(), newStore(t), WithRecorder(rec), WithDelay(0))

	_, err := svc.Submit(context.Background(), &ContactForm{})
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []metrics.InquiryResult{metrics.InquiryInvalid}, rec.results)

	list, err := svc.List(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestServiceSubmitHonorsContextDuringDelay(t *testing.T) {
	svc := NewService(testConfig(), newStore(t), WithDelay(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.Submit(ctx, &ContactForm{Name: "Sam", Email: "sam@example.org", Message: "Hi"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

type fakeEmails struct{ req *resend.SendEmailRequest }

func (f *fakeEmails) SendWithContext(_ context.Context, req *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.req = req
	return &resend.SendEmailResponse{Id: "em_1"}, nil
}

func TestResendNotifier(t *testing.T) {
	emails := &fakeEmails{}
	n := &ResendNotifier{emails: emails, from: "site@clarivisgroup.com", to: []string{"info@clarivisgroup.com"}, siteName: "Clarivis"}

	err := n.Notify(context.Background(), Inquiry{
		ID:      "id-1",
		Kind:    KindContact,
		Name:    "Sam <script>",
		Email:   "sam@example.org",
		Subject: "Question",
		Payload: []byte(`{"name":"Sam","email":"sam@example.org","services":["a","b"],"organization":""}`),
	})
	require.NoError(t, err)
	require.NotNil(t, emails.req)
	assert.Equal(t, "[Clarivis] Question from Sam <script>", emails.req.Subject)
	assert.Equal(t, []string{"info@clarivisgroup.com"}, emails.req.To)
	assert.Contains(t, emails.req.Html, "Sam &lt;script&gt;")
	assert.Contains(t, emails.req.Text, "services: a, b")
	assert.NotContains(t, emails.req.Text, "organization: \n")
}

type fakeStream struct {
	subject string
	opts    int
	data    []byte
}

func (f *fakeStream) Publish(_ context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	f.subject, f.data, f.opts = subject, data, len(opts)
	return &jetstream.PubAck{Stream: "SITEGEN", Sequence: 1}, nil
}

func TestJetStreamPublisher(t *testing.T) {
	stream := &fakeStream{}
	p := &JetStreamPublisher{js: stream, subject: "sitegen.inquiries"}
	require.NoError(t, p.Publish(context.Background(), Inquiry{ID: "id-1", Kind: KindPricing, Name: "Dana", Payload: []byte(`{"secret":1}`)}))
	assert.Equal(t, "sitegen.inquiries.pricing", stream.subject)
	assert.Equal(t, 1, stream.opts)
	assert.Contains(t, string(stream.data), `"id":"id-1"`)
	assert.NotContains(t, string(stream.data), "secret")
	require.NoError(t, p.Close())
}
