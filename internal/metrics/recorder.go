package metrics

import "time"

// PageResult enumerates what happened to one generated document.
type PageResult string

const (
	PageRendered PageResult = "rendered"
	PageSkipped  PageResult = "skipped" // unchanged since the last incremental build
	PageFailed   PageResult = "failed"
)

// BuildOutcomeLabel is the final status of a prerender run.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// InquiryResult is the outcome of a form submission.
type InquiryResult string

const (
	InquiryAccepted InquiryResult = "accepted"
	InquiryInvalid  InquiryResult = "invalid"
	InquiryFailed   InquiryResult = "failed"
)

// Recorder defines observability hooks. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	IncPage(result PageResult)
	IncSearchQuery(mode string, hits int)
	IncInquiry(kind string, result InquiryResult)
	IncDeliveryFailure(channel string)
	IncRetry(operation string)
	ObserveHTTPRequest(method string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are disabled).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel) {}
func (NoopRecorder) IncPage(PageResult) {}
func (NoopRecorder) IncSearchQuery(string, int) {}
func (NoopRecorder) IncInquiry(string, InquiryResult) {}
func (NoopRecorder) IncDeliveryFailure(string) {}
func (NoopRecorder) IncRetry(string) {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration) {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
