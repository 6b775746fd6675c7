package pipeline

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	openai "github.com/openai/openai-go"
)

// ErrInvalidTopic rejects an empty topic before any stage runs.
var ErrInvalidTopic = errors.New("topic must not be empty")

// FailureKind classifies why a model call failed. Every kind triggers the
// same fallback path; the kind only shows up in logs.
type FailureKind string

const (
	FailureUnavailable FailureKind = "service_unavailable"
	FailureRateLimited FailureKind = "rate_limited"
	FailureTimeout     FailureKind = "timeout"
)

// Classify maps a model client error onto the failure taxonomy.
func Classify(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return FailureTimeout
	}
	var apierr *openai.Error
	if errors.As(err, &apierr) && apierr.StatusCode == http.StatusTooManyRequests {
		return FailureRateLimited
	}
	return FailureUnavailable
}
