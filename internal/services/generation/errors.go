package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Kind classifies a generation failure
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindConfiguration Kind = "configuration"
	KindQuota         Kind = "quota"
	KindRateLimited   Kind = "rate_limited"
	KindCredentials   Kind = "credentials"
	KindBackend       Kind = "backend"
	KindCanceled      Kind = "canceled"
)

// Error is a classified failure. Message is safe to show to users; Details
// carries the upstream text when it differs.
type Error struct {
	Kind    Kind
	Message string
	Details string
	HelpURL string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status is the HTTP status a pre-stream failure of this kind is reported with
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization, KindCredentials:
		return http.StatusUnauthorized
	case KindQuota, KindRateLimited:
		return http.StatusTooManyRequests
	case KindCanceled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// Validation returns a validation failure with the given message
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Unauthorized is the failure for requests without an authenticated user
func Unauthorized() *Error {
	return &Error{Kind: KindAuthorization, Message: "Unauthorized"}
}

// Unconfigured returns a configuration failure with the given message
func Unconfigured(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// Provider labels a vendor in user-facing messages
type Provider struct {
	Label      string
	BillingURL string
}

var (
	ProviderOpenAI = Provider{Label: "OpenAI", BillingURL: "https://platform.openai.com/account/billing"}
	ProviderGemini = Provider{Label: "Gemini", BillingURL: "https://aistudio.google.com/plan_information"}
)

// Classify maps an arbitrary backend error onto the failure taxonomy. Errors
// that are already classified are returned unchanged.
func Classify(p Provider, err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindCanceled, Message: "Generation was cancelled", Details: err.Error(), Err: err}
	}

	status, message := upstreamSignal(err)
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "rate limit"):
		return &Error{
			Kind:    KindRateLimited,
			Message: "Rate limit exceeded. Please try again later.",
			Details: message,
			Err:     err,
		}
	case status == http.StatusTooManyRequests ||
		strings.Contains(lower, "quota") ||
		strings.Contains(lower, "exceeded") ||
		strings.Contains(lower, "resource_exhausted"):
		return &Error{
			Kind:    KindQuota,
			Message: fmt.Sprintf("%s API quota exceeded. Please check your plan and billing details.", p.Label),
			Details: message,
			HelpURL: p.BillingURL,
			Err:     err,
		}
	case status == http.StatusUnauthorized || strings.Contains(lower, "api key"):
		return &Error{
			Kind:    KindCredentials,
			Message: fmt.Sprintf("Invalid %s API key. Please check your environment variables.", p.Label),
			Details: message,
			Err:     err,
		}
	default:
		if message == "" {
			message = "Failed to generate content"
		}
		return &Error{Kind: KindBackend, Message: message, Details: err.Error(), Err: err}
	}
}

// upstreamSignal extracts the status code and message a vendor SDK attached to err
func upstreamSignal(err error) (int, string) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if apiErr.Type != "" && !strings.Contains(message, apiErr.Type) {
			message = fmt.Sprintf("%s (%s)", message, apiErr.Type)
		}
		return apiErr.HTTPStatusCode, message
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, reqErr.Error()
	}

	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return gErr.Code, strings.TrimSpace(gErr.Status + " " + gErr.Message)
	}

	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) {
		return gErrPtr.Code, strings.TrimSpace(gErrPtr.Status + " " + gErrPtr.Message)
	}

	return 0, err.Error()
}
