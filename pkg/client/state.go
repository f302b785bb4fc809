package client

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/inkwell-labs/inkwell/pkg/eventstream"
)

// Kind classifies a failure surfaced to the user
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindConfiguration Kind = "configuration"
	KindQuota         Kind = "quota"
	KindRateLimited   Kind = "rate_limited"
	KindCredentials   Kind = "credentials"
	KindBackend       Kind = "backend"
	KindMidStream     Kind = "mid_stream"
	KindTransport     Kind = "transport"
)

const (
	defaultNotice  = 5 * time.Second
	extendedNotice = 8 * time.Second
)

// Failure is a generation failure as the user sees it
type Failure struct {
	Kind    Kind
	Message string
	Details string
	HelpURL string
	// Status is the HTTP status of a failure reported before streaming, 0 otherwise
	Status int
}

func (f *Failure) Error() string {
	if f.Details != "" && f.Details != f.Message {
		return fmt.Sprintf("%s: %s", f.Message, f.Details)
	}
	return f.Message
}

// NoticeDuration is how long the failure notice stays visible. Quota and
// rate limit notices stay longer since they usually need action.
func (f *Failure) NoticeDuration() time.Duration {
	if f.Kind == KindQuota || f.Kind == KindRateLimited {
		return extendedNotice
	}
	return defaultNotice
}

// markerFailure classifies the message of an in-band error marker
func markerFailure(message string) *Failure {
	lower := strings.ToLower(message)
	kind := KindMidStream
	switch {
	case strings.Contains(lower, "rate limit"):
		kind = KindRateLimited
	case strings.Contains(lower, "quota"):
		kind = KindQuota
	}
	return &Failure{Kind: kind, Message: message}
}

// statusFailure classifies an error response returned before streaming
func statusFailure(status int, message, details, helpURL string) *Failure {
	lower := strings.ToLower(message)
	f := &Failure{Message: message, Details: details, HelpURL: helpURL, Status: status}

	switch {
	case status == http.StatusBadRequest:
		f.Kind = KindValidation
	case status == http.StatusUnauthorized && message == "Unauthorized":
		f.Kind = KindAuthorization
	case status == http.StatusUnauthorized:
		f.Kind = KindCredentials
	case status == http.StatusTooManyRequests && strings.Contains(lower, "quota"):
		f.Kind = KindQuota
	case status == http.StatusTooManyRequests:
		f.Kind = KindRateLimited
	case strings.Contains(lower, "not configured") || strings.Contains(lower, "missing"):
		f.Kind = KindConfiguration
	default:
		f.Kind = KindBackend
	}

	if f.Message == "" {
		f.Message = http.StatusText(status)
	}
	return f
}

// Content is the text generated so far for one submission. It only changes
// by applying events in arrival order and is frozen once the stream ends.
type Content struct {
	Text        string
	IsStreaming bool
	IsComplete  bool
	Err         *Failure
}

// Apply applies one event and reports whether the stream has ended.
// Events arriving after the end are ignored.
func (c *Content) Apply(e eventstream.Event) bool {
	if !c.IsStreaming {
		return true
	}

	switch e.Kind {
	case eventstream.KindContent:
		c.Text += e.Text
		return false
	case eventstream.KindComplete:
		c.finish()
		return true
	case eventstream.KindError:
		c.fail(markerFailure(e.Message))
		return true
	default:
		return false
	}
}

func (c *Content) finish() {
	c.IsStreaming = false
	c.IsComplete = true
}

func (c *Content) fail(f *Failure) {
	c.IsStreaming = false
	c.Err = f
}

// Emitter observes a generation as it progresses
type Emitter interface {
	FragmentApplied(fragment string, c Content)
	Completed(c Content)
	Errored(c Content, f *Failure)
}

// NopEmitter ignores every notification
type NopEmitter struct{}

func (NopEmitter) FragmentApplied(string, Content) {}
func (NopEmitter) Completed(Content)               {}
func (NopEmitter) Errored(Content, *Failure)       {}

// EmitterFuncs adapts optional callbacks to an Emitter
type EmitterFuncs struct {
	OnFragment func(fragment string, c Content)
	OnComplete func(c Content)
	OnError    func(c Content, f *Failure)
}

func (e EmitterFuncs) FragmentApplied(fragment string, c Content) {
	if e.OnFragment != nil {
		e.OnFragment(fragment, c)
	}
}

func (e EmitterFuncs) Completed(c Content) {
	if e.OnComplete != nil {
		e.OnComplete(c)
	}
}

func (e EmitterFuncs) Errored(c Content, f *Failure) {
	if e.OnError != nil {
		e.OnError(c, f)
	}
}
