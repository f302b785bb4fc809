package client

import (
	"context"
	"sync"
)

// Session runs one generation at a time. Submitting again cancels the
// running generation; a superseded generation no longer reaches the emitter.
type Session struct {
	client  *Client
	emitter Emitter

	mu      sync.Mutex
	current uint64
	cancel  context.CancelFunc
}

func NewSession(client *Client, emitter Emitter) *Session {
	if emitter == nil {
		emitter = NopEmitter{}
	}
	return &Session{client: client, emitter: emitter}
}

// Submit starts a generation on route, replacing the running one, and blocks
// until it ends. Set useWebSocket to stream over the WebSocket transport.
func (s *Session) Submit(ctx context.Context, route string, req Request, useWebSocket bool) (Content, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.current++
	id := s.current
	s.cancel = cancel
	s.mu.Unlock()

	emitter := &sessionEmitter{session: s, id: id}
	if useWebSocket {
		return s.client.GenerateWebSocket(ctx, route, req, emitter)
	}
	return s.client.Generate(ctx, route, req, emitter)
}

// Cancel stops the running generation, if any
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.current++
}

func (s *Session) active(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current == id
}

// sessionEmitter forwards events of one submission while it is current
type sessionEmitter struct {
	session *Session
	id      uint64
}

func (e *sessionEmitter) FragmentApplied(fragment string, c Content) {
	if e.session.active(e.id) {
		e.session.emitter.FragmentApplied(fragment, c)
	}
}

func (e *sessionEmitter) Completed(c Content) {
	if e.session.active(e.id) {
		e.session.emitter.Completed(c)
	}
}

func (e *sessionEmitter) Errored(c Content, f *Failure) {
	if e.session.active(e.id) {
		e.session.emitter.Errored(c, f)
	}
}
