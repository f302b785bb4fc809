package relay

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/inkwell-labs/inkwell/internal/metrics"
	"github.com/inkwell-labs/inkwell/internal/services/generation"
	"github.com/inkwell-labs/inkwell/pkg/eventstream"
	"github.com/inkwell-labs/inkwell/pkg/logger"
)

const (
	modeNative    = "native"
	modeSimulated = "simulated"
)

// Producer relays a generation onto an event channel. Backends that deliver
// increments are relayed as they come; complete texts are paced out word by word.
type Producer struct {
	chain *generation.Chain
	delay time.Duration
}

func NewProducer(chain *generation.Chain, wordDelay time.Duration) *Producer {
	return &Producer{chain: chain, delay: wordDelay}
}

// Chain returns the backend variants this producer draws from
func (p *Producer) Chain() *generation.Chain {
	return p.chain
}

// Generate returns a complete result for the non-streaming path
func (p *Producer) Generate(ctx context.Context, prompt generation.Prompt) (generation.Result, error) {
	res, err := p.chain.Generate(ctx, prompt)
	if err != nil {
		recordFailure("chain", err)
	}
	return res, err
}

// Stream relays prompt onto w and writes exactly one terminal event. A non-nil
// error means nothing was written and the caller still owns the response: the
// chain was not configured, or every variant failed before its first fragment.
func (p *Producer) Stream(ctx context.Context, w EventWriter, prompt generation.Prompt) error {
	log := logger.For(logger.RELAY)

	if err := p.chain.Ready(); err != nil {
		return err
	}

	var last error
	for _, backend := range p.chain.Backends() {
		seq, mode, err := p.source(ctx, backend, prompt)
		if err != nil {
			last = err
			recordFailure(backend.Name(), err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		sent, genErr, writeErr := p.relay(w, seq, mode)
		switch {
		case writeErr != nil:
			log.Warn().Err(writeErr).Str("backend", backend.Name()).Int("fragments", sent).Msg("Consumer went away mid-stream")
			metrics.StreamsTotal.WithLabelValues("client_gone").Inc()
			return nil

		case genErr == nil:
			if err := w.Send(eventstream.Complete()); err != nil {
				log.Warn().Err(err).Msg("Failed to write completion marker")
				metrics.StreamsTotal.WithLabelValues("client_gone").Inc()
				return nil
			}
			log.Info().Str("backend", backend.Name()).Str("mode", mode).Int("fragments", sent).Msg("Stream complete")
			metrics.StreamsTotal.WithLabelValues("complete").Inc()
			return nil

		case sent == 0 && ctx.Err() != nil:
			// the consumer left before anything was written
			log.Info().Str("backend", backend.Name()).Msg("Stream cancelled before first fragment")
			metrics.StreamsTotal.WithLabelValues("client_gone").Inc()
			return generation.Classify(generation.Provider{}, ctx.Err())

		case sent == 0:
			// nothing on the wire yet, the next variant can still take over
			last = genErr
			recordFailure(backend.Name(), genErr)
			continue

		default:
			classified := generation.Classify(generation.Provider{Label: backend.Name()}, genErr)
			recordFailure(backend.Name(), classified)
			log.Error().Err(genErr).Str("backend", backend.Name()).Str("kind", string(classified.Kind)).Int("fragments", sent).Msg("Generation failed mid-stream")
			if err := w.Send(eventstream.Failure(classified.Message)); err != nil {
				log.Warn().Err(err).Msg("Failed to write error marker")
				metrics.StreamsTotal.WithLabelValues("client_gone").Inc()
				return nil
			}
			metrics.StreamsTotal.WithLabelValues("error").Inc()
			return nil
		}
	}

	metrics.StreamsTotal.WithLabelValues("rejected").Inc()
	if last == nil {
		last = ctx.Err()
	}
	return generation.Classify(generation.Provider{}, last)
}

// source opens the increment sequence of one backend variant
func (p *Producer) source(ctx context.Context, b generation.Backend, prompt generation.Prompt) (iter.Seq2[string, error], string, error) {
	if inc, ok := b.(generation.Incremental); ok {
		return inc.GenerateIncremental(ctx, prompt), modeNative, nil
	}

	res, err := b.Generate(ctx, prompt)
	if err != nil {
		return nil, "", err
	}
	return paced(ctx, res.Text, p.delay), modeSimulated, nil
}

// relay writes every increment of seq as a content fragment, in order
func (p *Producer) relay(w EventWriter, seq iter.Seq2[string, error], mode string) (sent int, genErr error, writeErr error) {
	for text, err := range seq {
		if err != nil {
			return sent, err, nil
		}
		if text == "" {
			continue
		}
		if err := w.Send(eventstream.Content(text)); err != nil {
			return sent, nil, err
		}
		sent++
		metrics.FragmentsTotal.WithLabelValues(mode).Inc()
	}
	return sent, nil, nil
}

func recordFailure(backend string, err error) {
	var classified *generation.Error
	if errors.As(err, &classified) {
		metrics.GenerationErrors.WithLabelValues(backend, string(classified.Kind)).Inc()
		return
	}
	metrics.GenerationErrors.WithLabelValues(backend, string(generation.KindBackend)).Inc()
}
