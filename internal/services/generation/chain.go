package generation

import (
	"context"

	"github.com/inkwell-labs/inkwell/pkg/logger"
)

// Chain is an ordered list of backend variants. Variants are tried one at a
// time; the first success wins and the last failure is reported.
type Chain struct {
	backends    []Backend
	unavailable string
}

// NewChain builds a chain from the configured backends, skipping nil ones.
// unavailable is the message reported when no backend is configured.
func NewChain(unavailable string, backends ...Backend) *Chain {
	c := &Chain{unavailable: unavailable}
	for _, b := range backends {
		if b != nil {
			c.backends = append(c.backends, b)
		}
	}
	return c
}

// Backends returns the variants in the order they are tried
func (c *Chain) Backends() []Backend {
	return c.backends
}

// Ready reports a configuration failure when the chain has no backend
func (c *Chain) Ready() error {
	if len(c.backends) == 0 {
		return Unconfigured(c.unavailable)
	}
	return nil
}

// Generate returns the first successful result of the chain
func (c *Chain) Generate(ctx context.Context, p Prompt) (Result, error) {
	log := logger.For(logger.GENERATION)

	if err := c.Ready(); err != nil {
		return Result{}, err
	}

	var last *Error
	for i, b := range c.backends {
		res, err := b.Generate(ctx, p)
		if err == nil {
			res.Backend = b.Name()
			return res, nil
		}

		last = Classify(Provider{Label: b.Name()}, err)
		log.Warn().
			Err(err).
			Str("backend", b.Name()).
			Str("kind", string(last.Kind)).
			Int("variant", i+1).
			Int("variants", len(c.backends)).
			Msg("Generation backend failed")

		if ctx.Err() != nil {
			return Result{}, Classify(Provider{}, ctx.Err())
		}
	}

	return Result{}, last
}
