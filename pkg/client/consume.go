package client

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/inkwell-labs/inkwell/pkg/eventstream"
	"github.com/inkwell-labs/inkwell/pkg/logger"
	"github.com/rs/zerolog"
)

const readSize = 4096

// Consume reads a frame stream until its terminal event or its end and
// returns the resulting content. body is closed on every return; cancelling
// ctx closes it immediately so a blocked read returns.
//
// The error is the surfaced *Failure when the stream ended in one, or the
// context error after cancellation. A stream that ends without a terminal
// event is a success.
func Consume(ctx context.Context, body io.ReadCloser, emitter Emitter) (Content, error) {
	if emitter == nil {
		emitter = NopEmitter{}
	}
	log := logger.For(logger.CLIENT)

	defer body.Close()
	stop := context.AfterFunc(ctx, func() {
		_ = body.Close()
	})
	defer stop()

	c := Content{IsStreaming: true}
	var rb Reassembler
	buf := make([]byte, readSize)

	for {
		if err := ctx.Err(); err != nil {
			c.IsStreaming = false
			return c, err
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			for _, frame := range rb.Push(buf[:n]) {
				if applyFrame(&c, frame, emitter, log) {
					return c, failureOf(c)
				}
			}
		}

		if readErr == nil {
			continue
		}

		if err := ctx.Err(); err != nil {
			c.IsStreaming = false
			return c, err
		}

		if !errors.Is(readErr, io.EOF) {
			f := &Failure{Kind: KindTransport, Message: "Connection lost while streaming", Details: readErr.Error()}
			log.Warn().Err(readErr).Int("received", len(c.Text)).Msg("Stream read failed")
			c.fail(f)
			emitter.Errored(c, f)
			return c, f
		}

		if rest := rb.Flush(); len(bytes.TrimSpace(rest)) > 0 {
			if applyFrame(&c, rest, emitter, log) {
				return c, failureOf(c)
			}
		}

		// closed without a terminal event
		c.finish()
		emitter.Completed(c)
		return c, nil
	}
}

// applyFrame decodes and applies one frame, notifying emitter. Malformed
// frames are logged and skipped. It reports whether the stream has ended.
func applyFrame(c *Content, frame []byte, emitter Emitter, log zerolog.Logger) bool {
	e, err := eventstream.Decode(frame)
	if err != nil {
		log.Warn().Err(err).Int("frame_bytes", len(frame)).Msg("Skipping malformed frame")
		return false
	}

	if e.Kind == eventstream.KindContent && e.Text == "" {
		return false
	}

	done := c.Apply(e)
	switch {
	case !done:
		emitter.FragmentApplied(e.Text, *c)
	case c.Err != nil:
		emitter.Errored(*c, c.Err)
	default:
		emitter.Completed(*c)
	}
	return done
}

func failureOf(c Content) error {
	if c.Err != nil {
		return c.Err
	}
	return nil
}
