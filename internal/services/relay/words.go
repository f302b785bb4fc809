package relay

import (
	"context"
	"iter"
	"strings"
	"time"
)

// Words splits text on single spaces into word fragments. Every fragment but
// the first keeps its leading space so the fragments concatenate back to text.
func Words(text string) []string {
	parts := strings.Split(text, " ")
	words := make([]string, 0, len(parts))
	for i, part := range parts {
		if i > 0 {
			part = " " + part
		}
		if part != "" {
			words = append(words, part)
		}
	}
	return words
}

// paced yields the words of text one at a time, pausing delay between them
func paced(ctx context.Context, text string, delay time.Duration) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for i, word := range Words(text) {
			if i > 0 && delay > 0 {
				if timer == nil {
					timer = time.NewTimer(delay)
				} else {
					timer.Reset(delay)
				}
				select {
				case <-ctx.Done():
					yield("", ctx.Err())
					return
				case <-timer.C:
				}
			}
			if !yield(word, nil) {
				return
			}
		}
	}
}
