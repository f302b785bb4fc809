package generation

import (
	"context"
	"fmt"
	"iter"
	"strings"
)

// Static is a deterministic backend for local runs that never calls a vendor
type Static struct{}

func (s Static) Name() string {
	return "static"
}

func (s Static) Generate(_ context.Context, p Prompt) (Result, error) {
	text := fmt.Sprintf("[%s] %s", p.Style, strings.TrimSpace(p.Text))
	words := len(strings.Fields(text))
	return Result{
		Text:  text,
		Usage: &Usage{PromptTokens: len(strings.Fields(p.Text)), CompletionTokens: words, TotalTokens: words + len(strings.Fields(p.Text))},
	}, nil
}

// StaticIncremental is Static delivering its text one word per increment
type StaticIncremental struct {
	Static
}

func (s StaticIncremental) GenerateIncremental(ctx context.Context, p Prompt) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		res, _ := s.Generate(ctx, p)
		for i, word := range strings.Split(res.Text, " ") {
			if ctx.Err() != nil {
				yield("", ctx.Err())
				return
			}
			if i > 0 {
				word = " " + word
			}
			if !yield(word, nil) {
				return
			}
		}
	}
}
