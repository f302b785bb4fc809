package generation

import (
	"context"
	"iter"
)

// Backend produces a complete text for a prompt
type Backend interface {
	Name() string
	Generate(ctx context.Context, p Prompt) (Result, error)
}

// Incremental is implemented by backends that can deliver text as it is produced.
// The returned sequence is finite and can be ranged over once; an error ends it.
type Incremental interface {
	Backend
	GenerateIncremental(ctx context.Context, p Prompt) iter.Seq2[string, error]
}
