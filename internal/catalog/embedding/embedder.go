// Package embedding defines the contract with the external
// embedding-generation service. The call itself lives outside this
// system; the store only persists whatever vector, or nothing, it is
// handed.
package embedding

import "context"

// Embedder turns a piece of text into a fixed-length float vector.
// Implementations must return vectors of domain.EmbeddingDim length;
// the store rejects anything else.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Func adapts a plain function to the Embedder interface.
type Func func(ctx context.Context, text string) ([]float32, error)

func (f Func) Embed(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}
