package command

import (
	"context"
	"fmt"

	"github.com/velmar/catalog-sync/internal/catalog/domain"
)

// SetEmbeddingCommand attaches an externally computed embedding to a
// stock row.
type SetEmbeddingCommand struct {
	ID        string
	Embedding []float32
}

// SetEmbeddingHandler handles the set embedding command
type SetEmbeddingHandler struct {
	repo domain.StockRepository
}

// NewSetEmbeddingHandler creates a new set embedding handler
func NewSetEmbeddingHandler(repo domain.StockRepository) *SetEmbeddingHandler {
	return &SetEmbeddingHandler{repo: repo}
}

// Handle executes the set embedding command
func (h *SetEmbeddingHandler) Handle(ctx context.Context, cmd SetEmbeddingCommand) error {
	if cmd.ID == "" {
		return fmt.Errorf("stock id is required")
	}
	if len(cmd.Embedding) != domain.EmbeddingDim {
		return fmt.Errorf("%w: got %d, want %d", domain.ErrDimensionMismatch, len(cmd.Embedding), domain.EmbeddingDim)
	}

	if err := h.repo.SetEmbedding(ctx, cmd.ID, cmd.Embedding); err != nil {
		return fmt.Errorf("failed to set embedding: %w", err)
	}
	return nil
}
