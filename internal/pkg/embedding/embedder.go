package embedding

import "github.com/fraudsight/fraudsight/internal/pkg/models"

// Embedder maps a transaction onto a fixed-length numeric vector.
// Implementations must be deterministic for a given transaction so that
// re-scoring a replayed event produces the same verdict.
type Embedder interface {
	// Embed returns a vector embedding for the given transaction.
	Embed(tx *models.Transaction) ([]float32, error)

	// Dimension returns the dimensionality of the output vectors.
	Dimension() int
}
