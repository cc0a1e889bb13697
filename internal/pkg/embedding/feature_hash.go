package embedding

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/fraudsight/fraudsight/internal/pkg/models"
)

// FeatureHashEmbedder produces deterministic embeddings by hashing the
// transaction's categorical features and bucketed amount into a fixed-length
// vector. Transactions with overlapping features land close together under
// cosine similarity, which is enough signal for neighbor-voting; a learned
// model can replace it behind the Embedder interface.
type FeatureHashEmbedder struct {
	dimension int
}

// NewFeatureHashEmbedder creates an embedder producing vectors of the given
// dimension. A non-positive dimension falls back to the model default.
func NewFeatureHashEmbedder(dimension int) *FeatureHashEmbedder {
	if dimension <= 0 {
		dimension = models.EmbeddingDimensions
	}
	return &FeatureHashEmbedder{dimension: dimension}
}

// Dimension returns the dimensionality of the output vectors
func (e *FeatureHashEmbedder) Dimension() int {
	return e.dimension
}

// Embed returns an L2-normalized feature-hash vector for the transaction
func (e *FeatureHashEmbedder) Embed(tx *models.Transaction) ([]float32, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction cannot be nil")
	}

	vec := make([]float32, e.dimension)

	features := []string{
		"user:" + tx.UserID,
		"currency:" + string(tx.Currency),
		"merchant:" + string(tx.Merchant),
		"category:" + string(tx.Category),
		fmt.Sprintf("amount:%d", amountBucket(tx.Amount)),
	}

	for _, feature := range features {
		// Each feature activates a handful of dimensions so that two
		// transactions sharing a feature overlap on all of them.
		for i := 0; i < 4; i++ {
			h := fnv.New64a()
			fmt.Fprintf(h, "%s#%d", feature, i)
			sum := h.Sum64()
			idx := int(sum % uint64(e.dimension))
			sign := float32(1)
			if sum&(1<<63) != 0 {
				sign = -1
			}
			vec[idx] += sign
		}
	}

	normalize(vec)
	return vec, nil
}

// amountBucket maps an amount onto a logarithmic bucket so that amounts of
// the same order of magnitude hash together.
func amountBucket(amount float64) int {
	if amount <= 0 {
		return 0
	}
	return int(math.Floor(math.Log2(amount + 1)))
}

func normalize(vec []float32) {
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq == 0 {
		return
	}
	norm := float32(math.Sqrt(sumSq))
	for i := range vec {
		vec[i] /= norm
	}
}
