package ingestion

import (
	"fmt"
	"math/rand/v2"

	"github.com/guttosm/tradepulse/internal/domain/models"
)

// Sample draws n distinct rows without replacement using a PCG generator
// seeded with seed. Rows are returned in draw order; the same table and seed
// always give the same sample.
func Sample(t *models.Table, n int, seed uint64) (*models.Table, error) {
	total := t.Len()
	if n < 0 || n > total {
		return nil, fmt.Errorf("%w: requested %d of %d rows", ErrSampleTooLarge, n, total)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	perm := make([]int, total)
	for i := range perm {
		perm[i] = i
	}
	// partial Fisher-Yates: only the first n slots are shuffled
	for i := 0; i < n; i++ {
		j := i + rng.IntN(total-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return t.Subset(perm[:n]), nil
}
