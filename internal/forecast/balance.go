package forecast

import (
	"math/rand"

	"github.com/yourusername/bidcast/internal/models"
)

// Balance draws an equal-count, globally shuffled Won/Lost sample from the
// historical records. Sampling is without replacement: min(|Won|, |Lost|)
// records are drawn from each partition, then the concatenation is shuffled
// with the same generator. Identical records and generator state always
// yield an identical output order. If either partition is empty the result
// is an empty sample, not an error.
func Balance(records []*models.BidRecord, rng *rand.Rand) models.BalancedSample {
	var won, lost []*models.BidRecord
	for _, record := range records {
		switch record.Status {
		case models.BidStatusWon:
			won = append(won, record)
		case models.BidStatusLost:
			lost = append(lost, record)
		}
	}

	n := len(won)
	if len(lost) < n {
		n = len(lost)
	}
	if n == 0 {
		return models.BalancedSample{Records: []*models.BidRecord{}}
	}

	sample := make([]*models.BidRecord, 0, 2*n)
	sample = append(sample, drawWithoutReplacement(won, n, rng)...)
	sample = append(sample, drawWithoutReplacement(lost, n, rng)...)

	rng.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})

	return models.BalancedSample{
		Records:   sample,
		WonCount:  n,
		LostCount: n,
	}
}

func drawWithoutReplacement(pool []*models.BidRecord, n int, rng *rand.Rand) []*models.BidRecord {
	indices := rng.Perm(len(pool))
	drawn := make([]*models.BidRecord, 0, n)
	for _, idx := range indices[:n] {
		drawn = append(drawn, pool[idx])
	}
	return drawn
}
