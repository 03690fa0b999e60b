package forecast

import (
	"github.com/yourusername/bidcast/internal/models"
)

// BuildProfiles groups status-filtered records by category and computes the
// arithmetic mean amount and the won fraction for each group. Categories
// absent from the records produce no entry; empty input yields an empty map.
func BuildProfiles(records []*models.BidRecord) map[models.ProjectCategory]models.WinProfile {
	type accumulator struct {
		total float64
		won   int
		count int
	}

	groups := make(map[models.ProjectCategory]*accumulator)
	for _, record := range records {
		if !record.Status.IsValid() {
			continue
		}
		acc, ok := groups[record.Category]
		if !ok {
			acc = &accumulator{}
			groups[record.Category] = acc
		}
		acc.total += record.Amount
		acc.count++
		if record.IsWon() {
			acc.won++
		}
	}

	profiles := make(map[models.ProjectCategory]models.WinProfile, len(groups))
	for category, acc := range groups {
		profiles[category] = models.WinProfile{
			Category:    category,
			AvgAmount:   acc.total / float64(acc.count),
			WinRate:     float64(acc.won) / float64(acc.count),
			RecordCount: acc.count,
		}
	}

	return profiles
}
