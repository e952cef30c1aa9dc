// Package testdata fills the card history with sample QSOs for demos and tests.
package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jask/qslcard/internal/database/repository"
	"github.com/jask/qslcard/internal/qso"
)

var (
	sampleCalls = []string{"W1AW", "JA1ABC", "VK2XYZ", "DL1AAA", "HS1AB", "G3ABC", "K6XYZ"}
	sampleFreqs = []string{"7.074", "14.200", "21.300", "145.500", "433.500", "28.400"}
	sampleQSL   = []string{"TNX", "PSE QSL", "TNX QSO 73", "73"}
)

// Seed inserts n sample cards issued by operator. The same seed yields the same
// cards, except for IDs.
func Seed(ctx context.Context, cards *repository.CardRepo, operator string, n int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		at := base.Add(time.Duration(rng.Intn(365*24*60)) * time.Minute)
		day, month, year := qso.DateParts(at)
		c := repository.Card{
			ID:               uuid.NewString(),
			OperatorCallsign: operator,
			Callsign:         sampleCalls[rng.Intn(len(sampleCalls))],
			Day:              day,
			Month:            month,
			Year:             year,
			UTC:              qso.ZuluTime(at),
			MHz:              sampleFreqs[rng.Intn(len(sampleFreqs))],
			RST:              fmt.Sprintf("5%d", 5+rng.Intn(5)),
			Mode:             qso.Modes[rng.Intn(len(qso.Modes))],
			QSL:              sampleQSL[rng.Intn(len(sampleQSL))],
		}
		if err := cards.Insert(ctx, c); err != nil {
			return fmt.Errorf("seed card %d: %w", i, err)
		}
	}
	return nil
}
