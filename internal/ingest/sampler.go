package ingest

import (
	"fmt"
	"math/rand/v2"
	"time"

	"cdrlink/internal/domain"
)

// SampleColumns is the header written by GenerateSample, in the new format
var SampleColumns = []string{"Target Number", "Call Direction", "From or To Number", "Date", "Start", "End"}

// GenerateSample builds synthetic new-format rows over a phonebook of the given
// size. The same seed always produces the same rows.
func GenerateSample(seed uint64, phones, rows int) []domain.RawRow {
	if phones < 2 {
		phones = 2
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	book := make([]string, 0, phones)
	seen := make(map[string]struct{}, phones)
	for len(book) < phones {
		num := fmt.Sprintf("+1%d%d%d", 200+rng.IntN(800), 200+rng.IntN(800), 1000+rng.IntN(9000))
		if _, dup := seen[num]; dup {
			continue
		}
		seen[num] = struct{}{}
		book = append(book, num)
	}

	out := make([]domain.RawRow, 0, rows)
	for range rows {
		i := rng.IntN(len(book))
		j := rng.IntN(len(book) - 1)
		if j >= i {
			j++
		}
		direction := "Inbound"
		if rng.IntN(2) == 0 {
			direction = "Outbound"
		}
		start := time.Date(2024, time.Month(1+rng.IntN(12)), 1+rng.IntN(28), 8+rng.IntN(13), rng.IntN(60), 0, 0, time.UTC)
		end := start.Add(time.Duration(30+rng.IntN(1771)) * time.Second)

		out = append(out, domain.RawRow{
			"Target Number":     book[i],
			"Call Direction":    direction,
			"From or To Number": book[j],
			"Date":              start.Format("01/02/2006"),
			"Start":             start.Format("15:04:05"),
			"End":               end.Format("15:04:05"),
		})
	}
	return out
}
