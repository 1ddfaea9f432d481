package services

import (
	"math"
	"time"
)

// ScheduleLine is one generated monthly payment.
type ScheduleLine struct {
	DueDate time.Time
	Amount  float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BuildSchedule splits (total - downPayment) into `months` equal monthly
// payments starting one month after startDate. Each payment is rounded to
// 0.01; the final payment absorbs the rounding remainder so the schedule
// sums exactly to the financed amount.
func BuildSchedule(total, downPayment float64, months int, startDate time.Time) []ScheduleLine {
	if months < 1 {
		return nil
	}

	financed := round2(total - downPayment)
	monthly := round2(financed / float64(months))

	lines := make([]ScheduleLine, 0, months)
	for i := 1; i <= months; i++ {
		amount := monthly
		if i == months {
			amount = round2(financed - monthly*float64(months-1))
		}
		lines = append(lines, ScheduleLine{
			DueDate: startDate.AddDate(0, i, 0),
			Amount:  amount,
		})
	}
	return lines
}
