package leave

import "github.com/shopspring/decimal"

// Summary is a balance snapshot used by reports and the HTTP layer.
type Summary struct {
	ID        AccountID
	Name      string
	Total     int
	Taken     int
	Remaining int
	Records   int

	// Utilization is Taken/Total rounded to 4 places; zero when Total is 0.
	Utilization decimal.Decimal
}

func newSummary(id AccountID, name string, total, taken, records int) Summary {
	utilization := decimal.Zero
	if total > 0 {
		utilization = decimal.NewFromInt(int64(taken)).
			DivRound(decimal.NewFromInt(int64(total)), 4)
	}
	return Summary{
		ID:          id,
		Name:        name,
		Total:       total,
		Taken:       taken,
		Remaining:   total - taken,
		Records:     records,
		Utilization: utilization,
	}
}
