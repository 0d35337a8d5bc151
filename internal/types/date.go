package types

import (
	"fmt"
	"time"
)

// FiscalYear returns the campaign-year label a payment date falls in, e.g.
// "2025-2026". The campaign pivots on pivotMonth: dates from the pivot month
// onward belong to the campaign opening that calendar year.
func FiscalYear(t time.Time, pivotMonth time.Month) string {
	year := t.Year()
	if t.Month() >= pivotMonth {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}
