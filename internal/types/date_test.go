package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFiscalYear(t *testing.T) {
	pivot := time.October

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "after pivot month",
			date: time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC),
			want: "2025-2026",
		},
		{
			name: "pivot month itself opens the campaign",
			date: time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
			want: "2025-2026",
		},
		{
			name: "before pivot month",
			date: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
			want: "2025-2026",
		},
		{
			name: "last day before pivot",
			date: time.Date(2026, time.September, 30, 23, 59, 59, 0, time.UTC),
			want: "2025-2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FiscalYear(tt.date, pivot))
		})
	}
}
