package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	start := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		rate     string
		duration time.Duration
		quad     bool
		want     string
	}{
		{name: "ninety minutes singles", rate: "15.50", duration: 90 * time.Minute, want: "1395.00"},
		{name: "ninety minutes doubles", rate: "15.50", duration: 90 * time.Minute, quad: true, want: "2092.50"},
		{name: "partial minute truncates", rate: "15.50", duration: 90*time.Minute + 30*time.Second, want: "1395.00"},
		{name: "seconds only count as zero minutes", rate: "15.50", duration: 59 * time.Second, want: "0.00"},
		{name: "half cent rounds up", rate: "3.335", duration: 3 * time.Minute, want: "10.01"},
		{name: "below half cent rounds down", rate: "3.3349", duration: 1 * time.Minute, want: "3.33"},
		{name: "one hour whole rate", rate: "12.50", duration: time.Hour, want: "750.00"},
		{name: "doubles rounding applies after multiplier", rate: "0.01", duration: 1 * time.Minute, quad: true, want: "0.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := decimal.RequireFromString(tt.rate)
			got := Price(rate, "CZK", start, start.Add(tt.duration), tt.quad)
			require.Equal(t, "CZK", got.Currency)
			require.Equal(t, tt.want, got.Amount.StringFixed(2))
		})
	}
}

func TestPriceDeterministic(t *testing.T) {
	start := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	rate := decimal.RequireFromString("15.50")

	first := Price(rate, "CZK", start, start.Add(90*time.Minute), false)
	for i := 0; i < 100; i++ {
		again := Price(rate, "CZK", start, start.Add(90*time.Minute), false)
		require.True(t, first.Equal(again))
	}
}
