package fees

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLateFee(t *testing.T) {
	cases := []struct {
		days int
		want float64
	}{
		{-5, 0.00},
		{0, 0.00},
		{1, 0.50},
		{3, 1.50},
		{7, 3.50},
		{8, 4.50},
		{10, 6.50},
		{14, 10.50},
		{18, 14.50},
		{19, 15.00}, // exactly at the cap: 3.50 + 12.00 > 15
		{30, 15.00},
		{365, 15.00},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, LateFee(tc.days), 1e-9, "days=%d", tc.days)
	}
}

func TestLateFeeNeverExceedsCap(t *testing.T) {
	for d := -10; d <= 400; d++ {
		fee := LateFee(d)
		assert.GreaterOrEqual(t, fee, 0.00)
		assert.LessOrEqual(t, fee, MaxLateFee)
	}
}

func TestDaysOverdue(t *testing.T) {
	due := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("before due date is zero", func(t *testing.T) {
		assert.Equal(t, 0, DaysOverdue(due, due.Add(-36*time.Hour)))
		assert.Equal(t, 0, DaysOverdue(due, due))
	})

	t.Run("partial days are floored", func(t *testing.T) {
		assert.Equal(t, 0, DaysOverdue(due, due.Add(23*time.Hour)))
		assert.Equal(t, 1, DaysOverdue(due, due.Add(24*time.Hour)))
		assert.Equal(t, 1, DaysOverdue(due, due.Add(47*time.Hour)))
		assert.Equal(t, 10, DaysOverdue(due, due.Add(10*24*time.Hour+time.Minute)))
	})
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 6.50, RoundCents(6.499999999))
	assert.Equal(t, 0.00, RoundCents(0.0049))
	assert.Equal(t, 15.00, RoundCents(15.0000001))
}
