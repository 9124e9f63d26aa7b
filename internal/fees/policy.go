// Package fees implements the late-fee policy and the fee resolver.
//
// The policy is a pure function of whole days overdue; the resolver locates
// the relevant loan for a patron/book pair and applies the policy against the
// correct reference time (return date for closed loans, now for active ones).
package fees

import (
	"math"
	"time"
)

// Tiered daily rates: the first week overdue is cheap, after that the daily
// rate doubles, and the total never exceeds MaxLateFee.
const (
	firstTierDays = 7
	firstTierRate = 0.50
	laterTierRate = 1.00

	// MaxLateFee caps any single loan's fee and bounds refund amounts.
	MaxLateFee = 15.00
)

// LateFee maps whole days overdue to a fee amount in dollars.
func LateFee(daysOverdue int) float64 {
	if daysOverdue <= 0 {
		return 0.00
	}
	firstWeek := min(daysOverdue, firstTierDays)
	rest := max(daysOverdue-firstTierDays, 0)
	fee := firstTierRate*float64(firstWeek) + laterTierRate*float64(rest)
	return math.Min(fee, MaxLateFee)
}

// DaysOverdue returns whole days elapsed between due and ref, floored at 0.
func DaysOverdue(due, ref time.Time) int {
	if !ref.After(due) {
		return 0
	}
	return int(ref.Sub(due) / (24 * time.Hour))
}

// RoundCents rounds a dollar amount to two decimal places.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
