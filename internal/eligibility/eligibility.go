// Package eligibility computes whether a donor may give blood again.
// Donors must wait three calendar months between donations.
package eligibility

import (
	"fmt"
	"math"
	"time"
)

// CooldownMonths is the required gap between two donations.
const CooldownMonths = 3

// Result reports whether a donor can currently donate. RemainingDays is zero
// whenever CanDonate is true.
type Result struct {
	CanDonate     bool   `json:"canDonate"`
	RemainingDays int    `json:"remainingDays"`
	Message       string `json:"message"`
}

// Check computes eligibility at the instant now, given the donor's most
// recent donation date (nil when the donor has never donated). The cooldown
// threshold is a calendar-month increment, so month-end dates roll over the
// way time.AddDate normalizes them (Jan 31 + 3 months = May 1). A partial
// day left before the threshold counts as a full remaining day.
func Check(latestDonation *time.Time, now time.Time) Result {
	if latestDonation == nil {
		return Result{
			CanDonate: true,
			Message:   "You are eligible to donate blood anytime!",
		}
	}

	threshold := latestDonation.AddDate(0, CooldownMonths, 0)
	if !now.Before(threshold) {
		return Result{
			CanDonate: true,
			Message:   "You are eligible to donate blood again!",
		}
	}

	remaining := int(math.Ceil(threshold.Sub(now).Hours() / 24))
	return Result{
		CanDonate:     false,
		RemainingDays: remaining,
		Message:       fmt.Sprintf("You can donate again in approximately %d days.", remaining),
	}
}
