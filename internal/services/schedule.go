package services

import (
	"time"

	"github.com/liviin/homecare-api/internal/models"
)

// DueState is the derived schedule of a reminder. It is computed on every
// read and never stored, so it is always consistent with the latest edit.
type DueState struct {
	NextDue   time.Time `json:"nextDue"`
	IsOverdue bool      `json:"isOverdue"`
	// DaysRemaining is the count of whole days from asOf until NextDue,
	// negative once overdue.
	DaysRemaining int `json:"daysRemaining"`
}

// ComputeDueState derives the due state of a reminder at asOf. Pure
// function: the anchor is lastMaintenance when set, startDate otherwise,
// and the next due date is the anchor plus selectedFrequency calendar days.
func ComputeDueState(r *models.Reminder, asOf time.Time) DueState {
	nextDue := r.Anchor().AddDate(0, 0, r.SelectedFrequency)
	return DueState{
		NextDue:       nextDue,
		IsOverdue:     nextDue.Before(asOf),
		DaysRemaining: wholeDays(asOf, nextDue),
	}
}

// wholeDays truncates the interval from..to toward zero.
func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
