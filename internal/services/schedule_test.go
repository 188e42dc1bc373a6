package services_test

import (
	"testing"
	"time"

	"github.com/liviin/homecare-api/internal/models"
	"github.com/liviin/homecare-api/internal/services"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestComputeDueStateFromStartDate verifies the due date anchors on the
// start date when no maintenance has happened yet.
func TestComputeDueStateFromStartDate(t *testing.T) {
	reminder := &models.Reminder{
		StartDate:         date(2024, time.January, 1),
		SelectedFrequency: 30,
	}

	state := services.ComputeDueState(reminder, date(2024, time.February, 5))

	wantDue := date(2024, time.January, 31)
	if !state.NextDue.Equal(wantDue) {
		t.Errorf("Expected next due %v, got %v", wantDue, state.NextDue)
	}
	if !state.IsOverdue {
		t.Error("Expected reminder to be overdue")
	}
	if state.DaysRemaining != -5 {
		t.Errorf("Expected -5 days remaining, got %d", state.DaysRemaining)
	}
}

// TestComputeDueStateFromLastMaintenance verifies a recorded service date
// replaces the start date as the anchor.
func TestComputeDueStateFromLastMaintenance(t *testing.T) {
	last := date(2024, time.March, 1)
	reminder := &models.Reminder{
		StartDate:         date(2024, time.January, 1),
		LastMaintenance:   &last,
		SelectedFrequency: 30,
	}

	state := services.ComputeDueState(reminder, date(2024, time.March, 15))

	wantDue := date(2024, time.March, 31)
	if !state.NextDue.Equal(wantDue) {
		t.Errorf("Expected next due %v, got %v", wantDue, state.NextDue)
	}
	if state.IsOverdue {
		t.Error("Expected reminder not to be overdue")
	}
	if state.DaysRemaining != 16 {
		t.Errorf("Expected 16 days remaining, got %d", state.DaysRemaining)
	}
}

// TestComputeDueStateAnchorEquivalence verifies that a reminder whose
// lastMaintenance equals another's startDate produces the same schedule.
func TestComputeDueStateAnchorEquivalence(t *testing.T) {
	anchor := date(2024, time.June, 10)
	asOf := date(2024, time.June, 20)

	byStart := &models.Reminder{StartDate: anchor, SelectedFrequency: 14}
	byService := &models.Reminder{
		StartDate:         date(2024, time.January, 1),
		LastMaintenance:   &anchor,
		SelectedFrequency: 14,
	}

	a := services.ComputeDueState(byStart, asOf)
	b := services.ComputeDueState(byService, asOf)

	if !a.NextDue.Equal(b.NextDue) || a.IsOverdue != b.IsOverdue || a.DaysRemaining != b.DaysRemaining {
		t.Errorf("Expected identical due state, got %+v and %+v", a, b)
	}
}

// TestComputeDueStateDeterministic verifies repeated evaluation at the same
// instant yields the same result.
func TestComputeDueStateDeterministic(t *testing.T) {
	reminder := &models.Reminder{
		StartDate:         date(2024, time.May, 1),
		SelectedFrequency: 7,
	}
	asOf := date(2024, time.May, 4)

	first := services.ComputeDueState(reminder, asOf)
	second := services.ComputeDueState(reminder, asOf)

	if first != second {
		t.Errorf("Expected deterministic due state, got %+v then %+v", first, second)
	}
}

// TestComputeDueStateSameDayNotOverdue verifies a reminder due exactly at
// asOf is not yet overdue and has zero whole days remaining.
func TestComputeDueStateSameDayNotOverdue(t *testing.T) {
	reminder := &models.Reminder{
		StartDate:         date(2024, time.April, 1),
		SelectedFrequency: 10,
	}

	state := services.ComputeDueState(reminder, date(2024, time.April, 11))

	if state.IsOverdue {
		t.Error("Expected reminder due exactly now not to be overdue")
	}
	if state.DaysRemaining != 0 {
		t.Errorf("Expected 0 days remaining, got %d", state.DaysRemaining)
	}
}

// TestComputeDueStatePartialDayTruncates verifies fractional days count as
// zero in either direction.
func TestComputeDueStatePartialDayTruncates(t *testing.T) {
	reminder := &models.Reminder{
		StartDate:         date(2024, time.April, 1),
		SelectedFrequency: 10,
	}

	// 12 hours before the due instant.
	asOf := date(2024, time.April, 10).Add(12 * time.Hour)
	state := services.ComputeDueState(reminder, asOf)
	if state.DaysRemaining != 0 {
		t.Errorf("Expected 0 days remaining half a day early, got %d", state.DaysRemaining)
	}
	if state.IsOverdue {
		t.Error("Expected not overdue half a day early")
	}

	// 12 hours after the due instant.
	asOf = date(2024, time.April, 11).Add(12 * time.Hour)
	state = services.ComputeDueState(reminder, asOf)
	if state.DaysRemaining != 0 {
		t.Errorf("Expected 0 days remaining half a day late, got %d", state.DaysRemaining)
	}
	if !state.IsOverdue {
		t.Error("Expected overdue half a day late")
	}
}
