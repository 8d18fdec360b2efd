package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-portal-server/internal/models"
)

func appt(id, date, timeOfDay string, status models.AppointmentStatus) models.Appointment {
	app := models.Appointment{
		Date:   date,
		Time:   timeOfDay,
		Status: status,
	}
	app.ID = id
	return app
}

func ids(appts []models.Appointment) []string {
	out := make([]string, len(appts))
	for i, a := range appts {
		out[i] = a.ID
	}
	return out
}

func TestClassifyBuckets(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 30, 0, 0, time.Local)

	input := []models.Appointment{
		appt("upcoming-today", "2025-06-01", "09:00", models.StatusConfirmed),
		appt("upcoming-pending", "2025-06-10", "10:00", models.StatusPendingApproval),
		appt("past-elapsed", "2025-05-20", "11:00", models.StatusConfirmed),
		appt("past-completed", "2025-06-15", "08:00", models.StatusCompleted),
		appt("cancelled-future", "2025-07-01", "09:00", models.StatusCancelled),
		appt("past-rejected", "2025-05-01", "09:00", models.StatusRejected),
	}

	c := Classify(input, now)

	// An appointment dated today has not elapsed yet, whatever the hour.
	assert.ElementsMatch(t, []string{"upcoming-today", "upcoming-pending"}, ids(c.Upcoming))
	assert.ElementsMatch(t, []string{"past-elapsed", "past-completed", "past-rejected"}, ids(c.Past))
	assert.ElementsMatch(t, []string{"cancelled-future"}, ids(c.Cancelled))
	assert.Empty(t, c.Warnings)
}

func TestClassifyBucketDisjointness(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	input := []models.Appointment{
		appt("a", "2025-06-02", "09:00", models.StatusConfirmed),
		appt("b", "2025-05-30", "09:00", models.StatusConfirmed),
		appt("c", "2025-06-05", "09:00", models.StatusCancelled),
		appt("d", "not-a-date", "09:00", models.StatusPendingApproval),
	}

	c := Classify(input, now)

	seen := map[string]int{}
	for _, a := range c.Upcoming {
		seen[a.ID]++
	}
	for _, a := range c.Past {
		seen[a.ID]++
	}
	for _, a := range c.Cancelled {
		seen[a.ID]++
	}

	require.Len(t, seen, len(input))
	for id, count := range seen {
		assert.Equalf(t, 1, count, "appointment %s bucketed %d times", id, count)
	}
}

func TestClassifyElapsedConfirmedGoesToPast(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local)
	input := []models.Appointment{
		appt("yesterday", "2025-05-31", "09:00", models.StatusConfirmed),
	}

	c := Classify(input, now)

	require.Len(t, c.Past, 1)
	assert.Empty(t, c.Upcoming)
	// The display bucket changes, the status field does not.
	assert.Equal(t, models.StatusConfirmed, c.Past[0].Status)
}

func TestClassifyLongElapsedConfirmed(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	c := Classify([]models.Appointment{
		appt("old", "2025-01-01", "09:00", models.StatusConfirmed),
	}, now)

	require.Len(t, c.Past, 1)
	assert.Equal(t, "old", c.Past[0].ID)
}

func TestClassifyUpcomingSortedNearestFirst(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	input := []models.Appointment{
		appt("day3", "2025-06-04", "09:00", models.StatusConfirmed),
		appt("day1", "2025-06-02", "09:00", models.StatusConfirmed),
		appt("day2", "2025-06-03", "09:00", models.StatusConfirmed),
	}

	c := Classify(input, now)

	assert.Equal(t, []string{"day1", "day2", "day3"}, ids(c.Upcoming))
}

func TestClassifySortBreaksTiesByTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	input := []models.Appointment{
		appt("late", "2025-06-02", "14:00", models.StatusConfirmed),
		appt("early", "2025-06-02", "08:30", models.StatusConfirmed),
	}

	c := Classify(input, now)
	assert.Equal(t, []string{"early", "late"}, ids(c.Upcoming))
}

func TestClassifyHistoryBucketsSortedMostRecentFirst(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	input := []models.Appointment{
		appt("oldest", "2025-05-01", "09:00", models.StatusCompleted),
		appt("newest", "2025-06-05", "09:00", models.StatusCompleted),
		appt("middle", "2025-05-20", "09:00", models.StatusCompleted),
		appt("cxl-old", "2025-04-01", "09:00", models.StatusCancelled),
		appt("cxl-new", "2025-06-01", "09:00", models.StatusCancelled),
	}

	c := Classify(input, now)

	assert.Equal(t, []string{"newest", "middle", "oldest"}, ids(c.Past))
	assert.Equal(t, []string{"cxl-new", "cxl-old"}, ids(c.Cancelled))
}

func TestClassifyCancelledWinsOverDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	input := []models.Appointment{
		appt("cancelled-past", "2025-01-01", "09:00", models.StatusCancelled),
		appt("cancelled-future", "2025-12-01", "09:00", models.StatusCancelled),
	}

	c := Classify(input, now)
	assert.Len(t, c.Cancelled, 2)
	assert.Empty(t, c.Past)
	assert.Empty(t, c.Upcoming)
}

func TestClassifyMalformedDateWarnsAndDefaultsToUpcoming(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	input := []models.Appointment{
		appt("bad-date", "Kamis, 25 Juli 2025", "10:00", models.StatusConfirmed),
	}

	c := Classify(input, now)

	require.Len(t, c.Upcoming, 1)
	assert.Equal(t, "bad-date", c.Upcoming[0].ID)

	require.Len(t, c.Warnings, 1)
	assert.Equal(t, "bad-date", c.Warnings[0].AppointmentID)
	assert.Equal(t, "date", c.Warnings[0].Field)
	assert.Equal(t, "Kamis, 25 Juli 2025", c.Warnings[0].Value)
}

func TestClassifyMalformedDateCompletedStillPast(t *testing.T) {
	// Completed status sends the record to past even when the date cannot
	// be parsed; the warning is still reported.
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	c := Classify([]models.Appointment{
		appt("bad-completed", "???", "10:00", models.StatusCompleted),
	}, now)

	require.Len(t, c.Past, 1)
	assert.Len(t, c.Warnings, 1)
}

func TestClassifyEmptyInput(t *testing.T) {
	c := Classify(nil, time.Now())
	assert.Empty(t, c.Upcoming)
	assert.Empty(t, c.Past)
	assert.Empty(t, c.Cancelled)
	assert.Empty(t, c.Warnings)
}
