package appointment

import (
	"sort"
	"time"

	"clinic-portal-server/internal/models"
)

// Classification partitions an appointment set into the three display
// buckets. Every input record lands in exactly one bucket; Warnings carry
// non-fatal data-quality findings made along the way.
type Classification struct {
	Upcoming  []models.Appointment `json:"upcoming"`
	Past      []models.Appointment `json:"past"`
	Cancelled []models.Appointment `json:"cancelled"`
	Warnings  []DataQualityWarning `json:"warnings,omitempty"`
}

// Classify buckets appointments relative to now.
//
// Cancelled status wins regardless of date. Completed appointments, and any
// appointment whose date has already elapsed, go to past; the status field is
// not rewritten, only the display bucket changes. Everything else is
// upcoming. A malformed date never fails classification: the record defaults
// into upcoming and a warning is recorded.
func Classify(appts []models.Appointment, now time.Time) Classification {
	today := startOfDay(now)

	var c Classification
	for _, app := range appts {
		if app.Status == models.StatusCancelled {
			c.Cancelled = append(c.Cancelled, app)
			continue
		}

		elapsed := false
		if day, err := ParseDate(app.Date); err != nil {
			c.Warnings = append(c.Warnings, DataQualityWarning{
				AppointmentID: app.ID,
				Field:         "date",
				Value:         app.Date,
			})
		} else {
			elapsed = day.Before(today)
		}

		if app.Status == models.StatusCompleted || elapsed {
			c.Past = append(c.Past, app)
		} else {
			c.Upcoming = append(c.Upcoming, app)
		}
	}

	// Nearest first for upcoming, most recent first for the history buckets.
	sortByScheduleAsc(c.Upcoming)
	sortByScheduleDesc(c.Past)
	sortByScheduleDesc(c.Cancelled)
	return c
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// scheduleKey orders appointments chronologically. Date and time use fixed
// zero-padded layouts, so lexicographic comparison matches time order.
func scheduleKey(app models.Appointment) string {
	return app.Date + " " + app.Time
}

func sortByScheduleAsc(appts []models.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return scheduleKey(appts[i]) < scheduleKey(appts[j])
	})
}

func sortByScheduleDesc(appts []models.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return scheduleKey(appts[i]) > scheduleKey(appts[j])
	})
}
