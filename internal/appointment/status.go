package appointment

import (
	"time"

	"clinic-portal-server/internal/models"
)

// Actor is the authority level a role carries over the appointment
// lifecycle. Doctors and administrators both act as staff.
type Actor string

const (
	ActorPatient Actor = "patient"
	ActorStaff   Actor = "staff"
)

// ActorForRole maps an authenticated role onto its lifecycle authority.
func ActorForRole(role models.Role) Actor {
	if role.IsStaff() {
		return ActorStaff
	}
	return ActorPatient
}

// DateLayout and TimeLayout are the wire formats for the schedule fields.
// Dates are naive local calendar dates; times are local wall-clock.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDate parses a schedule date in its canonical YYYY-MM-DD form.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseTime parses a wall-clock time in its canonical HH:MM form.
func ParseTime(value string) (time.Time, error) {
	return time.Parse(TimeLayout, value)
}

// transitions is the closed lifecycle table: for each legal (from, to) edge,
// the set of actors allowed to take it. Any pair absent from this table is an
// illegal transition, including self-transitions and anything out of a
// terminal state.
var transitions = map[models.AppointmentStatus]map[models.AppointmentStatus][]Actor{
	models.StatusPendingApproval: {
		models.StatusConfirmed: {ActorStaff},
		models.StatusRejected:  {ActorStaff},
		models.StatusCancelled: {ActorPatient, ActorStaff},
	},
	models.StatusConfirmed: {
		models.StatusCancelled: {ActorPatient, ActorStaff},
		models.StatusCompleted: {ActorStaff},
	},
}

// CanTransition reports whether the (from, to) edge exists and the actor is
// allowed to take it.
func CanTransition(from, to models.AppointmentStatus, actor Actor) bool {
	allowed, ok := transitions[from][to]
	if !ok {
		return false
	}
	for _, a := range allowed {
		if a == actor {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the closed status enumeration.
func ValidStatus(s models.AppointmentStatus) bool {
	switch s {
	case models.StatusPendingApproval, models.StatusConfirmed,
		models.StatusRejected, models.StatusCompleted, models.StatusCancelled:
		return true
	}
	return false
}
