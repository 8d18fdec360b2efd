package appointment

import (
	"strings"
	"time"

	"clinic-portal-server/internal/models"
)

// CancelDetails carries the metadata recorded with a cancellation.
type CancelDetails struct {
	By     models.CancelActor
	Reason string
}

// Transition validates the requested status change against the lifecycle
// table and, on success, returns an updated copy of the appointment. The
// input is never mutated, so the caller can diff before committing.
//
// A cancellation records who cancelled and an optional reason. When the
// acting party is a patient, CancelledBy is always recorded as patient no
// matter what the caller supplied; that field is system-derived, not
// client-supplied. The other transitions clear any stale cancellation
// metadata.
func Transition(app models.Appointment, to models.AppointmentStatus, actor Actor, details CancelDetails, now time.Time) (models.Appointment, error) {
	if !CanTransition(app.Status, to, actor) {
		return models.Appointment{}, &IllegalTransitionError{From: app.Status, To: to, Actor: actor}
	}

	updated := app
	updated.Status = to
	updated.UpdatedAt = now

	if to == models.StatusCancelled {
		by := details.By
		if actor == ActorPatient {
			by = models.CancelledByPatient
		}
		if by == "" {
			by = models.CancelledByStaff
		}
		updated.CancelledBy = by
		updated.CancellationReason = details.Reason
	} else {
		updated.CancelledBy = ""
		updated.CancellationReason = ""
	}

	return updated, nil
}

// Draft holds the patient-supplied fields of a new or rescheduled
// appointment.
type Draft struct {
	Date     string
	Time     string
	Reason   string
	Location string
	Notes    string
}

// validate checks the draft fields in a fixed order and reports the first
// one that is empty or unparseable.
func (d Draft) validate() error {
	if strings.TrimSpace(d.Date) == "" {
		return &MissingFieldError{Field: "date"}
	}
	if _, err := ParseDate(d.Date); err != nil {
		return &MissingFieldError{Field: "date"}
	}
	if strings.TrimSpace(d.Time) == "" {
		return &MissingFieldError{Field: "time"}
	}
	if _, err := ParseTime(d.Time); err != nil {
		return &MissingFieldError{Field: "time"}
	}
	if strings.TrimSpace(d.Reason) == "" {
		return &MissingFieldError{Field: "reason"}
	}
	if strings.TrimSpace(d.Location) == "" {
		return &MissingFieldError{Field: "location"}
	}
	return nil
}

// New builds an appointment from a draft. Every new appointment starts in
// pending approval regardless of caller input.
func New(patientID, doctorID string, d Draft, now time.Time) (models.Appointment, error) {
	if err := d.validate(); err != nil {
		return models.Appointment{}, err
	}
	app := models.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      d.Date,
		Time:      d.Time,
		Reason:    d.Reason,
		Location:  d.Location,
		Notes:     d.Notes,
		Status:    models.StatusPendingApproval,
	}
	app.CreatedAt = now
	app.UpdatedAt = now
	return app, nil
}

// ApplyEdit performs a reschedule-as-edit: descriptive and schedule fields
// may be corrected while the appointment is still awaiting approval. The
// status does not change; editing after the appointment leaves pending
// approval is an illegal transition.
func ApplyEdit(app models.Appointment, d Draft, actor Actor, now time.Time) (models.Appointment, error) {
	if app.Status != models.StatusPendingApproval {
		return models.Appointment{}, &IllegalTransitionError{From: app.Status, To: app.Status, Actor: actor}
	}
	if err := d.validate(); err != nil {
		return models.Appointment{}, err
	}

	updated := app
	updated.Date = d.Date
	updated.Time = d.Time
	updated.Reason = d.Reason
	updated.Location = d.Location
	updated.Notes = d.Notes
	updated.UpdatedAt = now
	return updated, nil
}
