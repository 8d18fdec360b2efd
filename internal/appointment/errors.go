package appointment

import (
	"errors"
	"fmt"

	"clinic-portal-server/internal/models"
)

// Sentinel errors returned by the repository facade.
var (
	ErrNotFound  = errors.New("appointment not found")
	ErrForbidden = errors.New("actor is not a party to this appointment")
)

// IllegalTransitionError reports a status transition that is not in the
// lifecycle table, or one requested by an actor not allowed on that edge.
type IllegalTransitionError struct {
	From  models.AppointmentStatus
	To    models.AppointmentStatus
	Actor Actor
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %q to %q by %s", e.From, e.To, e.Actor)
}

// MissingFieldError reports a required field that is empty or unparseable
// during create or reschedule-edit. It names the first offending field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing or invalid", e.Field)
}

// PersistenceError wraps a storage failure. The in-memory collection is left
// unchanged when it is returned; the caller decides on messaging and retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("appointment store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// DataQualityWarning flags a record that could not be classified cleanly
// (typically a malformed date). It is diagnostic, never fatal: the record is
// still bucketed and the warning reported alongside the result.
type DataQualityWarning struct {
	AppointmentID string `json:"appointmentId"`
	Field         string `json:"field"`
	Value         string `json:"value"`
}

func (w DataQualityWarning) String() string {
	return fmt.Sprintf("appointment %s has malformed %s %q", w.AppointmentID, w.Field, w.Value)
}
