package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-portal-server/internal/models"
)

var allStatuses = []models.AppointmentStatus{
	models.StatusPendingApproval,
	models.StatusConfirmed,
	models.StatusRejected,
	models.StatusCompleted,
	models.StatusCancelled,
}

var allTargets = []models.AppointmentStatus{
	models.StatusConfirmed,
	models.StatusRejected,
	models.StatusCompleted,
	models.StatusCancelled,
}

func sampleAppointment(status models.AppointmentStatus) models.Appointment {
	app := models.Appointment{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
		Date:      "2025-08-10",
		Time:      "09:00",
		Reason:    "Checkup",
		Location:  "Ruang 101",
		Status:    status,
	}
	app.ID = "appt-1"
	return app
}

func TestTransitionTable(t *testing.T) {
	legal := map[models.AppointmentStatus]map[models.AppointmentStatus][]Actor{
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

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	for _, from := range allStatuses {
		for _, to := range allTargets {
			for _, actor := range []Actor{ActorPatient, ActorStaff} {
				wantOK := false
				for _, a := range legal[from][to] {
					if a == actor {
						wantOK = true
					}
				}

				updated, err := Transition(sampleAppointment(from), to, actor, CancelDetails{}, now)
				if wantOK {
					require.NoErrorf(t, err, "%s -> %s by %s should be legal", from, to, actor)
					assert.Equal(t, to, updated.Status)
					assert.Equal(t, now, updated.UpdatedAt)
				} else {
					var illegal *IllegalTransitionError
					require.ErrorAsf(t, err, &illegal, "%s -> %s by %s should be illegal", from, to, actor)
					assert.Equal(t, from, illegal.From)
					assert.Equal(t, to, illegal.To)
					assert.Equal(t, actor, illegal.Actor)
				}
			}
		}
	}
}

func TestTerminalStatesAdmitNoTransitions(t *testing.T) {
	now := time.Now()
	for _, from := range allStatuses {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range allTargets {
			for _, actor := range []Actor{ActorPatient, ActorStaff} {
				_, err := Transition(sampleAppointment(from), to, actor, CancelDetails{}, now)
				var illegal *IllegalTransitionError
				assert.ErrorAs(t, err, &illegal)
			}
		}
	}
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	app := sampleAppointment(models.StatusPendingApproval)
	_, err := Transition(app, models.StatusConfirmed, ActorStaff, CancelDetails{}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingApproval, app.Status)
}

func TestPatientCancellationRecordsPatient(t *testing.T) {
	// Even when the caller claims staff cancelled, a patient actor always
	// records a patient cancellation.
	app := sampleAppointment(models.StatusPendingApproval)
	updated, err := Transition(app, models.StatusCancelled, ActorPatient,
		CancelDetails{By: models.CancelledByStaff, Reason: ""}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.CancelledByPatient, updated.CancelledBy)
	assert.Empty(t, updated.CancellationReason)
}

func TestStaffCancellationRecordsReason(t *testing.T) {
	app := sampleAppointment(models.StatusConfirmed)
	updated, err := Transition(app, models.StatusCancelled, ActorStaff,
		CancelDetails{Reason: "Dokter berhalangan"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.CancelledByStaff, updated.CancelledBy)
	assert.Equal(t, "Dokter berhalangan", updated.CancellationReason)
}

func TestApproveClearsStaleCancellationMetadata(t *testing.T) {
	app := sampleAppointment(models.StatusPendingApproval)
	app.CancelledBy = models.CancelledByPatient
	app.CancellationReason = "stale"

	updated, err := Transition(app, models.StatusConfirmed, ActorStaff, CancelDetails{}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, updated.CancelledBy)
	assert.Empty(t, updated.CancellationReason)
}

func TestCancelCompletedFails(t *testing.T) {
	app := sampleAppointment(models.StatusCompleted)
	_, err := Transition(app, models.StatusCancelled, ActorStaff, CancelDetails{}, time.Now())
	var illegal *IllegalTransitionError
	assert.ErrorAs(t, err, &illegal)
}

func TestNewForcesPendingApproval(t *testing.T) {
	app, err := New("patient-1", "doctor-1", Draft{
		Date:     "2025-08-10",
		Time:     "09:00",
		Reason:   "Checkup",
		Location: "Ruang 101",
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingApproval, app.Status)
	assert.Equal(t, "patient-1", app.PatientID)
	assert.Equal(t, "doctor-1", app.DoctorID)
}

func TestDraftValidationNamesFirstMissingField(t *testing.T) {
	valid := Draft{Date: "2025-08-10", Time: "09:00", Reason: "Checkup", Location: "Ruang 101"}

	tests := []struct {
		name      string
		mutate    func(*Draft)
		wantField string
	}{
		{"empty date", func(d *Draft) { d.Date = "" }, "date"},
		{"malformed date", func(d *Draft) { d.Date = "10/08/2025" }, "date"},
		{"empty time", func(d *Draft) { d.Time = "  " }, "time"},
		{"malformed time", func(d *Draft) { d.Time = "9am" }, "time"},
		{"empty reason", func(d *Draft) { d.Reason = "" }, "reason"},
		{"empty location", func(d *Draft) { d.Location = "" }, "location"},
		{"all empty reports date first", func(d *Draft) { *d = Draft{} }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			_, err := New("patient-1", "doctor-1", d, time.Now())
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantField, missing.Field)
		})
	}
}

func TestApplyEditUpdatesPendingAppointment(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	app := sampleAppointment(models.StatusPendingApproval)

	updated, err := ApplyEdit(app, Draft{
		Date:     "2025-09-01",
		Time:     "14:30",
		Reason:   "Follow up",
		Location: "Ruang 202",
		Notes:    "bring previous results",
	}, ActorPatient, now)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPendingApproval, updated.Status)
	assert.Equal(t, "2025-09-01", updated.Date)
	assert.Equal(t, "14:30", updated.Time)
	assert.Equal(t, "Follow up", updated.Reason)
	assert.Equal(t, "Ruang 202", updated.Location)
	assert.Equal(t, now, updated.UpdatedAt)
}

func TestApplyEditRejectedOnceApproved(t *testing.T) {
	for _, status := range []models.AppointmentStatus{
		models.StatusConfirmed,
		models.StatusRejected,
		models.StatusCompleted,
		models.StatusCancelled,
	} {
		app := sampleAppointment(status)
		_, err := ApplyEdit(app, Draft{
			Date: "2025-09-01", Time: "14:30", Reason: "x", Location: "y",
		}, ActorPatient, time.Now())
		var illegal *IllegalTransitionError
		assert.ErrorAsf(t, err, &illegal, "edit should be rejected in status %s", status)
	}
}

func TestActorForRole(t *testing.T) {
	assert.Equal(t, ActorPatient, ActorForRole(models.RolePatient))
	assert.Equal(t, ActorStaff, ActorForRole(models.RoleDoctor))
	assert.Equal(t, ActorStaff, ActorForRole(models.RoleAdmin))
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &PersistenceError{Op: "save", Err: cause}
	assert.ErrorIs(t, err, cause)
}
