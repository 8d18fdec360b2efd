package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinic-portal-server/internal/models"
)

func TestPermittedActionsMatrix(t *testing.T) {
	tests := []struct {
		status models.AppointmentStatus
		actor  Actor
		want   []Action
	}{
		{models.StatusPendingApproval, ActorPatient, []Action{ActionViewDetail, ActionReschedule, ActionCancel}},
		{models.StatusConfirmed, ActorPatient, []Action{ActionViewDetail, ActionReschedule, ActionCancel}},
		{models.StatusRejected, ActorPatient, []Action{ActionViewDetail}},
		{models.StatusCompleted, ActorPatient, []Action{ActionViewDetail}},
		{models.StatusCancelled, ActorPatient, []Action{ActionViewDetail}},

		{models.StatusPendingApproval, ActorStaff, []Action{ActionViewDetail, ActionApprove, ActionReject, ActionCancel}},
		{models.StatusConfirmed, ActorStaff, []Action{ActionViewDetail, ActionComplete, ActionCancel}},
		{models.StatusRejected, ActorStaff, []Action{ActionViewDetail}},
		{models.StatusCompleted, ActorStaff, []Action{ActionViewDetail}},
		{models.StatusCancelled, ActorStaff, []Action{ActionViewDetail}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status)+"/"+string(tt.actor), func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, PermittedActions(tt.status, tt.actor))
		})
	}
}

func TestAllowedConsultsMatrix(t *testing.T) {
	assert.True(t, Allowed(models.StatusPendingApproval, ActorStaff, ActionApprove))
	assert.True(t, Allowed(models.StatusConfirmed, ActorPatient, ActionCancel))
	assert.False(t, Allowed(models.StatusConfirmed, ActorPatient, ActionComplete))
	assert.False(t, Allowed(models.StatusCompleted, ActorStaff, ActionCancel))
	assert.False(t, Allowed(models.StatusConfirmed, ActorStaff, ActionApprove))
}

func TestViewDetailAlwaysPermitted(t *testing.T) {
	for _, status := range allStatuses {
		for _, actor := range []Actor{ActorPatient, ActorStaff} {
			assert.Truef(t, Allowed(status, actor, ActionViewDetail),
				"view detail should be permitted for %s/%s", status, actor)
		}
	}
}

func TestActionForTarget(t *testing.T) {
	tests := []struct {
		to     models.AppointmentStatus
		want   Action
		wantOK bool
	}{
		{models.StatusConfirmed, ActionApprove, true},
		{models.StatusRejected, ActionReject, true},
		{models.StatusCancelled, ActionCancel, true},
		{models.StatusCompleted, ActionComplete, true},
		{models.StatusPendingApproval, "", false},
	}
	for _, tt := range tests {
		got, ok := actionForTarget(tt.to)
		assert.Equal(t, tt.wantOK, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestCanTransitionRejectsUnknownEdges(t *testing.T) {
	// Self-transitions and re-approval are not in the table.
	assert.False(t, CanTransition(models.StatusConfirmed, models.StatusConfirmed, ActorStaff))
	assert.False(t, CanTransition(models.StatusPendingApproval, models.StatusPendingApproval, ActorPatient))
	assert.False(t, CanTransition(models.StatusCompleted, models.StatusCancelled, ActorPatient))
}

func TestValidStatus(t *testing.T) {
	for _, status := range allStatuses {
		assert.True(t, ValidStatus(status))
	}
	assert.False(t, ValidStatus("Menunggu Persetujuan"))
	assert.False(t, ValidStatus(""))
}
