package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPendingApproval.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   string
	}{
		{StatusPendingApproval, "Menunggu Persetujuan"},
		{StatusConfirmed, "Dikonfirmasi"},
		{StatusRejected, "Ditolak"},
		{StatusCompleted, "Selesai"},
		{StatusCancelled, "Dibatalkan"},
		{"unknown_status", "unknown_status"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.Label())
	}
}

func TestRoleIsStaff(t *testing.T) {
	assert.True(t, RoleDoctor.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
	assert.False(t, RolePatient.IsStaff())
}
