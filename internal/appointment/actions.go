package appointment

import (
	"clinic-portal-server/internal/models"
)

// Action is a UI-facing operation on an appointment.
type Action string

const (
	ActionViewDetail Action = "view_detail"
	ActionReschedule Action = "reschedule"
	ActionCancel     Action = "cancel"
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionComplete   Action = "complete"
)

// PermittedActions returns the actions a given actor may take on an
// appointment in the given status. This matrix is the single source of truth
// consulted before a transition is attempted; the transition engine enforces
// the same rules independently so a caller bypassing the UI is still rejected.
func PermittedActions(status models.AppointmentStatus, actor Actor) []Action {
	actions := []Action{ActionViewDetail}
	if status.IsTerminal() {
		return actions
	}

	open := status == models.StatusPendingApproval || status == models.StatusConfirmed

	switch actor {
	case ActorPatient:
		if open {
			actions = append(actions, ActionReschedule, ActionCancel)
		}
	case ActorStaff:
		if status == models.StatusPendingApproval {
			actions = append(actions, ActionApprove, ActionReject)
		}
		if status == models.StatusConfirmed {
			actions = append(actions, ActionComplete)
		}
		if open {
			actions = append(actions, ActionCancel)
		}
	}
	return actions
}

// Allowed reports whether the matrix permits the action for (status, actor).
func Allowed(status models.AppointmentStatus, actor Actor, action Action) bool {
	for _, a := range PermittedActions(status, actor) {
		if a == action {
			return true
		}
	}
	return false
}

// actionForTarget maps a requested target status onto the action it
// represents, so handlers can consult the matrix before invoking the engine.
func actionForTarget(to models.AppointmentStatus) (Action, bool) {
	switch to {
	case models.StatusConfirmed:
		return ActionApprove, true
	case models.StatusRejected:
		return ActionReject, true
	case models.StatusCancelled:
		return ActionCancel, true
	case models.StatusCompleted:
		return ActionComplete, true
	}
	return "", false
}
