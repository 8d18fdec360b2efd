package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-portal-server/internal/models"
)

// Identity is the authenticated actor on whose behalf the facade operates.
// It is supplied by the auth middleware and trusted for authorization
// decisions; the facade does not authenticate.
type Identity struct {
	UserID string
	Role   models.Role
}

// Facade is the boundary between the lifecycle engine and the backing store.
//
// The store has no transaction support spanning our read-modify-write cycle,
// so the facade uses read-after-write reconciliation: after any successful
// mutation it discards its view and reloads the full role-scoped collection
// instead of trusting the mutation's echo. A failed write leaves state
// unchanged and surfaces a PersistenceError.
type Facade struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewFacade creates a Facade over the given store.
func NewFacade(db *gorm.DB, log *zap.Logger) *Facade {
	return &Facade{db: db, log: log}
}

// scoped returns a query restricted to the appointments the identity may
// see: patients their own, doctors their own schedule, admins everything.
func (f *Facade) scoped(ctx context.Context, id Identity) *gorm.DB {
	q := f.db.WithContext(ctx).Model(&models.Appointment{})
	switch id.Role {
	case models.RolePatient:
		return q.Where("patient_id = ?", id.UserID)
	case models.RoleDoctor:
		return q.Where("doctor_id = ?", id.UserID)
	default:
		return q
	}
}

// ListFor loads the role-scoped appointment collection. Order is not
// guaranteed by the store; callers re-sort via Classify.
func (f *Facade) ListFor(ctx context.Context, id Identity) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := f.scoped(ctx, id).Preload("Patient").Preload("Doctor").Find(&appts).Error; err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	return appts, nil
}

// Get loads a single appointment, enforcing that the identity is a party to
// it (or an admin).
func (f *Facade) Get(ctx context.Context, id Identity, apptID string) (models.Appointment, error) {
	var app models.Appointment
	err := f.db.WithContext(ctx).Preload("Patient").Preload("Doctor").First(&app, "id = ?", apptID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Appointment{}, ErrNotFound
		}
		return models.Appointment{}, &PersistenceError{Op: "get", Err: err}
	}
	if !f.mayAccess(id, app) {
		return models.Appointment{}, ErrForbidden
	}
	return app, nil
}

func (f *Facade) mayAccess(id Identity, app models.Appointment) bool {
	switch id.Role {
	case models.RolePatient:
		return app.PatientID == id.UserID
	case models.RoleDoctor:
		return app.DoctorID == id.UserID
	case models.RoleAdmin:
		return true
	}
	return false
}

// Create persists a new appointment built by the engine and returns it plus
// the reloaded collection.
func (f *Facade) Create(ctx context.Context, id Identity, doctorID string, d Draft) (models.Appointment, []models.Appointment, error) {
	app, err := New(id.UserID, doctorID, d, time.Now())
	if err != nil {
		return models.Appointment{}, nil, err
	}
	if err := f.db.WithContext(ctx).Create(&app).Error; err != nil {
		f.log.Error("appointment create failed", zap.Error(err))
		return models.Appointment{}, nil, &PersistenceError{Op: "create", Err: err}
	}
	appts, err := f.ListFor(ctx, id)
	return app, appts, err
}

// ApplyTransition runs one lifecycle mutation end to end: authorization
// matrix, transition engine, persist, reload. Illegal transitions and
// missing fields are rejected before any write is attempted.
func (f *Facade) ApplyTransition(ctx context.Context, id Identity, apptID string, to models.AppointmentStatus, details CancelDetails) (models.Appointment, []models.Appointment, error) {
	app, err := f.Get(ctx, id, apptID)
	if err != nil {
		return models.Appointment{}, nil, err
	}

	actor := ActorForRole(id.Role)
	action, ok := actionForTarget(to)
	if !ok || !Allowed(app.Status, actor, action) {
		return models.Appointment{}, nil, &IllegalTransitionError{From: app.Status, To: to, Actor: actor}
	}

	updated, err := Transition(app, to, actor, details, time.Now())
	if err != nil {
		return models.Appointment{}, nil, err
	}

	if err := f.save(ctx, updated); err != nil {
		return models.Appointment{}, nil, err
	}

	f.log.Info("appointment transition applied",
		zap.String("appointmentId", updated.ID),
		zap.String("from", string(app.Status)),
		zap.String("to", string(updated.Status)),
		zap.String("actor", string(actor)))

	appts, err := f.ListFor(ctx, id)
	return updated, appts, err
}

// Reschedule applies a pending-only edit of schedule and descriptive fields,
// with the same reload-after-write policy as transitions.
func (f *Facade) Reschedule(ctx context.Context, id Identity, apptID string, d Draft) (models.Appointment, []models.Appointment, error) {
	app, err := f.Get(ctx, id, apptID)
	if err != nil {
		return models.Appointment{}, nil, err
	}

	actor := ActorForRole(id.Role)
	if !Allowed(app.Status, actor, ActionReschedule) {
		return models.Appointment{}, nil, &IllegalTransitionError{From: app.Status, To: app.Status, Actor: actor}
	}

	updated, err := ApplyEdit(app, d, actor, time.Now())
	if err != nil {
		return models.Appointment{}, nil, err
	}

	if err := f.save(ctx, updated); err != nil {
		return models.Appointment{}, nil, err
	}

	appts, err := f.ListFor(ctx, id)
	return updated, appts, err
}

func (f *Facade) save(ctx context.Context, app models.Appointment) error {
	// Persist only the fields a transition or edit may change; relations
	// loaded for display must not be written back.
	err := f.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", app.ID).
		Updates(map[string]interface{}{
			"date":                app.Date,
			"time":                app.Time,
			"reason":              app.Reason,
			"location":            app.Location,
			"notes":               app.Notes,
			"status":              app.Status,
			"cancelled_by":        app.CancelledBy,
			"cancellation_reason": app.CancellationReason,
			"updated_at":          app.UpdatedAt,
		}).Error
	if err != nil {
		f.log.Error("appointment save failed", zap.String("appointmentId", app.ID), zap.Error(err))
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}
