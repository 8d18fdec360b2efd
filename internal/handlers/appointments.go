package handlers

import (
	"errors"
	"time"

	"clinic-portal-server/internal/appointment"
	"clinic-portal-server/internal/middleware"
	"clinic-portal-server/internal/models"
	"clinic-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB     *gorm.DB
	Facade *appointment.Facade
	Log    *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, facade *appointment.Facade, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Facade: facade, Log: log}
}

// identityFromContext builds the facade identity from the auth middleware.
func identityFromContext(c *gin.Context) (appointment.Identity, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return appointment.Identity{}, false
	}
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		return appointment.Identity{}, false
	}
	return appointment.Identity{UserID: userID, Role: role}, true
}

// respondAppointmentError maps the engine's typed errors onto HTTP responses.
func respondAppointmentError(c *gin.Context, err error) {
	var illegal *appointment.IllegalTransitionError
	var missing *appointment.MissingFieldError

	switch {
	case errors.As(err, &missing):
		utils.BadRequest(c, err.Error())
	case errors.As(err, &illegal):
		utils.Conflict(c, err.Error())
	case errors.Is(err, appointment.ErrNotFound):
		utils.NotFound(c, "Appointment not found")
	case errors.Is(err, appointment.ErrForbidden):
		utils.Forbidden(c, "You are not a party to this appointment")
	default:
		utils.InternalServerError(c, err.Error())
	}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required,uuid"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
	Location string `json:"location" binding:"required"`
	Notes    string `json:"notes"`
}

// CreateAppointment handles creating a new appointment. Initiated by a
// patient; the status is forced to pending approval regardless of input.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	identity, ok := identityFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	// Verify doctor exists and is a doctor
	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", doctorID.String(), models.RoleDoctor).First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	draft := appointment.Draft{
		Date:     req.Date,
		Time:     req.Time,
		Reason:   req.Reason,
		Location: req.Location,
		Notes:    req.Notes,
	}

	created, _, err := h.Facade.Create(c.Request.Context(), identity, doctorID.String(), draft)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", created)
}

// GetAppointmentsForUser handles fetching the role-scoped appointment
// collection, bucketed into upcoming, past and cancelled for display.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appts, err := h.Facade.ListFor(c.Request.Context(), identity)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	buckets := appointment.Classify(appts, time.Now())
	for _, w := range buckets.Warnings {
		h.Log.Warn("appointment data quality issue",
			zap.String("appointmentId", w.AppointmentID),
			zap.String("field", w.Field),
			zap.String("value", w.Value))
	}

	utils.Success(c, "Appointments fetched successfully", buckets)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by involved patient, doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if _, err := uuid.Parse(c.Param("id")); err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	app, err := h.Facade.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	utils.Success(c, "Appointment fetched successfully", app)
}

// GetAppointmentActions returns the lifecycle actions the caller may take on
// the appointment in its current status.
func (h *AppointmentHandler) GetAppointmentActions(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	app, err := h.Facade.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	actor := appointment.ActorForRole(identity.Role)
	utils.Success(c, "Permitted actions fetched successfully", gin.H{
		"status":  app.Status,
		"actions": appointment.PermittedActions(app.Status, actor),
	})
}

// UpdateAppointmentStatusRequest represents the request body for a lifecycle
// transition. CancelledBy is advisory only; patient cancellations always
// record the patient regardless of what is supplied here.
type UpdateAppointmentStatusRequest struct {
	Status             models.AppointmentStatus `json:"status" binding:"required,oneof=confirmed rejected completed cancelled"`
	CancelledBy        models.CancelActor       `json:"cancelledBy" binding:"omitempty,oneof=patient staff"`
	CancellationReason string                   `json:"cancellationReason"`
}

// UpdateAppointmentStatus applies a lifecycle transition: approve, reject,
// complete or cancel, depending on the target status.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	identity, ok := identityFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	details := appointment.CancelDetails{
		By:     req.CancelledBy,
		Reason: req.CancellationReason,
	}

	updated, _, err := h.Facade.ApplyTransition(c.Request.Context(), identity, c.Param("id"), req.Status, details)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	utils.Success(c, "Appointment status updated successfully", updated)
}

// RescheduleAppointmentRequest represents the request body for a
// reschedule-as-edit while the appointment is still awaiting approval.
type RescheduleAppointmentRequest struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
	Location string `json:"location" binding:"required"`
	Notes    string `json:"notes"`
}

// RescheduleAppointment corrects schedule and descriptive fields of a
// pending appointment without changing its status.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	identity, ok := identityFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	draft := appointment.Draft{
		Date:     req.Date,
		Time:     req.Time,
		Reason:   req.Reason,
		Location: req.Location,
		Notes:    req.Notes,
	}

	updated, _, err := h.Facade.Reschedule(c.Request.Context(), identity, c.Param("id"), draft)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	utils.Success(c, "Appointment rescheduled successfully", updated)
}
