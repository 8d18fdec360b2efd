package handlers

import (
	"errors"
	"fmt"
	"strings"

	"clinic-portal-server/internal/middleware"
	"clinic-portal-server/internal/models"
	"clinic-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrescriptionHandler handles prescription related requests.
type PrescriptionHandler struct {
	DB *gorm.DB
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(db *gorm.DB) *PrescriptionHandler {
	return &PrescriptionHandler{DB: db}
}

// PrescriptionItemRequest is a single medicine line in a prescription request.
type PrescriptionItemRequest struct {
	MedicineName string `json:"medicineName" binding:"required"`
	Dosage       string `json:"dosage" binding:"required"`
	Frequency    string `json:"frequency" binding:"required"`
	Duration     string `json:"duration" binding:"required"`
}

// CreatePrescriptionRequest represents the request body for creating a prescription.
type CreatePrescriptionRequest struct {
	PatientID string                    `json:"patientId" binding:"required,uuid"`
	Date      string                    `json:"date" binding:"required"`
	Diagnosis string                    `json:"diagnosis" binding:"required"`
	Notes     string                    `json:"notes"`
	Items     []PrescriptionItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreatePrescription handles creating a new prescription. Only accessible by doctors.
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor ID not found in token")
		return
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	// Verify patient exists
	var patient models.User
	if err := h.DB.Where("id = ? AND role = ?", patientID.String(), models.RolePatient).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	prescription := models.Prescription{
		PatientID: patientID.String(),
		DoctorID:  doctorID,
		Date:      req.Date,
		Diagnosis: req.Diagnosis,
		Notes:     req.Notes,
		Status:    models.PrescriptionActive,
	}
	for _, item := range req.Items {
		prescription.Items = append(prescription.Items, models.PrescriptionItem{
			MedicineName: item.MedicineName,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			Duration:     item.Duration,
		})
	}

	if err := h.DB.Create(&prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to create prescription: "+err.Error())
		return
	}

	utils.Created(c, "Prescription created successfully", prescription)
}

// GetPrescriptionsForPatient handles fetching prescriptions for a patient.
// Accessible by the patient themselves, doctors and admins.
func (h *PrescriptionHandler) GetPrescriptionsForPatient(c *gin.Context) {
	patientIDStr := c.Param("patientId")
	if _, err := uuid.Parse(patientIDStr); err != nil {
		utils.BadRequest(c, "Invalid Patient ID format")
		return
	}

	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	requestingUserRole, _ := middleware.GetUserRoleFromContext(c)

	if !requestingUserRole.IsStaff() && requestingUserID != patientIDStr {
		utils.Forbidden(c, "You can only view your own prescriptions")
		return
	}

	var prescriptions []models.Prescription
	err := h.DB.Preload("Items").Preload("Doctor").
		Where("patient_id = ?", patientIDStr).
		Order("date desc").
		Find(&prescriptions).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// getAuthorizedPrescription loads a prescription and checks the caller is
// the patient, the prescribing doctor, or an admin.
func (h *PrescriptionHandler) getAuthorizedPrescription(c *gin.Context) (*models.Prescription, bool) {
	var prescription models.Prescription
	err := h.DB.Preload("Items").Preload("Doctor").Preload("Patient").
		First(&prescription, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Prescription not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	isPatient := userID == prescription.PatientID
	isDoctor := userID == prescription.DoctorID
	if userRole != models.RoleAdmin && !isPatient && !isDoctor {
		utils.Forbidden(c, "You are not authorized to view this prescription")
		return nil, false
	}
	return &prescription, true
}

// GetPrescriptionByID handles fetching a single prescription.
func (h *PrescriptionHandler) GetPrescriptionByID(c *gin.Context) {
	prescription, ok := h.getAuthorizedPrescription(c)
	if !ok {
		return
	}
	utils.Success(c, "Prescription fetched successfully", prescription)
}

// UpdatePrescriptionStatusRequest represents the request body for marking a
// prescription finished or re-activating it.
type UpdatePrescriptionStatusRequest struct {
	Status models.PrescriptionStatus `json:"status" binding:"required,oneof=active finished"`
}

// UpdatePrescriptionStatus handles updating a prescription's status.
// Only the prescribing doctor or an admin may do this.
func (h *PrescriptionHandler) UpdatePrescriptionStatus(c *gin.Context) {
	var req UpdatePrescriptionStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	prescription, ok := h.getAuthorizedPrescription(c)
	if !ok {
		return
	}

	userRole, _ := middleware.GetUserRoleFromContext(c)
	if !userRole.IsStaff() {
		utils.Forbidden(c, "Only staff can update prescription status")
		return
	}

	prescription.Status = req.Status
	if err := h.DB.Save(prescription).Error; err != nil {
		utils.InternalServerError(c, "Failed to update prescription: "+err.Error())
		return
	}

	utils.Success(c, "Prescription status updated successfully", prescription)
}

// ExportPrescription renders a prescription as a plain-text document, the
// same format the portal offers for download.
func (h *PrescriptionHandler) ExportPrescription(c *gin.Context) {
	prescription, ok := h.getAuthorizedPrescription(c)
	if !ok {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Resep #%s\n", prescription.ID)
	fmt.Fprintf(&b, "Diresiapkan oleh: %s %s\n", prescription.Doctor.FirstName, prescription.Doctor.LastName)
	fmt.Fprintf(&b, "Tanggal: %s\n", prescription.Date)
	fmt.Fprintf(&b, "Diagnosa: %s\n\n", prescription.Diagnosis)
	b.WriteString("Obat:\n")
	for _, item := range prescription.Items {
		fmt.Fprintf(&b, "  - %s: %s, %s, %s\n", item.MedicineName, item.Dosage, item.Frequency, item.Duration)
	}
	if prescription.Notes != "" {
		fmt.Fprintf(&b, "\nCatatan Dokter: %s\n", prescription.Notes)
	}
	fmt.Fprintf(&b, "Status: %s\n", prescription.Status)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=resep_%s.txt", prescription.ID))
	c.Data(200, "text/plain; charset=utf-8", []byte(b.String()))
}
