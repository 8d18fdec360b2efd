package handlers

import (
	"clinic-portal-server/internal/models"
	"clinic-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves aggregate statistics for the admin dashboard.
type DashboardHandler struct {
	DB *gorm.DB
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// DashboardStats is the aggregate view rendered on the admin panel.
type DashboardStats struct {
	Patients             int64                              `json:"patients"`
	Doctors              int64                              `json:"doctors"`
	AppointmentsByStatus map[models.AppointmentStatus]int64 `json:"appointmentsByStatus"`
	ActivePrescriptions  int64                              `json:"activePrescriptions"`
	MedicinesLowStock    int64                              `json:"medicinesLowStock"`
}

// GetStats handles fetching dashboard statistics. Staff only.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats := DashboardStats{
		AppointmentsByStatus: make(map[models.AppointmentStatus]int64),
	}

	if err := h.DB.Model(&models.User{}).Where("role = ?", models.RolePatient).Count(&stats.Patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to count patients: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.User{}).Where("role = ?", models.RoleDoctor).Count(&stats.Doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to count doctors: "+err.Error())
		return
	}

	var rows []struct {
		Status models.AppointmentStatus
		Total  int64
	}
	if err := h.DB.Model(&models.Appointment{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}
	for _, row := range rows {
		stats.AppointmentsByStatus[row.Status] = row.Total
	}

	if err := h.DB.Model(&models.Prescription{}).
		Where("status = ?", models.PrescriptionActive).
		Count(&stats.ActivePrescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to count prescriptions: "+err.Error())
		return
	}

	if err := h.DB.Model(&models.Medicine{}).
		Where("stock <= ?", models.LowStockThreshold).
		Count(&stats.MedicinesLowStock).Error; err != nil {
		utils.InternalServerError(c, "Failed to count medicines: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard stats fetched successfully", stats)
}
