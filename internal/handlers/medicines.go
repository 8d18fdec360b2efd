package handlers

import (
	"errors"

	"clinic-portal-server/internal/models"
	"clinic-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MedicineHandler handles medicine inventory requests.
type MedicineHandler struct {
	DB *gorm.DB
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(db *gorm.DB) *MedicineHandler {
	return &MedicineHandler{DB: db}
}

// MedicineRequest represents the request body for creating or updating a
// medicine. Availability is derived from stock and cannot be set here.
type MedicineRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Producer    string `json:"producer"`
	Stock       int    `json:"stock" binding:"min=0"`
	Price       int64  `json:"price" binding:"min=0"`
	ExpiryDate  string `json:"expiryDate"`
	Description string `json:"description"`
}

// CreateMedicine handles adding a medicine to the inventory (admin).
func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var req MedicineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	medicine := models.Medicine{
		Name:        req.Name,
		Category:    req.Category,
		Producer:    req.Producer,
		Stock:       req.Stock,
		Price:       req.Price,
		ExpiryDate:  req.ExpiryDate,
		Description: req.Description,
	}

	if err := h.DB.Create(&medicine).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medicine: "+err.Error())
		return
	}

	utils.Created(c, "Medicine created successfully", medicine)
}

// GetMedicines handles fetching the full medicine inventory.
func (h *MedicineHandler) GetMedicines(c *gin.Context) {
	var medicines []models.Medicine
	query := h.DB.Order("name asc")

	if availability := c.Query("availability"); availability != "" {
		query = query.Where("availability = ?", availability)
	}

	if err := query.Find(&medicines).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medicines: "+err.Error())
		return
	}

	utils.Success(c, "Medicines fetched successfully", medicines)
}

// GetMedicineByID handles fetching a single medicine.
func (h *MedicineHandler) GetMedicineByID(c *gin.Context) {
	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Medicine not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Medicine fetched successfully", medicine)
}

// UpdateMedicine handles updating a medicine (admin). Availability is
// recomputed from the new stock level on save.
func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	var req MedicineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Medicine not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	medicine.Name = req.Name
	medicine.Category = req.Category
	medicine.Producer = req.Producer
	medicine.Stock = req.Stock
	medicine.Price = req.Price
	medicine.ExpiryDate = req.ExpiryDate
	medicine.Description = req.Description

	if err := h.DB.Save(&medicine).Error; err != nil {
		utils.InternalServerError(c, "Failed to update medicine: "+err.Error())
		return
	}

	utils.Success(c, "Medicine updated successfully", medicine)
}

// DeleteMedicine handles removing a medicine from the inventory (admin).
func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Medicine not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&models.Medicine{}, "id = ?", medicine.ID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete medicine: "+err.Error())
		return
	}

	utils.Success(c, "Medicine deleted successfully", nil)
}
