package models

import (
	"gorm.io/gorm"
)

// MedicineAvailability is derived from stock level, never set by clients.
type MedicineAvailability string

const (
	MedicineAvailable  MedicineAvailability = "available"
	MedicineLowStock   MedicineAvailability = "low_stock"
	MedicineOutOfStock MedicineAvailability = "out_of_stock"
)

// LowStockThreshold is the stock level at or below which a medicine is
// flagged as running low.
const LowStockThreshold = 10

// Medicine represents an item in the clinic's medicine inventory.
type Medicine struct {
	BaseModel
	Name         string               `gorm:"size:255;not null;index" json:"name"`
	Category     string               `gorm:"size:100" json:"category"`
	Producer     string               `gorm:"size:255" json:"producer"`
	Stock        int                  `gorm:"default:0" json:"stock"`
	Price        int64                `gorm:"default:0" json:"price"`
	ExpiryDate   string               `gorm:"size:10" json:"expiryDate"`
	Description  string               `gorm:"type:text" json:"description,omitempty"`
	Availability MedicineAvailability `gorm:"size:20" json:"availability"`
}

// AvailabilityForStock derives the availability flag from a stock level.
func AvailabilityForStock(stock int) MedicineAvailability {
	switch {
	case stock <= 0:
		return MedicineOutOfStock
	case stock <= LowStockThreshold:
		return MedicineLowStock
	default:
		return MedicineAvailable
	}
}

// BeforeSave recomputes the stored availability so it always matches stock.
func (m *Medicine) BeforeSave(tx *gorm.DB) error {
	m.Availability = AvailabilityForStock(m.Stock)
	return nil
}
