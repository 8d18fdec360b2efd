package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityForStock(t *testing.T) {
	tests := []struct {
		stock int
		want  MedicineAvailability
	}{
		{-1, MedicineOutOfStock},
		{0, MedicineOutOfStock},
		{1, MedicineLowStock},
		{LowStockThreshold, MedicineLowStock},
		{LowStockThreshold + 1, MedicineAvailable},
		{500, MedicineAvailable},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, AvailabilityForStock(tt.stock), "stock=%d", tt.stock)
	}
}

func TestMedicineBeforeSaveRecomputesAvailability(t *testing.T) {
	m := Medicine{Stock: 3, Availability: MedicineAvailable}
	err := m.BeforeSave(nil)
	assert.NoError(t, err)
	assert.Equal(t, MedicineLowStock, m.Availability)
}
