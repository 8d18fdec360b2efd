package models

// PrescriptionStatus represents whether a prescription is still being taken.
type PrescriptionStatus string

const (
	PrescriptionActive   PrescriptionStatus = "active"
	PrescriptionFinished PrescriptionStatus = "finished"
)

// Prescription represents a set of medicines prescribed to a patient
// after a consultation.
type Prescription struct {
	BaseModel
	PatientID string             `gorm:"size:36;index" json:"patientId"`
	DoctorID  string             `gorm:"size:36;index" json:"doctorId"`
	Date      string             `gorm:"size:10" json:"date"`
	Diagnosis string             `gorm:"size:255" json:"diagnosis"`
	Notes     string             `gorm:"type:text" json:"notes,omitempty"`
	Status    PrescriptionStatus `gorm:"size:20;default:'active'" json:"status"`

	Items []PrescriptionItem `gorm:"foreignKey:PrescriptionID" json:"items"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}

// PrescriptionItem is a single medicine line on a prescription.
type PrescriptionItem struct {
	BaseModel
	PrescriptionID string `gorm:"size:36;index;not null" json:"prescriptionId"`
	MedicineName   string `gorm:"size:255;not null" json:"medicineName"`
	Dosage         string `gorm:"size:100" json:"dosage"`
	Frequency      string `gorm:"size:100" json:"frequency"`
	Duration       string `gorm:"size:100" json:"duration"`
}
