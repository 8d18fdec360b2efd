package models

// AppointmentStatus represents the lifecycle status of an appointment.
// Values are a closed enum; human-readable labels live in Label() and are
// never used for comparisons.
type AppointmentStatus string

const (
	StatusPendingApproval AppointmentStatus = "pending_approval"
	StatusConfirmed       AppointmentStatus = "confirmed"
	StatusRejected        AppointmentStatus = "rejected"
	StatusCompleted       AppointmentStatus = "completed"
	StatusCancelled       AppointmentStatus = "cancelled"
)

// Label returns the display string for the status as shown in the portal UI.
func (s AppointmentStatus) Label() string {
	switch s {
	case StatusPendingApproval:
		return "Menunggu Persetujuan"
	case StatusConfirmed:
		return "Dikonfirmasi"
	case StatusRejected:
		return "Ditolak"
	case StatusCompleted:
		return "Selesai"
	case StatusCancelled:
		return "Dibatalkan"
	default:
		return string(s)
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

// CancelActor identifies who cancelled an appointment.
type CancelActor string

const (
	CancelledByPatient CancelActor = "patient"
	CancelledByStaff   CancelActor = "staff"
)

// Appointment represents a scheduled clinic visit.
// Date is a naive local calendar date (YYYY-MM-DD) and Time a local
// wall-clock time (HH:MM); the two are independent fields.
type Appointment struct {
	BaseModel
	PatientID string `gorm:"size:36;index" json:"patientId"`
	DoctorID  string `gorm:"size:36;index" json:"doctorId"`
	Date      string `gorm:"size:10" json:"date"`
	Time      string `gorm:"size:5" json:"time"`
	Reason    string `gorm:"size:255" json:"reason"`
	Location  string `gorm:"size:100" json:"location"`
	Notes     string `gorm:"type:text" json:"notes,omitempty"`

	Status AppointmentStatus `gorm:"size:20;default:'pending_approval'" json:"status"`

	// Cancellation metadata, present only when Status is cancelled.
	CancelledBy        CancelActor `gorm:"size:10" json:"cancelledBy,omitempty"`
	CancellationReason string      `gorm:"size:255" json:"cancellationReason,omitempty"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}
