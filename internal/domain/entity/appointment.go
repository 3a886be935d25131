package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Appointment represents a doctor-patient appointment identified by a short
// unique code.
type Appointment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointNumber string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"appoint_number"`
	Scheduled     time.Time `gorm:"not null;index" json:"scheduled"`
	Remarks       string    `gorm:"type:varchar(100)" json:"remarks,omitempty"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// GenerateAppointNumber returns an 8-character uppercase appointment code:
// the first segment of a random UUID. Uniqueness is backed by the storage
// constraint; a collision surfaces as a unique-violation on insert.
func GenerateAppointNumber() string {
	return strings.ToUpper(strings.SplitN(uuid.New().String(), "-", 2)[0])
}
