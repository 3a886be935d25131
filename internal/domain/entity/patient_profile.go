package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile represents patient-specific profile data. All three
// attributes are optional in storage; registration requires at least one of
// them, enforced at validation time.
type PatientProfile struct {
	UserID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	MedicalHistory  string     `gorm:"type:text" json:"medical_history,omitempty"`
	BirthDate       *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	InsuranceNumber string     `gorm:"type:varchar(100)" json:"insurance_number,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}
