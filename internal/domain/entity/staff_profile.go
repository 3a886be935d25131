package entity

import "github.com/google/uuid"

// StaffProfile represents staff-specific profile data. DoctorID references
// the supervising doctor's profile; deleting that doctor cascades here. The
// column is nullable so reads stay well-defined even though registration
// always sets it.
type StaffProfile struct {
	UserID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	EmployeeID string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"employee_id"`
	Department string     `gorm:"type:varchar(100);not null" json:"department"`
	DoctorID   *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`

	// Relationships
	User   User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Doctor *DoctorProfile `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`
}

func (StaffProfile) TableName() string {
	return "staff_profiles"
}
