package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data.
// DegreeDocument holds an opaque reference to an uploaded degree certificate;
// the upload pipeline itself lives outside this service.
type DoctorProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	LicenseNumber  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"license_number"`
	HospitalName   string    `gorm:"type:varchar(100);not null" json:"hospital_name"`
	DegreeDocument string    `gorm:"type:text" json:"degree_document,omitempty"`

	// Relationships
	User         User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Staff        []StaffProfile `gorm:"foreignKey:DoctorID" json:"staff,omitempty"`
	Appointments []Appointment  `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
