package entity

import "github.com/google/uuid"

// AdminProfile represents admin-specific profile data
type AdminProfile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	AdminCode string    `gorm:"type:varchar(200);not null" json:"admin_code"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}
