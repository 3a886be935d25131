package repository

import (
	"go-clinic-registry/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffProfileRepository interface {
	Create(db *gorm.DB, profile *entity.StaffProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.StaffProfile, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.StaffProfile, error)
}
