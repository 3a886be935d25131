package repository

import (
	"go-clinic-registry/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminProfileRepository interface {
	Create(db *gorm.DB, profile *entity.AdminProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.AdminProfile, error)
}
