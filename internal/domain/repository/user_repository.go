package repository

import (
	"go-clinic-registry/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	// FindByIDWithProfiles loads the user and whichever profile records exist.
	FindByIDWithProfiles(db *gorm.DB, id uuid.UUID) (*entity.User, error)
}
