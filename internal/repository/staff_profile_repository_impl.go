package repository

import (
	"errors"

	"go-clinic-registry/internal/domain/entity"
	domainRepo "go-clinic-registry/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type staffProfileRepository struct{}

func NewStaffProfileRepository() domainRepo.StaffProfileRepository {
	return &staffProfileRepository{}
}

func (r *staffProfileRepository) Create(db *gorm.DB, profile *entity.StaffProfile) error {
	return db.Create(profile).Error
}

func (r *staffProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.StaffProfile, error) {
	var profile entity.StaffProfile
	err := db.Preload("Doctor").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *staffProfileRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.StaffProfile, error) {
	var profiles []entity.StaffProfile
	err := db.Preload("User").Where("doctor_id = ?", doctorID).Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
