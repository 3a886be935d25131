package usecase

import (
	"context"
	"errors"

	"go-clinic-registry/internal/converter"
	"go-clinic-registry/internal/delivery/dto"
	"go-clinic-registry/internal/delivery/http/middleware"
	"go-clinic-registry/internal/domain/entity"
	"go-clinic-registry/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrActorNotFound    = errors.New("actor not found in context")
	ErrInvalidUserRole  = errors.New("invalid user role")
	ErrOnlyDoctors      = errors.New("only doctors can create staff accounts")
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrNoDoctorAssigned = errors.New("no doctor assigned to this staff account")
)

type DoctorUsecase interface {
	// GetMyDoctor returns the actor's own view when the actor is a doctor,
	// or the supervising doctor's view when the actor is staff.
	GetMyDoctor(ctx context.Context) (*dto.UserResponse, error)
	// CreateStaff provisions a staff account supervised by the acting doctor.
	CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*dto.UserResponse, error)
}

type doctorUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	userRepo   repository.UserRepository
	doctorRepo repository.DoctorProfileRepository
	staffRepo  repository.StaffProfileRepository
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	staffRepo repository.StaffProfileRepository,
) DoctorUsecase {
	return &doctorUsecase{
		db:         db,
		log:        log,
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
		staffRepo:  staffRepo,
	}
}

func (u *doctorUsecase) GetMyDoctor(ctx context.Context) (*dto.UserResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}
	role, ok := middleware.GetRoleFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}

	switch entity.Role(role) {
	case entity.RoleDoctor:
		return u.presentUser(ctx, actorID)

	case entity.RoleStaff:
		staff, err := u.staffRepo.FindByUserID(u.db.WithContext(ctx), actorID)
		if err != nil {
			u.log.Warnf("Failed to find staff profile: %+v", err)
			return nil, err
		}
		if staff == nil || staff.DoctorID == nil {
			return nil, ErrNoDoctorAssigned
		}
		return u.presentUser(ctx, *staff.DoctorID)

	default:
		return nil, ErrInvalidUserRole
	}
}

func (u *doctorUsecase) presentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByIDWithProfiles(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !converter.HasProfile(user) {
		u.log.Warnf("User %s has role %s but no matching profile record", user.ID, user.Role)
	}
	return converter.UserToResponse(user), nil
}

// CreateStaff is the restricted variant of staff registration: the acting
// doctor becomes the supervising doctor regardless of request content.
func (u *doctorUsecase) CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*dto.UserResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}
	role, ok := middleware.GetRoleFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}
	if entity.Role(role) != entity.RoleDoctor {
		return nil, ErrOnlyDoctors
	}

	if req.EmployeeID == "" || req.Department == "" {
		return nil, FieldErrors{"staff_details": "Employee ID, department, and doctor are required."}
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), actorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		u.log.Warnf("User %s has role doctor but no doctor profile record", actorID)
		return nil, ErrDoctorNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      entity.RoleStaff,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameAlreadyExists
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	staffProfile := &entity.StaffProfile{
		UserID:     user.ID,
		EmployeeID: req.EmployeeID,
		Department: req.Department,
		DoctorID:   &doctor.UserID,
	}

	if err := u.staffRepo.Create(tx, staffProfile); err != nil {
		if isDuplicateKeyError(err, "employee_id") {
			return nil, ErrEmployeeIDExists
		}
		if isForeignKeyError(err, "doctor") {
			return nil, ErrReferencedDoctorMissing
		}
		u.log.Warnf("Failed to create staff profile: %+v", err)
		return nil, err
	}
	user.StaffProfile = staffProfile

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}
