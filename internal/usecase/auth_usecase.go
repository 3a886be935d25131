package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-clinic-registry/internal/converter"
	"go-clinic-registry/internal/delivery/dto"
	"go-clinic-registry/internal/domain/entity"
	"go-clinic-registry/internal/domain/repository"
	"go-clinic-registry/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists   = errors.New("username already exists")
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrLicenseNumberExists     = errors.New("license number already exists")
	ErrEmployeeIDExists        = errors.New("employee ID already exists")
	ErrReferencedDoctorMissing = errors.New("referenced doctor no longer exists")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrTokenRevoked            = errors.New("token has been revoked")
	ErrUserNotFound            = errors.New("user not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	adminRepo   repository.AdminProfileRepository
	doctorRepo  repository.DoctorProfileRepository
	patientRepo repository.PatientProfileRepository
	staffRepo   repository.StaffProfileRepository
	jwtService  *jwt.JWTService
	tokenStore  TokenStore
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	adminRepo repository.AdminProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	staffRepo repository.StaffProfileRepository,
	jwtService *jwt.JWTService,
	tokenStore TokenStore,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		adminRepo:   adminRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		staffRepo:   staffRepo,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
	}
}

// Register validates the role-conditional field bag and provisions the
// identity together with its role profile.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, FieldErrors{"role": "Role must be one of admin, doctor, patient, staff."}
	}

	profile, err := validateRegistration(u.db.WithContext(ctx), u.doctorRepo, role, req)
	if err != nil {
		return nil, err
	}

	user, err := u.provision(ctx, req, profile)
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// provision creates the identity row and the matching profile row inside a
// single transaction; a failure on either insert leaves no rows behind.
func (u *authUsecase) provision(ctx context.Context, req *dto.RegisterRequest, profile *validatedProfile) (*entity.User, error) {
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
		Role:      profile.role,
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

	switch profile.role {
	case entity.RoleAdmin:
		adminProfile := &entity.AdminProfile{
			UserID:    user.ID,
			AdminCode: profile.adminCode,
		}
		if err := u.adminRepo.Create(tx, adminProfile); err != nil {
			u.log.Warnf("Failed to create admin profile: %+v", err)
			return nil, err
		}
		user.AdminProfile = adminProfile

	case entity.RoleDoctor:
		doctorProfile := &entity.DoctorProfile{
			UserID:         user.ID,
			Specialization: profile.specialization,
			LicenseNumber:  profile.licenseNumber,
			HospitalName:   profile.hospitalName,
			DegreeDocument: profile.degreeDocument,
		}
		if err := u.doctorRepo.Create(tx, doctorProfile); err != nil {
			if isDuplicateKeyError(err, "license_number") {
				return nil, ErrLicenseNumberExists
			}
			u.log.Warnf("Failed to create doctor profile: %+v", err)
			return nil, err
		}
		user.DoctorProfile = doctorProfile

	case entity.RolePatient:
		patientProfile := &entity.PatientProfile{
			UserID:          user.ID,
			MedicalHistory:  profile.medicalHistory,
			InsuranceNumber: profile.insuranceNumber,
			BirthDate:       profile.birthDate,
		}
		if err := u.patientRepo.Create(tx, patientProfile); err != nil {
			u.log.Warnf("Failed to create patient profile: %+v", err)
			return nil, err
		}
		user.PatientProfile = patientProfile

	case entity.RoleStaff:
		staffProfile := &entity.StaffProfile{
			UserID:     user.ID,
			EmployeeID: profile.employeeID,
			Department: profile.department,
			DoctorID:   profile.doctorID,
		}
		if err := u.staffRepo.Create(tx, staffProfile); err != nil {
			if isDuplicateKeyError(err, "employee_id") {
				return nil, ErrEmployeeIDExists
			}
			// The referenced doctor may have been deleted between validation
			// and insert; the FK constraint is the arbiter.
			if isForeignKeyError(err, "doctor") {
				return nil, ErrReferencedDoctorMissing
			}
			u.log.Warnf("Failed to create staff profile: %+v", err)
			return nil, err
		}
		user.StaffProfile = staffProfile

	default:
		return nil, fmt.Errorf("no profile variant for role %q", profile.role)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return user, nil
}

// Login verifies the username/password pair and issues an access/refresh
// token pair recorded in the token store.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	found, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if found == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, found)
	if err != nil {
		return nil, err
	}

	full, err := u.userRepo.FindByIDWithProfiles(u.db.WithContext(ctx), found.ID)
	if err != nil {
		u.log.Warnf("Failed to load user profiles: %+v", err)
		return nil, err
	}
	if !converter.HasProfile(full) {
		u.log.Warnf("User %s has role %s but no matching profile record", full.ID, full.Role)
	}

	return &dto.LoginResponse{
		User:         converter.UserToResponse(full),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Username, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Username, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Save(ctx, jwt.AccessToken, user.ID, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}
	if err := u.tokenStore.Save(ctx, jwt.RefreshToken, user.ID, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// RefreshToken rotates a valid refresh token into a new token pair.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	exists, err := u.tokenStore.Exists(ctx, jwt.RefreshToken, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	if err := u.tokenStore.Delete(ctx, jwt.RefreshToken, claims.UserID, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return u.issueTokens(ctx, user)
}

// Logout revokes the presented token pair.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	if accessTokenID != "" {
		if err := u.tokenStore.Delete(ctx, jwt.AccessToken, userID, accessTokenID); err != nil {
			u.log.Warnf("Failed to delete access token: %+v", err)
			return err
		}
	}
	if refreshTokenID != "" {
		if err := u.tokenStore.Delete(ctx, jwt.RefreshToken, userID, refreshTokenID); err != nil {
			u.log.Warnf("Failed to delete refresh token: %+v", err)
			return err
		}
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
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
