package usecase

import (
	"context"
	"errors"
	"testing"

	"go-clinic-registry/internal/delivery/dto"
	"go-clinic-registry/internal/domain/entity"
	"go-clinic-registry/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	usecase     AuthUsecase
	userRepo    *fakeUserRepo
	adminRepo   *fakeAdminRepo
	doctorRepo  *fakeDoctorRepo
	patientRepo *fakePatientRepo
	staffRepo   *fakeStaffRepo
	tokenStore  *fakeTokenStore
}

func newAuthUsecaseForTest(t *testing.T) (*authFixture, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newTestDB(t)
	f := &authFixture{
		userRepo:    &fakeUserRepo{byUsername: map[string]*entity.User{}, byID: map[uuid.UUID]*entity.User{}},
		adminRepo:   &fakeAdminRepo{},
		doctorRepo:  &fakeDoctorRepo{byUserID: map[uuid.UUID]*entity.DoctorProfile{}},
		patientRepo: &fakePatientRepo{byUserID: map[uuid.UUID]*entity.PatientProfile{}},
		staffRepo:   &fakeStaffRepo{byUserID: map[uuid.UUID]*entity.StaffProfile{}},
		tokenStore:  &fakeTokenStore{},
	}
	f.usecase = NewAuthUsecase(db, newTestLogger(), f.userRepo, f.adminRepo, f.doctorRepo, f.patientRepo, f.staffRepo, newTestJWTService(), f.tokenStore)
	return f, mock
}

func TestRegister_Doctor(t *testing.T) {
	t.Parallel()

	f, mock := newAuthUsecaseForTest(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username:       "drwho",
		Email:          "drwho@clinic.test",
		Password:       "password123",
		Role:           "doctor",
		Specialization: "Cardiology",
		LicenseNumber:  "LIC1",
		HospitalName:   "GenHosp",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if len(f.userRepo.created) != 1 || len(f.doctorRepo.created) != 1 {
		t.Fatalf("expected one user and one doctor profile, got %d/%d", len(f.userRepo.created), len(f.doctorRepo.created))
	}
	user := f.userRepo.created[0]
	if user.Role != entity.RoleDoctor {
		t.Fatalf("role = %q", user.Role)
	}
	if user.Password == "password123" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if f.doctorRepo.created[0].UserID != user.ID {
		t.Fatal("profile not bound to created identity")
	}

	profile, ok := resp.Profile.(*dto.DoctorProfileResponse)
	if !ok {
		t.Fatalf("expected doctor profile in response, got %T", resp.Profile)
	}
	if profile.LicenseNumber != "LIC1" {
		t.Fatalf("license_number = %q", profile.LicenseNumber)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("transaction expectations: %v", err)
	}
}

func TestRegister_StaffBindsValidatedDoctor(t *testing.T) {
	t.Parallel()

	f, mock := newAuthUsecaseForTest(t)
	doctorID := uuid.New()
	f.doctorRepo.byUserID[doctorID] = &entity.DoctorProfile{
		UserID: doctorID,
		User:   entity.User{ID: doctorID, Role: entity.RoleDoctor},
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username:   "desk",
		Email:      "desk@clinic.test",
		Password:   "password123",
		Role:       "staff",
		EmployeeID: "EMP-1",
		Department: "Radiology",
		DoctorID:   doctorID.String(),
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if len(f.staffRepo.created) != 1 {
		t.Fatalf("expected one staff profile, got %d", len(f.staffRepo.created))
	}
	staff := f.staffRepo.created[0]
	if staff.DoctorID == nil || *staff.DoctorID != doctorID {
		t.Fatalf("staff doctor reference = %v, want %s", staff.DoctorID, doctorID)
	}

	profile, ok := resp.Profile.(*dto.StaffProfileResponse)
	if !ok {
		t.Fatalf("expected staff profile in response, got %T", resp.Profile)
	}
	if profile.DoctorID == nil || *profile.DoctorID != doctorID {
		t.Fatalf("response doctor_id = %v", profile.DoctorID)
	}
}

func TestRegister_ValidationFailureCreatesNothing(t *testing.T) {
	t.Parallel()

	f, mock := newAuthUsecaseForTest(t)

	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username: "root",
		Email:    "root@clinic.test",
		Password: "password123",
		Role:     "admin",
	})

	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if len(f.userRepo.created) != 0 || len(f.adminRepo.created) != 0 {
		t.Fatal("validation failure must not touch storage")
	}
	// No transaction may have been opened.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected driver traffic: %v", err)
	}
}

func TestRegister_UnknownRole(t *testing.T) {
	t.Parallel()

	f, _ := newAuthUsecaseForTest(t)

	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username: "x",
		Email:    "x@clinic.test",
		Password: "password123",
		Role:     "nurse",
	})

	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if _, ok := fieldErrs["role"]; !ok {
		t.Fatalf("expected role key, got %v", fieldErrs)
	}
}

func TestRegister_DuplicateMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{"username", "uni_users_username", ErrUsernameAlreadyExists},
		{"email", "uni_users_email", ErrEmailAlreadyExists},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f, mock := newAuthUsecaseForTest(t)
			f.userRepo.createErr = pgDuplicateErr(tc.constraint)

			mock.ExpectBegin()
			mock.ExpectRollback()

			_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
				Username:  "root",
				Email:     "root@clinic.test",
				Password:  "password123",
				Role:      "admin",
				AdminCode: "A-1",
			})
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expected rollback: %v", err)
			}
		})
	}
}

func TestRegister_ProfileInsertFailureRollsBack(t *testing.T) {
	t.Parallel()

	f, mock := newAuthUsecaseForTest(t)
	f.doctorRepo.createErr = pgDuplicateErr("uni_doctor_profiles_license_number")

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username:       "drwho",
		Email:          "drwho@clinic.test",
		Password:       "password123",
		Role:           "doctor",
		Specialization: "Cardiology",
		LicenseNumber:  "LIC1",
		HospitalName:   "GenHosp",
	})
	if !errors.Is(err, ErrLicenseNumberExists) {
		t.Fatalf("error = %v, want ErrLicenseNumberExists", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected rollback, identity insert must not survive: %v", err)
	}
}

func TestRegister_StaffFKFailureMapsToMissingDoctor(t *testing.T) {
	t.Parallel()

	f, mock := newAuthUsecaseForTest(t)
	doctorID := uuid.New()
	f.doctorRepo.byUserID[doctorID] = &entity.DoctorProfile{
		UserID: doctorID,
		User:   entity.User{ID: doctorID, Role: entity.RoleDoctor},
	}
	f.staffRepo.createErr = pgForeignKeyErr("fk_staff_profiles_doctor")

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username:   "desk",
		Email:      "desk@clinic.test",
		Password:   "password123",
		Role:       "staff",
		EmployeeID: "EMP-1",
		Department: "Radiology",
		DoctorID:   doctorID.String(),
	})
	if !errors.Is(err, ErrReferencedDoctorMissing) {
		t.Fatalf("error = %v, want ErrReferencedDoctorMissing", err)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	f, _ := newAuthUsecaseForTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	userID := uuid.New()
	user := &entity.User{
		ID:       userID,
		Username: "drwho",
		Email:    "drwho@clinic.test",
		Password: string(hash),
		Role:     entity.RoleDoctor,
		DoctorProfile: &entity.DoctorProfile{
			UserID:         userID,
			Specialization: "Cardiology",
			LicenseNumber:  "LIC1",
			HospitalName:   "GenHosp",
		},
	}
	f.userRepo.byUsername["drwho"] = user
	f.userRepo.byID[userID] = user

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "drwho", Password: "password123"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User == nil || resp.User.ID != userID {
		t.Fatalf("unexpected user in response: %+v", resp.User)
	}
	if _, ok := resp.User.Profile.(*dto.DoctorProfileResponse); !ok {
		t.Fatalf("expected doctor profile, got %T", resp.User.Profile)
	}

	// Both token ids land in the allow-list.
	if len(f.tokenStore.saved) != 2 {
		t.Fatalf("saved %d tokens, want 2", len(f.tokenStore.saved))
	}
	types := map[jwt.TokenType]bool{}
	for _, s := range f.tokenStore.saved {
		if s.userID != userID {
			t.Fatalf("token stored for wrong user %s", s.userID)
		}
		types[s.tokenType] = true
	}
	if !types[jwt.AccessToken] || !types[jwt.RefreshToken] {
		t.Fatalf("token types stored: %v", types)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	f, _ := newAuthUsecaseForTest(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	userID := uuid.New()
	f.userRepo.byUsername["drwho"] = &entity.User{ID: userID, Username: "drwho", Password: string(hash), Role: entity.RoleDoctor}

	// Unknown username and wrong password are indistinguishable to the
	// caller.
	if _, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown username: error = %v", err)
	}
	if _, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "drwho", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: error = %v", err)
	}
	if len(f.tokenStore.saved) != 0 {
		t.Fatal("no tokens may be issued on failed login")
	}
}

func TestRefreshToken_RotatesPair(t *testing.T) {
	t.Parallel()

	f, _ := newAuthUsecaseForTest(t)
	svc := newTestJWTService()

	userID := uuid.New()
	f.userRepo.byID[userID] = &entity.User{ID: userID, Username: "drwho", Role: entity.RoleDoctor}

	refreshToken, refreshTokenID, err := svc.GenerateRefreshToken(userID, "drwho", "doctor")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	resp, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected fresh token pair")
	}

	// The presented refresh token is consumed.
	found := false
	for _, d := range f.tokenStore.deleted {
		if d.tokenType == jwt.RefreshToken && d.tokenID == refreshTokenID {
			found = true
		}
	}
	if !found {
		t.Fatal("old refresh token was not deleted")
	}
	if len(f.tokenStore.saved) != 2 {
		t.Fatalf("saved %d tokens, want 2", len(f.tokenStore.saved))
	}
}

func TestRefreshToken_Revoked(t *testing.T) {
	t.Parallel()

	f, _ := newAuthUsecaseForTest(t)
	svc := newTestJWTService()

	userID := uuid.New()
	refreshToken, refreshTokenID, err := svc.GenerateRefreshToken(userID, "drwho", "doctor")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	f.tokenStore.missing = map[string]bool{refreshTokenID: true}

	if _, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refreshToken}); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("error = %v, want ErrTokenRevoked", err)
	}
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	f, _ := newAuthUsecaseForTest(t)
	svc := newTestJWTService()

	accessToken, _, err := svc.GenerateAccessToken(uuid.New(), "drwho", "doctor")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: accessToken}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
}

func TestLogout_DeletesBothTokens(t *testing.T) {
	t.Parallel()

	f, _ := newAuthUsecaseForTest(t)
	userID := uuid.New()

	if err := f.usecase.Logout(context.Background(), userID, "access-id", "refresh-id"); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if len(f.tokenStore.deleted) != 2 {
		t.Fatalf("deleted %d tokens, want 2", len(f.tokenStore.deleted))
	}
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	t.Parallel()

	f, _ := newAuthUsecaseForTest(t)

	if _, err := f.usecase.GetCurrentUser(context.Background(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("error = %v, want ErrUserNotFound", err)
	}
}
