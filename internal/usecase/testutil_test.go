package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"go-clinic-registry/config"
	"go-clinic-registry/internal/delivery/http/middleware"
	"go-clinic-registry/internal/domain/entity"
	"go-clinic-registry/internal/domain/repository"
	"go-clinic-registry/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pgxpgconn "github.com/jackc/pgx/v5/pgconn"
)

// newTestDB opens gorm over sqlmock. Repositories in these tests are fakes,
// so the only driver traffic is transaction control.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New err: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open err: %v", err)
	}
	return gdb, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
}

// actorContext builds a request context the way the auth middleware does.
func actorContext(userID uuid.UUID, role entity.Role) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	return context.WithValue(ctx, middleware.RoleKey, role.String())
}

func pgDuplicateErr(constraint string) error {
	return &pgxpgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func pgForeignKeyErr(constraint string) error {
	return &pgxpgconn.PgError{Code: "23503", ConstraintName: constraint}
}

// -------- repository fakes --------

type fakeUserRepo struct {
	repository.UserRepository
	createErr  error
	created    []*entity.User
	byUsername map[string]*entity.User
	byID       map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	return f.byUsername[username], nil
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) FindByIDWithProfiles(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return f.byID[id], nil
}

type fakeAdminRepo struct {
	repository.AdminProfileRepository
	createErr error
	created   []*entity.AdminProfile
}

func (f *fakeAdminRepo) Create(db *gorm.DB, profile *entity.AdminProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, profile)
	return nil
}

type fakeDoctorRepo struct {
	repository.DoctorProfileRepository
	createErr error
	created   []*entity.DoctorProfile
	byUserID  map[uuid.UUID]*entity.DoctorProfile
}

func (f *fakeDoctorRepo) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, profile)
	return nil
}

func (f *fakeDoctorRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	return f.byUserID[userID], nil
}

type fakePatientRepo struct {
	repository.PatientProfileRepository
	createErr error
	created   []*entity.PatientProfile
	byUserID  map[uuid.UUID]*entity.PatientProfile
}

func (f *fakePatientRepo) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, profile)
	return nil
}

func (f *fakePatientRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	return f.byUserID[userID], nil
}

type fakeStaffRepo struct {
	repository.StaffProfileRepository
	createErr error
	created   []*entity.StaffProfile
	byUserID  map[uuid.UUID]*entity.StaffProfile
}

func (f *fakeStaffRepo) Create(db *gorm.DB, profile *entity.StaffProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, profile)
	return nil
}

func (f *fakeStaffRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.StaffProfile, error) {
	return f.byUserID[userID], nil
}

type fakeAppointmentRepo struct {
	repository.AppointmentRepository
	createErr error
	created   []*entity.Appointment
	byDoctor  map[uuid.UUID][]entity.Appointment
	byPatient map[uuid.UUID][]entity.Appointment
	all       []entity.Appointment
}

func (f *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, appointment)
	return nil
}

func (f *fakeAppointmentRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	return f.byDoctor[doctorID], nil
}

func (f *fakeAppointmentRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	return f.byPatient[patientID], nil
}

func (f *fakeAppointmentRepo) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	return f.all, nil
}

// -------- token store fake --------

type savedToken struct {
	tokenType jwt.TokenType
	userID    uuid.UUID
	tokenID   string
}

type fakeTokenStore struct {
	saved   []savedToken
	deleted []savedToken
	missing map[string]bool // token ids reported as revoked
	saveErr error
}

func (f *fakeTokenStore) Save(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, savedToken{tokenType, userID, tokenID})
	return nil
}

func (f *fakeTokenStore) Delete(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error {
	f.deleted = append(f.deleted, savedToken{tokenType, userID, tokenID})
	return nil
}

func (f *fakeTokenStore) Exists(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	return !f.missing[tokenID], nil
}
