package usecase

import (
	"context"
	"errors"
	"time"

	"go-clinic-registry/internal/converter"
	"go-clinic-registry/internal/delivery/dto"
	"go-clinic-registry/internal/delivery/http/middleware"
	"go-clinic-registry/internal/domain/entity"
	"go-clinic-registry/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	// GetMyAppointments lists appointments visible to the actor: a doctor's
	// own, a staff member's supervising doctor's, a patient's own, or all
	// for an admin.
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
	patientRepo     repository.PatientProfileRepository
	staffRepo       repository.StaffProfileRepository
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	staffRepo repository.StaffProfileRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		staffRepo:       staffRepo,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	scheduled, err := time.Parse(time.RFC3339, req.Scheduled)
	if err != nil {
		return nil, FieldErrors{"scheduled": "Scheduled must be a valid RFC 3339 date-time."}
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, FieldErrors{"doctor_id": "Doctor with this ID does not exist."}
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, FieldErrors{"patient_id": "Patient with this ID does not exist."}
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, FieldErrors{"doctor_id": "Doctor with this ID does not exist."}
	}

	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, FieldErrors{"patient_id": "Patient with this ID does not exist."}
	}

	appointment := &entity.Appointment{
		AppointNumber: entity.GenerateAppointNumber(),
		Scheduled:     scheduled,
		Remarks:       req.Remarks,
		DoctorID:      doctor.UserID,
		PatientID:     patient.UserID,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		// An appoint_number collision is possible but negligible; it
		// surfaces as a unique violation like any other storage conflict.
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}
	role, ok := middleware.GetRoleFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}

	var (
		appointments []entity.Appointment
		err          error
	)

	switch entity.Role(role) {
	case entity.RoleDoctor:
		appointments, err = u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), actorID)
	case entity.RoleStaff:
		staff, staffErr := u.staffRepo.FindByUserID(u.db.WithContext(ctx), actorID)
		if staffErr != nil {
			u.log.Warnf("Failed to find staff profile: %+v", staffErr)
			return nil, staffErr
		}
		if staff == nil || staff.DoctorID == nil {
			return nil, ErrNoDoctorAssigned
		}
		appointments, err = u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), *staff.DoctorID)
	case entity.RolePatient:
		appointments, err = u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), actorID)
	case entity.RoleAdmin:
		appointments, err = u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	default:
		return nil, ErrInvalidUserRole
	}

	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}
