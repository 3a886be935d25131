package usecase

import (
	"time"

	"go-clinic-registry/internal/delivery/dto"
	"go-clinic-registry/internal/domain/entity"
	"go-clinic-registry/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// validatedProfile is the registration field bag narrowed to the subset the
// selected role actually uses, ready for provisioning.
type validatedProfile struct {
	role entity.Role

	adminCode string

	specialization string
	licenseNumber  string
	hospitalName   string
	degreeDocument string

	medicalHistory  string
	insuranceNumber string
	birthDate       *time.Time

	employeeID string
	department string
	doctorID   *uuid.UUID
}

// validateRegistration applies the role-conditional field rules. Checks run
// sequentially and stop at the first failing rule, so a failure always
// reports exactly one key. Fields irrelevant to the selected role are
// ignored, never rejected.
//
// Rules by role:
//   - admin:   admin_code required
//   - doctor:  specialization, license_number and hospital_name all required
//   - patient: at least one of medical_history, insurance_number, birth_date
//   - staff:   employee_id, department and doctor_id all required; doctor_id
//     must resolve to an identity with role=doctor owning a doctor profile
func validateRegistration(db *gorm.DB, doctorRepo repository.DoctorProfileRepository, role entity.Role, req *dto.RegisterRequest) (*validatedProfile, error) {
	profile := &validatedProfile{role: role}

	switch role {
	case entity.RoleAdmin:
		if req.AdminCode == "" {
			return nil, FieldErrors{"admin_code": "Admin code is required for admin role."}
		}
		profile.adminCode = req.AdminCode

	case entity.RoleDoctor:
		if req.Specialization == "" || req.LicenseNumber == "" || req.HospitalName == "" {
			return nil, FieldErrors{"doctor_details": "Specialization, license number, and hospital name are required for doctor role."}
		}
		profile.specialization = req.Specialization
		profile.licenseNumber = req.LicenseNumber
		profile.hospitalName = req.HospitalName
		profile.degreeDocument = req.DegreeDocument

	case entity.RolePatient:
		var birthDate *time.Time
		if req.BirthDate != "" {
			parsed, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				return nil, FieldErrors{"birth_date": "Birth date must be a valid date in YYYY-MM-DD format."}
			}
			birthDate = &parsed
		}
		if req.MedicalHistory == "" && req.InsuranceNumber == "" && birthDate == nil {
			return nil, FieldErrors{"patient_details": "At least one of medical history, insurance number, or birth date is required for patient role."}
		}
		profile.medicalHistory = req.MedicalHistory
		profile.insuranceNumber = req.InsuranceNumber
		profile.birthDate = birthDate

	case entity.RoleStaff:
		if req.EmployeeID == "" || req.Department == "" || req.DoctorID == "" {
			return nil, FieldErrors{"staff_details": "Employee ID, department, and doctor ID are required for staff role."}
		}
		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			return nil, FieldErrors{"doctor_id": "Doctor with this ID does not exist."}
		}
		doctor, err := doctorRepo.FindByUserID(db, doctorID)
		if err != nil {
			return nil, err
		}
		if doctor == nil || doctor.User.Role != entity.RoleDoctor {
			return nil, FieldErrors{"doctor_id": "Doctor with this ID does not exist."}
		}
		profile.employeeID = req.EmployeeID
		profile.department = req.Department
		profile.doctorID = &doctor.UserID

	default:
		return nil, FieldErrors{"role": "Role must be one of admin, doctor, patient, staff."}
	}

	return profile, nil
}
