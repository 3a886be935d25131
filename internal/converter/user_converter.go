package converter

import (
	"go-clinic-registry/internal/delivery/dto"
	"go-clinic-registry/internal/domain/entity"
)

// emptyProfile renders as {} for identities whose profile record is missing.
var emptyProfile = struct{}{}

// UserToResponse renders an identity plus its role profile into the public
// view. The profile sub-object shape is selected by the role tag; a missing
// profile record degrades to an empty object rather than an error. The
// password hash is never carried over.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role.String(),
		Profile:  emptyProfile,
	}

	switch user.Role {
	case entity.RoleAdmin:
		if user.AdminProfile != nil {
			response.Profile = &dto.AdminProfileResponse{
				AdminCode: user.AdminProfile.AdminCode,
			}
		}
	case entity.RoleDoctor:
		if user.DoctorProfile != nil {
			response.Profile = &dto.DoctorProfileResponse{
				Specialization: user.DoctorProfile.Specialization,
				LicenseNumber:  user.DoctorProfile.LicenseNumber,
				HospitalName:   user.DoctorProfile.HospitalName,
			}
		}
	case entity.RolePatient:
		if user.PatientProfile != nil {
			var birthDate *string
			if user.PatientProfile.BirthDate != nil {
				formatted := user.PatientProfile.BirthDate.Format("2006-01-02")
				birthDate = &formatted
			}
			response.Profile = &dto.PatientProfileResponse{
				MedicalHistory:  user.PatientProfile.MedicalHistory,
				BirthDate:       birthDate,
				InsuranceNumber: user.PatientProfile.InsuranceNumber,
			}
		}
	case entity.RoleStaff:
		if user.StaffProfile != nil {
			response.Profile = &dto.StaffProfileResponse{
				EmployeeID: user.StaffProfile.EmployeeID,
				Department: user.StaffProfile.Department,
				DoctorID:   user.StaffProfile.DoctorID,
			}
		}
	}

	return response
}

// HasProfile reports whether the profile record matching the user's role tag
// is loaded. Callers use this to log the role/profile mismatch the presenter
// silently degrades over.
func HasProfile(user *entity.User) bool {
	if user == nil {
		return false
	}
	switch user.Role {
	case entity.RoleAdmin:
		return user.AdminProfile != nil
	case entity.RoleDoctor:
		return user.DoctorProfile != nil
	case entity.RolePatient:
		return user.PatientProfile != nil
	case entity.RoleStaff:
		return user.StaffProfile != nil
	}
	return false
}
