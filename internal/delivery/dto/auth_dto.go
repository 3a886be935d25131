package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

// RegisterRequest carries the union of all role schemas as a flat field bag.
// Per-field shape checks live in the validator tags; the role-conditional
// rules are applied by the usecase.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"omitempty"`
	LastName  string `json:"last_name" validate:"omitempty"`
	Role      string `json:"role" validate:"required"`

	// Admin fields
	AdminCode string `json:"admin_code" validate:"omitempty"`

	// Doctor fields
	Specialization string `json:"specialization" validate:"omitempty"`
	LicenseNumber  string `json:"license_number" validate:"omitempty"`
	HospitalName   string `json:"hospital_name" validate:"omitempty"`
	DegreeDocument string `json:"degree_document" validate:"omitempty"`

	// Patient fields
	MedicalHistory  string `json:"medical_history" validate:"omitempty"`
	InsuranceNumber string `json:"insurance_number" validate:"omitempty"`
	BirthDate       string `json:"birth_date" validate:"omitempty"` // Format: YYYY-MM-DD

	// Staff fields
	EmployeeID string `json:"employee_id" validate:"omitempty"`
	Department string `json:"department" validate:"omitempty"`
	DoctorID   string `json:"doctor_id" validate:"omitempty,uuid"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginResponse pairs the presented user with the issued token pair.
type LoginResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
}

// UserResponse is the public view of an identity. Profile holds the
// role-specific sub-object; an empty object when the profile record is
// missing. The password hash is never included.
type UserResponse struct {
	ID       uuid.UUID   `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     string      `json:"role"`
	Profile  interface{} `json:"profile"`
}

type AdminProfileResponse struct {
	AdminCode string `json:"admin_code"`
}

type DoctorProfileResponse struct {
	Specialization string `json:"specialization"`
	LicenseNumber  string `json:"license_number"`
	HospitalName   string `json:"hospital_name"`
}

type PatientProfileResponse struct {
	MedicalHistory  string  `json:"medical_history"`
	BirthDate       *string `json:"birth_date"` // Format: YYYY-MM-DD
	InsuranceNumber string  `json:"insurance_number"`
}

type StaffProfileResponse struct {
	EmployeeID string     `json:"employee_id"`
	Department string     `json:"department"`
	DoctorID   *uuid.UUID `json:"doctor_id"`
}
