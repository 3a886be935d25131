package dto

// CreateStaffRequest is the doctor self-service variant of registration.
// The supervising doctor is always the acting doctor; any caller-supplied
// doctor reference is ignored.
type CreateStaffRequest struct {
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	FirstName  string `json:"first_name" validate:"omitempty"`
	LastName   string `json:"last_name" validate:"omitempty"`
	EmployeeID string `json:"employee_id" validate:"omitempty"`
	Department string `json:"department" validate:"omitempty"`
}
