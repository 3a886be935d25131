package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	Scheduled string `json:"scheduled" validate:"required"` // RFC 3339
	Remarks   string `json:"remarks" validate:"omitempty,max=100"`
	DoctorID  string `json:"doctor_id" validate:"required,uuid"`
	PatientID string `json:"patient_id" validate:"required,uuid"`
}

// Response DTOs

type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointNumber string    `json:"appoint_number"`
	Scheduled     time.Time `json:"scheduled"`
	Remarks       string    `json:"remarks,omitempty"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	PatientID     uuid.UUID `json:"patient_id"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
