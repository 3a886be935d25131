package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-clinic-registry/internal/delivery/dto"
	"go-clinic-registry/internal/usecase"
	"go-clinic-registry/pkg/response"
	"go-clinic-registry/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// GetMyDoctor handles the my-doctor lookup
// @Summary Get my doctor
// @Description Return the actor's own view when the actor is a doctor, or the supervising doctor's view when the actor is staff
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctor [get]
func (h *DoctorHandler) GetMyDoctor(w http.ResponseWriter, r *http.Request) {
	user, err := h.doctorUsecase.GetMyDoctor(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidUserRole):
			response.Error(w, http.StatusBadRequest, "Invalid user role", nil)
		case errors.Is(err, usecase.ErrNoDoctorAssigned), errors.Is(err, usecase.ErrUserNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, usecase.ErrActorNotFound):
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to get doctor info")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", user)
}

// CreateStaff handles doctor self-service staff creation
// @Summary Create a staff account
// @Description Provision a staff account supervised by the acting doctor
// @Tags Doctor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateStaffRequest true "Create Staff Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /doctor/staff [post]
func (h *DoctorHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.doctorUsecase.CreateStaff(r.Context(), &req)
	if err != nil {
		var fieldErrors usecase.FieldErrors
		switch {
		case errors.Is(err, usecase.ErrOnlyDoctors):
			response.Forbidden(w, "Only doctors can create staff accounts")
		case errors.As(err, &fieldErrors):
			response.ValidationError(w, fieldErrors)
		case errors.Is(err, usecase.ErrUsernameAlreadyExists),
			errors.Is(err, usecase.ErrEmailAlreadyExists),
			errors.Is(err, usecase.ErrEmployeeIDExists):
			response.Error(w, http.StatusConflict, err.Error(), nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, usecase.ErrActorNotFound):
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to create staff account")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Staff account created successfully", user)
}
