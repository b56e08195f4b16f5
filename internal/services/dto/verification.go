package dto

type RequestVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerificationResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
