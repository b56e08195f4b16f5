package dto

import (
	"time"

	"goosedoor_backend/internal/models"
)

type ReportCompanyRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=100"`
	Reason      string `json:"reason" validate:"required,min=10,max=1000"`
}

type BlacklistedCompanyResponse struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Reason      string    `json:"reason"`
	ReportedBy  *string   `json:"reported_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func BlacklistToResponse(entry *models.BlacklistedCompany) *BlacklistedCompanyResponse {
	return &BlacklistedCompanyResponse{
		ID:          entry.ID,
		CompanyName: entry.CompanyName,
		Reason:      entry.Reason,
		ReportedBy:  entry.ReportedBy,
		CreatedAt:   entry.CreatedAt,
	}
}
