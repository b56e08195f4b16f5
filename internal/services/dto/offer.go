package dto

import (
	"time"

	"goosedoor_backend/internal/models"
)

type CreateOfferRequest struct {
	CompanyName      string   `json:"company_name" validate:"required,min=2,max=100"`
	RoleTitle        string   `json:"role_title" validate:"required,max=100"`
	Location         string   `json:"location" validate:"required,max=100"`
	SalaryHourly     float64  `json:"salary_hourly" validate:"required"`
	Currency         string   `json:"currency" validate:"omitempty,max=10"`
	TechStack        []string `json:"tech_stack" validate:"omitempty,max=20,dive,max=50"`
	ExperienceRating int      `json:"experience_rating" validate:"required,min=1,max=5"`
	ReviewText       string   `json:"review_text" validate:"omitempty,max=1000"`
	Program          string   `json:"program" validate:"omitempty,max=100"`
	YearOfStudy      string   `json:"year_of_study" validate:"omitempty,studyterm"`
	University       string   `json:"university" validate:"omitempty,max=100"`
	Term             string   `json:"term" validate:"required,max=50"`
	JobType          string   `json:"job_type" validate:"omitempty,max=50"`
	Level            string   `json:"level" validate:"omitempty,max=50"`
	WorkType         string   `json:"work_type" validate:"omitempty,max=50"`

	// Optional institutional address; triggers a verification email
	// after the offer is stored.
	VerificationEmail string `json:"verification_email" validate:"omitempty,email"`

	// Anti-bot fields. The website honeypot must never be filled by a
	// human; form_rendered_at is when the form was first shown (unix ms).
	Website        string `json:"website"`
	FormRenderedAt int64  `json:"form_rendered_at"`
}

type UpdateOfferRequest struct {
	CompanyName      string   `json:"company_name" validate:"required,min=2,max=100"`
	RoleTitle        string   `json:"role_title" validate:"required,max=100"`
	Location         string   `json:"location" validate:"required,max=100"`
	SalaryHourly     float64  `json:"salary_hourly" validate:"required"`
	Currency         string   `json:"currency" validate:"omitempty,max=10"`
	TechStack        []string `json:"tech_stack" validate:"omitempty,max=20,dive,max=50"`
	ExperienceRating int      `json:"experience_rating" validate:"required,min=1,max=5"`
	ReviewText       string   `json:"review_text" validate:"omitempty,max=1000"`
	Program          string   `json:"program" validate:"omitempty,max=100"`
	YearOfStudy      string   `json:"year_of_study" validate:"omitempty,studyterm"`
	University       string   `json:"university" validate:"omitempty,max=100"`
	Term             string   `json:"term" validate:"required,max=50"`
	JobType          string   `json:"job_type" validate:"omitempty,max=50"`
	Level            string   `json:"level" validate:"omitempty,max=50"`
	WorkType         string   `json:"work_type" validate:"omitempty,max=50"`
}

type OfferListQuery struct {
	Search     string   `form:"search"`
	Verified   *bool    `form:"verified"`
	JobTypes   []string `form:"job_type"`
	WorkTypes  []string `form:"work_type"`
	Levels     []string `form:"level"`
	University string   `form:"university"`
	MinSalary  *float64 `form:"min_salary"`
	MaxSalary  *float64 `form:"max_salary"`
	Sort       string   `form:"sort" validate:"omitempty,oneof=newest salary_desc salary_asc rating"`
	Page       int      `form:"page"`
	PageSize   int      `form:"page_size"`
}

type OfferResponse struct {
	ID               string     `json:"id"`
	CompanyName      string     `json:"company_name"`
	RoleTitle        string     `json:"role_title"`
	Location         string     `json:"location"`
	SalaryHourly     float64    `json:"salary_hourly"`
	Currency         string     `json:"currency"`
	TechStack        []string   `json:"tech_stack"`
	ExperienceRating int        `json:"experience_rating"`
	ReviewText       string     `json:"review_text,omitempty"`
	Sentiment        string     `json:"sentiment,omitempty"`
	Program          string     `json:"program,omitempty"`
	YearOfStudy      string     `json:"year_of_study,omitempty"`
	University       string     `json:"university,omitempty"`
	Term             string     `json:"term"`
	JobType          string     `json:"job_type,omitempty"`
	Level            string     `json:"level,omitempty"`
	WorkType         string     `json:"work_type,omitempty"`
	IsVerified       bool       `json:"is_verified"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type CreateOfferResponse struct {
	Offer                 *OfferResponse `json:"offer"`
	VerificationEmailSent bool           `json:"verification_email_sent"`
	Warning               string         `json:"warning,omitempty"`
}

type OfferListResponse struct {
	Offers     []*OfferResponse `json:"offers"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// OfferToResponse maps a model to its API shape.
func OfferToResponse(offer *models.Offer) *OfferResponse {
	resp := &OfferResponse{
		ID:               offer.ID,
		CompanyName:      offer.CompanyName,
		RoleTitle:        offer.RoleTitle,
		Location:         offer.Location,
		SalaryHourly:     offer.SalaryHourly,
		Currency:         offer.Currency,
		TechStack:        offer.TechStack,
		ExperienceRating: offer.ExperienceRating,
		Program:          offer.Program,
		YearOfStudy:      offer.YearOfStudy,
		University:       offer.University,
		Term:             offer.Term,
		JobType:          offer.JobType,
		Level:            offer.Level,
		WorkType:         offer.WorkType,
		IsVerified:       offer.IsVerified(),
		VerifiedAt:       offer.VerifiedAt,
		CreatedAt:        offer.CreatedAt,
	}
	if offer.ReviewText != nil {
		resp.ReviewText = *offer.ReviewText
	}
	if offer.Sentiment != nil {
		resp.Sentiment = string(*offer.Sentiment)
	}
	return resp
}
