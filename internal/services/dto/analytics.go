package dto

type CompanySummaryResponse struct {
	CompanyName string `json:"company_name"`
	Summary     string `json:"summary"`
	ReviewCount int    `json:"review_count"`
}
