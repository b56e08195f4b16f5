package models

import (
	"time"

	"github.com/lib/pq"
)

// Offer is one submitted co-op compensation report.
type Offer struct {
	BaseModel
	CompanyName      string         `gorm:"size:100;not null;index" json:"company_name"`
	RoleTitle        string         `gorm:"size:100;not null" json:"role_title"`
	Location         string         `gorm:"size:100;not null" json:"location"`
	SalaryHourly     float64        `gorm:"not null" json:"salary_hourly"`
	Currency         string         `gorm:"size:10;default:'CAD'" json:"currency"`
	TechStack        pq.StringArray `gorm:"type:text[]" json:"tech_stack"`
	ExperienceRating int            `gorm:"not null" json:"experience_rating"`
	ReviewText       *string        `gorm:"size:1000" json:"review_text,omitempty"`
	Sentiment        *Sentiment     `gorm:"size:10" json:"sentiment,omitempty"`

	// Academic metadata
	Program     string `gorm:"size:100" json:"program,omitempty"`
	YearOfStudy string `gorm:"size:10" json:"year_of_study,omitempty"`
	University  string `gorm:"size:100" json:"university,omitempty"`
	Term        string `gorm:"size:50" json:"term"`

	// Classifiers
	JobType  string `gorm:"size:50" json:"job_type,omitempty"`
	Level    string `gorm:"size:50" json:"level,omitempty"`
	WorkType string `gorm:"size:50" json:"work_type,omitempty"`

	// Verification sub-state. Token is set exactly while pending and
	// cleared in the same update that marks the offer verified, so a
	// redeemed link replays harmlessly.
	VerificationStatus VerificationStatus `gorm:"size:20;not null;default:'unverified';index" json:"verification_status"`
	VerificationToken  *string            `gorm:"size:64" json:"-"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty"`

	// Optional owner for later edit/delete; anonymous offers omit this.
	UserID       *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	ContactEmail *string `gorm:"size:100" json:"-"`
}

// IsVerified reports whether the offer reached the terminal verified state.
func (o *Offer) IsVerified() bool {
	return o.VerificationStatus == VerificationVerified
}
