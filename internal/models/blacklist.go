package models

// BlacklistedCompany is a community report of a company with
// unacceptable practices ("Hall of Shame"). Entries are unverified.
type BlacklistedCompany struct {
	BaseModel
	CompanyName string  `gorm:"size:100;not null;index" json:"company_name"`
	Reason      string  `gorm:"size:1000;not null" json:"reason"`
	ReportedBy  *string `gorm:"type:uuid" json:"reported_by,omitempty"`
}
