package repositories

import (
	"goosedoor_backend/internal/models"

	"gorm.io/gorm"
)

// PlatformOverview aggregates across all offers.
type PlatformOverview struct {
	TotalOffers    int64   `json:"total_offers"`
	VerifiedOffers int64   `json:"verified_offers"`
	AverageSalary  float64 `json:"average_salary"`
	AverageRating  float64 `json:"average_rating"`
}

// CompanyStats aggregates one company's offers.
type CompanyStats struct {
	CompanyName   string  `json:"company_name"`
	OfferCount    int64   `json:"offer_count"`
	AverageSalary float64 `json:"average_salary"`
	AverageRating float64 `json:"average_rating"`
}

type AnalyticsRepository interface {
	GetOverview() (*PlatformOverview, error)
	GetCompanyStats(limit int) ([]CompanyStats, error)
}

type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

func (r *AnalyticsRepositoryImpl) GetOverview() (*PlatformOverview, error) {
	var overview PlatformOverview

	if err := r.db.Model(&models.Offer{}).Count(&overview.TotalOffers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Offer{}).
		Where("verification_status = ?", models.VerificationVerified).
		Count(&overview.VerifiedOffers).Error; err != nil {
		return nil, err
	}

	if overview.TotalOffers > 0 {
		row := r.db.Model(&models.Offer{}).
			Select("AVG(salary_hourly) AS avg_salary, AVG(experience_rating) AS avg_rating").
			Row()
		if err := row.Scan(&overview.AverageSalary, &overview.AverageRating); err != nil {
			return nil, err
		}
	}

	return &overview, nil
}

func (r *AnalyticsRepositoryImpl) GetCompanyStats(limit int) ([]CompanyStats, error) {
	if limit <= 0 {
		limit = 20
	}

	var stats []CompanyStats
	err := r.db.Model(&models.Offer{}).
		Select(`company_name,
			COUNT(*) AS offer_count,
			AVG(salary_hourly) AS average_salary,
			AVG(experience_rating) AS average_rating`).
		Group("company_name").
		Order("offer_count DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}
