package repositories

import (
	"errors"
	"time"

	"goosedoor_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
)

// OfferSort options accepted by FindWithFilter.
const (
	SortNewest     = "newest"
	SortSalaryDesc = "salary_desc"
	SortSalaryAsc  = "salary_asc"
	SortRating     = "rating"
)

type OfferFilter struct {
	Search     string   // matches company, role, location
	Verified   *bool    // nil = both
	JobTypes   []string
	WorkTypes  []string
	Levels     []string
	University string
	MinSalary  *float64
	MaxSalary  *float64
	Sort       string
	Page       int
	PageSize   int
}

type OfferRepository interface {
	Create(offer *models.Offer) error
	FindByID(id string) (*models.Offer, error)
	FindWithFilter(filter OfferFilter) ([]models.Offer, int64, error)
	FindByUser(userID string) ([]models.Offer, error)
	Update(offer *models.Offer) error
	Delete(id string) error

	// Verification state transitions.
	SetVerificationToken(offerID, token string) (int64, error)
	MarkVerified(offerID, token string, at time.Time) (int64, error)

	UpdateSentiment(offerID string, sentiment models.Sentiment) error
	FindReviewsByCompany(companyName string) ([]models.Offer, error)
}

type OfferRepositoryImpl struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &OfferRepositoryImpl{db: db}
}

func (r *OfferRepositoryImpl) Create(offer *models.Offer) error {
	return r.db.Create(offer).Error
}

func (r *OfferRepositoryImpl) FindByID(id string) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.First(&offer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepositoryImpl) FindWithFilter(filter OfferFilter) ([]models.Offer, int64, error) {
	query := r.db.Model(&models.Offer{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"company_name ILIKE ? OR role_title ILIKE ? OR location ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Verified != nil {
		if *filter.Verified {
			query = query.Where("verification_status = ?", models.VerificationVerified)
		} else {
			query = query.Where("verification_status <> ?", models.VerificationVerified)
		}
	}
	if len(filter.JobTypes) > 0 {
		query = query.Where("job_type IN ?", filter.JobTypes)
	}
	if len(filter.WorkTypes) > 0 {
		query = query.Where("work_type IN ?", filter.WorkTypes)
	}
	if len(filter.Levels) > 0 {
		query = query.Where("level IN ?", filter.Levels)
	}
	if filter.University != "" {
		query = query.Where("university = ?", filter.University)
	}
	if filter.MinSalary != nil {
		query = query.Where("salary_hourly >= ?", *filter.MinSalary)
	}
	if filter.MaxSalary != nil {
		query = query.Where("salary_hourly <= ?", *filter.MaxSalary)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case SortSalaryDesc:
		query = query.Order("salary_hourly DESC")
	case SortSalaryAsc:
		query = query.Order("salary_hourly ASC")
	case SortRating:
		query = query.Order("experience_rating DESC")
	default:
		query = query.Order("created_at DESC")
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	var offers []models.Offer
	err := query.Limit(pageSize).Offset((page - 1) * pageSize).Find(&offers).Error
	return offers, total, err
}

func (r *OfferRepositoryImpl) FindByUser(userID string) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&offers).Error
	return offers, err
}

func (r *OfferRepositoryImpl) Update(offer *models.Offer) error {
	return r.db.Save(offer).Error
}

func (r *OfferRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Offer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferNotFound
	}
	return nil
}

// SetVerificationToken stores a freshly minted token and moves the
// offer to pending. A new token overwrites any previous pending token,
// invalidating it. Verified offers are never touched; the returned row
// count is 0 in that case.
func (r *OfferRepositoryImpl) SetVerificationToken(offerID, token string) (int64, error) {
	result := r.db.Model(&models.Offer{}).
		Where("id = ? AND verification_status <> ?", offerID, models.VerificationVerified).
		Updates(map[string]interface{}{
			"verification_status": models.VerificationPending,
			"verification_token":  token,
		})
	return result.RowsAffected, result.Error
}

// MarkVerified performs the redemption as a single conditional UPDATE:
// only a pending offer holding exactly this token transitions, and the
// token is cleared in the same statement. Two concurrent redemptions
// cannot both match the WHERE clause, so at most one reports a row.
func (r *OfferRepositoryImpl) MarkVerified(offerID, token string, at time.Time) (int64, error) {
	result := r.db.Model(&models.Offer{}).
		Where("id = ? AND verification_status = ? AND verification_token = ?",
			offerID, models.VerificationPending, token).
		Updates(map[string]interface{}{
			"verification_status": models.VerificationVerified,
			"verification_token":  nil,
			"verified_at":         at,
		})
	return result.RowsAffected, result.Error
}

func (r *OfferRepositoryImpl) UpdateSentiment(offerID string, sentiment models.Sentiment) error {
	return r.db.Model(&models.Offer{}).
		Where("id = ?", offerID).
		Update("sentiment", sentiment).Error
}

func (r *OfferRepositoryImpl) FindReviewsByCompany(companyName string) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.
		Where("company_name = ? AND review_text IS NOT NULL", companyName).
		Find(&offers).Error
	return offers, err
}
