package repository

import (
	"time"

	"lingua_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) FindTopByXP(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("xp DESC").Limit(limit).Find(&users).Error
	return users, err
}

// FindWithActivity returns every user who has ever completed a lesson,
// i.e. has a last activity date. Used by the nightly streak sweep.
func (r *UserRepository) FindWithActivity() ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("last_activity_date IS NOT NULL").Find(&users).Error
	return users, err
}

// UpdateStreakFields writes only the streak columns of a profile.
func (r *UserRepository) UpdateStreakFields(userID string, streakCount, freezeCount int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"streak_count":        streakCount,
			"streak_freeze_count": freezeCount,
		}).Error
}

func (r *UserRepository) SetLoginEnabled(userID string, enabled bool) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("login_enabled", enabled).Error
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role   string
	Search string
}

func (r *UserRepository) List(page, pageSize int, filter UserFilter) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.DB.Model(&model.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ?", term, term)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&users).Error
	return users, total, err
}

// TouchTrialExpiry flips trial users to unpaid once their trial lapsed.
func (r *UserRepository) TouchTrialExpiry(now time.Time) error {
	return r.DB.Model(&model.User{}).
		Where("payment_status = ? AND trial_end_date IS NOT NULL AND trial_end_date < ?", model.PaymentTrial, now).
		Update("payment_status", model.PaymentUnpaid).Error
}
