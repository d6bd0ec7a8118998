package repository

import (
	"time"

	"gorm.io/gorm"

	"lifedrop/internal/models"
)

// UserCountFilter narrows the admin user-count query. Nil pointer fields
// mean "do not filter on this".
type UserCountFilter struct {
	Available       *bool
	Admin           *bool
	RegisteredSince *time.Time
}

// CityCount is one row of the top-cities aggregation.
type CityCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	UpdateUser(user *models.User) error
	// DeleteUserWithDonations removes the user and all of their donation
	// records in a single transaction.
	DeleteUserWithDonations(id uint) error
	FindAllUsers() ([]models.User, error)
	// FindDonors returns non-admin users ordered by name, paginated, along
	// with the total number of matching donors.
	FindDonors(availableOnly bool, page, limit int) ([]models.User, int64, error)
	CountUsers(filter UserCountFilter) (int64, error)
	TopCities(limit int) ([]CityCount, error)
	CommonBloodGroup() (string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) DeleteUserWithDonations(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("donor_id = ?", id).Delete(&models.DonationRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

func (r *userRepository) FindAllUsers() ([]models.User, error) {
	var users []models.User
	err := r.db.Find(&users).Error
	return users, err
}

func (r *userRepository) FindDonors(availableOnly bool, page, limit int) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).Where("is_admin = ?", false)
	if availableOnly {
		query = query.Where("available_to_donate = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donors []models.User
	err := query.
		Order("name asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&donors).Error
	return donors, total, err
}

func (r *userRepository) CountUsers(filter UserCountFilter) (int64, error) {
	query := r.db.Model(&models.User{})
	if filter.Available != nil {
		query = query.Where("available_to_donate = ?", *filter.Available)
	}
	if filter.Admin != nil {
		query = query.Where("is_admin = ?", *filter.Admin)
	}
	if filter.RegisteredSince != nil {
		query = query.Where("registered_at >= ?", *filter.RegisteredSince)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *userRepository) TopCities(limit int) ([]CityCount, error) {
	var cities []CityCount
	err := r.db.Model(&models.User{}).
		Select("city as name, count(*) as count").
		Group("city").
		Order("count desc").
		Limit(limit).
		Scan(&cities).Error
	return cities, err
}

func (r *userRepository) CommonBloodGroup() (string, error) {
	var row struct {
		BloodGroup string
	}
	err := r.db.Model(&models.User{}).
		Select("blood_group, count(*) as count").
		Group("blood_group").
		Order("count desc").
		Limit(1).
		Scan(&row).Error
	return row.BloodGroup, err
}
