package repository

import (
	"gorm.io/gorm"

	"lifedrop/internal/models"
)

type RequestRepository interface {
	Create(request *models.BloodRequest) error
	// FindAll returns requests newest first, optionally filtered by status.
	// An empty status means no filter.
	FindAll(status string) ([]models.BloodRequest, error)
	FindByID(id uint) (*models.BloodRequest, error)
	Update(request *models.BloodRequest) error
	Delete(id uint) error
	Count(status string) (int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db}
}

func (r *requestRepository) Create(request *models.BloodRequest) error {
	return r.db.Create(request).Error
}

func (r *requestRepository) FindAll(status string) ([]models.BloodRequest, error) {
	query := r.db.Model(&models.BloodRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.BloodRequest
	err := query.Order("created_at desc").Find(&requests).Error
	return requests, err
}

func (r *requestRepository) FindByID(id uint) (*models.BloodRequest, error) {
	var request models.BloodRequest
	err := r.db.First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) Update(request *models.BloodRequest) error {
	return r.db.Save(request).Error
}

func (r *requestRepository) Delete(id uint) error {
	return r.db.Delete(&models.BloodRequest{}, id).Error
}

func (r *requestRepository) Count(status string) (int64, error) {
	query := r.db.Model(&models.BloodRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
