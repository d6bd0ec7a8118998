package repository

import (
	"gorm.io/gorm"

	"lifedrop/internal/models"
)

type DonationRepository interface {
	Create(donation *models.DonationRecord) error
	// FindByDonorID returns a donor's records sorted by donation date,
	// most recent first.
	FindByDonorID(donorID uint) ([]models.DonationRecord, error)
	// FindLatestByDonorID returns the donor's most recent record, or
	// gorm.ErrRecordNotFound when the donor has never donated.
	FindLatestByDonorID(donorID uint) (*models.DonationRecord, error)
	FindAll() ([]models.DonationRecord, error)
	FindByID(id uint) (*models.DonationRecord, error)
	Delete(id uint) error
	Count() (int64, error)
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db}
}

func (r *donationRepository) Create(donation *models.DonationRecord) error {
	return r.db.Create(donation).Error
}

func (r *donationRepository) FindByDonorID(donorID uint) ([]models.DonationRecord, error) {
	var donations []models.DonationRecord
	err := r.db.Where("donor_id = ?", donorID).
		Order("donation_date desc").
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) FindLatestByDonorID(donorID uint) (*models.DonationRecord, error) {
	var donation models.DonationRecord
	err := r.db.Where("donor_id = ?", donorID).
		Order("donation_date desc").
		First(&donation).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) FindAll() ([]models.DonationRecord, error) {
	var donations []models.DonationRecord
	err := r.db.Preload("Donor").
		Order("donation_date desc").
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) FindByID(id uint) (*models.DonationRecord, error) {
	var donation models.DonationRecord
	err := r.db.First(&donation, id).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) Delete(id uint) error {
	return r.db.Delete(&models.DonationRecord{}, id).Error
}

func (r *donationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.DonationRecord{}).Count(&count).Error
	return count, err
}
