package mocks

import (
	"github.com/stretchr/testify/mock"

	"lifedrop/internal/models"
	"lifedrop/internal/repository"
)

// Shared MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUserWithDonations(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) FindAllUsers() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) FindDonors(availableOnly bool, page, limit int) ([]models.User, int64, error) {
	args := m.Called(availableOnly, page, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CountUsers(filter repository.UserCountFilter) (int64, error) {
	args := m.Called(filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) TopCities(limit int) ([]repository.CityCount, error) {
	args := m.Called(limit)
	return args.Get(0).([]repository.CityCount), args.Error(1)
}

func (m *MockUserRepository) CommonBloodGroup() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// Shared MockDonationRepository
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Create(donation *models.DonationRecord) error {
	args := m.Called(donation)
	return args.Error(0)
}

func (m *MockDonationRepository) FindByDonorID(donorID uint) ([]models.DonationRecord, error) {
	args := m.Called(donorID)
	return args.Get(0).([]models.DonationRecord), args.Error(1)
}

func (m *MockDonationRepository) FindLatestByDonorID(donorID uint) (*models.DonationRecord, error) {
	args := m.Called(donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DonationRecord), args.Error(1)
}

func (m *MockDonationRepository) FindAll() ([]models.DonationRecord, error) {
	args := m.Called()
	return args.Get(0).([]models.DonationRecord), args.Error(1)
}

func (m *MockDonationRepository) FindByID(id uint) (*models.DonationRecord, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DonationRecord), args.Error(1)
}

func (m *MockDonationRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDonationRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// Shared MockRequestRepository
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(request *models.BloodRequest) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *MockRequestRepository) FindAll(status string) ([]models.BloodRequest, error) {
	args := m.Called(status)
	return args.Get(0).([]models.BloodRequest), args.Error(1)
}

func (m *MockRequestRepository) FindByID(id uint) (*models.BloodRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BloodRequest), args.Error(1)
}

func (m *MockRequestRepository) Update(request *models.BloodRequest) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *MockRequestRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRequestRepository) Count(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}
