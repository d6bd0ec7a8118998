package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"lifedrop/internal/controllers"
	"lifedrop/internal/models"
	"lifedrop/internal/utils"
	"lifedrop/tests/mocks"
)

// Test helper functions
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// authAs mimics AuthMiddleware by injecting token claims directly.
func authAs(userID uint, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("is_admin", isAdmin)
		c.Next()
	}
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	return response
}

func setupUserControllerWithMocks() (*controllers.UserController, *mocks.MockUserRepository, *mocks.MockDonationRepository) {
	mockUserRepo := new(mocks.MockUserRepository)
	mockDonationRepo := new(mocks.MockDonationRepository)
	controller := controllers.NewUserController(mockUserRepo, mockDonationRepo, nil)
	return controller, mockUserRepo, mockDonationRepo
}

func TestRegisterUser(t *testing.T) {
	os.Setenv("JWT_SECRET_KEY", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET_KEY")

	validBody := map[string]interface{}{
		"name":       "Tanvir Ahmed",
		"email":      "tanvir@example.com",
		"password":   "password123",
		"phone":      "01722222222",
		"bloodGroup": "O-",
		"dob":        "1992-07-04T00:00:00Z",
		"city":       "Sylhet",
		"address":    "House 3, Road 9",
	}

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(*mocks.MockUserRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "successful registration",
			requestBody: validBody,
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByEmail", "tanvir@example.com").Return(nil, gorm.ErrRecordNotFound)
				userRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "User registered successfully",
		},
		{
			name: "duplicate email",
			requestBody: func() map[string]interface{} {
				body := map[string]interface{}{}
				for k, v := range validBody {
					body[k] = v
				}
				return body
			}(),
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByEmail", "tanvir@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "User already exists",
		},
		{
			name: "unknown blood group",
			requestBody: func() map[string]interface{} {
				body := map[string]interface{}{}
				for k, v := range validBody {
					body[k] = v
				}
				body["bloodGroup"] = "Z+"
				return body
			}(),
			setupMocks:     func(userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name: "unknown city",
			requestBody: func() map[string]interface{} {
				body := map[string]interface{}{}
				for k, v := range validBody {
					body[k] = v
				}
				body["city"] = "Atlantis"
				return body
			}(),
			setupMocks:     func(userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
		{
			name: "missing password",
			requestBody: map[string]interface{}{
				"name":       "Tanvir Ahmed",
				"email":      "tanvir@example.com",
				"phone":      "01722222222",
				"bloodGroup": "O-",
				"dob":        "1992-07-04T00:00:00Z",
				"city":       "Sylhet",
			},
			setupMocks:     func(userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, userRepo, _ := setupUserControllerWithMocks()
			tt.setupMocks(userRepo)

			router := setupTestRouter()
			router.POST("/api/users/register", controller.RegisterUser)

			w := performJSON(router, "POST", "/api/users/register", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeResponse(t, w)
			assert.Contains(t, response["message"], tt.expectedMsg)

			if tt.expectedStatus == http.StatusCreated {
				data := response["data"].(map[string]interface{})
				assert.NotEmpty(t, data["token"])
				user := data["user"].(map[string]interface{})
				assert.Equal(t, "tanvir@example.com", user["email"])
				// Hashed password must never leak.
				assert.NotContains(t, user, "password")
			}

			userRepo.AssertExpectations(t)
		})
	}
}

func TestLoginUser(t *testing.T) {
	os.Setenv("JWT_SECRET_KEY", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET_KEY")

	testPassword := "password123"
	hashed, err := utils.HashPassword(testPassword)
	assert.NoError(t, err)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(*mocks.MockUserRepository)
		expectedStatus int
		expectedMsg    string
		checkToken     bool
	}{
		{
			name: "successful login",
			requestBody: map[string]interface{}{
				"email":    "ayesha@example.com",
				"password": testPassword,
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				user := &models.User{
					ID:       1,
					Email:    "ayesha@example.com",
					Password: hashed,
				}
				userRepo.On("GetUserByEmail", "ayesha@example.com").Return(user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "User logged in successfully",
			checkToken:     true,
		},
		{
			name: "user not found",
			requestBody: map[string]interface{}{
				"email":    "nobody@example.com",
				"password": testPassword,
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByEmail", "nobody@example.com").Return(nil, errors.New("user not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "User not found",
		},
		{
			name: "incorrect password",
			requestBody: map[string]interface{}{
				"email":    "ayesha@example.com",
				"password": "wrongpassword",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				user := &models.User{
					ID:       1,
					Email:    "ayesha@example.com",
					Password: hashed,
				}
				userRepo.On("GetUserByEmail", "ayesha@example.com").Return(user, nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Unauthorized",
		},
		{
			name: "missing password",
			requestBody: map[string]interface{}{
				"email": "ayesha@example.com",
			},
			setupMocks:     func(userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, userRepo, _ := setupUserControllerWithMocks()
			tt.setupMocks(userRepo)

			router := setupTestRouter()
			router.POST("/api/users/login", controller.LoginUser)

			w := performJSON(router, "POST", "/api/users/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeResponse(t, w)
			assert.Contains(t, response["message"], tt.expectedMsg)

			if tt.checkToken {
				data := response["data"].(map[string]interface{})
				assert.NotEmpty(t, data["token"])
			}

			userRepo.AssertExpectations(t)
		})
	}
}

func TestGetDonorByID(t *testing.T) {
	donor := &models.User{
		ID:                5,
		Name:              "Rakib Hasan",
		Email:             "rakib@example.com",
		Phone:             "01733333333",
		BloodGroup:        "AB+",
		DOB:               time.Date(1990, time.May, 20, 0, 0, 0, 0, time.UTC),
		City:              "Khulna",
		Address:           "House 8",
		AvailableToDonate: true,
	}

	tests := []struct {
		name          string
		viewerID      uint
		viewerIsAdmin bool
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockDonationRepository)
		expectStatus  int
		expectContact bool
	}{
		{
			name:     "stranger does not see contact info",
			viewerID: 42,
			setupMocks: func(userRepo *mocks.MockUserRepository, donationRepo *mocks.MockDonationRepository) {
				userRepo.On("GetUserByID", uint(5)).Return(donor, nil)
				donationRepo.On("FindLatestByDonorID", uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectStatus:  http.StatusOK,
			expectContact: false,
		},
		{
			name:     "donor sees their own contact info",
			viewerID: 5,
			setupMocks: func(userRepo *mocks.MockUserRepository, donationRepo *mocks.MockDonationRepository) {
				userRepo.On("GetUserByID", uint(5)).Return(donor, nil)
				donationRepo.On("FindLatestByDonorID", uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectStatus:  http.StatusOK,
			expectContact: true,
		},
		{
			name:          "admin sees contact info",
			viewerID:      42,
			viewerIsAdmin: true,
			setupMocks: func(userRepo *mocks.MockUserRepository, donationRepo *mocks.MockDonationRepository) {
				userRepo.On("GetUserByID", uint(5)).Return(donor, nil)
				donationRepo.On("FindLatestByDonorID", uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectStatus:  http.StatusOK,
			expectContact: true,
		},
		{
			name:     "admin account is not found through donor path",
			viewerID: 42,
			setupMocks: func(userRepo *mocks.MockUserRepository, donationRepo *mocks.MockDonationRepository) {
				adminUser := &models.User{ID: 5, Name: "Admin", IsAdmin: true}
				userRepo.On("GetUserByID", uint(5)).Return(adminUser, nil)
			},
			expectStatus: http.StatusNotFound,
		},
		{
			name:     "missing donor",
			viewerID: 42,
			setupMocks: func(userRepo *mocks.MockUserRepository, donationRepo *mocks.MockDonationRepository) {
				userRepo.On("GetUserByID", uint(5)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, userRepo, donationRepo := setupUserControllerWithMocks()
			tt.setupMocks(userRepo, donationRepo)

			router := setupTestRouter()
			router.GET("/api/users/:id", authAs(tt.viewerID, tt.viewerIsAdmin), controller.GetDonorByID)

			w := performJSON(router, "GET", "/api/users/5", nil)

			assert.Equal(t, tt.expectStatus, w.Code)
			response := decodeResponse(t, w)

			if tt.expectStatus != http.StatusOK {
				assert.Contains(t, response["message"], "Donor not found")
				return
			}

			data := response["data"].(map[string]interface{})
			donorView := data["donor"].(map[string]interface{})

			if tt.expectContact {
				assert.Equal(t, donor.Email, donorView["email"])
				assert.Equal(t, donor.Phone, donorView["phone"])
			} else {
				assert.NotContains(t, donorView, "email")
				assert.NotContains(t, donorView, "phone")
			}

			// No donation history: eligible with no wait.
			elig := data["eligibility"].(map[string]interface{})
			assert.Equal(t, true, elig["canDonate"])

			userRepo.AssertExpectations(t)
			donationRepo.AssertExpectations(t)
		})
	}
}

func TestGetDonorByIDEligibilityInCooldown(t *testing.T) {
	donor := &models.User{ID: 5, Name: "Rakib Hasan", BloodGroup: "AB+"}
	recent := time.Now().AddDate(0, 0, -10)

	controller, userRepo, donationRepo := setupUserControllerWithMocks()
	userRepo.On("GetUserByID", uint(5)).Return(donor, nil)
	donationRepo.On("FindLatestByDonorID", uint(5)).Return(&models.DonationRecord{
		ID:           1,
		DonorID:      5,
		DonationDate: recent,
		BloodGroup:   "AB+",
	}, nil)

	router := setupTestRouter()
	router.GET("/api/users/:id", authAs(42, false), controller.GetDonorByID)

	w := performJSON(router, "GET", "/api/users/5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	elig := data["eligibility"].(map[string]interface{})

	assert.Equal(t, false, elig["canDonate"])
	assert.Greater(t, elig["remainingDays"].(float64), float64(0))

	userRepo.AssertExpectations(t)
	donationRepo.AssertExpectations(t)
}

func TestGetAllDonors(t *testing.T) {
	controller, userRepo, _ := setupUserControllerWithMocks()
	donors := []models.User{
		{ID: 1, Name: "Ayesha Rahman", BloodGroup: "B+"},
		{ID: 2, Name: "Tanvir Ahmed", BloodGroup: "O-"},
	}
	userRepo.On("FindDonors", true, 1, 10).Return(donors, int64(12), nil)

	router := setupTestRouter()
	router.GET("/api/users/all-donors", authAs(1, false), controller.GetAllDonors)

	w := performJSON(router, "GET", "/api/users/all-donors?availableToDonate=true", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})

	assert.Len(t, data["donors"], 2)
	assert.Equal(t, float64(1), data["currentPage"])
	assert.Equal(t, float64(2), data["totalPages"])
	assert.Equal(t, float64(12), data["totalDonors"])

	userRepo.AssertExpectations(t)
}

func TestGetUsersCount(t *testing.T) {
	controller, userRepo, _ := setupUserControllerWithMocks()
	userRepo.On("CountUsers", mock.AnythingOfType("repository.UserCountFilter")).Return(int64(37), nil)

	router := setupTestRouter()
	router.GET("/api/users/count", authAs(1, true), controller.GetUsersCount)

	w := performJSON(router, "GET", "/api/users/count?available=true", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(37), data["count"])

	userRepo.AssertExpectations(t)
}
