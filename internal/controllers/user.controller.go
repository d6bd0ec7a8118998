package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lifedrop/internal/auth"
	"lifedrop/internal/cache"
	"lifedrop/internal/eligibility"
	"lifedrop/internal/models"
	"lifedrop/internal/repository"
	"lifedrop/internal/utils"
)

type UserController struct {
	repo      repository.UserRepository
	donations repository.DonationRepository
	cache     *cache.RedisClient
}

func NewUserController(repo repository.UserRepository, donations repository.DonationRepository, cache *cache.RedisClient) *UserController {
	return &UserController{repo: repo, donations: donations, cache: cache}
}

type registerInput struct {
	Name       string    `json:"name" binding:"required"`
	Email      string    `json:"email" binding:"required,email"`
	Password   string    `json:"password" binding:"required,min=6"`
	Phone      string    `json:"phone" binding:"required"`
	BloodGroup string    `json:"bloodGroup" binding:"required"`
	DOB        time.Time `json:"dob" binding:"required"`
	City       string    `json:"city" binding:"required"`
	Address    string    `json:"address"`
}

// RegisterUser godoc
// @Summary Register a new donor
// @Description Create a donor account and return it with a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param user body registerInput true "Registration data"
// @Success 201 {object} map[string]interface{} "User registered successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 409 {object} map[string]interface{} "User already exists"
// @Router /api/users/register [post]
func (uc *UserController) RegisterUser(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if !models.IsValidBloodGroup(input.BloodGroup) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Unknown blood group: " + input.BloodGroup,
		})
		return
	}
	if !models.IsValidCity(input.City) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Unknown city: " + input.City,
		})
		return
	}

	if _, err := uc.repo.GetUserByEmail(input.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "User already exists",
			"error":   "An account with this email is already registered",
		})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create user",
			"error":   "Could not hash password",
		})
		return
	}

	user := models.User{
		Name:              input.Name,
		Email:             input.Email,
		Password:          hashed,
		Phone:             input.Phone,
		BloodGroup:        input.BloodGroup,
		DOB:               input.DOB,
		City:              input.City,
		Address:           input.Address,
		AvailableToDonate: true,
	}

	if err := uc.repo.CreateUser(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create user",
			"error":   err.Error(),
		})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate token",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered successfully",
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser godoc
// @Summary Authenticate a user
// @Description Verify credentials and return the user with a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body loginInput true "Login credentials"
// @Success 200 {object} map[string]interface{} "User logged in successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/users/login [post]
func (uc *UserController) LoginUser(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	user, err := uc.repo.GetUserByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user associated with this email",
		})
		return
	}

	if !utils.CheckPassword(user.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "Invalid email or password",
		})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate token",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User logged in successfully",
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

// GetProfile godoc
// @Summary Get own profile
// @Description Retrieve the authenticated user's full profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Profile retrieved successfully"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/users/profile [get]
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return
	}

	user, err := uc.repo.GetUserByID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile retrieved successfully",
		"data":    user,
	})
}

type updateProfileInput struct {
	Name              *string    `json:"name"`
	Email             *string    `json:"email" binding:"omitempty,email"`
	Phone             *string    `json:"phone"`
	BloodGroup        *string    `json:"bloodGroup"`
	DOB               *time.Time `json:"dob"`
	City              *string    `json:"city"`
	Address           *string    `json:"address"`
	AvailableToDonate *bool      `json:"availableToDonate"`
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Update profile fields; absent fields are left unchanged
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body updateProfileInput true "Fields to update"
// @Success 200 {object} map[string]interface{} "Profile updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/users/profile [put]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return
	}

	var input updateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if input.BloodGroup != nil && !models.IsValidBloodGroup(*input.BloodGroup) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Unknown blood group: " + *input.BloodGroup,
		})
		return
	}
	if input.City != nil && !models.IsValidCity(*input.City) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Unknown city: " + *input.City,
		})
		return
	}

	user, err := uc.repo.GetUserByID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.BloodGroup != nil {
		user.BloodGroup = *input.BloodGroup
	}
	if input.DOB != nil {
		user.DOB = *input.DOB
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.AvailableToDonate != nil {
		user.AvailableToDonate = *input.AvailableToDonate
	}

	if err := uc.repo.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update profile",
			"error":   "Database update failed",
		})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate token",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile updated successfully",
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ChangePassword godoc
// @Summary Change own password
// @Description Verify the current password and replace it with a new one
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passwords body changePasswordInput true "Current and new password"
// @Success 200 {object} map[string]interface{} "Password updated successfully"
// @Failure 401 {object} map[string]interface{} "Invalid current password"
// @Router /api/users/change-password [put]
func (uc *UserController) ChangePassword(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return
	}

	var input changePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	user, err := uc.repo.GetUserByID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	if !utils.CheckPassword(user.Password, input.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid current password",
			"error":   "Current password does not match",
		})
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update password",
			"error":   "Could not hash password",
		})
		return
	}

	user.Password = hashed
	if err := uc.repo.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update password",
			"error":   "Database update failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Password updated successfully",
		"data":    nil,
	})
}

// GetAllDonors godoc
// @Summary List donors
// @Description List non-admin users with pagination and an optional availability filter
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param availableToDonate query bool false "Only donors currently available"
// @Success 200 {object} map[string]interface{} "Donors retrieved successfully"
// @Router /api/users/all-donors [get]
func (uc *UserController) GetAllDonors(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	availableOnly := c.Query("availableToDonate") == "true"

	donors, total, err := uc.repo.FindDonors(availableOnly, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve donors",
			"error":   err.Error(),
		})
		return
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Donors retrieved successfully",
		"data": gin.H{
			"donors":      donors,
			"currentPage": page,
			"totalPages":  totalPages,
			"totalDonors": total,
		},
	})
}

// GetDonorByID godoc
// @Summary Get a donor's detail view
// @Description Privacy-filtered donor profile with current donation eligibility. Contact fields are visible only to admins and the donor themselves; admin accounts are not reachable through this path.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Success 200 {object} map[string]interface{} "Donor retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid donor ID"
// @Failure 404 {object} map[string]interface{} "Donor not found"
// @Router /api/users/{id} [get]
func (uc *UserController) GetDonorByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid donor ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	viewerID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return
	}
	viewerIsAdmin, _ := c.Get("is_admin")
	isAdmin, _ := viewerIsAdmin.(bool)

	donor, err := uc.repo.GetUserByID(uint(id))
	if err != nil || donor.IsAdmin {
		// Admin accounts must not be discoverable through the donor path.
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Donor not found",
			"error":   "No donor exists with the provided ID",
		})
		return
	}

	var latest *time.Time
	latestDonation, err := uc.donations.FindLatestByDonorID(donor.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve donor details",
			"error":   err.Error(),
		})
		return
	}
	if latestDonation != nil {
		latest = &latestDonation.DonationDate
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Donor retrieved successfully",
		"data": gin.H{
			"donor":       donor.DonorView(viewerID.(uint), isAdmin),
			"eligibility": eligibility.Check(latest, time.Now()),
		},
	})
}

// GetUsersCount godoc
// @Summary Count users
// @Description Count users, optionally filtered by availability, role, or registration in the current month
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param available query bool false "Filter by availability"
// @Param admin query bool false "Filter by admin role"
// @Param newMonth query bool false "Only users registered since the start of the current month"
// @Success 200 {object} map[string]interface{} "Count retrieved successfully"
// @Router /api/users/count [get]
func (uc *UserController) GetUsersCount(c *gin.Context) {
	var filter repository.UserCountFilter

	switch c.Query("available") {
	case "true":
		v := true
		filter.Available = &v
	case "false":
		v := false
		filter.Available = &v
	}

	switch c.Query("admin") {
	case "true":
		v := true
		filter.Admin = &v
	case "false":
		v := false
		filter.Admin = &v
	}

	if c.Query("newMonth") == "true" {
		now := time.Now()
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		filter.RegisteredSince = &startOfMonth
	}

	key := fmt.Sprintf("stats:users:count:%s:%s:%s",
		c.Query("available"), c.Query("admin"), c.Query("newMonth"))

	var count int64
	if !cacheGet(uc.cache, key, &count) {
		var err error
		count, err = uc.repo.CountUsers(filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to count users",
				"error":   err.Error(),
			})
			return
		}
		cacheSet(uc.cache, key, count)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Count retrieved successfully",
		"data":    gin.H{"count": count},
	})
}

// GetTopCities godoc
// @Summary Top cities by user count
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Top cities retrieved successfully"
// @Router /api/users/top-cities [get]
func (uc *UserController) GetTopCities(c *gin.Context) {
	var cities []repository.CityCount
	if !cacheGet(uc.cache, "stats:top-cities", &cities) {
		var err error
		cities, err = uc.repo.TopCities(10)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to retrieve top cities",
				"error":   err.Error(),
			})
			return
		}
		cacheSet(uc.cache, "stats:top-cities", cities)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Top cities retrieved successfully",
		"data":    gin.H{"cities": cities},
	})
}

// GetCommonBloodGroup godoc
// @Summary Most common blood group among users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Common blood group retrieved successfully"
// @Router /api/users/common-bloodgroup [get]
func (uc *UserController) GetCommonBloodGroup(c *gin.Context) {
	var bloodGroup string
	if !cacheGet(uc.cache, "stats:common-bloodgroup", &bloodGroup) {
		var err error
		bloodGroup, err = uc.repo.CommonBloodGroup()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to retrieve common blood group",
				"error":   err.Error(),
			})
			return
		}
		cacheSet(uc.cache, "stats:common-bloodgroup", bloodGroup)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Common blood group retrieved successfully",
		"data":    gin.H{"bloodGroup": bloodGroup},
	})
}
