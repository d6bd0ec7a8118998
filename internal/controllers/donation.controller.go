package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lifedrop/internal/cache"
	"lifedrop/internal/eligibility"
	"lifedrop/internal/models"
	"lifedrop/internal/repository"
)

type DonationController struct {
	repo  repository.DonationRepository
	cache *cache.RedisClient
}

func NewDonationController(repo repository.DonationRepository, cache *cache.RedisClient) *DonationController {
	return &DonationController{repo: repo, cache: cache}
}

type addDonationInput struct {
	DonationDate  time.Time `json:"donationDate" binding:"required"`
	BloodGroup    string    `json:"bloodGroup" binding:"required"`
	Location      string    `json:"location" binding:"required"`
	RecipientName string    `json:"recipientName"`
	Notes         string    `json:"notes"`
}

// AddDonation godoc
// @Summary Record a donation
// @Description Create a donation record for the authenticated donor
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param donation body addDonationInput true "Donation data"
// @Success 201 {object} map[string]interface{} "Donation recorded successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/donations [post]
func (dc *DonationController) AddDonation(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return
	}

	var input addDonationInput
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

	donation := models.DonationRecord{
		DonorID:       userID.(uint),
		DonationDate:  input.DonationDate,
		BloodGroup:    input.BloodGroup,
		Location:      input.Location,
		RecipientName: input.RecipientName,
		Notes:         input.Notes,
	}

	if err := dc.repo.Create(&donation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to record donation",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Donation recorded successfully",
		"data":    donation,
	})
}

// GetMyDonations godoc
// @Summary List own donations
// @Description The caller's donation records, most recent first
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Donations retrieved successfully"
// @Router /api/donations/my [get]
func (dc *DonationController) GetMyDonations(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return
	}

	donations, err := dc.repo.FindByDonorID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve donations",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Donations retrieved successfully",
		"data":    donations,
	})
}

// GetEligibility godoc
// @Summary Current donation eligibility
// @Description Whether the caller can donate now, based on the three-month cooldown since their latest donation
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Eligibility computed successfully"
// @Router /api/donations/eligibility [get]
func (dc *DonationController) GetEligibility(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return
	}

	var latest *time.Time
	latestDonation, err := dc.repo.FindLatestByDonorID(userID.(uint))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to compute eligibility",
			"error":   err.Error(),
		})
		return
	}
	if latestDonation != nil {
		latest = &latestDonation.DonationDate
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Eligibility computed successfully",
		"data":    eligibility.Check(latest, time.Now()),
	})
}

// GetDonorDonations godoc
// @Summary List a donor's donations
// @Description Donation records for the given donor, most recent first
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Success 200 {object} map[string]interface{} "Donations retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid donor ID"
// @Router /api/donations/donor/{id} [get]
func (dc *DonationController) GetDonorDonations(c *gin.Context) {
	donorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid donor ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	donations, err := dc.repo.FindByDonorID(uint(donorID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve donations",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Donations retrieved successfully",
		"data":    donations,
	})
}

// GetAllDonations godoc
// @Summary List all donation records
// @Description Every donation record with donor details, most recent first
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Donations retrieved successfully"
// @Router /api/donations [get]
func (dc *DonationController) GetAllDonations(c *gin.Context) {
	donations, err := dc.repo.FindAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve donations",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Donations retrieved successfully",
		"data":    donations,
	})
}

// DeleteDonation godoc
// @Summary Delete a donation record
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} map[string]interface{} "Donation deleted successfully"
// @Failure 404 {object} map[string]interface{} "Donation not found"
// @Router /api/donations/{id} [delete]
func (dc *DonationController) DeleteDonation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid donation ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	if _, err := dc.repo.FindByID(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Donation not found",
			"error":   "No donation exists with the provided ID",
		})
		return
	}

	if err := dc.repo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete donation",
			"error":   "Database deletion failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Donation deleted successfully",
		"data":    nil,
	})
}

// GetDonationsCount godoc
// @Summary Count donation records
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Count retrieved successfully"
// @Router /api/donations/count [get]
func (dc *DonationController) GetDonationsCount(c *gin.Context) {
	var count int64
	if !cacheGet(dc.cache, "stats:donations:count", &count) {
		var err error
		count, err = dc.repo.Count()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to count donations",
				"error":   err.Error(),
			})
			return
		}
		cacheSet(dc.cache, "stats:donations:count", count)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Count retrieved successfully",
		"data":    gin.H{"count": count},
	})
}
