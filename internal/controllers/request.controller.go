package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lifedrop/internal/cache"
	"lifedrop/internal/models"
	"lifedrop/internal/repository"
)

type RequestController struct {
	repo  repository.RequestRepository
	users repository.UserRepository
	cache *cache.RedisClient
}

func NewRequestController(repo repository.RequestRepository, users repository.UserRepository, cache *cache.RedisClient) *RequestController {
	return &RequestController{repo: repo, users: users, cache: cache}
}

type selfRequestInput struct {
	BloodGroupNeeded string `json:"bloodGroupNeeded" binding:"required"`
	City             string `json:"city" binding:"required"`
	HospitalName     string `json:"hospitalName"`
	Message          string `json:"message"`
}

// CreateRequestForSelf godoc
// @Summary Post a blood request for oneself
// @Description Create a request using the caller's profile as the contact snapshot
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body selfRequestInput true "Request data"
// @Success 201 {object} map[string]interface{} "Blood request created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/requests [post]
func (rc *RequestController) CreateRequestForSelf(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return
	}

	var input selfRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if !models.IsValidBloodGroup(input.BloodGroupNeeded) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Unknown blood group: " + input.BloodGroupNeeded,
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

	user, err := rc.users.GetUserByID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	// Contact info is copied from the profile, not referenced, so the
	// request keeps the details as they were at posting time.
	request := models.BloodRequest{
		RequesterName:    user.Name,
		Phone:            user.Phone,
		Email:            user.Email,
		BloodGroupNeeded: input.BloodGroupNeeded,
		City:             input.City,
		HospitalName:     input.HospitalName,
		Message:          input.Message,
		Status:           models.StatusPending,
	}

	if err := rc.repo.Create(&request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create blood request",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Blood request created successfully",
		"data":    request,
	})
}

type othersRequestInput struct {
	RecipientName       string `json:"recipientName"`
	RecipientBloodGroup string `json:"recipientBloodGroup" binding:"required"`
	Location            string `json:"location" binding:"required"`
	HospitalName        string `json:"hospitalName" binding:"required"`
	ContactPerson       string `json:"contactPerson"`
	ContactPhone        string `json:"contactPhone" binding:"required"`
	ContactEmail        string `json:"contactEmail"`
	Notes               string `json:"notes"`
}

// CreateRequestForOthers godoc
// @Summary Post a blood request on someone's behalf
// @Description Create a request with contact details supplied in the body; the requester name falls back from the contact person to the recipient
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body othersRequestInput true "Request data"
// @Success 201 {object} map[string]interface{} "Blood request created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/requests/for-others [post]
func (rc *RequestController) CreateRequestForOthers(c *gin.Context) {
	var input othersRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	requesterName := input.ContactPerson
	if requesterName == "" {
		requesterName = input.RecipientName
	}
	if requesterName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Either contactPerson or recipientName is required",
		})
		return
	}

	if !models.IsValidBloodGroup(input.RecipientBloodGroup) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Unknown blood group: " + input.RecipientBloodGroup,
		})
		return
	}
	if !models.IsValidCity(input.Location) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   "Unknown city: " + input.Location,
		})
		return
	}

	request := models.BloodRequest{
		RequesterName:    requesterName,
		Phone:            input.ContactPhone,
		Email:            input.ContactEmail,
		BloodGroupNeeded: input.RecipientBloodGroup,
		City:             input.Location,
		HospitalName:     input.HospitalName,
		Message:          input.Notes,
		Status:           models.StatusPending,
	}

	if err := rc.repo.Create(&request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create blood request",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Blood request created successfully",
		"data":    request,
	})
}

// GetAllRequests godoc
// @Summary List blood requests
// @Description All requests newest first, optionally filtered by status
// @Tags requests
// @Produce json
// @Param status query string false "Status filter (Pending, Accepted or Completed)"
// @Success 200 {object} map[string]interface{} "Requests retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid status filter"
// @Router /api/requests [get]
func (rc *RequestController) GetAllRequests(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.IsValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid status filter",
			"error":   models.ErrInvalidStatus.Error() + ": " + status,
		})
		return
	}

	requests, err := rc.repo.FindAll(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve blood requests",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Requests retrieved successfully",
		"data":    requests,
	})
}

type updateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateRequestStatus godoc
// @Summary Update a request's status
// @Description Move a request to any of the three statuses; backward transitions are allowed
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param status body updateStatusInput true "New status"
// @Success 200 {object} map[string]interface{} "Request status updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 404 {object} map[string]interface{} "Blood request not found"
// @Router /api/requests/{id}/status [put]
func (rc *RequestController) UpdateRequestStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	var input updateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	request, err := rc.repo.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Blood request not found",
			"error":   "No blood request exists with the provided ID",
		})
		return
	}

	if err := request.SetStatus(input.Status); err != nil {
		if errors.Is(err, models.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid status",
				"error":   fmt.Sprintf("Status must be one of %v", models.RequestStatuses),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update request status",
			"error":   err.Error(),
		})
		return
	}

	if err := rc.repo.Update(request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update request status",
			"error":   "Database update failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Request status updated successfully",
		"data":    request,
	})
}

// DeleteRequest godoc
// @Summary Delete a blood request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} map[string]interface{} "Blood request deleted successfully"
// @Failure 404 {object} map[string]interface{} "Blood request not found"
// @Router /api/requests/{id} [delete]
func (rc *RequestController) DeleteRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	if _, err := rc.repo.FindByID(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Blood request not found",
			"error":   "No blood request exists with the provided ID",
		})
		return
	}

	if err := rc.repo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete blood request",
			"error":   "Database deletion failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Blood request deleted successfully",
		"data":    nil,
	})
}

// GetRequestsCount godoc
// @Summary Count blood requests
// @Description Total request count, optionally per status
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (Pending, Accepted or Completed)"
// @Success 200 {object} map[string]interface{} "Count retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid status filter"
// @Router /api/requests/count [get]
func (rc *RequestController) GetRequestsCount(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.IsValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid status filter",
			"error":   models.ErrInvalidStatus.Error() + ": " + status,
		})
		return
	}

	key := "stats:requests:count:" + status

	var count int64
	if !cacheGet(rc.cache, key, &count) {
		var err error
		count, err = rc.repo.Count(status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to count blood requests",
				"error":   err.Error(),
			})
			return
		}
		cacheSet(rc.cache, key, count)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Count retrieved successfully",
		"data":    gin.H{"count": count},
	})
}
