package models

import (
	"errors"
	"time"
)

// Blood request statuses. The persisted enum is exactly these three values;
// there is no Cancelled or Rejected state.
const (
	StatusPending   = "Pending"
	StatusAccepted  = "Accepted"
	StatusCompleted = "Completed"
)

// RequestStatuses lists every valid status value.
var RequestStatuses = []string{StatusPending, StatusAccepted, StatusCompleted}

// ErrInvalidStatus is returned when a status transition is attempted with a
// value outside the enum.
var ErrInvalidStatus = errors.New("invalid request status")

func IsValidStatus(status string) bool {
	for _, s := range RequestStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// BloodRequest is a posting describing a need for blood, for the requester
// themselves or for a third party. Requester contact info is a snapshot
// taken at creation time, not a reference to a user row, so it stays intact
// even if the user later edits their profile.
type BloodRequest struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	RequesterName    string    `json:"requesterName" gorm:"not null"`
	Phone            string    `json:"phone" gorm:"not null"`
	Email            string    `json:"email"`
	BloodGroupNeeded string    `json:"bloodGroupNeeded" gorm:"not null"`
	City             string    `json:"city" gorm:"not null"`
	HospitalName     string    `json:"hospitalName"`
	Message          string    `json:"message"`
	Status           string    `json:"status" gorm:"not null;default:Pending"`
	CreatedAt        time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SetStatus moves the request to a new status. Any of the three valid
// statuses may be set from any prior state, backward transitions included;
// anything else is rejected with ErrInvalidStatus. UpdatedAt is refreshed on
// every successful transition.
func (r *BloodRequest) SetStatus(status string) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return nil
}
