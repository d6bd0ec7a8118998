package models

import (
	"time"
)

// DonationRecord is an immutable historical fact about one donation.
// Records are only ever created and (by an admin) deleted, never updated.
type DonationRecord struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	DonorID       uint      `json:"donor" gorm:"not null;index"`
	Donor         *User     `json:"donorDetails,omitempty" gorm:"foreignKey:DonorID"`
	DonationDate  time.Time `json:"donationDate" gorm:"not null"`
	BloodGroup    string    `json:"bloodGroup" gorm:"not null"`
	Location      string    `json:"location" gorm:"not null"`
	RecipientName string    `json:"recipientName"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
