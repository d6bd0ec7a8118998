package models

import (
	"time"
)

// BloodGroups is the fixed set of ABO/Rh combinations accepted on the wire.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Cities is the fixed list of cities the platform operates in.
var Cities = []string{"Dhaka", "Chittagong", "Sylhet", "Rajshahi", "Khulna", "Barisal", "Rangpur", "Mymensingh"}

func IsValidBloodGroup(group string) bool {
	for _, g := range BloodGroups {
		if g == group {
			return true
		}
	}
	return false
}

func IsValidCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"not null"`
	Email             string    `json:"email" gorm:"unique;not null"`
	Password          string    `json:"-" gorm:"not null"`
	Phone             string    `json:"phone" gorm:"not null"`
	BloodGroup        string    `json:"bloodGroup" gorm:"not null"`
	DOB               time.Time `json:"dob" gorm:"not null"`
	Address           string    `json:"address"`
	City              string    `json:"city" gorm:"not null"`
	AvailableToDonate bool      `json:"availableToDonate" gorm:"default:true"`
	IsAdmin           bool      `json:"isAdmin" gorm:"default:false"`
	RegisteredAt      time.Time `json:"registeredAt" gorm:"autoCreateTime"`
}

// DonorView is the projection of a donor profile exposed through the
// donor-detail endpoint. Email and Phone are omitted from the JSON output
// unless the viewer is entitled to them.
type DonorView struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	BloodGroup        string    `json:"bloodGroup"`
	DOB               time.Time `json:"dob"`
	City              string    `json:"city"`
	Address           string    `json:"address"`
	AvailableToDonate bool      `json:"availableToDonate"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"phone,omitempty"`
}

// DonorView builds the privacy projection of the user for a given viewer.
// Contact fields (email, phone) are included only when the viewer is an
// admin or the donor themselves.
func (u *User) DonorView(viewerID uint, viewerIsAdmin bool) DonorView {
	view := DonorView{
		ID:                u.ID,
		Name:              u.Name,
		BloodGroup:        u.BloodGroup,
		DOB:               u.DOB,
		City:              u.City,
		Address:           u.Address,
		AvailableToDonate: u.AvailableToDonate,
	}

	if viewerIsAdmin || viewerID == u.ID {
		view.Email = u.Email
		view.Phone = u.Phone
	}

	return view
}
