package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testDonor() User {
	return User{
		ID:                7,
		Name:              "Ayesha Rahman",
		Email:             "ayesha@example.com",
		Phone:             "01711111111",
		BloodGroup:        "B+",
		DOB:               time.Date(1995, time.March, 12, 0, 0, 0, 0, time.UTC),
		City:              "Dhaka",
		Address:           "House 12, Road 5",
		AvailableToDonate: true,
	}
}

func TestDonorViewHidesContactFromStrangers(t *testing.T) {
	donor := testDonor()

	view := donor.DonorView(99, false)

	assert.Empty(t, view.Email)
	assert.Empty(t, view.Phone)
	assert.Equal(t, donor.Name, view.Name)
	assert.Equal(t, donor.BloodGroup, view.BloodGroup)
	assert.Equal(t, donor.City, view.City)
	assert.Equal(t, donor.Address, view.Address)

	// The hidden fields must not appear as keys on the wire at all.
	raw, err := json.Marshal(view)
	assert.NoError(t, err)

	var keys map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &keys))
	assert.NotContains(t, keys, "email")
	assert.NotContains(t, keys, "phone")
}

func TestDonorViewShowsContactToSelfAndAdmin(t *testing.T) {
	donor := testDonor()

	self := donor.DonorView(donor.ID, false)
	assert.Equal(t, donor.Email, self.Email)
	assert.Equal(t, donor.Phone, self.Phone)

	admin := donor.DonorView(3, true)
	assert.Equal(t, donor.Email, admin.Email)
	assert.Equal(t, donor.Phone, admin.Phone)
}

func TestBloodGroupValidation(t *testing.T) {
	for _, group := range BloodGroups {
		assert.True(t, IsValidBloodGroup(group))
	}
	assert.False(t, IsValidBloodGroup("C+"))
	assert.False(t, IsValidBloodGroup("a+"))
	assert.False(t, IsValidBloodGroup(""))
}

func TestCityValidation(t *testing.T) {
	for _, city := range Cities {
		assert.True(t, IsValidCity(city))
	}
	assert.False(t, IsValidCity("Gotham"))
}
