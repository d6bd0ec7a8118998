package utils

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"lifedrop/internal/models"
)

const DefaultNumDonors = 50

// seedEmailDomain marks rows created by the seeder so `clear` can find them.
const seedEmailDomain = "@seed.lifedrop.local"

var seedNames = []string{
	"Ayesha Rahman", "Tanvir Ahmed", "Nusrat Jahan", "Rakib Hasan",
	"Farhana Akter", "Sabbir Khan", "Mithila Chowdhury", "Imran Hossain",
	"Sharmin Sultana", "Arif Mahmud",
}

// SeedAdmin creates the default administrator account if it does not exist.
func SeedAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", "admin"+seedEmailDomain).First(&existing).Error
	if err == nil {
		log.Println("Admin account already present, skipping")
		return nil
	}

	hashed, err := HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := models.User{
		Name:              "LifeDrop Admin",
		Email:             "admin" + seedEmailDomain,
		Password:          hashed,
		Phone:             "01700000000",
		BloodGroup:        "O+",
		DOB:               time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		City:              "Dhaka",
		AvailableToDonate: false,
		IsAdmin:           true,
	}
	return db.Create(&admin).Error
}

// SeedDonors creates n demo donors, each with a small donation history and
// some of them with an open blood request.
func SeedDonors(db *gorm.DB, n int) error {
	hashed, err := HashPassword("password123")
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		donor := models.User{
			Name:              seedNames[i%len(seedNames)],
			Email:             fmt.Sprintf("donor%d%s", i, seedEmailDomain),
			Password:          hashed,
			Phone:             fmt.Sprintf("017%08d", i),
			BloodGroup:        models.BloodGroups[rand.Intn(len(models.BloodGroups))],
			DOB:               time.Date(1980+rand.Intn(25), time.Month(1+rand.Intn(12)), 1+rand.Intn(28), 0, 0, 0, 0, time.UTC),
			City:              models.Cities[rand.Intn(len(models.Cities))],
			Address:           fmt.Sprintf("House %d, Road %d", 1+rand.Intn(99), 1+rand.Intn(20)),
			AvailableToDonate: rand.Intn(4) != 0,
		}

		if err := db.Create(&donor).Error; err != nil {
			return fmt.Errorf("failed to create donor %d: %w", i, err)
		}

		numDonations := rand.Intn(4)
		for d := 0; d < numDonations; d++ {
			donation := models.DonationRecord{
				DonorID:      donor.ID,
				DonationDate: time.Now().AddDate(0, -rand.Intn(18), -rand.Intn(28)),
				BloodGroup:   donor.BloodGroup,
				Location:     donor.City,
				Notes:        "Seeded donation",
			}
			if err := db.Create(&donation).Error; err != nil {
				return fmt.Errorf("failed to create donation for donor %d: %w", donor.ID, err)
			}
		}

		if rand.Intn(5) == 0 {
			request := models.BloodRequest{
				RequesterName:    donor.Name,
				Phone:            donor.Phone,
				Email:            donor.Email,
				BloodGroupNeeded: models.BloodGroups[rand.Intn(len(models.BloodGroups))],
				City:             donor.City,
				HospitalName:     "General Hospital",
				Message:          "Seeded request",
				Status:           models.RequestStatuses[rand.Intn(len(models.RequestStatuses))],
			}
			if err := db.Create(&request).Error; err != nil {
				return fmt.Errorf("failed to create request for donor %d: %w", donor.ID, err)
			}
		}
	}

	log.Printf("Seeded %d donors", n)
	return nil
}

// ClearSeedData removes everything the seeder created.
func ClearSeedData(db *gorm.DB) error {
	var seeded []models.User
	if err := db.Where("email LIKE ?", "%"+seedEmailDomain).Find(&seeded).Error; err != nil {
		return err
	}

	for _, user := range seeded {
		if err := db.Where("donor_id = ?", user.ID).Delete(&models.DonationRecord{}).Error; err != nil {
			return err
		}
		if err := db.Where("email = ?", user.Email).Delete(&models.BloodRequest{}).Error; err != nil {
			return err
		}
		if err := db.Delete(&models.User{}, user.ID).Error; err != nil {
			return err
		}
	}

	log.Printf("Removed %d seeded users", len(seeded))
	return nil
}
