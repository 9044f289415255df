package database

import (
	"github.com/smartcanteen/canteen-app/models"
	"github.com/smartcanteen/canteen-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeededUsernames are the bootstrap accounts. They can never be deleted
// from the admin panel.
var SeededUsernames = []string{"admin", "staff", "student1"}

// IsSeededUser reports whether username is one of the bootstrap accounts.
func IsSeededUser(username string) bool {
	for _, name := range SeededUsernames {
		if name == username {
			return true
		}
	}
	return false
}

// SeedDefaultUsers creates the three bootstrap accounts if they do not
// exist yet. Passwords are stored as bcrypt hashes.
func SeedDefaultUsers(db *gorm.DB) error {
	defaults := []struct {
		username string
		password string
		role     string
	}{
		{"admin", "admin123", models.RoleAdmin},
		{"staff", "staff123", models.RoleStaff},
		{"student1", "stu123", models.RoleStudent},
	}

	for _, d := range defaults {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", d.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Username: d.username,
			Password: string(hashed),
			Role:     d.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded default user %s (role=%s)", d.username, d.role)
	}
	return nil
}
