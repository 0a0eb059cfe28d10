package db

import (
	"context"
	"lexdraft/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Template{},
		&domain.Document{},
	)
}

const seedNDABody = `MUTUAL NON-DISCLOSURE AGREEMENT

This Agreement is entered into by and between the Disclosing Party and the
Receiving Party for the purpose of preventing the unauthorized disclosure of
Confidential Information. The parties agree to hold Confidential Information
in strict confidence for the agreed duration and to use it only for the stated
purpose.`

// SeedData creates a demo user and a public NDA template (for development only)
func SeedData(ctx context.Context, db *gorm.DB, log *logrus.Logger) {
	var user domain.User
	err := db.WithContext(ctx).Where("email = ?", "test@example.com").First(&user).Error
	if err == nil {
		log.WithField("email", user.Email).Info("seed user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("hashing seed password")
		return
	}
	user = domain.User{
		Email:        "test@example.com",
		PasswordHash: string(hash),
		FullName:     "Test User",
		IsActive:     true,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Template{
			Title:       "NDA",
			Description: "Mutual non-disclosure agreement",
			Category:    domain.CategoryNDA,
			Content:     seedNDABody,
			IsPublic:    true,
			CreatedBy:   user.ID,
		}).Error
	})
	if err != nil {
		log.WithError(err).Error("seeding data")
		return
	}
	log.WithField("email", user.Email).Info("created seed user and template")
}
