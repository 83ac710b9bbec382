// Package user holds the owner account all data is scoped to. The system
// currently supports exactly one implicit owner; the schema keeps a user_id
// column everywhere so this can become dynamic later.
package user

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// DefaultUserID is the single implicit owner.
const DefaultUserID = "default-user"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnsureDefault creates the default user row if it does not exist yet.
func EnsureDefault(db *gorm.DB) error {
	var u User
	err := db.Where("id = ?", DefaultUserID).First(&u).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	u = User{
		ID:    DefaultUserID,
		Email: "user@tabsy.app",
		Name:  "Tabsy User",
	}
	if err := db.Create(&u).Error; err != nil {
		return err
	}
	log.Printf("Default user initialized: %s", u.Email)
	return nil
}
