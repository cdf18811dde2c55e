package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const UserTable = "lab_users"

const (
	RoleAdmin  = "admin"
	RoleIntern = "intern"
	RoleGuest  = "guest"
)

type User struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone     string `gorm:"uniqueIndex;size:32;not null" json:"phone"`

	// Never serialized; bcrypt digest only.
	PasswordHash string `gorm:"size:100;not null" json:"-"`

	Role     string `gorm:"size:20;not null;default:'intern'" json:"role"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`

	LastSeenAt *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }

// NormalizeEmail lowercases and trims an address. Emails are stored and
// compared in this form only, so the unique index is effectively
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), 10)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

func (u *User) FullName() string { return u.FirstName + " " + u.LastName }
