package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserType string

const (
	TypeEmployer  UserType = "employer"
	TypeJobSeeker UserType = "job_seeker"
)

// Valid reports whether t is one of the two registerable account types.
func (t UserType) Valid() bool {
	return t == TypeEmployer || t == TypeJobSeeker
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email    string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`

	PasswordHash string   `gorm:"not null" json:"-"`
	UserType     UserType `gorm:"type:varchar(20);not null;default:'job_seeker';index" json:"user_type"`

	FirstName string `gorm:"type:varchar(150)" json:"first_name"`
	LastName  string `gorm:"type:varchar(150)" json:"last_name"`

	IsActive bool `gorm:"default:true" json:"is_active"`
	IsStaff  bool `gorm:"default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// profile row goes away with the user (user_profiles.user_id -> users.id)
	Profile *UserProfile `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.UserType == "" {
		u.UserType = TypeJobSeeker
	}
	return nil
}
