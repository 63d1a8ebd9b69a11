package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile holds the extended attributes for both account types.
// The job-seeker and employer groups are all optional; which group is
// meaningful depends on users.user_type.
type UserProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	Address     string `gorm:"type:text" json:"address"`
	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`

	// Job seeker fields
	Resume       string `gorm:"type:text" json:"resume"` // stored path under uploads/resumes/
	Skills       string `gorm:"type:text" json:"skills"`
	PortfolioURL string `gorm:"type:text" json:"portfolio_url"`

	// Employer fields
	CompanyName string `gorm:"type:varchar(200)" json:"company_name"`
	Website     string `gorm:"type:text" json:"website"`
	Industry    string `gorm:"type:varchar(100)" json:"industry"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
