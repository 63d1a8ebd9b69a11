package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/models"
)

type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// ListUsers is the staff view over accounts: optional user_type filter and a
// substring search across username and email.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	q := h.DB.Model(&models.User{}).Preload("Profile").Order("created_at DESC")

	if ut := strings.TrimSpace(c.Query("user_type")); ut != "" {
		if !models.UserType(ut).Valid() {
			return fail200(c, "unknown user_type")
		}
		q = q.Where("user_type = ?", ut)
	}

	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"username LIKE ? OR email LIKE ? OR id IN (SELECT user_id FROM user_profiles WHERE company_name LIKE ?)",
			like, like, like,
		)
	}

	var users []models.User
	if err := q.Limit(100).Find(&users).Error; err != nil {
		return fail500(c, "failed to list users")
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		row := fiber.Map{
			"id":         u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"user_type":  u.UserType,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"is_active":  u.IsActive,
			"is_staff":   u.IsStaff,
			"created_at": u.CreatedAt,
		}
		if u.Profile != nil {
			row["company_name"] = u.Profile.CompanyName
			row["phone_number"] = u.Profile.PhoneNumber
		}
		out = append(out, row)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}
