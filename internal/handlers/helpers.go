package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/forms"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/models"
)

// Named redirect targets the frontend routes on.
const (
	RedirectHome        = "/"
	RedirectLogin       = "/login"
	RedirectProfileEdit = "/profile/edit"
)

func validationFail(c *fiber.Ctx, errs forms.FieldErrors) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

func fail200(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func fail500(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func getAuth(c *fiber.Ctx) (uuid.UUID, error) {
	rawID, ok := c.Locals("userId").(string)
	if !ok || rawID == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	uID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user id")
	}
	return uID, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}

// gormDirectory backs the registration uniqueness rules with the users table.
type gormDirectory struct {
	db *gorm.DB
}

func (d gormDirectory) UsernameTaken(username string) (bool, error) {
	return d.taken("username = ?", username)
}

func (d gormDirectory) EmailTaken(email string) (bool, error) {
	return d.taken("email = ?", email)
}

func (d gormDirectory) taken(cond, val string) (bool, error) {
	var u models.User
	err := d.db.Where(cond, val).First(&u).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// findOrCreateProfile guarantees the edit form always has a backing record:
// a user without a profile silently gets one with default values.
func findOrCreateProfile(tx *gorm.DB, userID uuid.UUID) (*models.UserProfile, error) {
	var p models.UserProfile
	err := tx.Where("user_id = ?", userID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p = models.UserProfile{UserID: userID}
	if err := tx.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
