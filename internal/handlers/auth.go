package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/forms"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/middleware"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/models"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/session"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	Sessions  *session.Store
	JWTSecret string
	Expires   int // minutes
}

// alreadyAuthenticated reports whether the caller holds a live session.
// Register and login short-circuit to home in that case without touching
// storage or re-checking credentials.
func (h *AuthHandler) alreadyAuthenticated(c *fiber.Ctx) bool {
	tokenStr := c.Cookies(middleware.CookieName)
	if tokenStr == "" {
		return false
	}
	claims, err := utils.ParseJWT(h.JWTSecret, tokenStr)
	if err != nil {
		return false
	}
	if h.Sessions != nil {
		live, err := h.Sessions.Exists(c.Context(), claims.SessionID)
		if err != nil || !live {
			return false
		}
	}
	return true
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	if h.alreadyAuthenticated(c) {
		return c.JSON(fiber.Map{
			"success":  true,
			"redirect": RedirectHome,
		})
	}

	var form forms.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	errs, err := form.Validate(gormDirectory{h.DB})
	if err != nil {
		return fail500(c, "Something went wrong. Please try again.")
	}
	if errs.Has() {
		return validationFail(c, errs)
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return fail500(c, "Something went wrong. Please try again.")
	}

	u := models.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
		UserType:     form.Type(),
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		IsActive:     true,
	}

	// User and its empty profile land together or not at all.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserProfile{UserID: u.ID}).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			// The pre-check raced another registration; the unique index is
			// the authoritative guard, so report it the same way.
			errs := forms.FieldErrors{}
			errs.Add("username", "A user with that username or email already exists.")
			return validationFail(c, errs)
		}
		return fail500(c, "Something went wrong. Please try again.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Registration successful! You can now log in.",
		"redirect": RedirectLogin,
		"data": fiber.Map{
			"user": fiber.Map{
				"id":        u.ID,
				"username":  u.Username,
				"email":     u.Email,
				"user_type": u.UserType,
			},
		},
	})
}

type LoginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if h.alreadyAuthenticated(c) {
		return c.JSON(fiber.Map{
			"success":  true,
			"redirect": RedirectHome,
		})
	}

	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "invalid body")
	}

	if req.Username == "" || req.Password == "" {
		return fail200(c, "Please fill in all fields.")
	}

	// One generic message for unknown username, wrong password, and inactive
	// account, so responses never reveal which part failed.
	var u models.User
	if err := h.DB.Where("username = ?", req.Username).First(&u).Error; err != nil {
		return fail200(c, "Invalid username or password.")
	}
	if !u.IsActive || !utils.CheckPassword(u.PasswordHash, req.Password) {
		return fail200(c, "Invalid username or password.")
	}

	token, claims, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.UserType), u.IsStaff, h.Expires)
	if err != nil {
		return fail500(c, "Something went wrong. Please try again.")
	}

	ttl := time.Duration(h.Expires) * time.Minute
	if h.Sessions != nil {
		if err := h.Sessions.Create(c.Context(), claims.SessionID, u.ID.String(), ttl); err != nil {
			return fail500(c, "Something went wrong. Please try again.")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  fmt.Sprintf("Welcome back, %s!", u.Username),
		"redirect": RedirectHome,
		"data": fiber.Map{
			"user": fiber.Map{
				"id":        u.ID,
				"username":  u.Username,
				"email":     u.Email,
				"user_type": u.UserType,
			},
		},
	})
}

// Logout terminates the session unconditionally. Calling it without one is a
// no-op that still answers with the home redirect.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if tokenStr := c.Cookies(middleware.CookieName); tokenStr != "" && h.Sessions != nil {
		if claims, err := utils.ParseJWT(h.JWTSecret, tokenStr); err == nil {
			_ = h.Sessions.Destroy(c.Context(), claims.SessionID)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "You have been logged out successfully.",
		"redirect": RedirectHome,
	})
}
