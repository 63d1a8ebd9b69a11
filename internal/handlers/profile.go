package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/forms"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/models"
)

type ProfileHandler struct {
	DB        *gorm.DB
	UploadDir string
}

func NewProfileHandler(db *gorm.DB, uploadDir string) *ProfileHandler {
	return &ProfileHandler{DB: db, UploadDir: uploadDir}
}

// Me returns the caller's account and profile, creating the profile with
// defaults if it does not exist yet.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", userID).Error; err != nil {
		return fiber.ErrUnauthorized
	}

	p, err := findOrCreateProfile(h.DB, userID)
	if err != nil {
		return fail500(c, "failed to load profile")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user":    u,
			"profile": p,
		},
	})
}

// Edit applies the profile form on top of the get-or-created profile.
// Multipart field "resume" is optional; when absent the stored resume is
// left unchanged.
func (h *ProfileHandler) Edit(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var form forms.ProfileForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		file = nil
	}

	var meta *forms.FileMeta
	if file != nil {
		meta = &forms.FileMeta{Name: file.Filename, Size: file.Size}
	}
	if errs := form.Validate(meta); errs.Has() {
		// caller stays on the edit form with its field errors
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":  false,
			"message":  "Validation error",
			"errors":   errs,
			"redirect": RedirectProfileEdit,
		})
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	p, err := findOrCreateProfile(tx, userID)
	if err != nil {
		tx.Rollback()
		return fail500(c, "failed to load profile")
	}

	form.Apply(p)

	var savedResume string
	if file != nil {
		publicPath, diskPath, err := h.saveResume(c, userID, file)
		if err != nil {
			tx.Rollback()
			return fail500(c, "failed to save resume")
		}
		p.Resume = publicPath
		savedResume = diskPath
	}

	// if the write does not land, the stored file must not survive either
	p.UpdatedAt = time.Now()
	if err := tx.Save(p).Error; err != nil {
		tx.Rollback()
		removeFile(savedResume)
		return fail500(c, "failed to update profile")
	}

	if err := tx.Commit().Error; err != nil {
		removeFile(savedResume)
		return fail500(c, "failed to update profile")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Profile updated successfully!",
		"redirect": RedirectHome,
		"data":     p,
	})
}

// saveResume writes the upload under uploads/resumes/<user-id>/ with a fresh
// name and returns the public and on-disk paths. Validation already ran; only
// .pdf files of acceptable size reach this point.
func (h *ProfileHandler) saveResume(c *fiber.Ctx, userID uuid.UUID, file *multipart.FileHeader) (string, string, error) {
	dir := filepath.Join(h.UploadDir, "resumes", userID.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", err
	}

	name := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	diskPath := filepath.Join(dir, name)
	if err := c.SaveFile(file, diskPath); err != nil {
		return "", "", err
	}

	return fmt.Sprintf("/uploads/resumes/%s/%s", userID.String(), name), diskPath, nil
}

func removeFile(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}
