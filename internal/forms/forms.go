package forms

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/models"
)

const (
	MinPasswordLen = 8
	MaxResumeBytes = 5 * 1024 * 1024
)

// FieldErrors collects validation messages keyed by input field. Every rule
// appends independently, so a single pass reports all violations at once.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Has() bool { return len(e) > 0 }

// UserDirectory answers the uniqueness questions the registration rules need.
// Lookups are exact, case-sensitive matches as stored. The database unique
// index remains the authoritative guard; these checks exist to attach a
// readable error to the right field.
type UserDirectory interface {
	UsernameTaken(username string) (bool, error)
	EmailTaken(email string) (bool, error)
}

type RegisterForm struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm"`
	UserType        string `json:"user_type" form:"user_type"`
	FirstName       string `json:"first_name" form:"first_name"`
	LastName        string `json:"last_name" form:"last_name"`
}

// Normalize trims whitespace from the identity fields. Passwords are kept
// verbatim and the email is not lowercased; storage matches as-is.
func (f *RegisterForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.UserType = strings.TrimSpace(f.UserType)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
}

// Type resolves the submitted user_type, defaulting to job seeker.
func (f *RegisterForm) Type() models.UserType {
	t := models.UserType(f.UserType)
	if !t.Valid() {
		return models.TypeJobSeeker
	}
	return t
}

// Validate runs every registration rule and returns the aggregated field
// errors. A dir lookup failure surfaces as the returned error; field errors
// alone never do.
func (f *RegisterForm) Validate(dir UserDirectory) (FieldErrors, error) {
	f.Normalize()
	errs := FieldErrors{}

	if f.Username == "" {
		errs.Add("username", "This field is required.")
	} else {
		taken, err := dir.UsernameTaken(f.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("username", "A user with that username already exists.")
		}
	}

	if f.Email == "" {
		errs.Add("email", "This field is required.")
	} else {
		if !looksLikeEmail(f.Email) {
			errs.Add("email", "Enter a valid email address.")
		}
		taken, err := dir.EmailTaken(f.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("email", "A user with that email already exists.")
		}
	}

	if f.Password == "" {
		errs.Add("password", "This field is required.")
	} else if utf8.RuneCountInString(f.Password) < MinPasswordLen {
		errs.Add("password", "Password must be at least 8 characters long.")
	}

	if f.PasswordConfirm == "" {
		errs.Add("password_confirm", "This field is required.")
	} else if f.Password != "" && f.Password != f.PasswordConfirm {
		errs.Add("password_confirm", "Passwords do not match.")
	}

	return errs, nil
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return !strings.ContainsAny(s, " \t")
}

// FileMeta is the descriptor the resume rule works on: a name and a byte
// size, independent of how the bytes arrive.
type FileMeta struct {
	Name string
	Size int64
}

type ProfileForm struct {
	Address      string `json:"address" form:"address"`
	PhoneNumber  string `json:"phone_number" form:"phone_number"`
	Skills       string `json:"skills" form:"skills"`
	PortfolioURL string `json:"portfolio_url" form:"portfolio_url"`
	CompanyName  string `json:"company_name" form:"company_name"`
	Website      string `json:"website" form:"website"`
	Industry     string `json:"industry" form:"industry"`
	Description  string `json:"description" form:"description"`
}

// Validate checks the optional resume upload. Every other profile field is
// pass-through and accepts any value, including empty. A nil resume means
// nothing was uploaded and the stored value stays as it is.
func (f *ProfileForm) Validate(resume *FileMeta) FieldErrors {
	errs := FieldErrors{}
	if resume == nil {
		return errs
	}

	if !strings.EqualFold(filepath.Ext(resume.Name), ".pdf") {
		errs.Add("resume", "Resume must be a PDF file. Please upload a .pdf file.")
	}
	if resume.Size > MaxResumeBytes {
		errs.Add("resume", "Resume file size must be less than 5MB.")
	}
	return errs
}

// Apply copies the pass-through fields onto the profile record.
func (f *ProfileForm) Apply(p *models.UserProfile) {
	p.Address = f.Address
	p.PhoneNumber = f.PhoneNumber
	p.Skills = f.Skills
	p.PortfolioURL = f.PortfolioURL
	p.CompanyName = f.CompanyName
	p.Website = f.Website
	p.Industry = f.Industry
	p.Description = f.Description
}
