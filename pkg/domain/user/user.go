package user

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/utils"
	"github.com/google/uuid"
)

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Admits reports whether a user holding r passes a guard requiring required.
func (r Role) Admits(required Role) bool {
	return r == required || r == RoleAdmin
}

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", domain.NewValidationError("role", "must be one of USER, ADMIN")
	}
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,50}$`)

// User represents a user in the system. Password holds the bcrypt hash.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New validates the credentials, hashes the password and returns a USER.
func New(username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return domain.NewValidationError("username", "must be 3 to 50 letters, digits, '.', '_' or '-'")
	}
	return nil
}

func ValidateEmail(email string) error {
	if len(email) > 255 || !utils.IsEmail(email) {
		return domain.NewValidationError("email", "must be a valid email address")
	}
	return nil
}

// ValidatePassword enforces at least 8 characters with a digit, an
// uppercase and a lowercase letter.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return domain.NewValidationError("password", "must be at least 8 characters")
	}
	if len(password) > 72 {
		return domain.NewValidationError("password", "must be at most 72 characters")
	}
	var digit, upper, lower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
	}
	switch {
	case !digit:
		return domain.NewValidationError("password", "must contain a digit")
	case !upper:
		return domain.NewValidationError("password", "must contain an uppercase letter")
	case !lower:
		return domain.NewValidationError("password", "must contain a lowercase letter")
	}
	return nil
}

// CheckStrength rejects passwords scoring below minScore (0-4). A zero
// minScore disables the check.
func CheckStrength(password string, minScore int, inputs ...string) error {
	if minScore <= 0 {
		return nil
	}
	if utils.PasswordStrength(password, inputs...) < minScore {
		return domain.NewValidationError("password", "is too weak")
	}
	return nil
}
