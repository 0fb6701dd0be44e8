package authapimodels

import (
	"net/mail"
	"recruitment-backend/models"
	"strings"

	"github.com/pkg/errors"
)

const minPasswordLength = 6

type RegisterRequest struct {
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"` // hr or candidate
}

func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = models.UserRole(strings.ToLower(strings.TrimSpace(string(r.Role))))
}

// Validate checks the payload shape only. Role policy (admin forbidden) is applied by the handler.
func (r RegisterRequest) Validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" || r.Role == "" {
		return errors.New("All fields are required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("Invalid email format")
	}
	if len(r.Password) < minPasswordLength {
		return errors.Errorf("Password must be at least %d characters", minPasswordLength)
	}
	return nil
}

type RegisterResponse struct {
	Message string `json:"message"`
}
