package authapimodels

import (
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"strings"

	"github.com/pkg/errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return errors.New("Email and password required")
	}
	return nil
}

type UserView struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	Role       models.UserRole `json:"role"`
	IsApproved bool            `json:"isApproved"`
}

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		ID:         rec.ID,
		Username:   rec.Username,
		Email:      rec.Email,
		Role:       rec.Role,
		IsApproved: rec.IsApproved,
	}
}

type LoginResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}
