package dbmodels

import (
	"recruitment-backend/models"
)

type User struct {
	BaseModel
	Username   string          `gorm:"type:varchar(150)"`
	Email      string          `gorm:"type:varchar(255);uniqueIndex"`
	Password   string          `gorm:"type:varchar(128)"`
	Role       models.UserRole `gorm:"type:varchar(20);index"`
	IsApproved bool
}

func (u User) GetName() string {
	if u.Username == "" {
		return "Candidate"
	}
	return u.Username
}

func (u User) ToRecipient() models.Recipient {
	return models.Recipient{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.GetName(),
	}
}

// IsApprovedHR - only an approved HR may publish jobs
func (u User) IsApprovedHR() bool {
	return u.Role == models.UserRoleHR && u.IsApproved
}
