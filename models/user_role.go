package models

import "github.com/pkg/errors"

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleHR        UserRole = "hr"
	UserRoleCandidate UserRole = "candidate"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin:     "Administrator",
	UserRoleHR:        "HR",
	UserRoleCandidate: "Candidate",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) Validate() error {
	switch r {
	case UserRoleAdmin, UserRoleHR, UserRoleCandidate:
		return nil
	default:
		return errors.New("Invalid role")
	}
}

// CanSelfRegister reports whether an account with this role may be created through registration.
func (r UserRole) CanSelfRegister() bool {
	switch r {
	case UserRoleHR, UserRoleCandidate:
		return true
	case UserRoleAdmin:
		return false
	default:
		return false
	}
}

// ApprovedByDefault is the initial approval flag of a new account. Only HR accounts wait for the admin.
func (r UserRole) ApprovedByDefault() bool {
	switch r {
	case UserRoleHR:
		return false
	case UserRoleAdmin, UserRoleCandidate:
		return true
	default:
		return false
	}
}

const SystemUser = "System"
