package models

import (
	"strings"

	"github.com/pkg/errors"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Validate() error {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusShortlisted, ApplicationStatusRejected:
		return nil
	default:
		return errors.New("Invalid status")
	}
}

// IsAllowStatusChange: status is a re-assignable field, any move between known statuses is allowed.
func (s ApplicationStatus) IsAllowStatusChange(to ApplicationStatus) bool {
	return s.Validate() == nil && to.Validate() == nil
}

func (s ApplicationStatus) ToUpper() string {
	return strings.ToUpper(string(s))
}
