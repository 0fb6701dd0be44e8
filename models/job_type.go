package models

import "github.com/pkg/errors"

type JobType string

const (
	JobTypeFullTime   JobType = "Full-Time"
	JobTypePartTime   JobType = "Part-Time"
	JobTypeInternship JobType = "Internship"
)

func (t JobType) Validate() error {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship:
		return nil
	default:
		return errors.New("Invalid job type")
	}
}

type JobCloseReason string

const (
	JobCloseReasonVacanciesFilled JobCloseReason = "vacancies-filled"
	JobCloseReasonManual          JobCloseReason = "manual-close"
)

func (r JobCloseReason) ToHuman() string {
	switch r {
	case JobCloseReasonVacanciesFilled:
		return "all vacancies have been filled"
	case JobCloseReasonManual:
		return "it has been manually closed by the hiring team"
	default:
		return string(r)
	}
}
