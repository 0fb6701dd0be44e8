package applicationapimodels

import (
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type ApplyResponse struct {
	Message       string `json:"message"`
	ApplicationID string `json:"applicationId"`
}

type StatusChangeRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

func (r *StatusChangeRequest) Normalize() {
	r.Status = models.ApplicationStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
}

func (r StatusChangeRequest) Validate() error {
	if r.Status == "" {
		return errors.New("Status is required")
	}
	return r.Status.Validate()
}

type StatusChangeResponse struct {
	Message string `json:"message"`
}

type JobSummary struct {
	ID       string         `json:"id"`
	JobTitle string         `json:"jobTitle"`
	Location string         `json:"location"`
	JobType  models.JobType `json:"jobType"`
	IsOpen   bool           `json:"isOpen"`
}

type CandidateSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ApplicationView struct {
	ID             string                   `json:"id"`
	JobID          string                   `json:"jobId"`
	CandidateID    string                   `json:"candidateId"`
	Status         models.ApplicationStatus `json:"status"`
	ResumeFilename string                   `json:"resumeFilename"`
	Job            *JobSummary              `json:"job,omitempty"`
	Candidate      *CandidateSummary        `json:"candidate,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
}

func Convert(rec dbmodels.Application) ApplicationView {
	result := ApplicationView{
		ID:             rec.ID,
		JobID:          rec.JobID,
		CandidateID:    rec.CandidateID,
		Status:         rec.Status,
		ResumeFilename: rec.GetResumeFilename(),
		CreatedAt:      rec.CreatedAt,
	}
	if rec.Job != nil {
		result.Job = &JobSummary{
			ID:       rec.Job.ID,
			JobTitle: rec.Job.JobTitle,
			Location: rec.Job.Location,
			JobType:  rec.Job.JobType,
			IsOpen:   rec.Job.IsOpen,
		}
	}
	if rec.Candidate != nil {
		result.Candidate = &CandidateSummary{
			ID:       rec.Candidate.ID,
			Username: rec.Candidate.Username,
			Email:    rec.Candidate.Email,
		}
	}
	return result
}

func ConvertList(list []dbmodels.Application) []ApplicationView {
	result := make([]ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, Convert(rec))
	}
	return result
}

type ApplicationListResponse struct {
	Message      string            `json:"message"`
	Applications []ApplicationView `json:"applications"`
}
