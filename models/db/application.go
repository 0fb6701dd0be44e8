package dbmodels

import (
	"recruitment-backend/models"
)

type Application struct {
	BaseModel
	JobID             string                   `gorm:"type:varchar(36);uniqueIndex:idx_application_job_candidate"`
	Job               *Job                     `gorm:"foreignKey:JobID"`
	CandidateID       string                   `gorm:"type:varchar(36);uniqueIndex:idx_application_job_candidate;index"`
	Candidate         *User                    `gorm:"foreignKey:CandidateID"`
	Status            models.ApplicationStatus `gorm:"type:varchar(20);index"`
	ResumeLocator     string                   `gorm:"type:varchar(512)"`
	ResumeFilename    string                   `gorm:"type:varchar(255)"`
	ResumeContentType string                   `gorm:"type:varchar(100)"`
}

func (a Application) IsCandidate(userID string) bool {
	return a.CandidateID != "" && a.CandidateID == userID
}

func (a Application) GetResumeFilename() string {
	if a.ResumeFilename == "" {
		return "resume.pdf"
	}
	return a.ResumeFilename
}
