package dbmodels

import (
	"recruitment-backend/models"

	"github.com/lib/pq"
)

type Job struct {
	BaseModel
	JobTitle       string         `gorm:"type:varchar(255)"`
	JobDescription string         `gorm:"type:text"`
	RequiredSkills pq.StringArray `gorm:"type:text[]"`
	Experience     float64
	Location       string         `gorm:"type:varchar(255)"`
	JobType        models.JobType `gorm:"type:varchar(50)"`
	Vacancies      int
	IsOpen         bool   `gorm:"index"`
	CreatedByID    string `gorm:"type:varchar(36);index"`
	CreatedBy      *User  `gorm:"foreignKey:CreatedByID"`
}

func (j Job) IsOwner(userID string) bool {
	return j.CreatedByID != "" && j.CreatedByID == userID
}

// JobStat - counters of applications per job, filled by an aggregate query
type JobStat struct {
	JobID        string
	JobTitle     string
	IsOpen       bool
	Vacancies    int
	TotalApplied int64
	Shortlisted  int64
	Rejected     int64
	Pending      int64
}
