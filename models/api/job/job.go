package jobapimodels

import (
	"encoding/json"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SkillList accepts either a JSON array of strings or a single comma separated string.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		var joined string
		if errStr := json.Unmarshal(data, &joined); errStr != nil {
			return errors.New("Invalid requiredSkills format")
		}
		raw = strings.Split(joined, ",")
	}
	*s = NormalizeSkills(raw)
	return nil
}

// NormalizeSkills trims, drops empty items and removes case-insensitive duplicates keeping the first spelling.
func NormalizeSkills(raw []string) []string {
	result := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, item)
	}
	return result
}

type JobData struct {
	JobTitle       string         `json:"jobTitle"`
	JobDescription string         `json:"jobDescription"`
	RequiredSkills SkillList      `json:"requiredSkills" swaggertype:"array,string"`
	Experience     *float64       `json:"experience"`
	Location       string         `json:"location"`
	JobType        models.JobType `json:"jobType"`
	Vacancies      *int           `json:"vacancies"`
}

func (j *JobData) Normalize() {
	j.JobTitle = strings.TrimSpace(j.JobTitle)
	j.JobDescription = strings.TrimSpace(j.JobDescription)
	j.Location = strings.TrimSpace(j.Location)
	j.JobType = models.JobType(strings.TrimSpace(string(j.JobType)))
}

func (j JobData) Validate() error {
	if j.JobTitle == "" || j.JobDescription == "" || j.Location == "" ||
		j.JobType == "" || j.Experience == nil || j.Vacancies == nil {
		return errors.New("All fields are required")
	}
	if len(j.RequiredSkills) == 0 {
		return errors.New("At least one skill is required")
	}
	if *j.Experience < 0 {
		return errors.New("Experience can not be negative")
	}
	if *j.Vacancies < 1 {
		return errors.New("Vacancies must be at least 1")
	}
	if err := j.JobType.Validate(); err != nil {
		return err
	}
	return nil
}

type CreatorView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type JobView struct {
	ID             string         `json:"id"`
	JobTitle       string         `json:"jobTitle"`
	JobDescription string         `json:"jobDescription"`
	RequiredSkills []string       `json:"requiredSkills"`
	Experience     float64        `json:"experience"`
	Location       string         `json:"location"`
	JobType        models.JobType `json:"jobType"`
	Vacancies      int            `json:"vacancies"`
	IsOpen         bool           `json:"isOpen"`
	CreatedBy      string         `json:"createdBy"`
	Creator        *CreatorView   `json:"creator,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func Convert(rec dbmodels.Job) JobView {
	result := JobView{
		ID:             rec.ID,
		JobTitle:       rec.JobTitle,
		JobDescription: rec.JobDescription,
		RequiredSkills: rec.RequiredSkills,
		Experience:     rec.Experience,
		Location:       rec.Location,
		JobType:        rec.JobType,
		Vacancies:      rec.Vacancies,
		IsOpen:         rec.IsOpen,
		CreatedBy:      rec.CreatedByID,
		CreatedAt:      rec.CreatedAt,
	}
	if result.RequiredSkills == nil {
		result.RequiredSkills = []string{}
	}
	if rec.CreatedBy != nil {
		result.Creator = &CreatorView{
			ID:       rec.CreatedBy.ID,
			Username: rec.CreatedBy.Username,
			Email:    rec.CreatedBy.Email,
		}
	}
	return result
}

type JobListResponse struct {
	Message string    `json:"message"`
	Jobs    []JobView `json:"jobs"`
}

type JobCreateResponse struct {
	Message string `json:"message"`
	JobID   string `json:"jobId"`
}

type JobCloseResponse struct {
	Message string `json:"message"`
}
