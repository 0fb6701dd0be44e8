// Package memstore is test support only: users, jobs and applications kept in memory behind
// the same Provider interfaces as the gorm stores. Imported by _test.go files, never by the server.
package memstore

import (
	"fmt"
	applicationstore "recruitment-backend/lib/application/store"
	jobstore "recruitment-backend/lib/job/store"
	usersstore "recruitment-backend/lib/users/store"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type DB struct {
	mu    sync.Mutex
	seq   int
	start time.Time
	users map[string]dbmodels.User
	jobs  map[string]dbmodels.Job
	apps  map[string]dbmodels.Application
	// FailCreateApplication makes the next application insert fail.
	FailCreateApplication error
}

func New() *DB {
	return &DB{
		start: time.Now(),
		users: map[string]dbmodels.User{},
		jobs:  map[string]dbmodels.Job{},
		apps:  map[string]dbmodels.Application{},
	}
}

var (
	_ usersstore.Provider       = users{}
	_ jobstore.Provider         = jobs{}
	_ applicationstore.Provider = applications{}
)

func (d *DB) Users() usersstore.Provider {
	return users{d}
}

func (d *DB) Jobs() jobstore.Provider {
	return jobs{d}
}

func (d *DB) Applications() applicationstore.Provider {
	return applications{d}
}

// nextBase must be called with mu held.
func (d *DB) nextBase(prefix string) dbmodels.BaseModel {
	d.seq++
	ts := d.start.Add(time.Duration(d.seq) * time.Millisecond)
	return dbmodels.BaseModel{
		ID:        fmt.Sprintf("%s-%d", prefix, d.seq),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func (d *DB) AddUser(username, email string, role models.UserRole, isApproved bool) dbmodels.User {
	rec := dbmodels.User{Username: username, Email: email, Role: role, IsApproved: isApproved}
	id, err := d.Users().Create(rec)
	if err != nil {
		panic(err)
	}
	rec, _ = d.GetUser(id)
	return rec
}

func (d *DB) AddJob(creatorID, title string, vacancies int) dbmodels.Job {
	rec := dbmodels.Job{
		JobTitle:       title,
		JobDescription: title,
		RequiredSkills: []string{"go"},
		Location:       "Remote",
		JobType:        models.JobTypeFullTime,
		Vacancies:      vacancies,
		IsOpen:         true,
		CreatedByID:    creatorID,
	}
	id, _ := d.Jobs().Create(rec)
	rec, _ = d.GetJob(id)
	return rec
}

func (d *DB) GetUser(id string) (dbmodels.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.users[id]
	return rec, ok
}

func (d *DB) GetJob(id string) (dbmodels.Job, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.jobs[id]
	return rec, ok
}

func (d *DB) GetApplication(id string) (dbmodels.Application, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.apps[id]
	return rec, ok
}

func (d *DB) ApplicationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.apps)
}

type users struct {
	d *DB
}

func (u users) Create(rec dbmodels.User) (string, error) {
	u.d.mu.Lock()
	defer u.d.mu.Unlock()
	for _, existed := range u.d.users {
		if strings.EqualFold(existed.Email, rec.Email) {
			return "", gorm.ErrDuplicatedKey
		}
	}
	rec.BaseModel = u.d.nextBase("user")
	u.d.users[rec.ID] = rec
	return rec.ID, nil
}

func (u users) GetByID(id string) (*dbmodels.User, error) {
	u.d.mu.Lock()
	defer u.d.mu.Unlock()
	rec, ok := u.d.users[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (u users) FindByEmail(email string) (*dbmodels.User, error) {
	u.d.mu.Lock()
	defer u.d.mu.Unlock()
	for _, rec := range u.d.users {
		if strings.EqualFold(rec.Email, email) {
			return &rec, nil
		}
	}
	return nil, nil
}

func (u users) SetApproved(id string, isApproved bool) error {
	u.d.mu.Lock()
	defer u.d.mu.Unlock()
	rec, ok := u.d.users[id]
	if !ok {
		return errors.New("record not found")
	}
	rec.IsApproved = isApproved
	u.d.users[id] = rec
	return nil
}

func (u users) ListByRole(role models.UserRole) ([]dbmodels.User, error) {
	u.d.mu.Lock()
	defer u.d.mu.Unlock()
	list := []dbmodels.User{}
	for _, rec := range u.d.users {
		if rec.Role == role {
			rec.Password = ""
			list = append(list, rec)
		}
	}
	sortNewestFirst(list, func(i int) time.Time { return list[i].CreatedAt })
	return list, nil
}

type jobs struct {
	d *DB
}

func (j jobs) Create(rec dbmodels.Job) (string, error) {
	j.d.mu.Lock()
	defer j.d.mu.Unlock()
	rec.BaseModel = j.d.nextBase("job")
	rec.CreatedBy = nil
	j.d.jobs[rec.ID] = rec
	return rec.ID, nil
}

func (j jobs) GetByID(id string) (*dbmodels.Job, error) {
	j.d.mu.Lock()
	defer j.d.mu.Unlock()
	rec, ok := j.d.jobs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (j jobs) CloseIfOpen(id string) (bool, error) {
	j.d.mu.Lock()
	defer j.d.mu.Unlock()
	rec, ok := j.d.jobs[id]
	if !ok || !rec.IsOpen {
		return false, nil
	}
	rec.IsOpen = false
	j.d.jobs[id] = rec
	return true, nil
}

func (j jobs) list(filter func(dbmodels.Job) bool) []dbmodels.Job {
	j.d.mu.Lock()
	defer j.d.mu.Unlock()
	list := []dbmodels.Job{}
	for _, rec := range j.d.jobs {
		if filter(rec) {
			list = append(list, rec)
		}
	}
	sortNewestFirst(list, func(i int) time.Time { return list[i].CreatedAt })
	return list
}

func (j jobs) ListOpen() ([]dbmodels.Job, error) {
	return j.list(func(rec dbmodels.Job) bool { return rec.IsOpen }), nil
}

func (j jobs) ListByCreator(userID string) ([]dbmodels.Job, error) {
	return j.list(func(rec dbmodels.Job) bool { return rec.CreatedByID == userID }), nil
}

func (j jobs) ListAll() ([]dbmodels.Job, error) {
	list := j.list(func(dbmodels.Job) bool { return true })
	j.d.mu.Lock()
	defer j.d.mu.Unlock()
	for idx := range list {
		if creator, ok := j.d.users[list[idx].CreatedByID]; ok {
			creator.Password = ""
			list[idx].CreatedBy = &creator
		}
	}
	return list, nil
}

type applications struct {
	d *DB
}

func (a applications) Create(rec dbmodels.Application) (string, error) {
	a.d.mu.Lock()
	defer a.d.mu.Unlock()
	if a.d.FailCreateApplication != nil {
		err := a.d.FailCreateApplication
		a.d.FailCreateApplication = nil
		return "", err
	}
	for _, existed := range a.d.apps {
		if existed.JobID == rec.JobID && existed.CandidateID == rec.CandidateID {
			return "", gorm.ErrDuplicatedKey
		}
	}
	rec.BaseModel = a.d.nextBase("application")
	rec.Job = nil
	rec.Candidate = nil
	a.d.apps[rec.ID] = rec
	return rec.ID, nil
}

func (a applications) GetByID(id string) (*dbmodels.Application, error) {
	a.d.mu.Lock()
	defer a.d.mu.Unlock()
	rec, ok := a.d.apps[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (a applications) Exist(jobID, candidateID string) (bool, error) {
	a.d.mu.Lock()
	defer a.d.mu.Unlock()
	for _, rec := range a.d.apps {
		if rec.JobID == jobID && rec.CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func (a applications) UpdateStatus(id string, status models.ApplicationStatus) error {
	a.d.mu.Lock()
	defer a.d.mu.Unlock()
	rec, ok := a.d.apps[id]
	if !ok {
		return errors.New("record not found")
	}
	rec.Status = status
	a.d.apps[id] = rec
	return nil
}

func (a applications) CountByStatus(jobID string, status models.ApplicationStatus) (int64, error) {
	a.d.mu.Lock()
	defer a.d.mu.Unlock()
	var count int64
	for _, rec := range a.d.apps {
		if rec.JobID == jobID && rec.Status == status {
			count++
		}
	}
	return count, nil
}

// list must be called with mu held.
func (a applications) list(filter func(dbmodels.Application) bool) []dbmodels.Application {
	list := []dbmodels.Application{}
	for _, rec := range a.d.apps {
		if !filter(rec) {
			continue
		}
		if job, ok := a.d.jobs[rec.JobID]; ok {
			rec.Job = &job
		}
		if candidate, ok := a.d.users[rec.CandidateID]; ok {
			candidate.Password = ""
			rec.Candidate = &candidate
		}
		list = append(list, rec)
	}
	sortNewestFirst(list, func(i int) time.Time { return list[i].CreatedAt })
	return list
}

func (a applications) ListByCandidate(candidateID string) ([]dbmodels.Application, error) {
	a.d.mu.Lock()
	defer a.d.mu.Unlock()
	return a.list(func(rec dbmodels.Application) bool { return rec.CandidateID == candidateID }), nil
}

func (a applications) ListByJob(jobID string) ([]dbmodels.Application, error) {
	a.d.mu.Lock()
	defer a.d.mu.Unlock()
	return a.list(func(rec dbmodels.Application) bool { return rec.JobID == jobID }), nil
}

func (a applications) ListByJobCreator(userID string) ([]dbmodels.Application, error) {
	a.d.mu.Lock()
	defer a.d.mu.Unlock()
	return a.list(func(rec dbmodels.Application) bool {
		job, ok := a.d.jobs[rec.JobID]
		return ok && job.CreatedByID == userID
	}), nil
}

func (a applications) ListCandidatesOfJob(jobID string) ([]dbmodels.User, error) {
	a.d.mu.Lock()
	defer a.d.mu.Unlock()
	seen := map[string]bool{}
	list := []dbmodels.User{}
	for _, rec := range a.d.apps {
		if rec.JobID != jobID || seen[rec.CandidateID] {
			continue
		}
		seen[rec.CandidateID] = true
		if candidate, ok := a.d.users[rec.CandidateID]; ok {
			list = append(list, dbmodels.User{BaseModel: candidate.BaseModel, Username: candidate.Username, Email: candidate.Email})
		}
	}
	return list, nil
}

func (a applications) StatsByJobCreator(userID string) ([]dbmodels.JobStat, error) {
	a.d.mu.Lock()
	defer a.d.mu.Unlock()
	jobList := []dbmodels.Job{}
	for _, job := range a.d.jobs {
		if job.CreatedByID == userID {
			jobList = append(jobList, job)
		}
	}
	sortNewestFirst(jobList, func(i int) time.Time { return jobList[i].CreatedAt })
	result := make([]dbmodels.JobStat, 0, len(jobList))
	for _, job := range jobList {
		stat := dbmodels.JobStat{JobID: job.ID, JobTitle: job.JobTitle, IsOpen: job.IsOpen, Vacancies: job.Vacancies}
		for _, rec := range a.d.apps {
			if rec.JobID != job.ID {
				continue
			}
			stat.TotalApplied++
			switch rec.Status {
			case models.ApplicationStatusShortlisted:
				stat.Shortlisted++
			case models.ApplicationStatusRejected:
				stat.Rejected++
			case models.ApplicationStatusApplied:
				stat.Pending++
			}
		}
		result = append(result, stat)
	}
	return result, nil
}

func sortNewestFirst[T any](list []T, createdAt func(i int) time.Time) {
	sort.SliceStable(list, func(i, j int) bool {
		return createdAt(i).After(createdAt(j))
	})
}
