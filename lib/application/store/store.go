package applicationstore

import (
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	GetByID(id string) (rec *dbmodels.Application, err error)
	Exist(jobID, candidateID string) (bool, error)
	UpdateStatus(id string, status models.ApplicationStatus) error
	CountByStatus(jobID string, status models.ApplicationStatus) (count int64, err error)
	ListByCandidate(candidateID string) (list []dbmodels.Application, err error)
	ListByJob(jobID string) (list []dbmodels.Application, err error)
	ListByJobCreator(userID string) (list []dbmodels.Application, err error)
	ListCandidatesOfJob(jobID string) (list []dbmodels.User, err error)
	StatsByJobCreator(userID string) (list []dbmodels.JobStat, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func candidateShort(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "email")
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Exist(jobID, candidateID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Application{}).
		Where("job_id = ?", jobID).
		Where("candidate_id = ?", candidateID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) UpdateStatus(id string, status models.ApplicationStatus) error {
	tx := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("record not found")
	}
	return nil
}

func (i impl) CountByStatus(jobID string, status models.ApplicationStatus) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Application{}).
		Where("job_id = ?", jobID).
		Where("status = ?", status).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListByCandidate(candidateID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Model(&dbmodels.Application{}).
		Where("candidate_id = ?", candidateID).
		Preload("Job").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByJob(jobID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Model(&dbmodels.Application{}).
		Where("job_id = ?", jobID).
		Preload("Candidate", candidateShort).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByJobCreator(userID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Model(&dbmodels.Application{}).
		Joins("join jobs on jobs.id = applications.job_id").
		Where("jobs.created_by_id = ?", userID).
		Preload("Job").
		Preload("Candidate", candidateShort).
		Order("applications.created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCandidatesOfJob(jobID string) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	err = i.db.
		Model(&dbmodels.User{}).
		Select("distinct users.id, users.username, users.email").
		Joins("join applications on applications.candidate_id = users.id").
		Where("applications.job_id = ?", jobID).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) StatsByJobCreator(userID string) (list []dbmodels.JobStat, err error) {
	list = []dbmodels.JobStat{}
	err = i.db.
		Model(&dbmodels.Job{}).
		Select(`jobs.id as job_id, jobs.job_title, jobs.is_open, jobs.vacancies,
			count(a.id) as total_applied,
			count(a.id) filter (where a.status = ?) as shortlisted,
			count(a.id) filter (where a.status = ?) as rejected,
			count(a.id) filter (where a.status = ?) as pending`,
			models.ApplicationStatusShortlisted, models.ApplicationStatusRejected, models.ApplicationStatusApplied).
		Joins("left join applications as a on a.job_id = jobs.id").
		Where("jobs.created_by_id = ?", userID).
		Group("jobs.id").
		Order("jobs.created_at desc").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
