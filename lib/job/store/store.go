package jobstore

import (
	dbmodels "recruitment-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Job) (id string, err error)
	GetByID(id string) (rec *dbmodels.Job, err error)
	// CloseIfOpen flips is_open in a single conditional statement. closed is true only for the caller that flipped it.
	CloseIfOpen(id string) (closed bool, err error)
	ListOpen() (list []dbmodels.Job, err error)
	ListByCreator(userID string) (list []dbmodels.Job, err error)
	ListAll() (list []dbmodels.Job, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Job) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Model(&dbmodels.Job{}).
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

func (i impl) CloseIfOpen(id string) (closed bool, err error) {
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Where("is_open = ?", true).
		Update("is_open", false)
	if err = tx.Error; err != nil {
		return false, err
	}
	return tx.RowsAffected == 1, nil
}

func (i impl) ListOpen() (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	err = i.db.
		Model(&dbmodels.Job{}).
		Where("is_open = ?", true).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByCreator(userID string) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	err = i.db.
		Model(&dbmodels.Job{}).
		Where("created_by_id = ?", userID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListAll() (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	err = i.db.
		Model(&dbmodels.Job{}).
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "email")
		}).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
