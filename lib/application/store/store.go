package applicationstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	applicationapimodels "hiring-platform-backend/models/api/application"
	dbmodels "hiring-platform-backend/models/db"
)

type Provider interface {
	// CreateWithIncrement inserts the application and bumps the job's
	// application counter in one transaction; exactly one increment per
	// created application.
	CreateWithIncrement(rec dbmodels.Application) (id string, err error)
	GetByID(id string) (rec *dbmodels.Application, err error)
	ListByJob(jobID string, filter applicationapimodels.ApplicationFilter) (list []dbmodels.Application, count int64, err error)
	ListByCandidate(candidateID string, filter applicationapimodels.ApplicationFilter) (list []dbmodels.Application, count int64, err error)
}

// ErrDuplicate reports a second application for the same (job, candidate)
// pair; the composite unique index is the arbiter under concurrency.
var ErrDuplicate = errors.New("duplicate application")

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateWithIncrement(rec dbmodels.Application) (id string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "SQLSTATE 23505") {
				return ErrDuplicate
			}
			return err
		}
		return tx.Model(&dbmodels.Job{}).
			Where("id = ?", rec.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + 1")).
			Error
	})
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

func (i impl) ListByJob(jobID string, filter applicationapimodels.ApplicationFilter) ([]dbmodels.Application, int64, error) {
	return i.listWhere("job_id = ?", jobID, filter)
}

func (i impl) ListByCandidate(candidateID string, filter applicationapimodels.ApplicationFilter) ([]dbmodels.Application, int64, error) {
	return i.listWhere("candidate_id = ?", candidateID, filter)
}

func (i impl) listWhere(cond string, arg string, filter applicationapimodels.ApplicationFilter) ([]dbmodels.Application, int64, error) {
	base := i.db.
		Model(dbmodels.Application{}).
		Where(cond, arg)
	if filter.Status != "" && filter.Status.IsKnown() {
		base = base.Where("status = ?", filter.Status)
	}
	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	list := []dbmodels.Application{}
	err := base.
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, count, nil
}
