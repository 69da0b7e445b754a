package jobstore

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hiring-platform-backend/models"
	jobapimodels "hiring-platform-backend/models/api/job"
	dbmodels "hiring-platform-backend/models/db"
)

// ListQuery combines the caller-supplied filter with the visibility
// constraints the handler derives from the caller's role.
type ListQuery struct {
	Filter            jobapimodels.JobFilter
	Statuses          []models.JobStatus
	OnlyActive        bool
	UnexpiredDeadline bool
	CreatedBy         string
}

type StatusAgg struct {
	Status       models.JobStatus
	Count        int64
	Views        int64
	Applications int64
}

type Provider interface {
	Create(rec dbmodels.Job) (id string, err error)
	GetByID(id string) (rec *dbmodels.Job, err error)
	GetByPublicLink(link string) (rec *dbmodels.Job, err error)
	Update(id string, updMap map[string]interface{}) (updated bool, err error)
	// UpdateWhereStatus applies updMap only if the job's status is still in
	// from; concurrent transitions are decided by this single conditional
	// update.
	UpdateWhereStatus(id string, from []models.JobStatus, updMap map[string]interface{}) (updated bool, err error)
	// UpdateFieldsWhereStatus merges the named fields of rec under the same
	// status condition; struct updates keep serialized columns intact.
	UpdateFieldsWhereStatus(id string, from []models.JobStatus, rec dbmodels.Job, fields []string) (updated bool, err error)
	DeleteWhereStatus(id string, from []models.JobStatus) (deleted bool, err error)
	List(query ListQuery) (list []dbmodels.Job, err error)
	ListCount(query ListQuery) (count int64, err error)
	IncrementViews(id string) error
	IncrementApplications(id string) error
	Stats(createdBy string) (aggs []StatusAgg, err error)
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
	err = i.db.
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

func (i impl) GetByPublicLink(link string) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Model(&dbmodels.Job{}).
		Where("public_link = ?", link).
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

func (i impl) Update(id string, updMap map[string]interface{}) (bool, error) {
	if len(updMap) == 0 {
		return true, nil
	}
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) UpdateWhereStatus(id string, from []models.JobStatus, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Where("status IN ?", from).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) UpdateFieldsWhereStatus(id string, from []models.JobStatus, rec dbmodels.Job, fields []string) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Where("status IN ?", from).
		Select(fields).
		Updates(&rec)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) DeleteWhereStatus(id string, from []models.JobStatus) (bool, error) {
	tx := i.db.
		Where("id = ?", id).
		Where("status IN ?", from).
		Delete(&dbmodels.Job{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) List(query ListQuery) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	tx := i.db.
		Model(dbmodels.Job{})
	i.addQuery(tx, query)
	page, limit := query.Filter.GetPage()
	i.setPage(tx, page, limit)
	tx.Order("created_at desc")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(query ListQuery) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Job{})
	i.addQuery(tx, query)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count jobs")
	}
	return rowCount, nil
}

func (i impl) IncrementViews(id string) error {
	return i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).
		Error
}

func (i impl) IncrementApplications(id string) error {
	return i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		UpdateColumn("applications_count", gorm.Expr("applications_count + 1")).
		Error
}

func (i impl) Stats(createdBy string) (aggs []StatusAgg, err error) {
	aggs = []StatusAgg{}
	tx := i.db.
		Model(dbmodels.Job{}).
		Select("status, count(*) as count, coalesce(sum(views_count), 0) as views, coalesce(sum(applications_count), 0) as applications").
		Group("status")
	if createdBy != "" {
		tx = tx.Where("created_by = ?", createdBy)
	}
	err = tx.Find(&aggs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate job stats")
	}
	return aggs, nil
}

func (i impl) addQuery(tx *gorm.DB, query ListQuery) {
	if len(query.Statuses) != 0 {
		tx = tx.Where("status IN ?", query.Statuses)
	}
	if query.OnlyActive {
		tx = tx.Where("is_active = true")
	}
	if query.UnexpiredDeadline {
		tx = tx.Where("application_deadline IS NULL OR application_deadline >= ?", time.Now())
	}
	if query.CreatedBy != "" {
		tx = tx.Where("created_by = ?", query.CreatedBy)
	}
	filter := query.Filter
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern)
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", filter.Department)
	}
	if filter.WorkLocationType != "" {
		tx = tx.Where("work_location_type = ?", filter.WorkLocationType)
	}
	if filter.EmploymentType != "" {
		tx = tx.Where("employment_type = ?", filter.EmploymentType)
	}
	// Tags and skills are stored JSON-serialized; match on the quoted value.
	for _, tag := range filter.Tags {
		tx = tx.Where("tags LIKE ?", "%\""+tag+"\"%")
	}
	for _, skill := range filter.Skills {
		tx = tx.Where("skills LIKE ?", "%\""+skill+"\"%")
	}
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
