package applicationhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hiring-platform-backend/db"
	"hiring-platform-backend/lib/apperror"
	applicationstore "hiring-platform-backend/lib/application/store"
	jobstore "hiring-platform-backend/lib/job/store"
	"hiring-platform-backend/models"
	applicationapimodels "hiring-platform-backend/models/api/application"
	dbmodels "hiring-platform-backend/models/db"
)

type Provider interface {
	Create(jobID, candidateID string, data applicationapimodels.ApplicationData) (id string, err error)
	ListByJob(jobID, userID string, role models.UserRole, filter applicationapimodels.ApplicationFilter) (list []applicationapimodels.ApplicationView, count int64, err error)
	ListMy(candidateID string, filter applicationapimodels.ApplicationFilter) (list []applicationapimodels.ApplicationView, count int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:    applicationstore.NewInstance(db.DB),
		jobStore: jobstore.NewInstance(db.DB),
	}
}

type impl struct {
	store    applicationstore.Provider
	jobStore jobstore.Provider
}

func (i impl) Create(jobID, candidateID string, data applicationapimodels.ApplicationData) (id string, err error) {
	logger := log.
		WithField("job_id", jobID).
		WithField("candidate_id", candidateID)
	job, err := i.jobStore.GetByID(jobID)
	if err != nil {
		logger.WithError(err).Error("failed to read job")
		return "", apperror.Unavailable("failed to read job")
	}
	if job == nil || !job.VisibleToCandidate() {
		return "", apperror.NotFound("job not found")
	}
	if !job.AcceptsApplications(time.Now()) {
		return "", apperror.New(apperror.CodeInvalidStatus, "job is not accepting applications")
	}
	rec := dbmodels.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		FullName:    data.FullName,
		Email:       data.Email,
		Phone:       data.Phone,
		ResumeURL:   data.ResumeURL,
		CoverLetter: data.CoverLetter,
		Status:      models.ApplicationStatusApplied,
	}
	recID, err := i.store.CreateWithIncrement(rec)
	if err != nil {
		if errors.Is(err, applicationstore.ErrDuplicate) {
			return "", apperror.DuplicateApplication()
		}
		logger.WithError(err).Error("failed to create application")
		return "", apperror.Unavailable("failed to create application")
	}
	logger.
		WithField("application_id", recID).
		Info("application created")
	return recID, nil
}

func (i impl) ListByJob(jobID, userID string, role models.UserRole, filter applicationapimodels.ApplicationFilter) ([]applicationapimodels.ApplicationView, int64, error) {
	if !role.IsPrivileged() {
		return nil, 0, apperror.Forbidden("applications are visible to recruiters, hiring managers and administrators")
	}
	job, err := i.jobStore.GetByID(jobID)
	if err != nil {
		log.WithError(err).WithField("job_id", jobID).Error("failed to read job")
		return nil, 0, apperror.Unavailable("failed to read job")
	}
	if job == nil {
		return nil, 0, apperror.NotFound("job not found")
	}
	list, count, err := i.store.ListByJob(jobID, filter)
	if err != nil {
		log.WithError(err).WithField("job_id", jobID).Error("failed to list applications")
		return nil, 0, apperror.Unavailable("failed to list applications")
	}
	return convertList(list), count, nil
}

func (i impl) ListMy(candidateID string, filter applicationapimodels.ApplicationFilter) ([]applicationapimodels.ApplicationView, int64, error) {
	list, count, err := i.store.ListByCandidate(candidateID, filter)
	if err != nil {
		log.WithError(err).WithField("candidate_id", candidateID).Error("failed to list applications")
		return nil, 0, apperror.Unavailable("failed to list applications")
	}
	return convertList(list), count, nil
}

func convertList(list []dbmodels.Application) []applicationapimodels.ApplicationView {
	result := make([]applicationapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.ApplicationConvert(rec))
	}
	return result
}
