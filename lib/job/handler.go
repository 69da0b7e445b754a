package jobhandler

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"hiring-platform-backend/db"
	"hiring-platform-backend/lib/apperror"
	jobstore "hiring-platform-backend/lib/job/store"
	smtpclient "hiring-platform-backend/lib/smtp"
	"hiring-platform-backend/models"
	jobapimodels "hiring-platform-backend/models/api/job"
	dbmodels "hiring-platform-backend/models/db"
)

type Provider interface {
	Create(userID string, role models.UserRole, data jobapimodels.JobData) (id string, err error)
	GetByID(id, userID string, role models.UserRole) (item jobapimodels.JobView, err error)
	Update(id, userID string, role models.UserRole, data jobapimodels.JobData) error
	Delete(id, userID string, role models.UserRole) error
	List(userID string, role models.UserRole, filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error)
	SubmitForApproval(id, userID string, role models.UserRole) error
	Approve(id, userID string, role models.UserRole, data jobapimodels.ApproveRequest) error
	Reject(id, userID string, role models.UserRole, data jobapimodels.RejectRequest) error
	Publish(id, userID string, role models.UserRole) error
	Close(id, userID string, role models.UserRole, data jobapimodels.CloseRequest) error
	Cancel(id, userID string, role models.UserRole) error
	MarkFilled(id, userID string, role models.UserRole) error
	BoardList(filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error)
	BoardGetByLink(link string) (item jobapimodels.JobView, err error)
	Stats(userID string, role models.UserRole) (stats jobapimodels.StatsView, err error)
	ListForExport(userID string, role models.UserRole, filter jobapimodels.JobFilter) (list []dbmodels.Job, err error)
}

var Instance Provider

func NewHandler(mailer smtpclient.Provider, notifyEmail string) {
	Instance = impl{
		store:       jobstore.NewInstance(db.DB),
		mailer:      mailer,
		notifyEmail: notifyEmail,
	}
}

type impl struct {
	store       jobstore.Provider
	mailer      smtpclient.Provider
	notifyEmail string
}

// updateFields is the set of columns a field-merge update touches. Workflow
// fields, ownership and counters are deliberately absent.
var updateFields = []string{
	"Title", "Description", "ShortDescription", "Location", "WorkLocationType",
	"EmploymentType", "Department", "Team", "ReportingTo", "Tags", "Priority",
	"InternalNotes", "Skills", "ExperienceMin", "ExperienceMax", "Education",
	"Certifications", "Languages", "VisaSponsorship", "SalaryMin", "SalaryMax",
	"Currency", "PayPeriod", "Equity", "Benefits", "CoverLetterRequired",
	"PortfolioRequired", "ReferencesRequired", "MaxApplications",
	"AutoRejectThreshold", "AssessmentRequired", "AssessmentID",
	"ApplicationDeadline",
}

func (i impl) Create(userID string, role models.UserRole, data jobapimodels.JobData) (id string, err error) {
	logger := i.getLogger("", userID)
	if err = ruleCreate.authorize(nil, userID, role); err != nil {
		return "", err
	}
	rec := dbmodels.Job{
		Title:            data.Title,
		Description:      data.Description,
		ShortDescription: data.ShortDescription,
		Location:         data.Location,
		WorkLocationType: data.WorkLocationType,
		EmploymentType:   data.EmploymentType,
		Department:       data.Department,
		Team:             data.Team,
		ReportingTo:      data.ReportingTo,
		Tags:             data.Tags,
		Priority:         data.Priority,
		InternalNotes:    data.InternalNotes,
		Requirements: dbmodels.Requirements{
			Skills:          data.Requirements.Skills,
			ExperienceMin:   data.Requirements.ExperienceMin,
			ExperienceMax:   data.Requirements.ExperienceMax,
			Education:       data.Requirements.Education,
			Certifications:  data.Requirements.Certifications,
			Languages:       data.Requirements.Languages,
			VisaSponsorship: data.Requirements.VisaSponsorship,
		},
		ApplicationSettings: dbmodels.ApplicationSettings{
			CoverLetterRequired: data.ApplicationSettings.CoverLetterRequired,
			PortfolioRequired:   data.ApplicationSettings.PortfolioRequired,
			ReferencesRequired:  data.ApplicationSettings.ReferencesRequired,
			MaxApplications:     data.ApplicationSettings.MaxApplications,
			AutoRejectThreshold: data.ApplicationSettings.AutoRejectThreshold,
			AssessmentRequired:  data.ApplicationSettings.AssessmentRequired,
			AssessmentID:        data.ApplicationSettings.AssessmentID,
			ApplicationDeadline: data.ApplicationSettings.ApplicationDeadline,
		},
		Status:        models.JobStatusDraft,
		Approval:      dbmodels.Approval{State: models.ApprovalStateNotRequired},
		IsActive:      false,
		CreatedBy:     userID,
		CreatedByRole: role,
	}
	if data.Compensation != nil {
		rec.Compensation = dbmodels.Compensation{
			SalaryMin: data.Compensation.SalaryMin,
			SalaryMax: data.Compensation.SalaryMax,
			Currency:  data.Compensation.Currency,
			PayPeriod: data.Compensation.PayPeriod,
			Equity:    data.Compensation.Equity,
			Benefits:  data.Compensation.Benefits,
		}
	}
	recID, err := i.store.Create(rec)
	if err != nil {
		return "", i.storeErr(logger, err, "failed to create job")
	}
	logger.
		WithField("job_id", recID).
		Info("job created")
	return recID, nil
}

func (i impl) GetByID(id, userID string, role models.UserRole) (jobapimodels.JobView, error) {
	rec, err := i.getRec(id, userID)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	if role == models.UserRoleCandidate {
		if !rec.VisibleToCandidate() {
			return jobapimodels.JobView{}, apperror.NotFound("job not found")
		}
		return jobapimodels.JobConvert(*rec, jobapimodels.RedactFull), nil
	}
	if rec.CreatedBy == userID {
		return jobapimodels.JobConvert(*rec, jobapimodels.RedactNone), nil
	}
	return jobapimodels.JobConvert(*rec, jobapimodels.RedactFull), nil
}

func (i impl) Update(id, userID string, role models.UserRole, data jobapimodels.JobData) error {
	logger := i.getLogger(id, userID)
	rec, err := i.getRec(id, userID)
	if err != nil {
		return err
	}
	if err = ruleUpdate.authorize(rec, userID, role); err != nil {
		return err
	}
	from := ruleUpdate.from
	if role == models.UserRoleHiringManager && rec.CreatedBy != userID {
		// a hiring manager who is not the creator may edit only while the
		// job awaits approval
		from = []models.JobStatus{models.JobStatusPendingApproval}
	}
	upd := dbmodels.Job{
		Title:            data.Title,
		Description:      data.Description,
		ShortDescription: data.ShortDescription,
		Location:         data.Location,
		WorkLocationType: data.WorkLocationType,
		EmploymentType:   data.EmploymentType,
		Department:       data.Department,
		Team:             data.Team,
		ReportingTo:      data.ReportingTo,
		Tags:             data.Tags,
		Priority:         data.Priority,
		InternalNotes:    data.InternalNotes,
		Requirements: dbmodels.Requirements{
			Skills:          data.Requirements.Skills,
			ExperienceMin:   data.Requirements.ExperienceMin,
			ExperienceMax:   data.Requirements.ExperienceMax,
			Education:       data.Requirements.Education,
			Certifications:  data.Requirements.Certifications,
			Languages:       data.Requirements.Languages,
			VisaSponsorship: data.Requirements.VisaSponsorship,
		},
		ApplicationSettings: dbmodels.ApplicationSettings{
			CoverLetterRequired: data.ApplicationSettings.CoverLetterRequired,
			PortfolioRequired:   data.ApplicationSettings.PortfolioRequired,
			ReferencesRequired:  data.ApplicationSettings.ReferencesRequired,
			MaxApplications:     data.ApplicationSettings.MaxApplications,
			AutoRejectThreshold: data.ApplicationSettings.AutoRejectThreshold,
			AssessmentRequired:  data.ApplicationSettings.AssessmentRequired,
			AssessmentID:        data.ApplicationSettings.AssessmentID,
			ApplicationDeadline: data.ApplicationSettings.ApplicationDeadline,
		},
	}
	if data.Compensation != nil {
		upd.Compensation = dbmodels.Compensation{
			SalaryMin: data.Compensation.SalaryMin,
			SalaryMax: data.Compensation.SalaryMax,
			Currency:  data.Compensation.Currency,
			PayPeriod: data.Compensation.PayPeriod,
			Equity:    data.Compensation.Equity,
			Benefits:  data.Compensation.Benefits,
		}
	}
	updated, err := i.store.UpdateFieldsWhereStatus(id, from, upd, updateFields)
	if err != nil {
		return i.storeErr(logger, err, "failed to update job")
	}
	if !updated {
		return i.postRaceError(id, ruleUpdate.operation, from)
	}
	logger.Info("job updated")
	return nil
}

func (i impl) Delete(id, userID string, role models.UserRole) error {
	logger := i.getLogger(id, userID)
	rec, err := i.getRec(id, userID)
	if err != nil {
		return err
	}
	if err = ruleDelete.authorize(rec, userID, role); err != nil {
		return err
	}
	deleted, err := i.store.DeleteWhereStatus(id, ruleDelete.from)
	if err != nil {
		return i.storeErr(logger, err, "failed to delete job")
	}
	if !deleted {
		return i.postRaceError(id, ruleDelete.operation, ruleDelete.from)
	}
	logger.Info("job deleted")
	return nil
}

func (i impl) List(userID string, role models.UserRole, filter jobapimodels.JobFilter) ([]jobapimodels.JobView, int64, error) {
	query := jobstore.ListQuery{Filter: filter}
	if role == models.UserRoleCandidate {
		query.Statuses = []models.JobStatus{models.JobStatusPublished}
		query.OnlyActive = true
	} else if filter.Status != "" {
		if !filter.Status.IsKnown() {
			return nil, 0, apperror.Validation([]apperror.FieldError{
				{Field: "status", Message: "unknown job status"},
			})
		}
		query.Statuses = []models.JobStatus{filter.Status}
	}
	list, rowCount, err := i.list(userID, query)
	if err != nil {
		return nil, 0, err
	}
	result := make([]jobapimodels.JobView, 0, len(list))
	for _, rec := range list {
		redaction := jobapimodels.RedactInternal
		if role == models.UserRoleCandidate {
			redaction = jobapimodels.RedactFull
		} else if rec.CreatedBy == userID {
			redaction = jobapimodels.RedactNone
		}
		result = append(result, jobapimodels.JobConvert(rec, redaction))
	}
	return result, rowCount, nil
}

func (i impl) SubmitForApproval(id, userID string, role models.UserRole) error {
	updMap := map[string]interface{}{
		"status":                    models.JobStatusPendingApproval,
		"approval_state":            models.ApprovalStatePending,
		"approval_approved_by":      "",
		"approval_rejected_by":      "",
		"approval_approved_at":      nil,
		"approval_rejected_at":      nil,
		"approval_rejection_reason": "",
		"approval_comments":         "",
	}
	_, err := i.transition(id, userID, role, ruleSubmit, updMap)
	return err
}

func (i impl) Approve(id, userID string, role models.UserRole, data jobapimodels.ApproveRequest) error {
	now := time.Now()
	updMap := map[string]interface{}{
		"status":               models.JobStatusApproved,
		"approval_state":       models.ApprovalStateApproved,
		"approval_approved_by": userID,
		"approval_approved_at": now,
		"approval_comments":    data.Comments,
	}
	rec, err := i.transition(id, userID, role, ruleApprove, updMap)
	if err != nil {
		return err
	}
	i.notifyDecision(rec, "approved", data.Comments)
	return nil
}

func (i impl) Reject(id, userID string, role models.UserRole, data jobapimodels.RejectRequest) error {
	now := time.Now()
	// rejection returns the job to its creator for rework
	updMap := map[string]interface{}{
		"status":                    models.JobStatusDraft,
		"approval_state":            models.ApprovalStateRejected,
		"approval_rejected_by":      userID,
		"approval_rejected_at":      now,
		"approval_rejection_reason": data.RejectionReason,
		"approval_comments":         data.Comments,
	}
	rec, err := i.transition(id, userID, role, ruleReject, updMap)
	if err != nil {
		return err
	}
	i.notifyDecision(rec, "rejected", data.RejectionReason)
	return nil
}

func (i impl) Publish(id, userID string, role models.UserRole) error {
	logger := i.getLogger(id, userID)
	rec, err := i.getRec(id, userID)
	if err != nil {
		return err
	}
	if err = rulePublish.authorize(rec, userID, role); err != nil {
		return err
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"status":       models.JobStatusPublished,
		"is_active":    true,
		"published_by": userID,
		"published_at": now,
	}
	if rec.PublicLink == "" {
		updMap["public_link"] = PublicLink(rec.Title, rec.ID)
	}
	updated, err := i.store.UpdateWhereStatus(id, rulePublish.from, updMap)
	if err != nil {
		return i.storeErr(logger, err, "failed to publish job")
	}
	if !updated {
		return i.postRaceError(id, rulePublish.operation, rulePublish.from)
	}
	logger.Info("job published")
	return nil
}

func (i impl) Close(id, userID string, role models.UserRole, data jobapimodels.CloseRequest) error {
	reason := data.ClosureReason
	if reason == "" {
		reason = models.DefaultClosureReason
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"status":         models.JobStatusClosed,
		"is_active":      false,
		"closed_at":      now,
		"closure_reason": reason,
	}
	_, err := i.transition(id, userID, role, ruleClose, updMap)
	return err
}

func (i impl) Cancel(id, userID string, role models.UserRole) error {
	updMap := map[string]interface{}{
		"status":    models.JobStatusCancelled,
		"is_active": false,
	}
	_, err := i.transition(id, userID, role, ruleCancel, updMap)
	return err
}

func (i impl) MarkFilled(id, userID string, role models.UserRole) error {
	now := time.Now()
	updMap := map[string]interface{}{
		"status":    models.JobStatusFilled,
		"is_active": false,
		"filled_at": now,
	}
	_, err := i.transition(id, userID, role, ruleFill, updMap)
	return err
}

func (i impl) BoardList(filter jobapimodels.JobFilter) ([]jobapimodels.JobView, int64, error) {
	query := jobstore.ListQuery{
		Filter:            filter,
		Statuses:          []models.JobStatus{models.JobStatusPublished},
		OnlyActive:        true,
		UnexpiredDeadline: true,
	}
	list, rowCount, err := i.list("", query)
	if err != nil {
		return nil, 0, err
	}
	result := make([]jobapimodels.JobView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobapimodels.JobConvert(rec, jobapimodels.RedactFull))
	}
	return result, rowCount, nil
}

func (i impl) BoardGetByLink(link string) (jobapimodels.JobView, error) {
	logger := log.WithField("public_link", link)
	rec, err := i.store.GetByPublicLink(link)
	if err != nil {
		return jobapimodels.JobView{}, i.storeErr(logger, err, "failed to read job by public link")
	}
	if rec == nil || !rec.VisibleToCandidate() {
		return jobapimodels.JobView{}, apperror.NotFound("job not found")
	}
	if rec.ApplicationDeadline != nil && rec.ApplicationDeadline.Before(time.Now()) {
		return jobapimodels.JobView{}, apperror.NotFound("job not found")
	}
	if err = i.store.IncrementViews(rec.ID); err != nil {
		// a lost view is not worth failing the read
		logger.WithError(err).Error("failed to increment job views")
	} else {
		rec.ViewsCount++
	}
	return jobapimodels.JobConvert(*rec, jobapimodels.RedactFull), nil
}

func (i impl) Stats(userID string, role models.UserRole) (jobapimodels.StatsView, error) {
	logger := i.getLogger("", userID)
	createdBy := userID
	if role.IsAdmin() {
		createdBy = ""
	}
	aggs, err := i.store.Stats(createdBy)
	if err != nil {
		return jobapimodels.StatsView{}, i.storeErr(logger, err, "failed to aggregate job stats")
	}
	stats := jobapimodels.StatsView{
		ByStatus: make([]jobapimodels.StatusCount, 0, len(aggs)),
	}
	for _, agg := range aggs {
		stats.ByStatus = append(stats.ByStatus, jobapimodels.StatusCount{
			Status: agg.Status,
			Count:  agg.Count,
		})
		stats.TotalJobs += agg.Count
		stats.TotalViews += agg.Views
		stats.TotalApplications += agg.Applications
	}
	return stats, nil
}

func (i impl) ListForExport(userID string, role models.UserRole, filter jobapimodels.JobFilter) ([]dbmodels.Job, error) {
	if !role.IsPrivileged() {
		return nil, apperror.Forbidden("export is available to recruiters, hiring managers and administrators")
	}
	query := jobstore.ListQuery{Filter: filter}
	if filter.Status != "" {
		query.Statuses = []models.JobStatus{filter.Status}
	}
	// bounded snapshot, not a paged scroll
	query.Filter.Page = 1
	query.Filter.Limit = 100
	list, err := i.store.List(query)
	if err != nil {
		return nil, i.storeErr(i.getLogger("", userID), err, "failed to list jobs for export")
	}
	return list, nil
}

func (i impl) list(userID string, query jobstore.ListQuery) ([]dbmodels.Job, int64, error) {
	logger := i.getLogger("", userID)
	rowCount, err := i.store.ListCount(query)
	if err != nil {
		return nil, 0, i.storeErr(logger, err, "failed to count jobs")
	}
	page, limit := query.Filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) >= rowCount {
		return []dbmodels.Job{}, rowCount, nil
	}
	list, err := i.store.List(query)
	if err != nil {
		return nil, 0, i.storeErr(logger, err, "failed to list jobs")
	}
	return list, rowCount, nil
}

// transition runs one lifecycle step: load, authorize against the rule,
// then a single conditional update deciding any race on status.
func (i impl) transition(id, userID string, role models.UserRole, rule transitionRule, updMap map[string]interface{}) (*dbmodels.Job, error) {
	logger := i.getLogger(id, userID).
		WithField("operation", rule.operation)
	rec, err := i.getRec(id, userID)
	if err != nil {
		return nil, err
	}
	if err = rule.authorize(rec, userID, role); err != nil {
		return nil, err
	}
	updated, err := i.store.UpdateWhereStatus(id, rule.from, updMap)
	if err != nil {
		return nil, i.storeErr(logger, err, "failed to apply job transition")
	}
	if !updated {
		return nil, i.postRaceError(id, rule.operation, rule.from)
	}
	logger.Info("job transition applied")
	return rec, nil
}

// postRaceError classifies a conditional update that touched no rows: the
// job either vanished or moved out of the precondition set concurrently.
// from is the effective status set the caller was held to, which may be
// narrower than the rule's.
func (i impl) postRaceError(id, operation string, from []models.JobStatus) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return i.storeErr(log.WithField("job_id", id), err, "failed to re-read job after lost transition")
	}
	if rec == nil {
		return apperror.NotFound("job not found")
	}
	return apperror.InvalidStatus(operation, from...)
}

func (i impl) getRec(id, userID string) (*dbmodels.Job, error) {
	logger := i.getLogger(id, userID)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, i.storeErr(logger, err, "failed to read job")
	}
	if rec == nil {
		return nil, apperror.NotFound("job not found")
	}
	return rec, nil
}

func (i impl) notifyDecision(rec *dbmodels.Job, decision, comment string) {
	if i.mailer == nil || i.notifyEmail == "" || rec == nil {
		return
	}
	go func(title string) {
		subject := fmt.Sprintf("Job %s", decision)
		message := fmt.Sprintf("The job posting %q was %s. %s", title, decision, comment)
		_ = i.mailer.SendEMail(i.notifyEmail, subject, message)
	}(rec.Title)
}

func (i impl) storeErr(logger *log.Entry, err error, msg string) error {
	logger.WithError(err).Error(msg)
	return apperror.Unavailable(msg)
}

func (i impl) getLogger(jobID, userID string) *log.Entry {
	logger := log.WithField("user_id", userID)
	if jobID != "" {
		logger = logger.WithField("job_id", jobID)
	}
	return logger
}
