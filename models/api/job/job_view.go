package jobapimodels

import (
	"time"

	"hiring-platform-backend/models"
	dbmodels "hiring-platform-backend/models/db"
)

// Redaction controls which internal fields survive conversion to a view.
type Redaction int

const (
	// RedactNone: the creator (and only the creator) sees the full record.
	RedactNone Redaction = iota
	// RedactInternal: privileged non-creator list reads lose internal notes.
	RedactInternal
	// RedactFull: candidate/anonymous reads and privileged non-creator
	// detail reads additionally lose approval and ownership fields.
	RedactFull
)

type JobView struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	ShortDescription string                  `json:"shortDescription,omitempty"`
	Location         string                  `json:"location,omitempty"`
	WorkLocationType models.WorkLocationType `json:"workLocationType,omitempty"`
	EmploymentType   models.EmploymentType   `json:"employmentType,omitempty"`
	Department       string                  `json:"department,omitempty"`
	Team             string                  `json:"team,omitempty"`
	ReportingTo      string                  `json:"reportingTo,omitempty"`
	Tags             []string                `json:"tags,omitempty"`
	Priority         models.JobPriority      `json:"priority,omitempty"`
	InternalNotes    string                  `json:"internalNotes,omitempty"`

	Requirements        RequirementsData        `json:"requirements"`
	Compensation        *CompensationData       `json:"compensation,omitempty"`
	ApplicationSettings ApplicationSettingsData `json:"applicationSettings"`

	Status     models.JobStatus `json:"status"`
	Approval   *ApprovalView    `json:"approvalStatus,omitempty"`
	IsActive   bool             `json:"isActive"`
	PublicLink string           `json:"publicLink,omitempty"`

	CreatedBy     string          `json:"createdBy,omitempty"`
	CreatedByRole models.UserRole `json:"createdByRole,omitempty"`
	PublishedBy   string          `json:"publishedBy,omitempty"`
	PublishedAt   *time.Time      `json:"publishedAt,omitempty"`
	ClosedAt      *time.Time      `json:"closedAt,omitempty"`
	FilledAt      *time.Time      `json:"filledAt,omitempty"`
	ClosureReason string          `json:"closureReason,omitempty"`

	ViewsCount        int64 `json:"viewsCount"`
	ApplicationsCount int64 `json:"applicationsCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ApprovalView struct {
	Status          models.ApprovalState `json:"status"`
	ApprovedBy      string               `json:"approvedBy,omitempty"`
	RejectedBy      string               `json:"rejectedBy,omitempty"`
	ApprovedAt      *time.Time           `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time           `json:"rejectedAt,omitempty"`
	RejectionReason string               `json:"rejectionReason,omitempty"`
	Comments        string               `json:"comments,omitempty"`
}

func JobConvert(rec dbmodels.Job, redaction Redaction) JobView {
	view := JobView{
		ID:               rec.ID,
		Title:            rec.Title,
		Description:      rec.Description,
		ShortDescription: rec.ShortDescription,
		Location:         rec.Location,
		WorkLocationType: rec.WorkLocationType,
		EmploymentType:   rec.EmploymentType,
		Department:       rec.Department,
		Team:             rec.Team,
		ReportingTo:      rec.ReportingTo,
		Tags:             rec.Tags,
		Priority:         rec.Priority,
		Requirements: RequirementsData{
			Skills:          rec.Skills,
			ExperienceMin:   rec.ExperienceMin,
			ExperienceMax:   rec.ExperienceMax,
			Education:       rec.Education,
			Certifications:  rec.Certifications,
			Languages:       rec.Languages,
			VisaSponsorship: rec.VisaSponsorship,
		},
		ApplicationSettings: ApplicationSettingsData{
			CoverLetterRequired: rec.CoverLetterRequired,
			PortfolioRequired:   rec.PortfolioRequired,
			ReferencesRequired:  rec.ReferencesRequired,
			MaxApplications:     rec.MaxApplications,
			AutoRejectThreshold: rec.AutoRejectThreshold,
			AssessmentRequired:  rec.AssessmentRequired,
			AssessmentID:        rec.AssessmentID,
			ApplicationDeadline: rec.ApplicationDeadline,
		},
		Status:            rec.Status,
		IsActive:          rec.IsActive,
		PublicLink:        rec.PublicLink,
		PublishedBy:       rec.PublishedBy,
		PublishedAt:       rec.PublishedAt,
		ClosedAt:          rec.ClosedAt,
		FilledAt:          rec.FilledAt,
		ClosureReason:     rec.ClosureReason,
		ViewsCount:        rec.ViewsCount,
		ApplicationsCount: rec.ApplicationsCount,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
	if rec.SalaryMin != nil || rec.SalaryMax != nil || rec.Currency != "" {
		view.Compensation = &CompensationData{
			SalaryMin: rec.SalaryMin,
			SalaryMax: rec.SalaryMax,
			Currency:  rec.Currency,
			PayPeriod: rec.PayPeriod,
			Equity:    rec.Equity,
			Benefits:  rec.Benefits,
		}
	}
	if redaction == RedactNone {
		view.InternalNotes = rec.InternalNotes
	}
	if redaction != RedactFull {
		view.Approval = &ApprovalView{
			Status:          rec.Approval.State,
			ApprovedBy:      rec.Approval.ApprovedBy,
			RejectedBy:      rec.Approval.RejectedBy,
			ApprovedAt:      rec.Approval.ApprovedAt,
			RejectedAt:      rec.Approval.RejectedAt,
			RejectionReason: rec.Approval.RejectionReason,
			Comments:        rec.Approval.Comments,
		}
		view.CreatedBy = rec.CreatedBy
		view.CreatedByRole = rec.CreatedByRole
	}
	return view
}
