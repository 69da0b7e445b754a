package dbmodels

import (
	"time"

	"hiring-platform-backend/models"
)

type Job struct {
	BaseModel
	Requirements
	Compensation
	ApplicationSettings

	Title            string                  `gorm:"type:varchar(200)"`
	Description      string                  `gorm:"type:text"`
	ShortDescription string                  `gorm:"type:varchar(500)"`
	Location         string                  `gorm:"type:varchar(255)"`
	WorkLocationType models.WorkLocationType `gorm:"type:varchar(20)"`
	EmploymentType   models.EmploymentType   `gorm:"type:varchar(20)"`
	Department       string                  `gorm:"type:varchar(100);index"`
	Team             string                  `gorm:"type:varchar(100)"`
	ReportingTo      string                  `gorm:"type:varchar(255)"`
	Tags             []string                `gorm:"serializer:json"`
	Priority         models.JobPriority      `gorm:"type:varchar(20)"`
	InternalNotes    string                  `gorm:"type:text"`

	Status   models.JobStatus `gorm:"type:varchar(30);index"`
	Approval Approval         `gorm:"embedded;embeddedPrefix:approval_"`
	IsActive bool             `gorm:"index"`

	// Assigned once, on first publish. Empty string means never published.
	PublicLink string `gorm:"type:varchar(255);uniqueIndex:idx_jobs_public_link,where:public_link <> ''"`

	CreatedBy     string          `gorm:"type:varchar(36);index"`
	CreatedByRole models.UserRole `gorm:"type:varchar(30)"`
	PublishedBy   string          `gorm:"type:varchar(36)"`
	PublishedAt   *time.Time
	ClosedAt      *time.Time
	FilledAt      *time.Time
	ClosureReason string `gorm:"type:varchar(500)"`

	ViewsCount        int64 `gorm:"not null;default:0"`
	ApplicationsCount int64 `gorm:"not null;default:0"`
}

type Requirements struct {
	Skills          []string `gorm:"serializer:json"`
	ExperienceMin   *int
	ExperienceMax   *int
	Education       string   `gorm:"type:varchar(255)"`
	Certifications  []string `gorm:"serializer:json"`
	Languages       []string `gorm:"serializer:json"`
	VisaSponsorship bool
}

type Compensation struct {
	SalaryMin *int64           `gorm:"column:salary_min"`
	SalaryMax *int64           `gorm:"column:salary_max"`
	Currency  string           `gorm:"type:varchar(10)"`
	PayPeriod models.PayPeriod `gorm:"type:varchar(20)"`
	Equity    string           `gorm:"type:varchar(255)"`
	Benefits  []string         `gorm:"serializer:json"`
}

type ApplicationSettings struct {
	CoverLetterRequired bool
	PortfolioRequired   bool
	ReferencesRequired  bool
	MaxApplications     *int
	AutoRejectThreshold *int
	AssessmentRequired  bool
	AssessmentID        string `gorm:"type:varchar(36)"`
	ApplicationDeadline *time.Time
}

type Approval struct {
	State           models.ApprovalState `gorm:"type:varchar(20)"`
	ApprovedBy      string               `gorm:"type:varchar(36)"`
	RejectedBy      string               `gorm:"type:varchar(36)"`
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	RejectionReason string `gorm:"type:varchar(1000)"`
	Comments        string `gorm:"type:varchar(1000)"`
}

// AcceptsApplications is the derived predicate gating new applications.
// Not stored; evaluated on the record as read.
func (j Job) AcceptsApplications(now time.Time) bool {
	if j.Status != models.JobStatusPublished || !j.IsActive {
		return false
	}
	if j.ApplicationDeadline != nil && j.ApplicationDeadline.Before(now) {
		return false
	}
	if j.MaxApplications != nil && j.ApplicationsCount >= int64(*j.MaxApplications) {
		return false
	}
	return true
}

// VisibleToCandidate is the candidate-role visibility predicate. The
// anonymous board additionally requires an unexpired deadline; that part
// is applied at query time.
func (j Job) VisibleToCandidate() bool {
	return j.Status == models.JobStatusPublished && j.IsActive
}
