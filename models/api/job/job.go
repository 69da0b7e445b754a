package jobapimodels

import (
	"strings"
	"time"
	"unicode/utf8"

	"hiring-platform-backend/lib/apperror"
	"hiring-platform-backend/models"
)

type JobData struct {
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	ShortDescription string                  `json:"shortDescription"`
	Location         string                  `json:"location"`
	WorkLocationType models.WorkLocationType `json:"workLocationType"`
	EmploymentType   models.EmploymentType   `json:"employmentType"`
	Department       string                  `json:"department"`
	Team             string                  `json:"team"`
	ReportingTo      string                  `json:"reportingTo"`
	Tags             []string                `json:"tags"`
	Priority         models.JobPriority      `json:"priority"`
	InternalNotes    string                  `json:"internalNotes"`

	Requirements        RequirementsData        `json:"requirements"`
	Compensation        *CompensationData       `json:"compensation"`
	ApplicationSettings ApplicationSettingsData `json:"applicationSettings"`
}

type RequirementsData struct {
	Skills          []string `json:"skills"`
	ExperienceMin   *int     `json:"experienceMin"`
	ExperienceMax   *int     `json:"experienceMax"`
	Education       string   `json:"education"`
	Certifications  []string `json:"certifications"`
	Languages       []string `json:"languages"`
	VisaSponsorship bool     `json:"visaSponsorship"`
}

type CompensationData struct {
	SalaryMin *int64           `json:"salaryMin"`
	SalaryMax *int64           `json:"salaryMax"`
	Currency  string           `json:"currency"`
	PayPeriod models.PayPeriod `json:"payPeriod"`
	Equity    string           `json:"equity"`
	Benefits  []string         `json:"benefits"`
}

type ApplicationSettingsData struct {
	CoverLetterRequired bool       `json:"coverLetterRequired"`
	PortfolioRequired   bool       `json:"portfolioRequired"`
	ReferencesRequired  bool       `json:"referencesRequired"`
	MaxApplications     *int       `json:"maxApplications"`
	AutoRejectThreshold *int       `json:"autoRejectThreshold"`
	AssessmentRequired  bool       `json:"assessmentRequired"`
	AssessmentID        string     `json:"assessmentId"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
}

const (
	titleMinLen       = 5
	titleMaxLen       = 200
	descriptionMinLen = 20
	descriptionMaxLen = 10000
)

// Validate checks every field and reports all violations at once.
func (j JobData) Validate() error {
	var details []apperror.FieldError
	add := func(field, message string) {
		details = append(details, apperror.FieldError{Field: field, Message: message})
	}

	// lengths are counted in runes, not bytes
	title := utf8.RuneCountInString(strings.TrimSpace(j.Title))
	if title < titleMinLen || title > titleMaxLen {
		add("title", "title must be between 5 and 200 characters")
	}
	description := utf8.RuneCountInString(strings.TrimSpace(j.Description))
	if description < descriptionMinLen || description > descriptionMaxLen {
		add("description", "description must be between 20 and 10000 characters")
	}
	if utf8.RuneCountInString(j.ShortDescription) > 500 {
		add("shortDescription", "short description must be at most 500 characters")
	}
	if j.WorkLocationType != "" && !j.WorkLocationType.IsKnown() {
		add("workLocationType", "work location type must be one of remote, onsite, hybrid")
	}
	if j.EmploymentType != "" && !j.EmploymentType.IsKnown() {
		add("employmentType", "employment type must be one of full_time, part_time, contract, internship, temporary")
	}
	if j.Priority != "" && !j.Priority.IsKnown() {
		add("priority", "priority must be one of low, medium, high, urgent")
	}

	if len(j.Requirements.Skills) == 0 {
		add("requirements.skills", "at least one required skill must be provided")
	}
	expMin, expMax := j.Requirements.ExperienceMin, j.Requirements.ExperienceMax
	if expMin != nil && *expMin < 0 {
		add("requirements.experienceMin", "minimum experience cannot be negative")
	}
	if expMax != nil && *expMax < 0 {
		add("requirements.experienceMax", "maximum experience cannot be negative")
	}
	if expMin != nil && expMax != nil && *expMin > *expMax {
		add("requirements.experienceMax", "maximum experience must be greater than or equal to minimum")
	}

	if j.Compensation != nil {
		comp := j.Compensation
		if comp.SalaryMin != nil && *comp.SalaryMin < 0 {
			add("compensation.salaryMin", "minimum salary cannot be negative")
		}
		if comp.SalaryMin != nil && comp.SalaryMax != nil && *comp.SalaryMax < *comp.SalaryMin {
			add("compensation.salaryMax", "maximum salary must be greater than or equal to minimum")
		}
		if comp.PayPeriod != "" && !comp.PayPeriod.IsKnown() {
			add("compensation.payPeriod", "pay period must be one of hourly, monthly, yearly")
		}
	}

	settings := j.ApplicationSettings
	if settings.MaxApplications != nil && *settings.MaxApplications <= 0 {
		add("applicationSettings.maxApplications", "maximum applications cap must be positive")
	}
	if settings.ApplicationDeadline != nil && !settings.ApplicationDeadline.After(time.Now()) {
		add("applicationSettings.applicationDeadline", "application deadline must be in the future")
	}

	if len(details) != 0 {
		return apperror.Validation(details)
	}
	return nil
}

type ApproveRequest struct {
	Comments string `json:"comments"`
}

type RejectRequest struct {
	RejectionReason string `json:"rejectionReason"`
	Comments        string `json:"comments"`
}

func (r RejectRequest) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(r.RejectionReason)) < 10 {
		return apperror.Validation([]apperror.FieldError{
			{Field: "rejectionReason", Message: "rejection reason must be at least 10 characters"},
		})
	}
	return nil
}

type CloseRequest struct {
	ClosureReason string `json:"closureReason"`
}
