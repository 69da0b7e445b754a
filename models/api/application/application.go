package applicationapimodels

import (
	"strings"
	"time"

	"hiring-platform-backend/lib/apperror"
	"hiring-platform-backend/models"
	apimodels "hiring-platform-backend/models/api"
	dbmodels "hiring-platform-backend/models/db"
)

type ApplicationData struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ResumeURL   string `json:"resumeUrl"`
	CoverLetter string `json:"coverLetter"`
}

func (a ApplicationData) Validate() error {
	var details []apperror.FieldError
	if strings.TrimSpace(a.FullName) == "" {
		details = append(details, apperror.FieldError{Field: "fullName", Message: "full name is required"})
	}
	if strings.TrimSpace(a.Email) == "" || !strings.Contains(a.Email, "@") {
		details = append(details, apperror.FieldError{Field: "email", Message: "a valid email is required"})
	}
	if len(details) != 0 {
		return apperror.Validation(details)
	}
	return nil
}

type ApplicationView struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"jobId"`
	CandidateID string                   `json:"candidateId"`
	FullName    string                   `json:"fullName"`
	Email       string                   `json:"email"`
	Phone       string                   `json:"phone,omitempty"`
	ResumeURL   string                   `json:"resumeUrl,omitempty"`
	CoverLetter string                   `json:"coverLetter,omitempty"`
	Status      models.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"createdAt"`
}

func ApplicationConvert(rec dbmodels.Application) ApplicationView {
	return ApplicationView{
		ID:          rec.ID,
		JobID:       rec.JobID,
		CandidateID: rec.CandidateID,
		FullName:    rec.FullName,
		Email:       rec.Email,
		Phone:       rec.Phone,
		ResumeURL:   rec.ResumeURL,
		CoverLetter: rec.CoverLetter,
		Status:      rec.Status,
		CreatedAt:   rec.CreatedAt,
	}
}

type ApplicationFilter struct {
	apimodels.Pagination
	Status models.ApplicationStatus `json:"status" query:"status"`
}
