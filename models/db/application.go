package dbmodels

import (
	"hiring-platform-backend/models"
)

type Application struct {
	BaseModel
	JobID       string `gorm:"type:varchar(36);uniqueIndex:idx_applications_job_candidate"`
	Job         *Job
	CandidateID string `gorm:"type:varchar(36);uniqueIndex:idx_applications_job_candidate"`

	// Snapshot of the candidate profile at apply time.
	FullName    string `gorm:"type:varchar(255)"`
	Email       string `gorm:"type:varchar(255)"`
	Phone       string `gorm:"type:varchar(50)"`
	ResumeURL   string `gorm:"type:varchar(1000)"`
	CoverLetter string `gorm:"type:text"`

	Status models.ApplicationStatus `gorm:"type:varchar(20);index"`
}
