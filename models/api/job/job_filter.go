package jobapimodels

import (
	"hiring-platform-backend/models"
	apimodels "hiring-platform-backend/models/api"
)

type JobFilter struct {
	apimodels.Pagination
	Status           models.JobStatus        `json:"status" query:"status"`
	Search           string                  `json:"search" query:"search"`
	Department       string                  `json:"department" query:"department"`
	Tags             []string                `json:"tags" query:"tags"`
	WorkLocationType models.WorkLocationType `json:"workLocationType" query:"workLocationType"`
	EmploymentType   models.EmploymentType   `json:"employmentType" query:"employmentType"`
	Skills           []string                `json:"skills" query:"skills"`
}

type StatusCount struct {
	Status models.JobStatus `json:"status"`
	Count  int64            `json:"count"`
}

type StatsView struct {
	ByStatus          []StatusCount `json:"byStatus"`
	TotalJobs         int64         `json:"totalJobs"`
	TotalViews        int64         `json:"totalViews"`
	TotalApplications int64         `json:"totalApplications"`
}
