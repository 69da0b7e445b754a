package models

type JobStatus string

const (
	JobStatusDraft           JobStatus = "DRAFT"
	JobStatusPendingApproval JobStatus = "PENDING_APPROVAL"
	JobStatusApproved        JobStatus = "APPROVED"
	JobStatusPublished       JobStatus = "PUBLISHED"
	JobStatusClosed          JobStatus = "CLOSED"
	JobStatusFilled          JobStatus = "FILLED"
	JobStatusCancelled       JobStatus = "CANCELLED"
)

var jobStatusHumanName = map[JobStatus]string{
	JobStatusDraft:           "Draft",
	JobStatusPendingApproval: "Pending approval",
	JobStatusApproved:        "Approved",
	JobStatusPublished:       "Published",
	JobStatusClosed:          "Closed",
	JobStatusFilled:          "Filled",
	JobStatusCancelled:       "Cancelled",
}

func (s JobStatus) ToHuman() string {
	if human, exist := jobStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s JobStatus) IsKnown() bool {
	_, exist := jobStatusHumanName[s]
	return exist
}

// Terminal for applicant-facing visibility, retained for audit.
func (s JobStatus) IsRetired() bool {
	return s == JobStatusClosed || s == JobStatusFilled || s == JobStatusCancelled
}

func (s JobStatus) IsDeletable() bool {
	return s == JobStatusDraft || s == JobStatusCancelled
}

type ApprovalState string

const (
	ApprovalStateNotRequired ApprovalState = "NOT_REQUIRED"
	ApprovalStatePending     ApprovalState = "PENDING"
	ApprovalStateApproved    ApprovalState = "APPROVED"
	ApprovalStateRejected    ApprovalState = "REJECTED"
)

type WorkLocationType string

const (
	WorkLocationRemote WorkLocationType = "remote"
	WorkLocationOnsite WorkLocationType = "onsite"
	WorkLocationHybrid WorkLocationType = "hybrid"
)

func (w WorkLocationType) IsKnown() bool {
	switch w {
	case WorkLocationRemote, WorkLocationOnsite, WorkLocationHybrid:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentTemporary  EmploymentType = "temporary"
)

func (e EmploymentType) IsKnown() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship, EmploymentTemporary:
		return true
	}
	return false
}

type JobPriority string

const (
	JobPriorityLow    JobPriority = "low"
	JobPriorityMedium JobPriority = "medium"
	JobPriorityHigh   JobPriority = "high"
	JobPriorityUrgent JobPriority = "urgent"
)

func (p JobPriority) IsKnown() bool {
	switch p {
	case JobPriorityLow, JobPriorityMedium, JobPriorityHigh, JobPriorityUrgent:
		return true
	}
	return false
}

type PayPeriod string

const (
	PayPeriodHourly  PayPeriod = "hourly"
	PayPeriodMonthly PayPeriod = "monthly"
	PayPeriodYearly  PayPeriod = "yearly"
)

func (p PayPeriod) IsKnown() bool {
	switch p {
	case PayPeriodHourly, PayPeriodMonthly, PayPeriodYearly:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "APPLIED"
	ApplicationStatusShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationStatusInterview   ApplicationStatus = "INTERVIEW"
	ApplicationStatusOffered     ApplicationStatus = "OFFERED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn   ApplicationStatus = "WITHDRAWN"
)

func (s ApplicationStatus) IsKnown() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusShortlisted, ApplicationStatusInterview,
		ApplicationStatusOffered, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// DefaultClosureReason is stored when close is requested without a reason.
const DefaultClosureReason = "Manually closed"
