package jobhandler

import (
	"hiring-platform-backend/lib/apperror"
	"hiring-platform-backend/models"
	dbmodels "hiring-platform-backend/models/db"
)

// transitionRule is one row of the lifecycle policy: which roles may run the
// operation, whether the job's creator may, and from which statuses. Every
// transition endpoint is authorized by the same interpreter, so the policy
// lives in exactly one place.
type transitionRule struct {
	operation string
	roles     []models.UserRole
	creator   bool
	from      []models.JobStatus
	// statusRoles grants a role only while the job sits in a specific
	// status (a hiring manager may edit a job only while it awaits
	// approval).
	statusRoles map[models.JobStatus][]models.UserRole
}

var (
	ruleCreate = transitionRule{
		operation: "create",
		roles:     []models.UserRole{models.UserRoleRecruiter, models.UserRoleHiringManager, models.UserRoleAdmin},
	}
	ruleUpdate = transitionRule{
		operation: "update",
		roles:     []models.UserRole{models.UserRoleAdmin},
		creator:   true,
		from:      []models.JobStatus{models.JobStatusDraft, models.JobStatusPendingApproval},
		statusRoles: map[models.JobStatus][]models.UserRole{
			models.JobStatusPendingApproval: {models.UserRoleHiringManager},
		},
	}
	ruleDelete = transitionRule{
		operation: "delete",
		roles:     []models.UserRole{models.UserRoleAdmin},
		creator:   true,
		from:      []models.JobStatus{models.JobStatusDraft, models.JobStatusCancelled},
	}
	ruleSubmit = transitionRule{
		operation: "submit for approval",
		roles:     []models.UserRole{models.UserRoleAdmin},
		creator:   true,
		from:      []models.JobStatus{models.JobStatusDraft},
	}
	ruleApprove = transitionRule{
		operation: "approve",
		roles:     []models.UserRole{models.UserRoleHiringManager, models.UserRoleAdmin},
		from:      []models.JobStatus{models.JobStatusPendingApproval},
	}
	ruleReject = transitionRule{
		operation: "reject",
		roles:     []models.UserRole{models.UserRoleHiringManager, models.UserRoleAdmin},
		from:      []models.JobStatus{models.JobStatusPendingApproval},
	}
	rulePublish = transitionRule{
		operation: "publish",
		roles:     []models.UserRole{models.UserRoleRecruiter, models.UserRoleAdmin},
		from:      []models.JobStatus{models.JobStatusApproved},
	}
	ruleClose = transitionRule{
		operation: "close",
		roles:     []models.UserRole{models.UserRoleHiringManager, models.UserRoleAdmin},
		creator:   true,
		from:      []models.JobStatus{models.JobStatusPublished},
	}
	ruleCancel = transitionRule{
		operation: "cancel",
		roles:     []models.UserRole{models.UserRoleAdmin},
		creator:   true,
		from:      []models.JobStatus{models.JobStatusDraft},
	}
	ruleFill = transitionRule{
		operation: "mark filled",
		roles:     []models.UserRole{models.UserRoleHiringManager, models.UserRoleAdmin},
		creator:   true,
		from:      []models.JobStatus{models.JobStatusPublished},
	}
)

func (r transitionRule) roleAllowed(rec *dbmodels.Job, userID string, role models.UserRole) bool {
	for _, allowed := range r.roles {
		if role == allowed {
			return true
		}
	}
	if r.creator && rec != nil && rec.CreatedBy == userID {
		return true
	}
	if rec != nil {
		for _, allowed := range r.statusRoles[rec.Status] {
			if role == allowed {
				return true
			}
		}
	}
	return false
}

func (r transitionRule) statusAllowed(status models.JobStatus) bool {
	if len(r.from) == 0 {
		return true
	}
	for _, allowed := range r.from {
		if status == allowed {
			return true
		}
	}
	return false
}

// authorize decides role and precondition for a transition on rec. Ownership
// gated operations report UNAUTHORIZED to callers that are neither the
// creator nor in the role set; purely role gated ones report FORBIDDEN.
func (r transitionRule) authorize(rec *dbmodels.Job, userID string, role models.UserRole) error {
	if !r.roleAllowed(rec, userID, role) {
		if r.creator {
			return apperror.Unauthorized("caller is not permitted to " + r.operation + " this job")
		}
		return apperror.Forbidden("role " + role.ToHuman() + " is not allowed to " + r.operation)
	}
	if rec != nil && !r.statusAllowed(rec.Status) {
		return apperror.InvalidStatus(r.operation, r.from...)
	}
	return nil
}
