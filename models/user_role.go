package models

type UserRole string

const (
	UserRoleCandidate     UserRole = "CANDIDATE"
	UserRoleRecruiter     UserRole = "RECRUITER"
	UserRoleHiringManager UserRole = "HIRING_MANAGER"
	UserRoleAdmin         UserRole = "ADMIN"
)

var roleHumanName = map[UserRole]string{
	UserRoleCandidate:     "Candidate",
	UserRoleRecruiter:     "Recruiter",
	UserRoleHiringManager: "Hiring manager",
	UserRoleAdmin:         "Administrator",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

func (r UserRole) IsPrivileged() bool {
	switch r {
	case UserRoleRecruiter, UserRoleHiringManager, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsKnown() bool {
	_, exist := roleHumanName[r]
	return exist
}
