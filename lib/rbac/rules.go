package rbac

import (
	"recruitment-backend/models"
)

var (
	AdminRoleSet     = []models.UserRole{models.UserRoleAdmin}
	HrRoleSet        = []models.UserRole{models.UserRoleHR}
	CandidateRoleSet = []models.UserRole{models.UserRoleCandidate}
	AdminHrRoleSet   = []models.UserRole{models.UserRoleAdmin, models.UserRoleHR}
	HrCandidateSet   = []models.UserRole{models.UserRoleHR, models.UserRoleCandidate}
	AllRoles         = []models.UserRole{models.UserRoleAdmin, models.UserRoleHR, models.UserRoleCandidate}
)

func (i *impl) initRules() {
	i.auth()
	i.jobs()
	i.applications()
	i.resume()
	i.ws()
}

func (i *impl) mustRegister(roles []models.UserRole, swaggerPattern string) {
	if err := i.RegisterRule(roles, swaggerPattern, nil); err != nil {
		panic(err.Error())
	}
}

func (i *impl) auth() {
	i.mustRegister(AdminRoleSet, "/auth/approve-hr/{id} [patch]")
	i.mustRegister(AdminRoleSet, "/auth/disapprove-hr/{id} [patch]")
	i.mustRegister(AdminRoleSet, "/auth/hrs [get]")
}

func (i *impl) jobs() {
	i.mustRegister(HrRoleSet, "/jobs [post]")
	i.mustRegister(HrRoleSet, "/jobs/my [get]")
	i.mustRegister(AdminRoleSet, "/jobs [get]")
	// ownership is checked by the job handler
	i.mustRegister(AdminHrRoleSet, "/jobs/close/{jobId} [patch]")
}

func (i *impl) applications() {
	i.mustRegister(CandidateRoleSet, "/applications/apply/{jobId} [post]")
	i.mustRegister(CandidateRoleSet, "/applications/my [get]")
	i.mustRegister(HrRoleSet, "/applications/job/all [get]")
	i.mustRegister(HrRoleSet, "/applications/job/{jobId} [get]")
	i.mustRegister(HrRoleSet, "/applications/status/{id} [patch]")
	i.mustRegister(HrRoleSet, "/applications/analytics [get]")
	i.mustRegister(HrRoleSet, "/applications/analytics/export [get]")
}

func (i *impl) resume() {
	i.mustRegister(HrCandidateSet, "/resume/view/{applicationId} [get]")
	i.mustRegister(HrCandidateSet, "/resume/download/{applicationId} [get]")
}

func (i *impl) ws() {
	i.mustRegister(AllRoles, "/ws [get]")
}
