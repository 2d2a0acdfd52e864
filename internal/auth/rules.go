package auth

import "github.com/taskhub/taskhub/internal/db/models"

// rules.go is the authorization rule set: pure decision functions with no side
// effects. Handlers load the caller and target rows first, then consult these
// predicates. Ownership failures surface to clients as 404, not 403, so a
// caller can never confirm the existence of another tenant's resource.

// CanListProjects is always true; the list query itself is scoped to rows
// where project.owner_id equals the caller's id.
func CanListProjects(user *models.User) bool {
	return user != nil
}

// CanCreateProject reports whether a caller holding the given organization
// membership role may create a project in that organization. Only owners and
// admins qualify; plain members may not.
func CanCreateProject(orgRole string) bool {
	return orgRole == models.OrgRoleOwner || orgRole == models.OrgRoleAdmin
}

// CanAccessProject reports whether the user may read or mutate the project.
// Only direct ownership grants access; project_members roles are inert here.
func CanAccessProject(user *models.User, project *models.Project) bool {
	if user == nil || project == nil {
		return false
	}
	return project.OwnerID == user.ID
}

// CanManageMembers reports whether the user may list, add, or remove project
// members. Same predicate as CanAccessProject: only the owner.
func CanManageMembers(user *models.User, project *models.Project) bool {
	return CanAccessProject(user, project)
}

// CanCreateTask reports whether the user may create tasks in the project.
func CanCreateTask(user *models.User, project *models.Project) bool {
	return CanAccessProject(user, project)
}
