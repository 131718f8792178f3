package rbac

import "github.com/sharklandy/deapsea-project/internal/models"

// Permission constants
const (
	PermCreateSpecies         = "create_species"
	PermCreateObservation     = "create_observation"
	PermModerateObservation   = "moderate_observation"
	PermSoftDeleteObservation = "soft_delete_observation"
	PermRestoreObservation    = "restore_observation"
	PermViewSpeciesHistory    = "view_species_history"
	PermViewActionHistory     = "view_action_history"
	PermListUsers             = "list_users"
	PermManageUserRoles       = "manage_user_roles"
)

// RolePermissions defines what each role can do. The role set is closed;
// every protected operation checks a capability here instead of comparing
// role strings inline.
var RolePermissions = map[string][]string{
	models.RoleUser: {
		PermCreateSpecies, PermCreateObservation,
	},
	models.RoleExpert: {
		PermCreateSpecies, PermCreateObservation,
		PermModerateObservation, PermViewSpeciesHistory,
	},
	models.RoleAdmin: {
		PermCreateSpecies, PermCreateObservation,
		PermModerateObservation, PermViewSpeciesHistory,
		PermSoftDeleteObservation, PermRestoreObservation,
		PermViewActionHistory, PermListUsers, PermManageUserRoles,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
