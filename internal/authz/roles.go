package authz

const (
	RoleUser       = "user"
	RoleStaff      = "staff"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

func IsStaff(role string) bool {
	return role == RoleStaff || role == RoleAdmin || role == RoleSuperAdmin
}

func IsAdmin(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}
