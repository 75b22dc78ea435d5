package user

type Permission string

// Self-service actions need only an employee link; these are the
// administrative ones.
const (
	PermissionEmployeeActivate Permission = "employee.activate"
	PermissionReportCorrect    Permission = "report.correct"
	PermissionDashboardView    Permission = "dashboard.view"
)

var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionEmployeeActivate,
		PermissionReportCorrect,
		PermissionDashboardView,
	},
	RoleEmployee: {},
}

func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
