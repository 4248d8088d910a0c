package constants

import "fmt"

const (
	RoleUser    = "user"
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
)

// Template pesan error role
const (
	ErrOnlyStaffCanAccess  = "❌ Hanya staff, admin, atau owner yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleStudent,
		RoleTeacher,
		RoleStaff,
		RoleAdmin,
		RoleOwner,
	}

	StaffAndAbove = []string{
		RoleTeacher,
		RoleStaff,
		RoleAdmin,
		RoleOwner,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
	}
)
