// file: internals/helpers/auth/claims.go
//
// Resolver identitas & tenant dari Locals yang dihidrasi middleware JWT.
// Core kehadiran PERCAYA hasil resolver ini dan tidak menurunkan ulang scope.
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hadirku_backend/internals/constants"
)

// Keys Locals (diisi oleh middlewares/auth.AuthJWT)
const (
	LocUserID    = "user_id"
	LocCompanyID = "company_id"
	LocStudentID = "student_id"
	LocRole      = "role"
	LocRoleLevel = "role_level"
)

func uuidLocal(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" tidak ditemukan di token")
	}
	s, ok := v.(string)
	if !ok {
		if id, ok := v.(uuid.UUID); ok {
			return id, nil
		}
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" tidak valid")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" tidak valid")
	}
	return id, nil
}

// GetCompanyIDFromToken: tenant scope wajib untuk semua operasi kehadiran.
func GetCompanyIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidLocal(c, LocCompanyID)
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidLocal(c, LocUserID)
}

// GetStudentIDFromToken: id siswa milik caller (profil student aktif).
func GetStudentIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidLocal(c, LocStudentID)
}

func GetRoleFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRole).(string); ok {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return ""
}

// IsAdmin: admin perusahaan (atau owner global).
func IsAdmin(c *fiber.Ctx) bool {
	return roleIn(GetRoleFromToken(c), constants.AdminAndAbove)
}

// IsStaff: role yang boleh mengelola sesi & override manual.
func IsStaff(c *fiber.Ctx) bool {
	return roleIn(GetRoleFromToken(c), constants.StaffAndAbove)
}

func roleIn(role string, allowed []string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
