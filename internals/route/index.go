// file: internals/route/index.go
//
// Registrasi semua route aplikasi.
//   /api/a → panel staf/admin (kelola sesi, lokasi, override, reset wajah)
//   /api/u → aplikasi siswa (daftar wajah, verifikasi, riwayat)
// Keduanya di belakang JWT; scope tenant diambil dari klaim token.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	faceRoute "hadirku_backend/internals/features/attendance/face/route"
	locationRoute "hadirku_backend/internals/features/attendance/locations/route"
	recordRoute "hadirku_backend/internals/features/attendance/records/route"
	sessionRoute "hadirku_backend/internals/features/attendance/sessions/route"
	verifyRoute "hadirku_backend/internals/features/attendance/verification/route"
	"hadirku_backend/internals/configs"
	authmw "hadirku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	jwt := authmw.AuthJWT(authmw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	// 🏢 Panel staf/admin
	admin := api.Group("/a", jwt)
	locationRoute.InstitutionLocationAdminRoutes(admin, db)
	sessionRoute.AttendanceSessionAdminRoutes(admin, db)
	recordRoute.AttendanceRecordAdminRoutes(admin, db)
	faceRoute.FaceAdminRoutes(admin, db)

	// 👤 Aplikasi siswa
	user := api.Group("/u", jwt)
	faceRoute.FaceUserRoutes(user, db)
	sessionRoute.AttendanceSessionUserRoutes(user, db)
	verifyRoute.VerificationUserRoutes(user, db)
	recordRoute.AttendanceRecordUserRoutes(user, db)
}
