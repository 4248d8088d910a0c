// file: internals/features/attendance/records/route/record_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/records/controller"
)

// AttendanceRecordAdminRoutes: ringkasan sesi, override manual, riwayat siswa.
func AttendanceRecordAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceRecordController(db)

	admin.Get("/sessions/:id/summary", ctrl.SessionSummary)
	admin.Patch("/sessions/:id/records/:student_id", ctrl.Override)
	admin.Get("/records/:student_id/history", ctrl.StudentHistory)
}

// AttendanceRecordUserRoutes: riwayat kehadiran milik caller.
func AttendanceRecordUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceRecordController(db)

	user.Get("/records/history", ctrl.MyHistory)
}
