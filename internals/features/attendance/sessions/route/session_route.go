// file: internals/features/attendance/sessions/route/session_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/sessions/controller"
)

// AttendanceSessionAdminRoutes: kelola lifecycle sesi (staf ke atas).
func AttendanceSessionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceSessionController(db)

	sess := admin.Group("/sessions")
	sess.Post("/", ctrl.Create)
	sess.Get("/", ctrl.List)
	sess.Patch("/:id/status", ctrl.Transition)
	sess.Post("/:id/reconcile", ctrl.Reconcile)
}

// AttendanceSessionUserRoutes: lookup sesi aktif untuk aplikasi siswa.
func AttendanceSessionUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceSessionController(db)

	sess := user.Group("/sessions")
	sess.Get("/active", ctrl.Active)
}
