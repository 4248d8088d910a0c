// file: internals/features/attendance/face/route/face_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/face/controller"
	"hadirku_backend/internals/middlewares"
)

// FaceUserRoutes: pendaftaran & status profil wajah milik caller sendiri.
func FaceUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFaceController(db)

	face := user.Group("/face")
	face.Post("/register", middlewares.FaceRegisterRateLimiter(), ctrl.Register)
	face.Get("/status", ctrl.Status)
}

// FaceAdminRoutes: reset profil (administrative-only).
func FaceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFaceController(db)

	face := admin.Group("/face")
	face.Post("/:student_id/reset", ctrl.Reset)
}
