// file: internals/features/attendance/verification/route/verify_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/verification/controller"
	"hadirku_backend/internals/middlewares"
)

// VerificationUserRoutes: submit verifikasi kehadiran (rate-limited ketat).
func VerificationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewVerificationController(db)

	user.Post("/verify", middlewares.VerifyRateLimiter(), ctrl.Submit)
}
