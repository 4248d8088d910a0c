// file: internals/features/attendance/locations/route/location_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/locations/controller"
)

// InstitutionLocationAdminRoutes: CRUD lokasi geofence (admin/staff only).
func InstitutionLocationAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewInstitutionLocationController(db)

	loc := admin.Group("/locations")
	loc.Post("/", ctrl.Create)
	loc.Get("/", ctrl.List)
	loc.Get("/:id", ctrl.GetByID)
	loc.Patch("/:id", ctrl.Update)
	loc.Delete("/:id", ctrl.Delete)
}
