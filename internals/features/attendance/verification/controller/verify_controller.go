// file: internals/features/attendance/verification/controller/verify_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/events"
	faceSvc "hadirku_backend/internals/features/attendance/face/service"
	"hadirku_backend/internals/features/attendance/verification/dto"
	service "hadirku_backend/internals/features/attendance/verification/service"
	helper "hadirku_backend/internals/helpers"
	helperAuth "hadirku_backend/internals/helpers/auth"
)

type VerificationController struct {
	DB       *gorm.DB
	Pipeline *service.PipelineService
}

func NewVerificationController(db *gorm.DB) *VerificationController {
	return &VerificationController{
		DB: db,
		Pipeline: service.NewPipelineService(
			db,
			faceSvc.NewEnrollmentService(db),
			events.LogNotifier{},
		),
	}
}

var validate = validator.New()

// 🟢 POST /api/u/verify
// Submit verifikasi kehadiran: sesi harus OPEN, dua gerbang (wajah + lokasi)
// harus lolos. Penolakan bisnis tetap 200 dengan accepted=false — attempt
// sudah tercatat dan klien butuh detail per gerbang, bukan error.
func (ctrl *VerificationController) Submit(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	studentID, err := helperAuth.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ip := c.IP()
	ua := c.Get(fiber.HeaderUserAgent)
	var uaPtr *string
	if ua != "" {
		uaPtr = &ua
	}

	outcome, err := ctrl.Pipeline.Submit(c.Context(), req.ToInput(companyID, studentID, &ip, uaPtr))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "SESSION_NOT_FOUND", "Sesi tidak ditemukan")
		case errors.Is(err, service.ErrSessionNotOpen):
			return helper.JsonErrorCode(c, fiber.StatusConflict, "SESSION_NOT_OPEN", "Sesi tidak sedang dibuka")
		case errors.Is(err, faceSvc.ErrNotEnrolled):
			return helper.JsonErrorCode(c, fiber.StatusPreconditionFailed, "NOT_ENROLLED",
				"Profil wajah belum terdaftar. Daftarkan wajah terlebih dahulu.")
		case errors.Is(err, faceSvc.ErrInvalidDescriptor):
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "INVALID_DESCRIPTOR", err.Error())
		case errors.Is(err, service.ErrInvalidCoordinate):
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "INVALID_COORDINATE", err.Error())
		case errors.Is(err, service.ErrLocationNotFound):
			return helper.JsonErrorCode(c, fiber.StatusPreconditionFailed, "LOCATION_NOT_CONFIGURED",
				"Lokasi institusi belum dikonfigurasi")
		case errors.Is(err, service.ErrExitBeforeEntry):
			return helper.JsonErrorCode(c, fiber.StatusConflict, "EXIT_BEFORE_ENTRY",
				"Verifikasi pulang sebelum verifikasi datang")
		case errors.Is(err, service.ErrStoreUnavailable):
			return helper.JsonErrorCode(c, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE",
				"Penyimpanan sedang bermasalah. Coba lagi sebentar lagi.")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Verifikasi gagal diproses")
		}
	}

	msg := "Verifikasi diterima"
	if !outcome.Accepted {
		msg = "Verifikasi ditolak"
	}
	return helper.JsonOK(c, msg, dto.FromOutcome(outcome))
}
