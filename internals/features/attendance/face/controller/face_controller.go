// file: internals/features/attendance/face/controller/face_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/constants"
	"hadirku_backend/internals/features/attendance/face/dto"
	service "hadirku_backend/internals/features/attendance/face/service"
	helper "hadirku_backend/internals/helpers"
	helperAuth "hadirku_backend/internals/helpers/auth"
)

type FaceController struct {
	DB         *gorm.DB
	Enrollment *service.EnrollmentService
}

func NewFaceController(db *gorm.DB) *FaceController {
	return &FaceController{
		DB:         db,
		Enrollment: service.NewEnrollmentService(db),
	}
}

var validate = validator.New()

// 🟢 POST /api/u/face/register
// Body bisa JSON murni, atau multipart dengan field "payload" (JSON) +
// file "face_snapshot" opsional untuk disimpan sebagai foto referensi.
func (ctrl *FaceController) Register(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	studentID, err := helperAuth.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RegisterFaceRequest
	isMultipart := false
	if form, err := c.MultipartForm(); err == nil && form != nil {
		isMultipart = true
		payload := c.FormValue("payload")
		if payload == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Field payload wajib diisi pada multipart")
		}
		if err := sonic.Unmarshal([]byte(payload), &req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload JSON tidak valid")
		}
	} else if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Snapshot opsional — gagal upload TIDAK menggagalkan pendaftaran
	var imageRef *string
	if isMultipart {
		if fh, err := c.FormFile("face_snapshot"); err == nil && fh != nil {
			if url, err := helper.UploadFaceSnapshot(fh); err != nil {
				log.Printf("[FACE] upload snapshot gagal (diabaikan): %v", err)
			} else {
				imageRef = &url
			}
		}
	}

	profile, err := ctrl.Enrollment.Register(c.Context(), service.RegisterInput{
		CompanyID:       companyID,
		PersonID:        studentID,
		Captures:        req.FaceCaptures,
		PrimaryImageRef: imageRef,
		QualityScore:    req.FaceQualityScore,
		DeviceInfo:      req.FaceDeviceInfo,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyEnrolled):
			return helper.JsonErrorCode(c, fiber.StatusConflict, "ALREADY_ENROLLED",
				"Profil wajah aktif sudah ada. Minta admin me-reset untuk daftar ulang.")
		case errors.Is(err, service.ErrInsufficientCaptures):
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "INSUFFICIENT_CAPTURES", err.Error())
		case errors.Is(err, service.ErrInvalidDescriptor):
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "INVALID_DESCRIPTOR", err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftarkan profil wajah")
		}
	}

	return helper.JsonCreated(c, "Profil wajah berhasil didaftarkan", dto.StatusFromModel(profile))
}

// 🟢 GET /api/u/face/status
func (ctrl *FaceController) Status(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	studentID, err := helperAuth.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	profile, err := ctrl.Enrollment.GetActiveProfile(c.Context(), companyID, studentID)
	if err != nil {
		if errors.Is(err, service.ErrNotEnrolled) {
			return helper.JsonOK(c, "Belum terdaftar", dto.StatusFromModel(nil))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil status profil wajah")
	}

	return helper.JsonOK(c, "Status profil wajah", dto.StatusFromModel(profile))
}

// 🔴 POST /api/a/face/:student_id/reset (admin only)
func (ctrl *FaceController) Reset(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("reset profil wajah"))
	}
	performedBy, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	if err := ctrl.Enrollment.Reset(c.Context(), companyID, studentID, performedBy); err != nil {
		if errors.Is(err, service.ErrNotEnrolled) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "NOT_ENROLLED",
				"Siswa tidak punya profil wajah aktif")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal me-reset profil wajah")
	}

	return helper.JsonOK(c, "Profil wajah berhasil di-reset", fiber.Map{
		"student_id": studentID,
	})
}
