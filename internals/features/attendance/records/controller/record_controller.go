// file: internals/features/attendance/records/controller/record_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/constants"
	"hadirku_backend/internals/features/attendance/records/dto"
	recModel "hadirku_backend/internals/features/attendance/records/model"
	service "hadirku_backend/internals/features/attendance/records/service"
	rosterSvc "hadirku_backend/internals/features/attendance/rosters/service"
	helper "hadirku_backend/internals/helpers"
	helperAuth "hadirku_backend/internals/helpers/auth"
)

type AttendanceRecordController struct {
	DB         *gorm.DB
	Aggregator *service.AggregatorService
}

func NewAttendanceRecordController(db *gorm.DB) *AttendanceRecordController {
	return &AttendanceRecordController{
		DB:         db,
		Aggregator: service.NewAggregatorService(db, rosterSvc.NewGormRosterProvider(db)),
	}
}

var validate = validator.New()

// 🟢 GET /api/a/sessions/:id/summary
// Ringkasan batch satu sesi — siswa roster tanpa record tetap muncul ABSENT.
func (ctrl *AttendanceRecordController) SessionSummary(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}

	summary, err := ctrl.Aggregator.Summarize(c.Context(), companyID, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "SESSION_NOT_FOUND", "Sesi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun ringkasan sesi")
	}

	return helper.JsonOK(c, "Ringkasan sesi", summary)
}

// 🟡 PATCH /api/a/sessions/:id/records/:student_id
// Override manual status kehadiran (staf ke atas, meninggalkan jejak).
func (ctrl *AttendanceRecordController) Override(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("override kehadiran"))
	}
	performedBy, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var req dto.OverrideRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	rec, err := ctrl.Aggregator.Override(c.Context(), service.OverrideInput{
		CompanyID:   companyID,
		SessionID:   sessionID,
		StudentID:   studentID,
		Status:      recModel.AttendanceRecordStatus(req.AttendanceRecordStatus),
		Remarks:     req.AttendanceRecordRemarks,
		PerformedBy: performedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "RECORD_NOT_FOUND",
				"Record kehadiran tidak ditemukan. Reconcile sesi dulu kalau siswa baru masuk roster.")
		case errors.Is(err, service.ErrInvalidStatus):
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "INVALID_STATUS", err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal override kehadiran")
		}
	}

	return helper.JsonUpdated(c, "Kehadiran berhasil di-override", dto.FromModel(rec))
}

// 🟢 GET /api/u/records/history — riwayat milik caller sendiri.
func (ctrl *AttendanceRecordController) MyHistory(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	studentID, err := helperAuth.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	return ctrl.historyFor(c, companyID, studentID)
}

// 🟢 GET /api/a/records/:student_id/history — riwayat siswa mana pun (staf).
func (ctrl *AttendanceRecordController) StudentHistory(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}
	return ctrl.historyFor(c, companyID, studentID)
}

func (ctrl *AttendanceRecordController) historyFor(c *fiber.Ctx, companyID, studentID uuid.UUID) error {
	p := helper.ResolvePaging(c, 20, 100)

	var courseID *uuid.UUID
	if q := c.Query("course_id"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
		}
		courseID = &id
	}

	entries, total, err := ctrl.Aggregator.StudentHistory(c.Context(), companyID, studentID, courseID, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat kehadiran")
	}

	pg := helper.BuildPaginationFromOffset(total, p.Offset, p.Limit)
	return helper.JsonList(c, "Riwayat kehadiran", dto.FromHistory(entries), &pg)
}
