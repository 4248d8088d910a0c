// file: internals/features/attendance/sessions/controller/session_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/constants"
	"hadirku_backend/internals/features/attendance/events"
	rosterSvc "hadirku_backend/internals/features/attendance/rosters/service"
	"hadirku_backend/internals/features/attendance/sessions/dto"
	model "hadirku_backend/internals/features/attendance/sessions/model"
	service "hadirku_backend/internals/features/attendance/sessions/service"
	helper "hadirku_backend/internals/helpers"
	helperAuth "hadirku_backend/internals/helpers/auth"
)

type AttendanceSessionController struct {
	DB        *gorm.DB
	Lifecycle *service.LifecycleService
}

func NewAttendanceSessionController(db *gorm.DB) *AttendanceSessionController {
	return &AttendanceSessionController{
		DB: db,
		Lifecycle: service.NewLifecycleService(
			db,
			rosterSvc.NewGormRosterProvider(db),
			events.LogNotifier{},
		),
	}
}

var validate = validator.New()

// 🟢 POST /api/a/sessions
func (ctrl *AttendanceSessionController) Create(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("buat sesi"))
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateAttendanceSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := ctrl.Lifecycle.CreateSession(c.Context(), req.ToInput(companyID, &userID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeWindow):
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "INVALID_TIME_WINDOW", err.Error())
		case errors.Is(err, service.ErrLocationNotFound):
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "LOCATION_NOT_FOUND",
				"Lokasi geofence tidak ditemukan di tenant ini")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sesi")
		}
	}

	return helper.JsonCreated(c, "Sesi berhasil dibuat", dto.CreateSessionResponse{
		Session:            dto.FromModel(res.Session),
		InitializedRecords: res.InitializedRecords,
		RosterSize:         res.RosterSize,
		InitError:          res.InitError,
	})
}

// 🟢 GET /api/a/sessions?status=&course_id=&date=
func (ctrl *AttendanceSessionController) List(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)

	base := ctrl.DB.WithContext(c.Context()).
		Model(&model.AttendanceSessionModel{}).
		Where("attendance_session_company_id = ?", companyID)

	if st := c.Query("status"); st != "" {
		base = base.Where("attendance_session_status = ?", st)
	}
	if courseID := c.Query("course_id"); courseID != "" {
		id, err := uuid.Parse(courseID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
		}
		base = base.Where("attendance_session_course_id = ?", id)
	}
	if date := c.Query("date"); date != "" {
		base = base.Where("attendance_session_date = ?", date)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung sesi")
	}

	var rows []model.AttendanceSessionModel
	if err := base.
		Order("attendance_session_start_time DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	pg := helper.BuildPaginationFromOffset(total, p.Offset, p.Limit)
	return helper.JsonList(c, "Daftar sesi", dto.FromModels(rows), &pg)
}

// 🟡 PATCH /api/a/sessions/:id/status
func (ctrl *AttendanceSessionController) Transition(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("ubah status sesi"))
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}

	var req dto.TransitionSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	sess, err := ctrl.Lifecycle.Transition(c.Context(), companyID, sessionID,
		model.AttendanceSessionStatus(req.AttendanceSessionStatus))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "SESSION_NOT_FOUND", "Sesi tidak ditemukan")
		case errors.Is(err, service.ErrInvalidTransition):
			return helper.JsonErrorCode(c, fiber.StatusConflict, "INVALID_TRANSITION", err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah status sesi")
		}
	}

	return helper.JsonUpdated(c, "Status sesi berhasil diubah", dto.FromModel(sess))
}

// 🟢 POST /api/a/sessions/:id/reconcile
// Penyembuhan roster drift: insert baris ABSENT untuk siswa roster yang
// belum punya record. Idempoten — aman dipanggil berulang.
func (ctrl *AttendanceSessionController) Reconcile(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorStaff("reconcile sesi"))
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}

	var sess model.AttendanceSessionModel
	err = ctrl.DB.WithContext(c.Context()).
		First(&sess, "attendance_session_id = ? AND attendance_session_company_id = ?", sessionID, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "SESSION_NOT_FOUND", "Sesi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	inserted, rosterSize, err := ctrl.Lifecycle.InitRecords(c.Context(), &sess)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Reconcile gagal: "+err.Error())
	}

	return helper.JsonOK(c, "Reconcile selesai", fiber.Map{
		"attendance_session_id": sessionID,
		"inserted_records":      inserted,
		"roster_size":           rosterSize,
	})
}

// 🟢 GET /api/u/sessions/active?batch_id=
// Sesi OPEN yang sedang berlangsung untuk aplikasi siswa.
func (ctrl *AttendanceSessionController) Active(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	var batchID *uuid.UUID
	if q := c.Query("batch_id"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "batch_id tidak valid")
		}
		batchID = &id
	}

	sess, err := ctrl.Lifecycle.GetActiveWindow(c.Context(), companyID, batchID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi aktif")
	}
	if sess == nil {
		return helper.JsonOK(c, "Tidak ada sesi aktif", nil)
	}

	return helper.JsonOK(c, "Sesi aktif", dto.FromModel(sess))
}
