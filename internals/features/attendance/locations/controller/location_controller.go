// file: internals/features/attendance/locations/controller/location_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/locations/dto"
	model "hadirku_backend/internals/features/attendance/locations/model"
	helper "hadirku_backend/internals/helpers"
	helperAuth "hadirku_backend/internals/helpers/auth"
)

type InstitutionLocationController struct {
	DB *gorm.DB
}

func NewInstitutionLocationController(db *gorm.DB) *InstitutionLocationController {
	return &InstitutionLocationController{DB: db}
}

var validate = validator.New()

// 🟢 POST /api/a/locations
func (ctrl *InstitutionLocationController) Create(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateInstitutionLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel(companyID)
	if err := ctrl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan lokasi")
	}

	return helper.JsonCreated(c, "Lokasi berhasil dibuat", dto.FromModel(m))
}

// 🟢 GET /api/a/locations
func (ctrl *InstitutionLocationController) List(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)

	base := ctrl.DB.WithContext(c.Context()).
		Model(&model.InstitutionLocationModel{}).
		Where("institution_location_company_id = ?", companyID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung lokasi")
	}

	var rows []model.InstitutionLocationModel
	if err := base.
		Order("institution_location_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil lokasi")
	}

	pg := helper.BuildPaginationFromOffset(total, p.Offset, p.Limit)
	return helper.JsonList(c, "Daftar lokasi", dto.FromModels(rows), &pg)
}

// 🟢 GET /api/a/locations/:id
func (ctrl *InstitutionLocationController) GetByID(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID lokasi tidak valid")
	}

	var m model.InstitutionLocationModel
	err = ctrl.DB.WithContext(c.Context()).
		First(&m, "institution_location_id = ? AND institution_location_company_id = ?", id, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lokasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil lokasi")
	}

	return helper.JsonOK(c, "Detail lokasi", dto.FromModel(&m))
}

// 🟡 PATCH /api/a/locations/:id
func (ctrl *InstitutionLocationController) Update(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID lokasi tidak valid")
	}

	var req dto.UpdateInstitutionLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.InstitutionLocationModel
	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "institution_location_id = ? AND institution_location_company_id = ?", id, companyID).Error; err != nil {
			return err
		}
		req.ApplyTo(&m)
		return tx.Save(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lokasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui lokasi")
	}

	return helper.JsonUpdated(c, "Lokasi berhasil diperbarui", dto.FromModel(&m))
}

// 🔴 DELETE /api/a/locations/:id (soft delete)
func (ctrl *InstitutionLocationController) Delete(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID lokasi tidak valid")
	}

	res := ctrl.DB.WithContext(c.Context()).
		Where("institution_location_id = ? AND institution_location_company_id = ?", id, companyID).
		Delete(&model.InstitutionLocationModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus lokasi")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Lokasi tidak ditemukan")
	}

	return helper.JsonOK(c, "Lokasi berhasil dihapus", fiber.Map{"institution_location_id": id})
}
