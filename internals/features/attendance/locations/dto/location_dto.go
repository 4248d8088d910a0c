// file: internals/features/attendance/locations/dto/location_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "hadirku_backend/internals/features/attendance/locations/model"
)

/* ===================== REQUEST ===================== */

type CreateInstitutionLocationRequest struct {
	InstitutionLocationBranchID *uuid.UUID `json:"institution_location_branch_id"`

	InstitutionLocationName string `json:"institution_location_name" validate:"required,min=3,max=120"`

	InstitutionLocationLatitude  float64 `json:"institution_location_latitude" validate:"min=-90,max=90"`
	InstitutionLocationLongitude float64 `json:"institution_location_longitude" validate:"min=-180,max=180"`
	InstitutionLocationRadiusM   float64 `json:"institution_location_radius_m" validate:"required,gt=0"`
}

func (r *CreateInstitutionLocationRequest) ToModel(companyID uuid.UUID) *model.InstitutionLocationModel {
	return &model.InstitutionLocationModel{
		InstitutionLocationCompanyID: companyID,
		InstitutionLocationBranchID:  r.InstitutionLocationBranchID,
		InstitutionLocationName:      strings.TrimSpace(r.InstitutionLocationName),
		InstitutionLocationLatitude:  r.InstitutionLocationLatitude,
		InstitutionLocationLongitude: r.InstitutionLocationLongitude,
		InstitutionLocationRadiusM:   r.InstitutionLocationRadiusM,
	}
}

// UpdateInstitutionLocationRequest: partial update, semua field opsional.
type UpdateInstitutionLocationRequest struct {
	InstitutionLocationName      *string  `json:"institution_location_name" validate:"omitempty,min=3,max=120"`
	InstitutionLocationLatitude  *float64 `json:"institution_location_latitude" validate:"omitempty,min=-90,max=90"`
	InstitutionLocationLongitude *float64 `json:"institution_location_longitude" validate:"omitempty,min=-180,max=180"`
	InstitutionLocationRadiusM   *float64 `json:"institution_location_radius_m" validate:"omitempty,gt=0"`
}

func (r *UpdateInstitutionLocationRequest) ApplyTo(m *model.InstitutionLocationModel) {
	if r.InstitutionLocationName != nil {
		m.InstitutionLocationName = strings.TrimSpace(*r.InstitutionLocationName)
	}
	if r.InstitutionLocationLatitude != nil {
		m.InstitutionLocationLatitude = *r.InstitutionLocationLatitude
	}
	if r.InstitutionLocationLongitude != nil {
		m.InstitutionLocationLongitude = *r.InstitutionLocationLongitude
	}
	if r.InstitutionLocationRadiusM != nil {
		m.InstitutionLocationRadiusM = *r.InstitutionLocationRadiusM
	}
}

/* ===================== RESPONSE ===================== */

type InstitutionLocationResponse struct {
	InstitutionLocationID        uuid.UUID  `json:"institution_location_id"`
	InstitutionLocationCompanyID uuid.UUID  `json:"institution_location_company_id"`
	InstitutionLocationBranchID  *uuid.UUID `json:"institution_location_branch_id,omitempty"`

	InstitutionLocationName string `json:"institution_location_name"`

	InstitutionLocationLatitude  float64 `json:"institution_location_latitude"`
	InstitutionLocationLongitude float64 `json:"institution_location_longitude"`
	InstitutionLocationRadiusM   float64 `json:"institution_location_radius_m"`

	InstitutionLocationCreatedAt time.Time  `json:"institution_location_created_at"`
	InstitutionLocationUpdatedAt *time.Time `json:"institution_location_updated_at,omitempty"`
}

func FromModel(m *model.InstitutionLocationModel) InstitutionLocationResponse {
	return InstitutionLocationResponse{
		InstitutionLocationID:        m.InstitutionLocationID,
		InstitutionLocationCompanyID: m.InstitutionLocationCompanyID,
		InstitutionLocationBranchID:  m.InstitutionLocationBranchID,
		InstitutionLocationName:      m.InstitutionLocationName,
		InstitutionLocationLatitude:  m.InstitutionLocationLatitude,
		InstitutionLocationLongitude: m.InstitutionLocationLongitude,
		InstitutionLocationRadiusM:   m.InstitutionLocationRadiusM,
		InstitutionLocationCreatedAt: m.InstitutionLocationCreatedAt,
		InstitutionLocationUpdatedAt: m.InstitutionLocationUpdatedAt,
	}
}

func FromModels(ms []model.InstitutionLocationModel) []InstitutionLocationResponse {
	out := make([]InstitutionLocationResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
