package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InstitutionLocationModel: titik bergeoreferensi per tenant yang jadi acuan
// geofence verifikasi. Sesi menunjuk ke sini lewat
// attendance_session_location_id; sesi tanpa lokasi memakai default tenant.
type InstitutionLocationModel struct {
	InstitutionLocationID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:institution_location_id" json:"institution_location_id"`

	InstitutionLocationCompanyID uuid.UUID  `gorm:"type:uuid;not null;column:institution_location_company_id;index:idx_institution_location_company" json:"institution_location_company_id"`
	InstitutionLocationBranchID  *uuid.UUID `gorm:"type:uuid;column:institution_location_branch_id;index:idx_institution_location_branch" json:"institution_location_branch_id,omitempty"`

	InstitutionLocationName string `gorm:"type:varchar(120);not null;column:institution_location_name" json:"institution_location_name"`

	InstitutionLocationLatitude  float64 `gorm:"type:double precision;not null;column:institution_location_latitude" json:"institution_location_latitude"`
	InstitutionLocationLongitude float64 `gorm:"type:double precision;not null;column:institution_location_longitude" json:"institution_location_longitude"`

	// DB: CHECK (institution_location_radius_m > 0)
	InstitutionLocationRadiusM float64 `gorm:"type:double precision;not null;column:institution_location_radius_m" json:"institution_location_radius_m"`

	InstitutionLocationCreatedAt time.Time      `gorm:"column:institution_location_created_at;autoCreateTime" json:"institution_location_created_at"`
	InstitutionLocationUpdatedAt *time.Time     `gorm:"column:institution_location_updated_at;autoUpdateTime" json:"institution_location_updated_at,omitempty"`
	InstitutionLocationDeletedAt gorm.DeletedAt `gorm:"column:institution_location_deleted_at;index" json:"institution_location_deleted_at,omitempty"`
}

func (InstitutionLocationModel) TableName() string { return "institution_locations" }
