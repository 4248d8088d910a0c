package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// FaceDescriptorDim: panjang embedding wajah (dlib/InsightFace-style 128d).
// Semua capture & reference WAJIB persis dimensi ini.
const FaceDescriptorDim = 128

// FaceProfileModel: satu profil referensi per orang. Tidak pernah hard-delete —
// reset admin hanya menonaktifkan (is_active=false) supaya audit tetap utuh.
// Invariant: maksimal SATU profil aktif per person (partial unique index di DB:
// UNIQUE (face_profile_person_id) WHERE face_profile_is_active).
type FaceProfileModel struct {
	FaceProfileID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:face_profile_id" json:"face_profile_id"`

	FaceProfileCompanyID uuid.UUID `gorm:"type:uuid;not null;column:face_profile_company_id;index:idx_face_profile_company" json:"face_profile_company_id"`
	FaceProfilePersonID  uuid.UUID `gorm:"type:uuid;not null;column:face_profile_person_id;index:idx_face_profile_person" json:"face_profile_person_id"`

	// Rata-rata ≥3 capture, disimpan sebagai pgvector supaya bisa dipakai
	// ANN search kalau nanti perlu dedup antar orang.
	FaceProfileReferenceEmbedding pgvector.Vector `gorm:"type:vector(128);not null;column:face_profile_reference_embedding" json:"-"`

	// DB: CHECK 0..100
	FaceProfileQualityScore float64 `gorm:"type:numeric(5,2);not null;column:face_profile_quality_score" json:"face_profile_quality_score"`

	FaceProfilePrimaryImageRef *string        `gorm:"type:text;column:face_profile_primary_image_ref" json:"face_profile_primary_image_ref,omitempty"`
	FaceProfileDeviceInfo      datatypes.JSON `gorm:"type:jsonb;column:face_profile_device_info" json:"face_profile_device_info,omitempty"`

	FaceProfileIsActive bool `gorm:"not null;default:true;column:face_profile_is_active;index:idx_face_profile_active" json:"face_profile_is_active"`

	FaceProfileRegisteredAt time.Time `gorm:"column:face_profile_registered_at;autoCreateTime" json:"face_profile_registered_at"`

	// Jejak reset admin (nullable selama profil aktif)
	FaceProfileDeactivatedAt *time.Time `gorm:"column:face_profile_deactivated_at" json:"face_profile_deactivated_at,omitempty"`
	FaceProfileDeactivatedBy *uuid.UUID `gorm:"type:uuid;column:face_profile_deactivated_by" json:"face_profile_deactivated_by,omitempty"`
}

func (FaceProfileModel) TableName() string { return "face_profiles" }
