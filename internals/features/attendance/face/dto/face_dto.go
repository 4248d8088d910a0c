// file: internals/features/attendance/face/dto/face_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "hadirku_backend/internals/features/attendance/face/model"
)

/* ===================== REQUEST ===================== */

// RegisterFaceRequest: pendaftaran profil wajah — minimal 3 capture,
// masing-masing 128 dimensi (dicek ulang di service, bukan cuma tag).
type RegisterFaceRequest struct {
	FaceCaptures [][]float64 `json:"face_captures" validate:"required,min=3,dive,len=128"`

	FaceQualityScore float64        `json:"face_quality_score" validate:"omitempty,min=0,max=100"`
	FaceDeviceInfo   datatypes.JSON `json:"face_device_info"`
}

/* ===================== RESPONSE ===================== */

// FaceProfileStatusResponse: status pendaftaran untuk aplikasi siswa.
// Embedding referensi TIDAK pernah ikut response.
type FaceProfileStatusResponse struct {
	FaceProfileID              *uuid.UUID `json:"face_profile_id,omitempty"`
	FaceProfileIsEnrolled      bool       `json:"face_profile_is_enrolled"`
	FaceProfileQualityScore    *float64   `json:"face_profile_quality_score,omitempty"`
	FaceProfilePrimaryImageRef *string    `json:"face_profile_primary_image_ref,omitempty"`
	FaceProfileRegisteredAt    *time.Time `json:"face_profile_registered_at,omitempty"`
}

func StatusFromModel(m *model.FaceProfileModel) FaceProfileStatusResponse {
	if m == nil {
		return FaceProfileStatusResponse{FaceProfileIsEnrolled: false}
	}
	q := m.FaceProfileQualityScore
	return FaceProfileStatusResponse{
		FaceProfileID:              &m.FaceProfileID,
		FaceProfileIsEnrolled:      true,
		FaceProfileQualityScore:    &q,
		FaceProfilePrimaryImageRef: m.FaceProfilePrimaryImageRef,
		FaceProfileRegisteredAt:    &m.FaceProfileRegisteredAt,
	}
}
