// file: internals/features/attendance/verification/dto/verify_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "hadirku_backend/internals/features/attendance/verification/model"
	service "hadirku_backend/internals/features/attendance/verification/service"
)

/* ===================== REQUEST ===================== */

// SubmitVerificationRequest: satu percobaan verifikasi kehadiran.
// Embedding 128 dimensi hasil ekstraksi di perangkat — server tidak
// pernah menerima gambar mentah di jalur ini.
type SubmitVerificationRequest struct {
	VerificationSessionID uuid.UUID `json:"verification_session_id" validate:"required"`
	VerificationType      string    `json:"verification_type" validate:"required,oneof=OPENING CLOSING"`

	VerificationEmbedding []float64 `json:"verification_embedding" validate:"required,len=128"`

	VerificationLatitude  float64 `json:"verification_latitude" validate:"min=-90,max=90"`
	VerificationLongitude float64 `json:"verification_longitude" validate:"min=-180,max=180"`
	VerificationAccuracyM float64 `json:"verification_accuracy_m" validate:"omitempty,min=0,max=10000"`

	VerificationDeviceInfo datatypes.JSON `json:"verification_device_info"`
}

func (r *SubmitVerificationRequest) ToInput(companyID, studentID uuid.UUID, ip, userAgent *string) service.SubmitInput {
	return service.SubmitInput{
		CompanyID:  companyID,
		SessionID:  r.VerificationSessionID,
		StudentID:  studentID,
		Type:       model.VerificationType(r.VerificationType),
		Embedding:  r.VerificationEmbedding,
		Latitude:   r.VerificationLatitude,
		Longitude:  r.VerificationLongitude,
		AccuracyM:  r.VerificationAccuracyM,
		DeviceInfo: r.VerificationDeviceInfo,
		IPAddress:  ip,
		UserAgent:  userAgent,
	}
}

/* ===================== RESPONSE ===================== */

// VerificationOutcomeResponse: hasil per gerbang selalu dikembalikan supaya
// aplikasi bisa menampilkan alasan penolakan yang tepat.
type VerificationOutcomeResponse struct {
	VerificationAccepted      bool      `json:"verification_accepted"`
	VerificationFaceMatched   bool      `json:"verification_face_matched"`
	VerificationFaceDistance  float64   `json:"verification_face_distance"`
	VerificationLocationValid bool      `json:"verification_location_valid"`
	VerificationDistanceM     float64   `json:"verification_distance_m"`
	VerificationRecordStatus  *string   `json:"verification_record_status,omitempty"`
	VerificationAttemptID     uuid.UUID `json:"verification_attempt_id"`
	VerificationVerifiedAt    time.Time `json:"verification_verified_at"`
}

func FromOutcome(o *service.VerificationOutcome) VerificationOutcomeResponse {
	resp := VerificationOutcomeResponse{
		VerificationAccepted:      o.Accepted,
		VerificationFaceMatched:   o.FaceMatched,
		VerificationFaceDistance:  o.FaceDistance,
		VerificationLocationValid: o.LocationValid,
		VerificationDistanceM:     o.DistanceM,
		VerificationAttemptID:     o.AttemptID,
		VerificationVerifiedAt:    o.VerifiedAt,
	}
	if o.RecordStatus != nil {
		s := string(*o.RecordStatus)
		resp.VerificationRecordStatus = &s
	}
	return resp
}
