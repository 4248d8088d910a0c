package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type VerificationType string

const (
	VerificationOpening VerificationType = "OPENING"
	VerificationClosing VerificationType = "CLOSING"
)

// VerificationAttemptModel: jejak audit append-only. Setiap submit dicatat di
// sini — DITERIMA maupun DITOLAK — supaya "kenapa ditolak" bisa ditelusuri.
// Baris ini tidak pernah di-update; hasilnya dilipat ke attendance_records.
type VerificationAttemptModel struct {
	VerificationAttemptID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:verification_attempt_id" json:"verification_attempt_id"`

	VerificationAttemptCompanyID uuid.UUID `gorm:"type:uuid;not null;column:verification_attempt_company_id;index:idx_verification_attempt_company" json:"verification_attempt_company_id"`
	VerificationAttemptSessionID uuid.UUID `gorm:"type:uuid;not null;column:verification_attempt_session_id;index:idx_verification_attempt_session" json:"verification_attempt_session_id"`
	VerificationAttemptStudentID uuid.UUID `gorm:"type:uuid;not null;column:verification_attempt_student_id;index:idx_verification_attempt_student" json:"verification_attempt_student_id"`

	VerificationAttemptType VerificationType `gorm:"type:varchar(16);not null;column:verification_attempt_type" json:"verification_attempt_type"`

	// Embedding mentah yang dikirim klien (float8[] — audit, bukan referensi)
	VerificationAttemptSubmittedEmbedding pq.Float64Array `gorm:"type:float8[];column:verification_attempt_submitted_embedding" json:"-"`

	VerificationAttemptLatitude  float64 `gorm:"type:double precision;not null;column:verification_attempt_latitude" json:"verification_attempt_latitude"`
	VerificationAttemptLongitude float64 `gorm:"type:double precision;not null;column:verification_attempt_longitude" json:"verification_attempt_longitude"`
	VerificationAttemptAccuracyM float64 `gorm:"type:double precision;not null;default:0;column:verification_attempt_accuracy_m" json:"verification_attempt_accuracy_m"`

	VerificationAttemptDeviceInfo datatypes.JSON `gorm:"type:jsonb;column:verification_attempt_device_info" json:"verification_attempt_device_info,omitempty"`
	VerificationAttemptIPAddress  *string        `gorm:"type:inet;column:verification_attempt_ip_address" json:"verification_attempt_ip_address,omitempty"`
	VerificationAttemptUserAgent  *string        `gorm:"type:text;column:verification_attempt_user_agent" json:"verification_attempt_user_agent,omitempty"`

	// Outcome yang sudah dihitung
	VerificationAttemptFaceMatched     bool    `gorm:"not null;column:verification_attempt_face_matched" json:"verification_attempt_face_matched"`
	VerificationAttemptFaceDistance    float64 `gorm:"type:double precision;not null;column:verification_attempt_face_distance" json:"verification_attempt_face_distance"`
	VerificationAttemptLocationValid   bool    `gorm:"not null;column:verification_attempt_location_valid" json:"verification_attempt_location_valid"`
	VerificationAttemptDistanceM       float64 `gorm:"type:double precision;not null;column:verification_attempt_distance_m" json:"verification_attempt_distance_m"`
	VerificationAttemptAccepted        bool    `gorm:"not null;column:verification_attempt_accepted" json:"verification_attempt_accepted"`

	VerificationAttemptCreatedAt time.Time `gorm:"column:verification_attempt_created_at;autoCreateTime" json:"verification_attempt_created_at"`
}

func (VerificationAttemptModel) TableName() string { return "verification_attempts" }
