package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceSessionStatus string

const (
	SessionScheduled AttendanceSessionStatus = "SCHEDULED"
	SessionOpen      AttendanceSessionStatus = "OPEN"
	SessionClosed    AttendanceSessionStatus = "CLOSED"
)

type AttendanceSessionType string

const (
	SessionTypeRegular AttendanceSessionType = "REGULAR"
	SessionTypeMakeup  AttendanceSessionType = "MAKEUP"
)

// AttendanceSessionModel: sesi kehadiran dengan state machine forward-only
// SCHEDULED → OPEN → CLOSED. Tidak pernah dihapus — soft-closed.
type AttendanceSessionModel struct {
	AttendanceSessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_session_id" json:"attendance_session_id"`

	AttendanceSessionCompanyID uuid.UUID `gorm:"type:uuid;not null;column:attendance_session_company_id;index:idx_attendance_session_company" json:"attendance_session_company_id"`
	AttendanceSessionCourseID  uuid.UUID `gorm:"type:uuid;not null;column:attendance_session_course_id;index:idx_attendance_session_course" json:"attendance_session_course_id"`

	// NULL = berlaku untuk semua siswa course (tanpa batch)
	AttendanceSessionBatchID *uuid.UUID `gorm:"type:uuid;column:attendance_session_batch_id;index:idx_attendance_session_batch" json:"attendance_session_batch_id,omitempty"`

	// Acuan geofence sesi ini. Dipilih staf saat membuat sesi — BUKAN oleh
	// klien saat verifikasi. NULL = pakai lokasi default tenant.
	AttendanceSessionLocationID *uuid.UUID `gorm:"type:uuid;column:attendance_session_location_id;index:idx_attendance_session_location" json:"attendance_session_location_id,omitempty"`

	AttendanceSessionDate time.Time             `gorm:"type:date;not null;column:attendance_session_date" json:"attendance_session_date"`
	AttendanceSessionType AttendanceSessionType `gorm:"type:varchar(16);not null;default:REGULAR;column:attendance_session_type" json:"attendance_session_type"`

	AttendanceSessionStartTime time.Time `gorm:"not null;column:attendance_session_start_time" json:"attendance_session_start_time"`
	AttendanceSessionEndTime   time.Time `gorm:"not null;column:attendance_session_end_time" json:"attendance_session_end_time"`

	// DB: CHECK status IN ('SCHEDULED','OPEN','CLOSED')
	AttendanceSessionStatus AttendanceSessionStatus `gorm:"type:varchar(16);not null;default:SCHEDULED;column:attendance_session_status;index:idx_attendance_session_status" json:"attendance_session_status"`

	AttendanceSessionCreatedBy *uuid.UUID `gorm:"type:uuid;column:attendance_session_created_by" json:"attendance_session_created_by,omitempty"`

	AttendanceSessionCreatedAt time.Time      `gorm:"column:attendance_session_created_at;autoCreateTime" json:"attendance_session_created_at"`
	AttendanceSessionUpdatedAt *time.Time     `gorm:"column:attendance_session_updated_at;autoUpdateTime" json:"attendance_session_updated_at,omitempty"`
	AttendanceSessionDeletedAt gorm.DeletedAt `gorm:"column:attendance_session_deleted_at;index" json:"attendance_session_deleted_at,omitempty"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }
