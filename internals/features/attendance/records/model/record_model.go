package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceRecordStatus string

const (
	RecordAbsent  AttendanceRecordStatus = "ABSENT"
	RecordPresent AttendanceRecordStatus = "PRESENT"
	RecordLate    AttendanceRecordStatus = "LATE"
	RecordExcused AttendanceRecordStatus = "EXCUSED"
)

// AttendanceRecordModel: tepat SATU baris per (session, student) —
// UNIQUE (attendance_record_session_id, attendance_record_student_id).
// Dibuat bulk status=ABSENT saat sesi dibuat; berubah hanya lewat
// pipeline verifikasi atau override manual staff.
// Invariant: exit_verified_at (kalau ada) >= entry_verified_at.
type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordCompanyID uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_company_id;index:idx_attendance_record_company" json:"attendance_record_company_id"`
	AttendanceRecordSessionID uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_session_id;uniqueIndex:uq_attendance_record_session_student" json:"attendance_record_session_id"`
	AttendanceRecordStudentID uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_student_id;uniqueIndex:uq_attendance_record_session_student;index:idx_attendance_record_student" json:"attendance_record_student_id"`

	AttendanceRecordStatus AttendanceRecordStatus `gorm:"type:varchar(16);not null;default:ABSENT;column:attendance_record_status;index:idx_attendance_record_status" json:"attendance_record_status"`

	AttendanceRecordEntryStatus     *AttendanceRecordStatus `gorm:"type:varchar(16);column:attendance_record_entry_status" json:"attendance_record_entry_status,omitempty"`
	AttendanceRecordEntryVerifiedAt *time.Time              `gorm:"column:attendance_record_entry_verified_at" json:"attendance_record_entry_verified_at,omitempty"`

	AttendanceRecordExitStatus     *AttendanceRecordStatus `gorm:"type:varchar(16);column:attendance_record_exit_status" json:"attendance_record_exit_status,omitempty"`
	AttendanceRecordExitVerifiedAt *time.Time              `gorm:"column:attendance_record_exit_verified_at" json:"attendance_record_exit_verified_at,omitempty"`

	AttendanceRecordRemarks *string `gorm:"type:text;column:attendance_record_remarks" json:"attendance_record_remarks,omitempty"`

	// Jejak override manual (nullable kalau murni hasil pipeline)
	AttendanceRecordOverriddenBy *uuid.UUID `gorm:"type:uuid;column:attendance_record_overridden_by" json:"attendance_record_overridden_by,omitempty"`

	AttendanceRecordCreatedAt time.Time  `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt *time.Time `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at,omitempty"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
