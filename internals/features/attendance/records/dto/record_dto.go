// file: internals/features/attendance/records/dto/record_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "hadirku_backend/internals/features/attendance/records/model"
	service "hadirku_backend/internals/features/attendance/records/service"
)

/* ===================== REQUEST ===================== */

// OverrideRecordRequest: koreksi manual staff. EXCUSED hanya lewat jalur ini.
type OverrideRecordRequest struct {
	AttendanceRecordStatus  string  `json:"attendance_record_status" validate:"required,oneof=ABSENT PRESENT LATE EXCUSED"`
	AttendanceRecordRemarks *string `json:"attendance_record_remarks" validate:"omitempty,max=500"`
}

/* ===================== RESPONSE ===================== */

type AttendanceRecordResponse struct {
	AttendanceRecordID        uuid.UUID `json:"attendance_record_id"`
	AttendanceRecordSessionID uuid.UUID `json:"attendance_record_session_id"`
	AttendanceRecordStudentID uuid.UUID `json:"attendance_record_student_id"`

	AttendanceRecordStatus string `json:"attendance_record_status"`

	AttendanceRecordEntryStatus     *string    `json:"attendance_record_entry_status,omitempty"`
	AttendanceRecordEntryVerifiedAt *time.Time `json:"attendance_record_entry_verified_at,omitempty"`
	AttendanceRecordExitStatus      *string    `json:"attendance_record_exit_status,omitempty"`
	AttendanceRecordExitVerifiedAt  *time.Time `json:"attendance_record_exit_verified_at,omitempty"`

	AttendanceRecordRemarks    *string `json:"attendance_record_remarks,omitempty"`
	AttendanceRecordOverridden bool    `json:"attendance_record_overridden"`
}

func FromModel(m *model.AttendanceRecordModel) AttendanceRecordResponse {
	resp := AttendanceRecordResponse{
		AttendanceRecordID:              m.AttendanceRecordID,
		AttendanceRecordSessionID:       m.AttendanceRecordSessionID,
		AttendanceRecordStudentID:       m.AttendanceRecordStudentID,
		AttendanceRecordStatus:          string(m.AttendanceRecordStatus),
		AttendanceRecordEntryVerifiedAt: m.AttendanceRecordEntryVerifiedAt,
		AttendanceRecordExitVerifiedAt:  m.AttendanceRecordExitVerifiedAt,
		AttendanceRecordRemarks:         m.AttendanceRecordRemarks,
		AttendanceRecordOverridden:      m.AttendanceRecordOverriddenBy != nil,
	}
	if m.AttendanceRecordEntryStatus != nil {
		s := string(*m.AttendanceRecordEntryStatus)
		resp.AttendanceRecordEntryStatus = &s
	}
	if m.AttendanceRecordExitStatus != nil {
		s := string(*m.AttendanceRecordExitStatus)
		resp.AttendanceRecordExitStatus = &s
	}
	return resp
}

// HistoryEntryResponse: satu record + konteks sesinya.
type HistoryEntryResponse struct {
	Record      AttendanceRecordResponse `json:"record"`
	SessionDate time.Time                `json:"session_date"`
	SessionType string                   `json:"session_type"`
	CourseID    uuid.UUID                `json:"course_id"`
}

func FromHistory(entries []service.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for i := range entries {
		e := entries[i]
		out = append(out, HistoryEntryResponse{
			Record:      FromModel(&e.Record),
			SessionDate: e.Session.AttendanceSessionDate,
			SessionType: string(e.Session.AttendanceSessionType),
			CourseID:    e.Session.AttendanceSessionCourseID,
		})
	}
	return out
}
