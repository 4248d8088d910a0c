// file: internals/features/attendance/sessions/dto/session_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "hadirku_backend/internals/features/attendance/sessions/model"
	service "hadirku_backend/internals/features/attendance/sessions/service"
)

/* ===================== REQUEST ===================== */

type CreateAttendanceSessionRequest struct {
	AttendanceSessionCourseID uuid.UUID  `json:"attendance_session_course_id" validate:"required"`
	AttendanceSessionBatchID  *uuid.UUID `json:"attendance_session_batch_id"`

	// Acuan geofence sesi (nil = lokasi default tenant)
	AttendanceSessionLocationID *uuid.UUID `json:"attendance_session_location_id"`

	AttendanceSessionDate time.Time `json:"attendance_session_date" validate:"required"`
	AttendanceSessionType string    `json:"attendance_session_type" validate:"omitempty,oneof=REGULAR MAKEUP"`

	AttendanceSessionStartTime time.Time `json:"attendance_session_start_time" validate:"required"`
	AttendanceSessionEndTime   time.Time `json:"attendance_session_end_time" validate:"required"`
}

func (r *CreateAttendanceSessionRequest) ToInput(companyID uuid.UUID, createdBy *uuid.UUID) service.CreateSessionInput {
	sType := model.SessionTypeRegular
	if r.AttendanceSessionType == string(model.SessionTypeMakeup) {
		sType = model.SessionTypeMakeup
	}
	return service.CreateSessionInput{
		CompanyID:  companyID,
		CourseID:   r.AttendanceSessionCourseID,
		BatchID:    r.AttendanceSessionBatchID,
		LocationID: r.AttendanceSessionLocationID,
		Date:       r.AttendanceSessionDate,
		Type:       sType,
		StartTime:  r.AttendanceSessionStartTime,
		EndTime:    r.AttendanceSessionEndTime,
		CreatedBy:  createdBy,
	}
}

type TransitionSessionRequest struct {
	AttendanceSessionStatus string `json:"attendance_session_status" validate:"required,oneof=SCHEDULED OPEN CLOSED"`
}

/* ===================== RESPONSE ===================== */

type AttendanceSessionResponse struct {
	AttendanceSessionID        uuid.UUID  `json:"attendance_session_id"`
	AttendanceSessionCompanyID uuid.UUID  `json:"attendance_session_company_id"`
	AttendanceSessionCourseID  uuid.UUID  `json:"attendance_session_course_id"`
	AttendanceSessionBatchID   *uuid.UUID `json:"attendance_session_batch_id,omitempty"`

	AttendanceSessionLocationID *uuid.UUID `json:"attendance_session_location_id,omitempty"`

	AttendanceSessionDate time.Time `json:"attendance_session_date"`
	AttendanceSessionType string    `json:"attendance_session_type"`

	AttendanceSessionStartTime time.Time `json:"attendance_session_start_time"`
	AttendanceSessionEndTime   time.Time `json:"attendance_session_end_time"`
	AttendanceSessionStatus    string    `json:"attendance_session_status"`

	AttendanceSessionCreatedAt time.Time `json:"attendance_session_created_at"`
}

func FromModel(m *model.AttendanceSessionModel) AttendanceSessionResponse {
	return AttendanceSessionResponse{
		AttendanceSessionID:         m.AttendanceSessionID,
		AttendanceSessionCompanyID:  m.AttendanceSessionCompanyID,
		AttendanceSessionCourseID:   m.AttendanceSessionCourseID,
		AttendanceSessionBatchID:    m.AttendanceSessionBatchID,
		AttendanceSessionLocationID: m.AttendanceSessionLocationID,
		AttendanceSessionDate:       m.AttendanceSessionDate,
		AttendanceSessionType:       string(m.AttendanceSessionType),
		AttendanceSessionStartTime:  m.AttendanceSessionStartTime,
		AttendanceSessionEndTime:    m.AttendanceSessionEndTime,
		AttendanceSessionStatus:     string(m.AttendanceSessionStatus),
		AttendanceSessionCreatedAt:  m.AttendanceSessionCreatedAt,
	}
}

func FromModels(ms []model.AttendanceSessionModel) []AttendanceSessionResponse {
	out := make([]AttendanceSessionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

// CreateSessionResponse: sesi baru + hasil inisialisasi roster.
// init_error terisi kalau bulk insert gagal (non-fatal, bisa di-reconcile).
type CreateSessionResponse struct {
	Session            AttendanceSessionResponse `json:"session"`
	InitializedRecords int                       `json:"initialized_records"`
	RosterSize         int                       `json:"roster_size"`
	InitError          string                    `json:"init_error,omitempty"`
}
