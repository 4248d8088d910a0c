// file: internals/features/attendance/records/service/aggregator.go
//
// Agregator record kehadiran: ringkasan batch per sesi, riwayat per siswa,
// dan override manual staff. Konvensi roster drift: siswa roster yang belum
// punya baris record tetap muncul di ringkasan sebagai ABSENT.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	recModel "hadirku_backend/internals/features/attendance/records/model"
	rosterSvc "hadirku_backend/internals/features/attendance/rosters/service"
	sessModel "hadirku_backend/internals/features/attendance/sessions/model"
)

var (
	ErrSessionNotFound = errors.New("sesi tidak ditemukan")
	ErrRecordNotFound  = errors.New("record kehadiran tidak ditemukan")
	ErrInvalidStatus   = errors.New("status kehadiran tidak dikenal")
)

type AggregatorService struct {
	DB     *gorm.DB
	Roster rosterSvc.RosterProvider
}

func NewAggregatorService(db *gorm.DB, roster rosterSvc.RosterProvider) *AggregatorService {
	return &AggregatorService{DB: db, Roster: roster}
}

// SummaryEntry: satu baris ringkasan — record bisa nil untuk siswa roster
// yang belum ter-init (statusnya tetap dilaporkan ABSENT).
type SummaryEntry struct {
	StudentID       uuid.UUID                       `json:"student_id"`
	StudentName     *string                         `json:"student_name,omitempty"`
	Status          recModel.AttendanceRecordStatus `json:"status"`
	EntryVerifiedAt *time.Time                      `json:"entry_verified_at,omitempty"`
	ExitVerifiedAt  *time.Time                      `json:"exit_verified_at,omitempty"`
	Remarks         *string                         `json:"remarks,omitempty"`
	Overridden      bool                            `json:"overridden"`
}

// SessionSummary: agregat lengkap satu sesi.
type SessionSummary struct {
	Session *sessModel.AttendanceSessionModel       `json:"session"`
	Entries []SummaryEntry                          `json:"entries"`
	Counts  map[recModel.AttendanceRecordStatus]int `json:"counts"`
	Total   int                                     `json:"total"`
}

// Summarize: enumerasi roster aktif + LEFT JOIN manual dengan records.
// Siswa non-roster yang PUNYA record (mis. pindah batch setelah verifikasi)
// tetap diikutkan — record adalah fakta, roster adalah ekspektasi.
func (s *AggregatorService) Summarize(ctx context.Context, companyID, sessionID uuid.UUID) (*SessionSummary, error) {
	var sess sessModel.AttendanceSessionModel
	err := s.DB.WithContext(ctx).
		First(&sess, "attendance_session_id = ? AND attendance_session_company_id = ?", sessionID, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	students, err := s.Roster.ActiveStudents(ctx,
		sess.AttendanceSessionCompanyID,
		sess.AttendanceSessionCourseID,
		sess.AttendanceSessionBatchID,
	)
	if err != nil {
		return nil, err
	}

	var recs []recModel.AttendanceRecordModel
	if err := s.DB.WithContext(ctx).
		Where("attendance_record_session_id = ?", sessionID).
		Find(&recs).Error; err != nil {
		return nil, err
	}

	byStudent := make(map[uuid.UUID]*recModel.AttendanceRecordModel, len(recs))
	for i := range recs {
		byStudent[recs[i].AttendanceRecordStudentID] = &recs[i]
	}

	summary := &SessionSummary{
		Session: &sess,
		Entries: make([]SummaryEntry, 0, len(students)),
		Counts:  map[recModel.AttendanceRecordStatus]int{},
	}

	seen := make(map[uuid.UUID]bool, len(students))
	for _, st := range students {
		seen[st.StudentID] = true
		entry := SummaryEntry{
			StudentID:   st.StudentID,
			StudentName: st.Name,
			Status:      recModel.RecordAbsent,
		}
		if rec, ok := byStudent[st.StudentID]; ok {
			fillEntry(&entry, rec)
		}
		summary.Entries = append(summary.Entries, entry)
	}

	// record tanpa baris roster: tampilkan apa adanya
	for _, rec := range recs {
		if seen[rec.AttendanceRecordStudentID] {
			continue
		}
		entry := SummaryEntry{StudentID: rec.AttendanceRecordStudentID}
		fillEntry(&entry, &rec)
		summary.Entries = append(summary.Entries, entry)
	}

	for _, e := range summary.Entries {
		summary.Counts[e.Status]++
	}
	summary.Total = len(summary.Entries)
	return summary, nil
}

func fillEntry(entry *SummaryEntry, rec *recModel.AttendanceRecordModel) {
	entry.Status = rec.AttendanceRecordStatus
	entry.EntryVerifiedAt = rec.AttendanceRecordEntryVerifiedAt
	entry.ExitVerifiedAt = rec.AttendanceRecordExitVerifiedAt
	entry.Remarks = rec.AttendanceRecordRemarks
	entry.Overridden = rec.AttendanceRecordOverriddenBy != nil
}

// HistoryEntry: satu record + konteks sesinya untuk riwayat siswa.
type HistoryEntry struct {
	Record  recModel.AttendanceRecordModel   `json:"record"`
	Session sessModel.AttendanceSessionModel `json:"session"`
}

// StudentHistory: riwayat record seorang siswa, terbaru dulu, dipaging offset.
// courseID nil = seluruh course.
func (s *AggregatorService) StudentHistory(ctx context.Context, companyID, studentID uuid.UUID, courseID *uuid.UUID, limit, offset int) ([]HistoryEntry, int64, error) {
	base := s.DB.WithContext(ctx).
		Model(&recModel.AttendanceRecordModel{}).
		Where("attendance_record_company_id = ? AND attendance_record_student_id = ?", companyID, studentID)

	if courseID != nil {
		base = base.Where(`attendance_record_session_id IN (?)`,
			s.DB.Model(&sessModel.AttendanceSessionModel{}).
				Select("attendance_session_id").
				Where("attendance_session_course_id = ?", *courseID),
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recs []recModel.AttendanceRecordModel
	if err := base.
		Order("attendance_record_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	if len(recs) == 0 {
		return []HistoryEntry{}, total, nil
	}

	ids := make([]uuid.UUID, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.AttendanceRecordSessionID)
	}
	var sessions []sessModel.AttendanceSessionModel
	if err := s.DB.WithContext(ctx).
		Where("attendance_session_id IN ?", ids).
		Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	byID := make(map[uuid.UUID]sessModel.AttendanceSessionModel, len(sessions))
	for _, ss := range sessions {
		byID[ss.AttendanceSessionID] = ss
	}

	out := make([]HistoryEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, HistoryEntry{Record: r, Session: byID[r.AttendanceRecordSessionID]})
	}
	return out, total, nil
}

type OverrideInput struct {
	CompanyID   uuid.UUID
	SessionID   uuid.UUID
	StudentID   uuid.UUID
	Status      recModel.AttendanceRecordStatus
	Remarks     *string
	PerformedBy uuid.UUID
}

// Override: koreksi manual staff — menimpa status hasil pipeline dan
// meninggalkan jejak siapa yang mengubah. EXCUSED hanya bisa lewat sini.
func (s *AggregatorService) Override(ctx context.Context, in OverrideInput) (*recModel.AttendanceRecordModel, error) {
	switch in.Status {
	case recModel.RecordAbsent, recModel.RecordPresent, recModel.RecordLate, recModel.RecordExcused:
	default:
		return nil, ErrInvalidStatus
	}

	var rec recModel.AttendanceRecordModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, `
			attendance_record_company_id = ?
			AND attendance_record_session_id = ?
			AND attendance_record_student_id = ?
		`, in.CompanyID, in.SessionID, in.StudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		rec.AttendanceRecordStatus = in.Status
		if in.Remarks != nil {
			rec.AttendanceRecordRemarks = in.Remarks
		}
		rec.AttendanceRecordOverriddenBy = &in.PerformedBy
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
