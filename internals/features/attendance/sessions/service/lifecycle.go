// file: internals/features/attendance/sessions/service/lifecycle.go
//
// Session Lifecycle Manager: state machine SCHEDULED → OPEN → CLOSED
// (forward-only) + inisialisasi bulk attendance_records saat sesi dibuat.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hadirku_backend/internals/configs"
	"hadirku_backend/internals/features/attendance/events"
	locModel "hadirku_backend/internals/features/attendance/locations/model"
	recModel "hadirku_backend/internals/features/attendance/records/model"
	rosterSvc "hadirku_backend/internals/features/attendance/rosters/service"
	model "hadirku_backend/internals/features/attendance/sessions/model"
)

var (
	ErrSessionNotFound   = errors.New("sesi tidak ditemukan")
	ErrInvalidTransition = errors.New("transisi status sesi tidak valid")
	ErrInvalidTimeWindow = errors.New("end_time harus setelah start_time")
	ErrLocationNotFound  = errors.New("lokasi institusi tidak ditemukan di tenant ini")
)

// statusRank: urutan maju state machine. Transisi legal hanya ke rank lebih tinggi.
var statusRank = map[model.AttendanceSessionStatus]int{
	model.SessionScheduled: 0,
	model.SessionOpen:      1,
	model.SessionClosed:    2,
}

// ValidateTransition: murni, tanpa DB. CLOSED adalah terminal.
func ValidateTransition(from, to model.AttendanceSessionStatus) error {
	rf, ok := statusRank[from]
	if !ok {
		return fmt.Errorf("%w: status asal %q tidak dikenal", ErrInvalidTransition, from)
	}
	rt, ok := statusRank[to]
	if !ok {
		return fmt.Errorf("%w: status tujuan %q tidak dikenal", ErrInvalidTransition, to)
	}
	if rt <= rf {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// InitialStatus: kebijakan EKSPLISIT (configs.SessionAutoOpen) — sesi yang
// dibuat dengan start_time <= now langsung OPEN kalau auto-open aktif.
func InitialStatus(startTime, now time.Time, autoOpen bool) model.AttendanceSessionStatus {
	if autoOpen && !startTime.After(now) {
		return model.SessionOpen
	}
	return model.SessionScheduled
}

type LifecycleService struct {
	DB       *gorm.DB
	Roster   rosterSvc.RosterProvider
	Notifier events.Notifier
}

func NewLifecycleService(db *gorm.DB, roster rosterSvc.RosterProvider, notifier events.Notifier) *LifecycleService {
	return &LifecycleService{DB: db, Roster: roster, Notifier: notifier}
}

type CreateSessionInput struct {
	CompanyID  uuid.UUID
	CourseID   uuid.UUID
	BatchID    *uuid.UUID
	LocationID *uuid.UUID // acuan geofence; nil = lokasi default tenant
	Date       time.Time
	Type       model.AttendanceSessionType
	StartTime  time.Time
	EndTime    time.Time
	CreatedBy  *uuid.UUID
}

type CreateSessionResult struct {
	Session            *model.AttendanceSessionModel
	InitializedRecords int
	RosterSize         int
	InitError          string // non-fatal: dilaporkan, bukan menggagalkan create
}

// CreateSession membuat sesi lalu SECARA SINKRON menginisialisasi satu
// attendance_record ABSENT per siswa aktif roster. Kegagalan bulk insert
// TIDAK membatalkan pembuatan sesi — dilaporkan di response dan bisa
// disembuhkan lewat Reconcile.
func (s *LifecycleService) CreateSession(ctx context.Context, in CreateSessionInput) (*CreateSessionResult, error) {
	if !in.EndTime.After(in.StartTime) {
		return nil, ErrInvalidTimeWindow
	}

	// Lokasi geofence harus milik tenant yang sama — dicek di sini sekali,
	// pipeline verifikasi tinggal percaya kolom sesi.
	if in.LocationID != nil {
		var cnt int64
		if err := s.DB.WithContext(ctx).
			Model(&locModel.InstitutionLocationModel{}).
			Where("institution_location_id = ? AND institution_location_company_id = ?", *in.LocationID, in.CompanyID).
			Count(&cnt).Error; err != nil {
			return nil, err
		}
		if cnt == 0 {
			return nil, ErrLocationNotFound
		}
	}

	now := time.Now()
	sess := model.AttendanceSessionModel{
		AttendanceSessionCompanyID:  in.CompanyID,
		AttendanceSessionCourseID:   in.CourseID,
		AttendanceSessionBatchID:    in.BatchID,
		AttendanceSessionLocationID: in.LocationID,
		AttendanceSessionDate:       in.Date,
		AttendanceSessionType:       in.Type,
		AttendanceSessionStartTime:  in.StartTime,
		AttendanceSessionEndTime:    in.EndTime,
		AttendanceSessionStatus:     InitialStatus(in.StartTime, now, configs.SessionAutoOpen()),
		AttendanceSessionCreatedBy:  in.CreatedBy,
	}

	if err := s.DB.WithContext(ctx).Create(&sess).Error; err != nil {
		return nil, err
	}

	if sess.AttendanceSessionStatus == model.SessionOpen {
		events.Dispatch(s.Notifier, events.Event{
			Kind:      events.EventSessionOpened,
			CompanyID: sess.AttendanceSessionCompanyID,
			SessionID: sess.AttendanceSessionID,
		})
	}

	res := &CreateSessionResult{Session: &sess}

	// Bulk init — sengaja DI LUAR transaksi create sesi: gagal di sini non-fatal.
	count, rosterSize, err := s.InitRecords(ctx, &sess)
	res.InitializedRecords = count
	res.RosterSize = rosterSize
	if err != nil {
		log.Printf("[SESSION] init records gagal (non-fatal) session=%s err=%v", sess.AttendanceSessionID, err)
		res.InitError = err.Error()
	}
	return res, nil
}

// InitRecords: batch upsert idempoten — ON CONFLICT (session_id, student_id)
// DO NOTHING, jadi retry/panggilan ganda konvergen ke set baris ABSENT yang sama.
func (s *LifecycleService) InitRecords(ctx context.Context, sess *model.AttendanceSessionModel) (inserted int, rosterSize int, err error) {
	students, err := s.Roster.ActiveStudents(ctx,
		sess.AttendanceSessionCompanyID,
		sess.AttendanceSessionCourseID,
		sess.AttendanceSessionBatchID,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("enumerasi roster gagal: %w", err)
	}
	if len(students) == 0 {
		return 0, 0, nil
	}

	rows := make([]recModel.AttendanceRecordModel, 0, len(students))
	for _, st := range students {
		rows = append(rows, recModel.AttendanceRecordModel{
			AttendanceRecordCompanyID: sess.AttendanceSessionCompanyID,
			AttendanceRecordSessionID: sess.AttendanceSessionID,
			AttendanceRecordStudentID: st.StudentID,
			AttendanceRecordStatus:    recModel.RecordAbsent,
		})
	}

	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_record_session_id"},
				{Name: "attendance_record_student_id"},
			},
			DoNothing: true,
		}).
		CreateInBatches(rows, 200)
	if res.Error != nil {
		return 0, len(students), fmt.Errorf("bulk insert records gagal: %w", res.Error)
	}
	return int(res.RowsAffected), len(students), nil
}

// Transition: forward-only, dicek atomik — WHERE status = from mencegah
// dua transisi balapan sama-sama menang.
func (s *LifecycleService) Transition(ctx context.Context, companyID, sessionID uuid.UUID, to model.AttendanceSessionStatus) (*model.AttendanceSessionModel, error) {
	var sess model.AttendanceSessionModel
	err := s.DB.WithContext(ctx).
		First(&sess, "attendance_session_id = ? AND attendance_session_company_id = ?", sessionID, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if err := ValidateTransition(sess.AttendanceSessionStatus, to); err != nil {
		return nil, err
	}

	res := s.DB.WithContext(ctx).
		Model(&model.AttendanceSessionModel{}).
		Where(`
			attendance_session_id = ?
			AND attendance_session_status = ?
		`, sessionID, sess.AttendanceSessionStatus).
		Update("attendance_session_status", to)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// status berubah di bawah kita — anggap transisi tidak valid lagi
		return nil, fmt.Errorf("%w: status sudah berubah", ErrInvalidTransition)
	}

	sess.AttendanceSessionStatus = to
	if to == model.SessionOpen {
		events.Dispatch(s.Notifier, events.Event{
			Kind:      events.EventSessionOpened,
			CompanyID: sess.AttendanceSessionCompanyID,
			SessionID: sess.AttendanceSessionID,
		})
	}
	return &sess, nil
}

// GetActiveWindow: sesi OPEN yang window tanggal+jam-nya memuat "now".
// nil tanpa error kalau tidak ada.
func (s *LifecycleService) GetActiveWindow(ctx context.Context, companyID uuid.UUID, batchID *uuid.UUID) (*model.AttendanceSessionModel, error) {
	now := time.Now()

	q := s.DB.WithContext(ctx).
		Model(&model.AttendanceSessionModel{}).
		Where(`
			attendance_session_company_id = ?
			AND attendance_session_status = ?
			AND attendance_session_start_time <= ?
			AND attendance_session_end_time >= ?
		`, companyID, model.SessionOpen, now, now)

	if batchID != nil {
		// sesi batch spesifik ATAU sesi course-wide (batch NULL)
		q = q.Where("(attendance_session_batch_id = ? OR attendance_session_batch_id IS NULL)", *batchID)
	}

	var sess model.AttendanceSessionModel
	err := q.Order("attendance_session_start_time DESC").First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}
