// file: internals/features/attendance/verification/service/pipeline.go
//
// Orkestrator verifikasi kehadiran. Satu Submit = satu attempt audit
// (selalu tersimpan, diterima ataupun ditolak) + kalau diterima, upsert
// idempoten ke attendance_records dengan last-write-wins per
// (session, student, type).
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hadirku_backend/internals/configs"
	"hadirku_backend/internals/features/attendance/events"
	faceSvc "hadirku_backend/internals/features/attendance/face/service"
	locModel "hadirku_backend/internals/features/attendance/locations/model"
	recModel "hadirku_backend/internals/features/attendance/records/model"
	sessModel "hadirku_backend/internals/features/attendance/sessions/model"
	model "hadirku_backend/internals/features/attendance/verification/model"
)

var (
	ErrSessionNotFound  = errors.New("sesi tidak ditemukan")
	ErrSessionNotOpen   = errors.New("sesi tidak sedang OPEN")
	ErrLocationNotFound = errors.New("lokasi institusi tidak ditemukan")
	ErrStoreUnavailable = errors.New("penyimpanan record sementara tidak tersedia")
)

// retry terbatas untuk kegagalan transient store; backoff sederhana.
const (
	recordWriteRetries = 3
	recordWriteBackoff = 150 * time.Millisecond
)

type PipelineService struct {
	DB         *gorm.DB
	Enrollment *faceSvc.EnrollmentService
	Notifier   events.Notifier
}

func NewPipelineService(db *gorm.DB, enrollment *faceSvc.EnrollmentService, notifier events.Notifier) *PipelineService {
	return &PipelineService{DB: db, Enrollment: enrollment, Notifier: notifier}
}

type SubmitInput struct {
	CompanyID  uuid.UUID
	SessionID  uuid.UUID
	StudentID  uuid.UUID
	Type       model.VerificationType
	Embedding  []float64
	Latitude   float64
	Longitude  float64
	AccuracyM  float64
	DeviceInfo datatypes.JSON
	IPAddress  *string
	UserAgent  *string
}

// VerificationOutcome: hasil lengkap satu submit, termasuk alasan per gerbang
// supaya klien bisa menampilkan "wajah tidak cocok" vs "di luar area".
type VerificationOutcome struct {
	Accepted      bool                             `json:"accepted"`
	FaceMatched   bool                             `json:"face_matched"`
	FaceDistance  float64                          `json:"face_distance"`
	LocationValid bool                             `json:"location_valid"`
	DistanceM     float64                          `json:"distance_m"`
	RecordStatus  *recModel.AttendanceRecordStatus `json:"record_status,omitempty"`
	AttemptID     uuid.UUID                        `json:"attempt_id"`
	VerifiedAt    time.Time                        `json:"verified_at"`
}

// Submit menjalankan pipeline penuh:
//  1. sesi harus ada, milik tenant, dan OPEN
//  2. profil wajah aktif harus ada (ErrNotEnrolled dari face service)
//  3. dua gerbang dievaluasi PENUH (wajah + geofence) untuk audit
//  4. attempt SELALU dicatat, apapun hasilnya
//  5. kalau diterima: upsert record dalam transaksi, dengan RE-CHECK status
//     sesi di dalam transaksi (sesi bisa di-CLOSE di sela evaluasi)
func (s *PipelineService) Submit(ctx context.Context, in SubmitInput) (*VerificationOutcome, error) {
	now := time.Now()

	// 1. Sesi
	var sess sessModel.AttendanceSessionModel
	err := s.DB.WithContext(ctx).
		First(&sess, "attendance_session_id = ? AND attendance_session_company_id = ?", in.SessionID, in.CompanyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if sess.AttendanceSessionStatus != sessModel.SessionOpen {
		return nil, ErrSessionNotOpen
	}

	// 2. Profil wajah aktif
	profile, err := s.Enrollment.GetActiveProfile(ctx, in.CompanyID, in.StudentID)
	if err != nil {
		return nil, err // faceSvc.ErrNotEnrolled atau error DB
	}

	// 3a. Gerbang wajah
	ref := profile.FaceProfileReferenceEmbedding.Slice()
	ref64 := make([]float64, len(ref))
	for i, v := range ref {
		ref64[i] = float64(v)
	}
	match, err := faceSvc.MatchScore(ref64, in.Embedding, configs.FaceMatchThreshold())
	if err != nil {
		return nil, err
	}

	// 3b. Gerbang lokasi — acuan diambil dari SESI, bukan dari klien:
	// klien yang bebas memilih lokasi bisa lolos geofence cabang lain.
	loc, err := s.resolveLocation(ctx, &sess)
	if err != nil {
		return nil, err
	}
	geo, err := WithinGeofence(Coordinate{Latitude: in.Latitude, Longitude: in.Longitude}, in.AccuracyM, loc)
	if err != nil {
		return nil, err
	}

	decision := Decide(match.IsMatch, match.Distance, geo.Valid, geo.DistanceM)

	// 4. Audit attempt — selalu, sebelum keputusan record
	attempt := model.VerificationAttemptModel{
		VerificationAttemptCompanyID:          in.CompanyID,
		VerificationAttemptSessionID:          in.SessionID,
		VerificationAttemptStudentID:          in.StudentID,
		VerificationAttemptType:               in.Type,
		VerificationAttemptSubmittedEmbedding: pq.Float64Array(in.Embedding),
		VerificationAttemptLatitude:           in.Latitude,
		VerificationAttemptLongitude:          in.Longitude,
		VerificationAttemptAccuracyM:          in.AccuracyM,
		VerificationAttemptDeviceInfo:         in.DeviceInfo,
		VerificationAttemptIPAddress:          in.IPAddress,
		VerificationAttemptUserAgent:          in.UserAgent,
		VerificationAttemptFaceMatched:        decision.FaceMatched,
		VerificationAttemptFaceDistance:       decision.FaceDistance,
		VerificationAttemptLocationValid:      decision.LocationValid,
		VerificationAttemptDistanceM:          decision.DistanceM,
		VerificationAttemptAccepted:           decision.Accepted,
	}
	if err := s.DB.WithContext(ctx).Create(&attempt).Error; err != nil {
		return nil, fmt.Errorf("catat attempt gagal: %w", err)
	}

	out := &VerificationOutcome{
		Accepted:      decision.Accepted,
		FaceMatched:   decision.FaceMatched,
		FaceDistance:  decision.FaceDistance,
		LocationValid: decision.LocationValid,
		DistanceM:     decision.DistanceM,
		AttemptID:     attempt.VerificationAttemptID,
		VerifiedAt:    now,
	}

	if !decision.Accepted {
		events.Dispatch(s.Notifier, events.Event{
			Kind:      events.EventVerificationRejected,
			CompanyID: in.CompanyID,
			SessionID: in.SessionID,
			StudentID: in.StudentID,
			Detail:    rejectDetail(decision),
		})
		return out, nil
	}

	// 5. Tulis record, dengan retry terbatas untuk error transient
	lateAfter := time.Duration(configs.LateAfterMinutes()) * time.Minute
	var status recModel.AttendanceRecordStatus
	writeErr := retryTransient(ctx, func() error {
		var err error
		status, err = s.writeRecord(ctx, &sess, in, now, lateAfter)
		return err
	})
	if writeErr != nil {
		return out, writeErr
	}

	out.RecordStatus = &status
	events.Dispatch(s.Notifier, events.Event{
		Kind:      events.EventVerificationAccepted,
		CompanyID: in.CompanyID,
		SessionID: in.SessionID,
		StudentID: in.StudentID,
		Detail:    string(in.Type) + " " + string(status),
	})
	return out, nil
}

// writeRecord: transaksi upsert — re-check status sesi DI DALAM transaksi,
// lalu INSERT ... ON CONFLICT (session, student) ambil baris existing dan
// terapkan hasil verifikasi (last-write-wins).
func (s *PipelineService) writeRecord(ctx context.Context, sess *sessModel.AttendanceSessionModel, in SubmitInput, verifiedAt time.Time, lateAfter time.Duration) (recModel.AttendanceRecordStatus, error) {
	var finalStatus recModel.AttendanceRecordStatus

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Sesi bisa ditutup di antara evaluasi dan tulis — keputusan akhir
		// harus melihat status paling baru.
		var cur sessModel.AttendanceSessionModel
		if err := tx.Select("attendance_session_status").
			First(&cur, "attendance_session_id = ?", sess.AttendanceSessionID).Error; err != nil {
			return err
		}
		if cur.AttendanceSessionStatus != sessModel.SessionOpen {
			return ErrSessionNotOpen
		}

		// Pastikan barisnya ada (roster drift: siswa baru yang belum
		// ter-init tetap bisa verifikasi) — idempoten via DO NOTHING.
		seed := recModel.AttendanceRecordModel{
			AttendanceRecordCompanyID: in.CompanyID,
			AttendanceRecordSessionID: in.SessionID,
			AttendanceRecordStudentID: in.StudentID,
			AttendanceRecordStatus:    recModel.RecordAbsent,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_record_session_id"},
				{Name: "attendance_record_student_id"},
			},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return err
		}

		var rec recModel.AttendanceRecordModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rec, "attendance_record_session_id = ? AND attendance_record_student_id = ?",
				in.SessionID, in.StudentID).Error; err != nil {
			return err
		}

		if err := ApplyAccepted(&rec, in.Type, verifiedAt, sess.AttendanceSessionStartTime, lateAfter); err != nil {
			return err
		}

		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		finalStatus = rec.AttendanceRecordStatus
		return nil
	})
	if err != nil {
		return "", err
	}
	return finalStatus, nil
}

// resolveLocation: acuan geofence milik sesi (attendance_session_location_id,
// diisi staf saat membuat sesi). Sesi tanpa lokasi eksplisit memakai lokasi
// default tenant — yang paling awal dibuat (tenant satu kampus adalah kasus
// umum). Selalu tenant-scoped.
func (s *PipelineService) resolveLocation(ctx context.Context, sess *sessModel.AttendanceSessionModel) (*locModel.InstitutionLocationModel, error) {
	var loc locModel.InstitutionLocationModel
	q := s.DB.WithContext(ctx).
		Where("institution_location_company_id = ?", sess.AttendanceSessionCompanyID)
	if sess.AttendanceSessionLocationID != nil {
		q = q.Where("institution_location_id = ?", *sess.AttendanceSessionLocationID)
	} else {
		q = q.Order("institution_location_created_at ASC")
	}
	if err := q.First(&loc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &loc, nil
}

func rejectDetail(d GateDecision) string {
	switch {
	case !d.FaceMatched && !d.LocationValid:
		return "wajah tidak cocok & di luar area"
	case !d.FaceMatched:
		return "wajah tidak cocok"
	default:
		return "di luar area"
	}
}

// retryTransient: ulangi fn maksimal recordWriteRetries kali untuk error yang
// BUKAN keputusan bisnis (ErrSessionNotOpen / ErrExitBeforeEntry tidak diulang).
func retryTransient(ctx context.Context, fn func() error) error {
	var last error
	for i := 0; i < recordWriteRetries; i++ {
		last = fn()
		if last == nil {
			return nil
		}
		if errors.Is(last, ErrSessionNotOpen) || errors.Is(last, ErrExitBeforeEntry) {
			return last
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(recordWriteBackoff * time.Duration(i+1)):
		}
		log.Printf("[VERIFY] tulis record gagal (percobaan %d/%d): %v", i+1, recordWriteRetries, last)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, last)
}
