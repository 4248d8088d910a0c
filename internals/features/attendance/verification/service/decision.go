// file: internals/features/attendance/verification/service/decision.go
//
// Aturan keputusan murni pipeline verifikasi — dua gerbang (wajah DAN lokasi)
// harus lolos, lalu status PRESENT/LATE ditentukan dari waktu terima.
// Tidak menyentuh DB; diuji terpisah dari orkestrator.
package service

import (
	"errors"
	"time"

	recModel "hadirku_backend/internals/features/attendance/records/model"
	model "hadirku_backend/internals/features/attendance/verification/model"
)

var ErrExitBeforeEntry = errors.New("verifikasi pulang sebelum verifikasi datang")

// GateDecision: hasil gabungan dua gerbang.
type GateDecision struct {
	FaceMatched   bool
	FaceDistance  float64
	LocationValid bool
	DistanceM     float64
	Accepted      bool
}

// Decide: diterima HANYA jika kedua gerbang lolos. Keduanya selalu
// dievaluasi (tidak short-circuit) supaya jejak audit lengkap.
func Decide(faceMatched bool, faceDistance float64, locationValid bool, distanceM float64) GateDecision {
	return GateDecision{
		FaceMatched:   faceMatched,
		FaceDistance:  faceDistance,
		LocationValid: locationValid,
		DistanceM:     distanceM,
		Accepted:      faceMatched && locationValid,
	}
}

// EntryStatusAt: PRESENT kalau diterima dalam toleransi, LATE setelahnya.
// Batas: start + lateAfter; tepat di batas masih PRESENT.
func EntryStatusAt(verifiedAt, sessionStart time.Time, lateAfter time.Duration) recModel.AttendanceRecordStatus {
	if verifiedAt.After(sessionStart.Add(lateAfter)) {
		return recModel.RecordLate
	}
	return recModel.RecordPresent
}

// ApplyAccepted memutakhirkan record in-place untuk satu verifikasi yang
// DITERIMA. Last-write-wins per (session, student, type): submit ulang tipe
// yang sama menimpa timestamp/status sebelumnya. CLOSING tanpa OPENING
// tertolak dengan ErrExitBeforeEntry.
// Invariant exit >= entry dijaga di KEDUA arah: OPENING ulang yang melewati
// exit tersimpan mengosongkan slot exit (pulang yang lama tidak lagi masuk
// akal setelah datang ulang — siswa harus verifikasi pulang lagi).
func ApplyAccepted(rec *recModel.AttendanceRecordModel, vType model.VerificationType, verifiedAt time.Time, sessionStart time.Time, lateAfter time.Duration) error {
	switch vType {
	case model.VerificationOpening:
		st := EntryStatusAt(verifiedAt, sessionStart, lateAfter)
		rec.AttendanceRecordEntryStatus = &st
		rec.AttendanceRecordEntryVerifiedAt = &verifiedAt
		// Status agregat ikut status entry (LATE menular ke record)
		rec.AttendanceRecordStatus = st

		if rec.AttendanceRecordExitVerifiedAt != nil && verifiedAt.After(*rec.AttendanceRecordExitVerifiedAt) {
			rec.AttendanceRecordExitStatus = nil
			rec.AttendanceRecordExitVerifiedAt = nil
		}

	case model.VerificationClosing:
		if rec.AttendanceRecordEntryVerifiedAt == nil ||
			verifiedAt.Before(*rec.AttendanceRecordEntryVerifiedAt) {
			return ErrExitBeforeEntry
		}
		st := recModel.RecordPresent
		rec.AttendanceRecordExitStatus = &st
		rec.AttendanceRecordExitVerifiedAt = &verifiedAt

	default:
		return errors.New("tipe verifikasi tidak dikenal: " + string(vType))
	}
	return nil
}
