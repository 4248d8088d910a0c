package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recModel "hadirku_backend/internals/features/attendance/records/model"
	model "hadirku_backend/internals/features/attendance/verification/model"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name     string
		face     bool
		loc      bool
		accepted bool
	}{
		{"dua gerbang lolos", true, true, true},
		{"wajah gagal", false, true, false},
		{"lokasi gagal", true, false, false},
		{"dua-duanya gagal", false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(tc.face, 0.3, tc.loc, 42)
			assert.Equal(t, tc.accepted, d.Accepted)
			// outcome per gerbang tetap terbawa untuk audit
			assert.Equal(t, tc.face, d.FaceMatched)
			assert.Equal(t, tc.loc, d.LocationValid)
			assert.Equal(t, 0.3, d.FaceDistance)
			assert.Equal(t, float64(42), d.DistanceM)
		})
	}
}

func TestEntryStatusAt(t *testing.T) {
	start := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	late := 15 * time.Minute

	t.Run("sebelum start tetap PRESENT", func(t *testing.T) {
		assert.Equal(t, recModel.RecordPresent, EntryStatusAt(start.Add(-10*time.Minute), start, late))
	})

	t.Run("dalam toleransi PRESENT", func(t *testing.T) {
		assert.Equal(t, recModel.RecordPresent, EntryStatusAt(start.Add(10*time.Minute), start, late))
	})

	t.Run("tepat di batas masih PRESENT", func(t *testing.T) {
		assert.Equal(t, recModel.RecordPresent, EntryStatusAt(start.Add(15*time.Minute), start, late))
	})

	t.Run("lewat batas LATE", func(t *testing.T) {
		assert.Equal(t, recModel.RecordLate, EntryStatusAt(start.Add(15*time.Minute+time.Second), start, late))
	})
}

func TestApplyAccepted(t *testing.T) {
	start := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	late := 15 * time.Minute

	freshRecord := func() *recModel.AttendanceRecordModel {
		return &recModel.AttendanceRecordModel{AttendanceRecordStatus: recModel.RecordAbsent}
	}

	t.Run("opening tepat waktu", func(t *testing.T) {
		rec := freshRecord()
		at := start.Add(5 * time.Minute)
		require.NoError(t, ApplyAccepted(rec, model.VerificationOpening, at, start, late))

		assert.Equal(t, recModel.RecordPresent, rec.AttendanceRecordStatus)
		require.NotNil(t, rec.AttendanceRecordEntryStatus)
		assert.Equal(t, recModel.RecordPresent, *rec.AttendanceRecordEntryStatus)
		require.NotNil(t, rec.AttendanceRecordEntryVerifiedAt)
		assert.Equal(t, at, *rec.AttendanceRecordEntryVerifiedAt)
		assert.Nil(t, rec.AttendanceRecordExitVerifiedAt)
	})

	t.Run("opening terlambat menular ke status record", func(t *testing.T) {
		rec := freshRecord()
		require.NoError(t, ApplyAccepted(rec, model.VerificationOpening, start.Add(30*time.Minute), start, late))

		assert.Equal(t, recModel.RecordLate, rec.AttendanceRecordStatus)
		assert.Equal(t, recModel.RecordLate, *rec.AttendanceRecordEntryStatus)
	})

	t.Run("closing tanpa opening ditolak", func(t *testing.T) {
		rec := freshRecord()
		err := ApplyAccepted(rec, model.VerificationClosing, start.Add(time.Hour), start, late)
		assert.ErrorIs(t, err, ErrExitBeforeEntry)
		assert.Nil(t, rec.AttendanceRecordExitVerifiedAt)
	})

	t.Run("closing setelah opening lengkap", func(t *testing.T) {
		rec := freshRecord()
		entryAt := start.Add(2 * time.Minute)
		require.NoError(t, ApplyAccepted(rec, model.VerificationOpening, entryAt, start, late))

		exitAt := start.Add(90 * time.Minute)
		require.NoError(t, ApplyAccepted(rec, model.VerificationClosing, exitAt, start, late))

		require.NotNil(t, rec.AttendanceRecordExitVerifiedAt)
		assert.Equal(t, exitAt, *rec.AttendanceRecordExitVerifiedAt)
		// status entry tidak tersentuh closing
		assert.Equal(t, recModel.RecordPresent, rec.AttendanceRecordStatus)
	})

	t.Run("last-write-wins per tipe", func(t *testing.T) {
		rec := freshRecord()
		first := start.Add(5 * time.Minute)
		second := start.Add(40 * time.Minute)

		require.NoError(t, ApplyAccepted(rec, model.VerificationOpening, first, start, late))
		require.NoError(t, ApplyAccepted(rec, model.VerificationOpening, second, start, late))

		// submit ulang menimpa: status mengikuti waktu TERAKHIR
		assert.Equal(t, second, *rec.AttendanceRecordEntryVerifiedAt)
		assert.Equal(t, recModel.RecordLate, rec.AttendanceRecordStatus)
	})

	t.Run("opening ulang setelah closing mengosongkan slot exit", func(t *testing.T) {
		rec := freshRecord()
		require.NoError(t, ApplyAccepted(rec, model.VerificationOpening, start.Add(5*time.Minute), start, late))
		require.NoError(t, ApplyAccepted(rec, model.VerificationClosing, start.Add(time.Hour), start, late))
		require.NoError(t, ApplyAccepted(rec, model.VerificationOpening, start.Add(90*time.Minute), start, late))

		// entry > exit tidak boleh pernah tersimpan: exit ikut dikosongkan
		assert.Nil(t, rec.AttendanceRecordExitStatus)
		assert.Nil(t, rec.AttendanceRecordExitVerifiedAt)
		require.NotNil(t, rec.AttendanceRecordEntryVerifiedAt)
		assert.Equal(t, start.Add(90*time.Minute), *rec.AttendanceRecordEntryVerifiedAt)
	})

	t.Run("opening ulang sebelum exit tersimpan membiarkan exit utuh", func(t *testing.T) {
		rec := freshRecord()
		require.NoError(t, ApplyAccepted(rec, model.VerificationOpening, start.Add(20*time.Minute), start, late))
		require.NoError(t, ApplyAccepted(rec, model.VerificationClosing, start.Add(time.Hour), start, late))
		require.NoError(t, ApplyAccepted(rec, model.VerificationOpening, start.Add(5*time.Minute), start, late))

		require.NotNil(t, rec.AttendanceRecordExitVerifiedAt)
		assert.Equal(t, start.Add(time.Hour), *rec.AttendanceRecordExitVerifiedAt)
		// pasangan tetap terurut
		assert.False(t, rec.AttendanceRecordEntryVerifiedAt.After(*rec.AttendanceRecordExitVerifiedAt))
	})

	t.Run("closing dengan waktu sebelum entry ditolak", func(t *testing.T) {
		rec := freshRecord()
		require.NoError(t, ApplyAccepted(rec, model.VerificationOpening, start.Add(30*time.Minute), start, late))

		err := ApplyAccepted(rec, model.VerificationClosing, start.Add(10*time.Minute), start, late)
		assert.ErrorIs(t, err, ErrExitBeforeEntry)
		assert.Nil(t, rec.AttendanceRecordExitVerifiedAt)
	})

	t.Run("tipe tidak dikenal", func(t *testing.T) {
		rec := freshRecord()
		err := ApplyAccepted(rec, model.VerificationType("MIDDAY"), start, start, late)
		assert.Error(t, err)
	})
}
