package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	model "hadirku_backend/internals/features/attendance/sessions/model"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		name string
		from model.AttendanceSessionStatus
		to   model.AttendanceSessionStatus
		ok   bool
	}{
		{"scheduled ke open", model.SessionScheduled, model.SessionOpen, true},
		{"scheduled langsung closed", model.SessionScheduled, model.SessionClosed, true},
		{"open ke closed", model.SessionOpen, model.SessionClosed, true},

		{"open mundur ke scheduled", model.SessionOpen, model.SessionScheduled, false},
		{"closed mundur ke open", model.SessionClosed, model.SessionOpen, false},
		{"closed mundur ke scheduled", model.SessionClosed, model.SessionScheduled, false},
		{"scheduled ke scheduled", model.SessionScheduled, model.SessionScheduled, false},
		{"open ke open", model.SessionOpen, model.SessionOpen, false},
		{"closed ke closed", model.SessionClosed, model.SessionClosed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(tc.from, tc.to)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}

	t.Run("status tidak dikenal ditolak", func(t *testing.T) {
		err := ValidateTransition("DRAFT", model.SessionOpen)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		err = ValidateTransition(model.SessionScheduled, "ARCHIVED")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestInitialStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	t.Run("auto-open aktif, start sudah lewat", func(t *testing.T) {
		got := InitialStatus(now.Add(-5*time.Minute), now, true)
		assert.Equal(t, model.SessionOpen, got)
	})

	t.Run("auto-open aktif, start persis sekarang", func(t *testing.T) {
		got := InitialStatus(now, now, true)
		assert.Equal(t, model.SessionOpen, got)
	})

	t.Run("auto-open aktif, start di masa depan", func(t *testing.T) {
		got := InitialStatus(now.Add(time.Hour), now, true)
		assert.Equal(t, model.SessionScheduled, got)
	})

	t.Run("auto-open mati selalu SCHEDULED", func(t *testing.T) {
		got := InitialStatus(now.Add(-time.Hour), now, false)
		assert.Equal(t, model.SessionScheduled, got)
	})
}
