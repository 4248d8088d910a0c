package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	rosterSvc "hadirku_backend/internals/features/attendance/rosters/service"
	model "hadirku_backend/internals/features/attendance/sessions/model"
)

func newStoreTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

type stubRoster struct {
	students []rosterSvc.RosterStudent
}

func (s stubRoster) ActiveStudents(ctx context.Context, companyID, courseID uuid.UUID, batchID *uuid.UUID) ([]rosterSvc.RosterStudent, error) {
	return s.students, nil
}

// insertConflictPattern: bulk init HARUS memakai ON CONFLICT DO NOTHING pada
// kunci (session, student) — itulah yang membuat pemanggilan ganda konvergen.
const insertConflictPattern = `INSERT INTO "attendance_records" .* ON CONFLICT \("attendance_record_session_id","attendance_record_student_id"\) DO NOTHING`

func TestInitRecordsIdempotent(t *testing.T) {
	db, mock := newStoreTestDB(t)

	studentA := uuid.New()
	studentB := uuid.New()
	svc := NewLifecycleService(db, stubRoster{students: []rosterSvc.RosterStudent{
		{StudentID: studentA},
		{StudentID: studentB},
	}}, nil)

	sess := &model.AttendanceSessionModel{
		AttendanceSessionID:        uuid.New(),
		AttendanceSessionCompanyID: uuid.New(),
		AttendanceSessionCourseID:  uuid.New(),
		AttendanceSessionStatus:    model.SessionOpen,
		AttendanceSessionStartTime: time.Now(),
		AttendanceSessionEndTime:   time.Now().Add(2 * time.Hour),
	}

	// Panggilan pertama: dua baris ABSENT masuk
	mock.ExpectBegin()
	mock.ExpectQuery(insertConflictPattern).
		WillReturnRows(sqlmock.NewRows([]string{"attendance_record_id"}).
			AddRow(uuid.New().String()).
			AddRow(uuid.New().String()))
	mock.ExpectCommit()

	inserted, rosterSize, err := svc.InitRecords(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 2, rosterSize)

	// Panggilan kedua (roster sama): statement identik, nol baris baru —
	// konvergen ke satu baris ABSENT per siswa
	mock.ExpectBegin()
	mock.ExpectQuery(insertConflictPattern).
		WillReturnRows(sqlmock.NewRows([]string{"attendance_record_id"}))
	mock.ExpectCommit()

	inserted, rosterSize, err = svc.InitRecords(context.Background(), sess)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Equal(t, 2, rosterSize)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitRecordsEmptyRoster(t *testing.T) {
	db, mock := newStoreTestDB(t)
	svc := NewLifecycleService(db, stubRoster{}, nil)

	sess := &model.AttendanceSessionModel{
		AttendanceSessionID:        uuid.New(),
		AttendanceSessionCompanyID: uuid.New(),
		AttendanceSessionCourseID:  uuid.New(),
	}

	// roster kosong: tidak ada statement sama sekali
	inserted, rosterSize, err := svc.InitRecords(context.Background(), sess)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Zero(t, rosterSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}
