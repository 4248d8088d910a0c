package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	sessModel "hadirku_backend/internals/features/attendance/sessions/model"
)

func newPipelineTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

func locationRows(id, companyID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"institution_location_id",
		"institution_location_company_id",
		"institution_location_name",
		"institution_location_latitude",
		"institution_location_longitude",
		"institution_location_radius_m",
	}).AddRow(id.String(), companyID.String(), "Kampus A", -6.2, 106.816666, 100.0)
}

// Acuan geofence harus milik SESI — kolom attendance_session_location_id yang
// diisi staf, bukan apa pun yang dikirim klien saat verifikasi.
func TestResolveLocationFromSession(t *testing.T) {
	companyID := uuid.New()

	t.Run("sesi dengan lokasi eksplisit: query mengikat id lokasi sesi", func(t *testing.T) {
		db, mock := newPipelineTestDB(t)
		svc := NewPipelineService(db, nil, nil)

		locID := uuid.New()
		sess := &sessModel.AttendanceSessionModel{
			AttendanceSessionID:         uuid.New(),
			AttendanceSessionCompanyID:  companyID,
			AttendanceSessionLocationID: &locID,
		}

		mock.ExpectQuery(`SELECT \* FROM "institution_locations" WHERE institution_location_company_id = \$1 AND institution_location_id = \$2`).
			WithArgs(companyID, locID, 1).
			WillReturnRows(locationRows(locID, companyID))

		loc, err := svc.resolveLocation(context.Background(), sess)
		require.NoError(t, err)
		assert.Equal(t, locID, loc.InstitutionLocationID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sesi tanpa lokasi: fallback lokasi tenant paling awal", func(t *testing.T) {
		db, mock := newPipelineTestDB(t)
		svc := NewPipelineService(db, nil, nil)

		defaultID := uuid.New()
		sess := &sessModel.AttendanceSessionModel{
			AttendanceSessionID:        uuid.New(),
			AttendanceSessionCompanyID: companyID,
		}

		mock.ExpectQuery(`SELECT \* FROM "institution_locations" WHERE institution_location_company_id = \$1 .* ORDER BY institution_location_created_at ASC`).
			WithArgs(companyID, 1).
			WillReturnRows(locationRows(defaultID, companyID))

		loc, err := svc.resolveLocation(context.Background(), sess)
		require.NoError(t, err)
		assert.Equal(t, defaultID, loc.InstitutionLocationID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tenant tanpa lokasi sama sekali", func(t *testing.T) {
		db, mock := newPipelineTestDB(t)
		svc := NewPipelineService(db, nil, nil)

		sess := &sessModel.AttendanceSessionModel{
			AttendanceSessionID:        uuid.New(),
			AttendanceSessionCompanyID: companyID,
		}

		mock.ExpectQuery(`SELECT \* FROM "institution_locations"`).
			WithArgs(companyID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"institution_location_id"}))

		_, err := svc.resolveLocation(context.Background(), sess)
		assert.ErrorIs(t, err, ErrLocationNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
