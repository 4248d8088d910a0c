// file: internals/features/attendance/face/service/enrollment.go
//
// Enrollment Manager: menjaga invariant satu-profil-aktif-per-orang.
// State machine per orang: UNENROLLED → ENROLLED → (reset admin) → UNENROLLED.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "hadirku_backend/internals/features/attendance/face/model"
)

var (
	ErrAlreadyEnrolled = errors.New("profil wajah aktif sudah ada")
	ErrNotEnrolled     = errors.New("profil wajah aktif tidak ditemukan")
)

type EnrollmentService struct {
	DB *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db}
}

type RegisterInput struct {
	CompanyID       uuid.UUID
	PersonID        uuid.UUID
	Captures        [][]float64
	PrimaryImageRef *string
	QualityScore    float64
	DeviceInfo      datatypes.JSON
}

// Register: hitung referensi rata-rata via AverageDescriptors lalu simpan
// profil aktif baru. Gagal kalau sudah ada profil aktif (pakai reset dulu).
func (s *EnrollmentService) Register(ctx context.Context, in RegisterInput) (*model.FaceProfileModel, error) {
	ref, err := AverageDescriptors(in.Captures)
	if err != nil {
		return nil, err
	}

	var created model.FaceProfileModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Cek profil aktif existing di dalam transaksi (hindari double enroll balapan;
		// partial unique index di DB tetap jadi pagar terakhir)
		var cnt int64
		if err := tx.Model(&model.FaceProfileModel{}).
			Where(`
				face_profile_company_id = ?
				AND face_profile_person_id = ?
				AND face_profile_is_active = TRUE
			`, in.CompanyID, in.PersonID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrAlreadyEnrolled
		}

		ref32 := make([]float32, len(ref))
		for i, v := range ref {
			ref32[i] = float32(v)
		}

		created = model.FaceProfileModel{
			FaceProfileCompanyID:          in.CompanyID,
			FaceProfilePersonID:           in.PersonID,
			FaceProfileReferenceEmbedding: pgvector.NewVector(ref32),
			FaceProfileQualityScore:       in.QualityScore,
			FaceProfilePrimaryImageRef:    in.PrimaryImageRef,
			FaceProfileDeviceInfo:         in.DeviceInfo,
			FaceProfileIsActive:           true,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetActiveProfile: lookup murni, dipakai GetStatus & pipeline verifikasi.
func (s *EnrollmentService) GetActiveProfile(ctx context.Context, companyID, personID uuid.UUID) (*model.FaceProfileModel, error) {
	var profile model.FaceProfileModel
	err := s.DB.WithContext(ctx).
		Where(`
			face_profile_company_id = ?
			AND face_profile_person_id = ?
			AND face_profile_is_active = TRUE
		`, companyID, personID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	return &profile, nil
}

// Reset: administrative-only. Profil TIDAK dihapus — dinonaktifkan dan
// diberi jejak siapa yang me-reset, supaya register berikutnya bisa sukses.
func (s *EnrollmentService) Reset(ctx context.Context, companyID, personID, performedBy uuid.UUID) error {
	now := time.Now()
	res := s.DB.WithContext(ctx).
		Model(&model.FaceProfileModel{}).
		Where(`
			face_profile_company_id = ?
			AND face_profile_person_id = ?
			AND face_profile_is_active = TRUE
		`, companyID, personID).
		Updates(map[string]interface{}{
			"face_profile_is_active":      false,
			"face_profile_deactivated_at": now,
			"face_profile_deactivated_by": performedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotEnrolled
	}
	return nil
}
