package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentStatus string

const (
	EnrollmentActive   EnrollmentStatus = "active"
	EnrollmentInactive EnrollmentStatus = "inactive"
	EnrollmentGraduate EnrollmentStatus = "graduated"
)

// StudentEnrollmentModel: keanggotaan siswa pada course/batch. Dipakai Roster
// Provider untuk enumerasi siswa aktif saat inisialisasi record sesi.
type StudentEnrollmentModel struct {
	StudentEnrollmentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_enrollment_id" json:"student_enrollment_id"`

	StudentEnrollmentCompanyID uuid.UUID  `gorm:"type:uuid;not null;column:student_enrollment_company_id;index:idx_student_enrollment_company" json:"student_enrollment_company_id"`
	StudentEnrollmentCourseID  uuid.UUID  `gorm:"type:uuid;not null;column:student_enrollment_course_id;index:idx_student_enrollment_course" json:"student_enrollment_course_id"`
	StudentEnrollmentBatchID   *uuid.UUID `gorm:"type:uuid;column:student_enrollment_batch_id;index:idx_student_enrollment_batch" json:"student_enrollment_batch_id,omitempty"`
	StudentEnrollmentStudentID uuid.UUID  `gorm:"type:uuid;not null;column:student_enrollment_student_id;index:idx_student_enrollment_student" json:"student_enrollment_student_id"`

	StudentEnrollmentStudentName *string `gorm:"type:varchar(120);column:student_enrollment_student_name" json:"student_enrollment_student_name,omitempty"`

	StudentEnrollmentStatus EnrollmentStatus `gorm:"type:varchar(16);not null;default:active;column:student_enrollment_status;index:idx_student_enrollment_status" json:"student_enrollment_status"`

	StudentEnrollmentCreatedAt time.Time      `gorm:"column:student_enrollment_created_at;autoCreateTime" json:"student_enrollment_created_at"`
	StudentEnrollmentUpdatedAt *time.Time     `gorm:"column:student_enrollment_updated_at;autoUpdateTime" json:"student_enrollment_updated_at,omitempty"`
	StudentEnrollmentDeletedAt gorm.DeletedAt `gorm:"column:student_enrollment_deleted_at;index" json:"student_enrollment_deleted_at,omitempty"`
}

func (StudentEnrollmentModel) TableName() string { return "student_enrollments" }
