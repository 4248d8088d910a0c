// file: internals/features/attendance/rosters/service/roster_provider.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "hadirku_backend/internals/features/attendance/rosters/model"
)

// RosterStudent: satu siswa aktif hasil enumerasi roster.
type RosterStudent struct {
	StudentID uuid.UUID
	Name      *string
}

// RosterProvider: kolaborator eksternal bagi Session Lifecycle & Aggregator.
// batchID nil = seluruh siswa course.
type RosterProvider interface {
	ActiveStudents(ctx context.Context, companyID, courseID uuid.UUID, batchID *uuid.UUID) ([]RosterStudent, error)
}

// GormRosterProvider: implementasi default di atas student_enrollments.
type GormRosterProvider struct {
	DB *gorm.DB
}

func NewGormRosterProvider(db *gorm.DB) *GormRosterProvider {
	return &GormRosterProvider{DB: db}
}

func (p *GormRosterProvider) ActiveStudents(ctx context.Context, companyID, courseID uuid.UUID, batchID *uuid.UUID) ([]RosterStudent, error) {
	q := p.DB.WithContext(ctx).
		Model(&model.StudentEnrollmentModel{}).
		Where(`
			student_enrollment_company_id = ?
			AND student_enrollment_course_id = ?
			AND student_enrollment_status = ?
		`, companyID, courseID, model.EnrollmentActive)

	if batchID != nil {
		q = q.Where("student_enrollment_batch_id = ?", *batchID)
	}

	type row struct {
		StudentID uuid.UUID `gorm:"column:student_enrollment_student_id"`
		Name      *string   `gorm:"column:student_enrollment_student_name"`
	}
	var rows []row
	if err := q.
		Select("student_enrollment_student_id, student_enrollment_student_name").
		Order("student_enrollment_created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]RosterStudent, 0, len(rows))
	for _, r := range rows {
		out = append(out, RosterStudent{StudentID: r.StudentID, Name: r.Name})
	}
	return out, nil
}
