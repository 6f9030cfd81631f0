package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type admissionRepository struct {
	BaseRepository
}

func NewAdmissionRepository(db *sqlx.DB) repository.AdmissionRepository {
	return &admissionRepository{BaseRepository: NewBaseRepository(db)}
}

// Admit flips the bed to OCCUPIED and creates the ACTIVE admission in
// one transaction. The bed flip is conditional on the bed still being
// AVAILABLE, so two concurrent admits for the same bed cannot both
// succeed; the partial unique index on active admissions rejects a
// concurrent second admission for the same patient.
func (r *admissionRepository) Admit(ctx context.Context, admission *model.Admission, expectedDischarge *time.Time) error {
	admission.CreatedAt = time.Now()
	admission.UpdatedAt = time.Now()

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE beds
			 SET status = $1, patient_id = $2, admission_date = $3,
				 expected_discharge_date = $4, updated_at = $5
			 WHERE id = $6 AND status = $7`,
			model.BedStatusOccupied,
			admission.PatientID,
			admission.AdmissionDate,
			expectedDischarge,
			time.Now(),
			admission.BedID,
			model.BedStatusAvailable,
		)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperrors.Conflict("Bed is not available")
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO admissions (
				id, patient_id, bed_id, doctor_id, admission_date,
				discharge_date, status, diagnosis, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			admission.ID,
			admission.PatientID,
			admission.BedID,
			admission.DoctorID,
			admission.AdmissionDate,
			admission.DischargeDate,
			admission.Status,
			admission.Diagnosis,
			admission.Notes,
			admission.CreatedAt,
			admission.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return mapError(err, "admission")
	}
	return nil
}

// Close writes the terminal status and frees the bed together. The
// caller has already decided the transition is ACTIVE -> terminal.
func (r *admissionRepository) Close(ctx context.Context, admission *model.Admission) error {
	admission.UpdatedAt = time.Now()

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE admissions
			 SET status = $1, discharge_date = $2, diagnosis = $3,
				 notes = $4, updated_at = $5
			 WHERE id = $6 AND status = $7`,
			admission.Status,
			admission.DischargeDate,
			admission.Diagnosis,
			admission.Notes,
			admission.UpdatedAt,
			admission.ID,
			model.AdmissionStatusActive,
		)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperrors.Conflict("Admission is no longer active")
		}

		return freeBed(ctx, tx, admission.BedID)
	})
	if err != nil {
		return mapError(err, "admission")
	}
	return nil
}

func (r *admissionRepository) Update(ctx context.Context, admission *model.Admission) error {
	query := `
		UPDATE admissions
		SET discharge_date = $1, diagnosis = $2, notes = $3, updated_at = $4
		WHERE id = $5
	`
	admission.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		admission.DischargeDate,
		admission.Diagnosis,
		admission.Notes,
		admission.UpdatedAt,
		admission.ID,
	)
	if err != nil {
		return mapError(err, "admission")
	}
	return requireRow(result, "admission")
}

// Delete removes the admission row; an ACTIVE admission frees its bed
// in the same transaction. The row is locked first so a concurrent
// discharge cannot interleave between the status read and the writes.
func (r *admissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var row struct {
			Status model.AdmissionStatus `db:"status"`
			BedID  uuid.UUID             `db:"bed_id"`
		}
		err := tx.GetContext(ctx, &row,
			`SELECT status, bed_id FROM admissions WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return err
		}

		if row.Status == model.AdmissionStatusActive {
			if err := freeBed(ctx, tx, row.BedID); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM admissions WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return mapError(err, "admission")
	}
	return nil
}

func freeBed(ctx context.Context, tx *sqlx.Tx, bedID uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE beds
		 SET status = $1, patient_id = NULL, admission_date = NULL,
			 expected_discharge_date = NULL, updated_at = $2
		 WHERE id = $3`,
		model.BedStatusAvailable,
		time.Now(),
		bedID,
	)
	return err
}

func (r *admissionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Admission, error) {
	query := `SELECT * FROM admissions WHERE id = $1`
	var admission model.Admission
	if err := r.db.GetContext(ctx, &admission, query, id); err != nil {
		return nil, mapError(err, "admission")
	}
	return &admission, nil
}

func (r *admissionRepository) List(ctx context.Context) ([]*model.Admission, error) {
	admissions := []*model.Admission{}
	err := r.db.SelectContext(ctx, &admissions,
		`SELECT * FROM admissions ORDER BY admission_date DESC`)
	if err != nil {
		return nil, mapError(err, "admissions")
	}
	return admissions, nil
}

func (r *admissionRepository) ListActive(ctx context.Context) ([]*model.Admission, error) {
	admissions := []*model.Admission{}
	err := r.db.SelectContext(ctx, &admissions,
		`SELECT * FROM admissions WHERE status = $1 ORDER BY admission_date DESC`,
		model.AdmissionStatusActive)
	if err != nil {
		return nil, mapError(err, "admissions")
	}
	return admissions, nil
}

func (r *admissionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Admission, error) {
	admissions := []*model.Admission{}
	err := r.db.SelectContext(ctx, &admissions,
		`SELECT * FROM admissions WHERE patient_id = $1 ORDER BY admission_date DESC`,
		patientID)
	if err != nil {
		return nil, mapError(err, "admissions")
	}
	return admissions, nil
}

func (r *admissionRepository) HasActiveForPatient(ctx context.Context, patientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM admissions WHERE patient_id = $1 AND status = $2)`,
		patientID, model.AdmissionStatusActive)
	if err != nil {
		return false, mapError(err, "admissions")
	}
	return exists, nil
}

func (r *admissionRepository) HasActiveForBed(ctx context.Context, bedID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM admissions WHERE bed_id = $1 AND status = $2)`,
		bedID, model.AdmissionStatusActive)
	if err != nil {
		return false, mapError(err, "admissions")
	}
	return exists, nil
}

func (r *admissionRepository) Recent(ctx context.Context, limit int) ([]*model.Admission, error) {
	admissions := []*model.Admission{}
	err := r.db.SelectContext(ctx, &admissions,
		`SELECT * FROM admissions ORDER BY admission_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, mapError(err, "admissions")
	}
	return admissions, nil
}
