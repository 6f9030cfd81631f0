package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository"
)

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, mrn, first_name, last_name, date_of_birth, gender,
			contact_number, email, address, blood_group, allergies,
			medical_history, emergency_contact, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.MRN,
		patient.FirstName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.ContactNumber,
		patient.Email,
		patient.Address,
		patient.BloodGroup,
		patient.Allergies,
		patient.MedicalHistory,
		patient.EmergencyContact,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "patient")
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, mapError(err, "patient")
	}
	return &patient, nil
}

func (r *patientRepository) GetByMRN(ctx context.Context, mrn string) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE mrn = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, mrn); err != nil {
		return nil, mapError(err, "patient")
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, date_of_birth = $3,
			gender = $4, contact_number = $5, email = $6, address = $7,
			blood_group = $8, allergies = $9, medical_history = $10,
			emergency_contact = $11, updated_at = $12
		WHERE id = $13
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.ContactNumber,
		patient.Email,
		patient.Address,
		patient.BloodGroup,
		patient.Allergies,
		patient.MedicalHistory,
		patient.EmergencyContact,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return mapError(err, "patient")
	}
	return requireRow(result, "patient")
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "patient")
	}
	return requireRow(result, "patient")
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	query := `SELECT * FROM patients`
	args := []interface{}{}
	where := ""

	if filters != nil {
		if filters.Search != "" {
			where = ` WHERE (first_name ILIKE $1 OR last_name ILIKE $1 OR mrn ILIKE $1)`
			args = append(args, "%"+filters.Search+"%")
		}
		if filters.Gender != "" {
			if where == "" {
				where = ` WHERE gender = $1`
			} else {
				where += ` AND gender = $2`
			}
			args = append(args, filters.Gender)
		}
	}

	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query+where+` ORDER BY created_at DESC`, args...); err != nil {
		return nil, mapError(err, "patients")
	}
	return patients, nil
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patients`); err != nil {
		return 0, mapError(err, "patients")
	}
	return count, nil
}
