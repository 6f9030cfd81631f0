package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	apperrors "github.com/medhq/hms-api/pkg/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// Conflict messages keyed by constraint, so the unique indexes back
// up the pre-write checks and both paths report the same reason.
var constraintMessages = map[string]string{
	"patients_mrn_key":                  "Medical Record Number (MRN) already in use",
	"beds_bed_number_key":               "Bed number already in use",
	"users_email_key":                   "Email already in use",
	"admissions_one_active_per_patient": "Patient already has an active admission",
	"admissions_one_active_per_bed":     "Bed is already held by an active admission",
}

// requireRow converts a zero-row write into a not-found error.
func requireRow(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Internal(err)
	}
	if rows == 0 {
		return apperrors.NotFound(resource)
	}
	return nil
}

// mapError translates driver errors into the application taxonomy.
// resource names the entity for not-found wording.
func mapError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			if msg, ok := constraintMessages[pqErr.Constraint]; ok {
				return apperrors.Conflict(msg)
			}
			return apperrors.Conflict("duplicate value violates a uniqueness constraint")
		case pqForeignKeyViolation:
			return apperrors.Conflict("operation violates a referential constraint")
		}
	}
	return apperrors.Internal(err)
}
