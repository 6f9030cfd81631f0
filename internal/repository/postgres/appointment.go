package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		// Serialize queue-number assignment per calendar date, so two
		// concurrent creates cannot compute the same next number.
		if _, err := tx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtext('appointments_queue_' || $1::text))`,
			appointment.Date.Format(model.DateOnly),
		); err != nil {
			return err
		}

		if appointment.Status != model.AppointmentStatusCancelled {
			var next int
			if err := tx.GetContext(ctx, &next,
				`SELECT COALESCE(MAX(queue_number), 0) + 1
				 FROM appointments
				 WHERE date = $1 AND status <> $2`,
				appointment.Date, model.AppointmentStatusCancelled,
			); err != nil {
				return err
			}
			appointment.QueueNumber = &next
		} else {
			appointment.QueueNumber = nil
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO appointments (
				id, patient_id, doctor_id, date, time, status, type,
				queue_number, reason, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			appointment.ID,
			appointment.PatientID,
			appointment.DoctorID,
			appointment.Date,
			appointment.Time,
			appointment.Status,
			appointment.Type,
			appointment.QueueNumber,
			appointment.Reason,
			appointment.Notes,
			appointment.CreatedAt,
			appointment.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return mapError(err, "appointment")
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE id = $1`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, mapError(err, "appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET date = $1, time = $2, status = $3, type = $4,
			queue_number = $5, reason = $6, notes = $7, updated_at = $8
		WHERE id = $9
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		appointment.Type,
		appointment.QueueNumber,
		appointment.Reason,
		appointment.Notes,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return mapError(err, "appointment")
	}
	return requireRow(result, "appointment")
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "appointment")
	}
	return requireRow(result, "appointment")
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE 1=1`
	args := []interface{}{}

	if filters != nil {
		if filters.PatientID != uuid.Nil {
			args = append(args, filters.PatientID)
			query += ` AND patient_id = $` + strconv.Itoa(len(args))
		}
		if filters.DoctorID != "" {
			args = append(args, filters.DoctorID)
			query += ` AND doctor_id = $` + strconv.Itoa(len(args))
		}
		if filters.Status != "" {
			args = append(args, filters.Status)
			query += ` AND status = $` + strconv.Itoa(len(args))
		}
		if filters.Date != nil {
			args = append(args, *filters.Date)
			query += ` AND date = $` + strconv.Itoa(len(args))
		}
	}
	query += ` ORDER BY date DESC, time DESC`

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, mapError(err, "appointments")
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByDate(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE date = $1 ORDER BY queue_number NULLS LAST, time`
	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, date); err != nil {
		return nil, mapError(err, "appointments")
	}
	return appointments, nil
}

func (r *appointmentRepository) CountActiveForPatient(ctx context.Context, patientID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM appointments
		WHERE patient_id = $1 AND status IN ($2, $3, $4)
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, patientID,
		model.AppointmentStatusScheduled,
		model.AppointmentStatusInQueue,
		model.AppointmentStatusInProgress,
	)
	if err != nil {
		return 0, mapError(err, "appointments")
	}
	return count, nil
}

func (r *appointmentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM appointments`); err != nil {
		return 0, mapError(err, "appointments")
	}
	return count, nil
}

func (r *appointmentRepository) CountInRange(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM appointments WHERE date >= $1 AND date < $2`, from, to)
	if err != nil {
		return 0, mapError(err, "appointments")
	}
	return count, nil
}

func (r *appointmentRepository) Upcoming(ctx context.Context, from time.Time, limit int) ([]*model.Appointment, error) {
	query := `
		SELECT * FROM appointments
		WHERE date >= $1 AND status IN ($2, $3)
		ORDER BY date, time
		LIMIT $4
	`
	appointments := []*model.Appointment{}
	err := r.db.SelectContext(ctx, &appointments, query, from,
		model.AppointmentStatusScheduled,
		model.AppointmentStatusInQueue,
		limit,
	)
	if err != nil {
		return nil, mapError(err, "appointments")
	}
	return appointments, nil
}

func (r *appointmentRepository) CountByDay(ctx context.Context, from, to time.Time) ([]model.DailyCount, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM-DD') AS date, COUNT(*) AS count
		FROM appointments
		WHERE date >= $1 AND date < $2
		GROUP BY date
		ORDER BY date
	`
	counts := []model.DailyCount{}
	if err := r.db.SelectContext(ctx, &counts, query, from, to); err != nil {
		return nil, mapError(err, "appointments")
	}
	return counts, nil
}

func (r *appointmentRepository) CountByType(ctx context.Context) (map[string]int, error) {
	return r.groupCount(ctx, `SELECT type AS key, COUNT(*) AS count FROM appointments GROUP BY type`)
}

func (r *appointmentRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return r.groupCount(ctx, `SELECT status AS key, COUNT(*) AS count FROM appointments GROUP BY status`)
}

func (r *appointmentRepository) groupCount(ctx context.Context, query string) (map[string]int, error) {
	rows := []struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, mapError(err, "appointments")
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}
