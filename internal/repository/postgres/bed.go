package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository"
)

type bedRepository struct {
	db *sqlx.DB
}

func NewBedRepository(db *sqlx.DB) repository.BedRepository {
	return &bedRepository{db: db}
}

func (r *bedRepository) Create(ctx context.Context, bed *model.Bed) error {
	query := `
		INSERT INTO beds (id, bed_number, ward, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	bed.CreatedAt = time.Now()
	bed.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		bed.ID,
		bed.BedNumber,
		bed.Ward,
		bed.Status,
		bed.CreatedAt,
		bed.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "bed")
	}
	return nil
}

func (r *bedRepository) Get(ctx context.Context, id uuid.UUID) (*model.Bed, error) {
	query := `SELECT * FROM beds WHERE id = $1`
	var bed model.Bed
	if err := r.db.GetContext(ctx, &bed, query, id); err != nil {
		return nil, mapError(err, "bed")
	}
	return &bed, nil
}

// Update writes bed_number, ward and the AVAILABLE/MAINTENANCE toggle.
// Occupancy fields are owned by the admission transactions and are
// deliberately not touched here.
func (r *bedRepository) Update(ctx context.Context, bed *model.Bed) error {
	query := `
		UPDATE beds
		SET bed_number = $1, ward = $2, status = $3, updated_at = $4
		WHERE id = $5
	`
	bed.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		bed.BedNumber,
		bed.Ward,
		bed.Status,
		bed.UpdatedAt,
		bed.ID,
	)
	if err != nil {
		return mapError(err, "bed")
	}
	return requireRow(result, "bed")
}

func (r *bedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM beds WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "bed")
	}
	return requireRow(result, "bed")
}

func (r *bedRepository) List(ctx context.Context) ([]*model.Bed, error) {
	beds := []*model.Bed{}
	if err := r.db.SelectContext(ctx, &beds, `SELECT * FROM beds ORDER BY bed_number`); err != nil {
		return nil, mapError(err, "beds")
	}
	return beds, nil
}

func (r *bedRepository) ListByWard(ctx context.Context, ward model.Ward) ([]*model.Bed, error) {
	beds := []*model.Bed{}
	err := r.db.SelectContext(ctx, &beds,
		`SELECT * FROM beds WHERE ward = $1 ORDER BY bed_number`, ward)
	if err != nil {
		return nil, mapError(err, "beds")
	}
	return beds, nil
}

func (r *bedRepository) ListAvailable(ctx context.Context) ([]*model.Bed, error) {
	beds := []*model.Bed{}
	err := r.db.SelectContext(ctx, &beds,
		`SELECT * FROM beds WHERE status = $1 ORDER BY bed_number`, model.BedStatusAvailable)
	if err != nil {
		return nil, mapError(err, "beds")
	}
	return beds, nil
}

func (r *bedRepository) StatsByWard(ctx context.Context) ([]model.WardOccupancy, error) {
	query := `
		SELECT ward,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'AVAILABLE') AS available,
			COUNT(*) FILTER (WHERE status = 'OCCUPIED') AS occupied,
			COUNT(*) FILTER (WHERE status = 'MAINTENANCE') AS maintenance
		FROM beds
		GROUP BY ward
		ORDER BY ward
	`
	stats := []model.WardOccupancy{}
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, mapError(err, "beds")
	}
	return stats, nil
}
