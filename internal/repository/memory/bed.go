package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/medhq/hms-api/internal/model"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type BedRepository struct {
	store *Store
}

func (r *BedRepository) Create(_ context.Context, bed *model.Bed) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.beds {
		if b.BedNumber == bed.BedNumber {
			return apperrors.Conflict("Bed number already in use")
		}
	}
	copied := *bed
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.store.beds = append(r.store.beds, &copied)
	bed.CreatedAt = copied.CreatedAt
	bed.UpdatedAt = copied.UpdatedAt
	return nil
}

func (r *BedRepository) Get(_ context.Context, id uuid.UUID) (*model.Bed, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b := r.store.findBed(id)
	if b == nil {
		return nil, apperrors.NotFound("bed")
	}
	copied := *b
	return &copied, nil
}

// Update writes identity fields only; occupancy fields are owned by
// the admission flow.
func (r *BedRepository) Update(_ context.Context, bed *model.Bed) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b := r.store.findBed(bed.ID)
	if b == nil {
		return apperrors.NotFound("bed")
	}
	b.BedNumber = bed.BedNumber
	b.Ward = bed.Ward
	b.Status = bed.Status
	b.UpdatedAt = time.Now()
	return nil
}

func (r *BedRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, b := range r.store.beds {
		if b.ID == id {
			r.store.beds = append(r.store.beds[:i], r.store.beds[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("bed")
}

func (r *BedRepository) List(_ context.Context) ([]*model.Bed, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	beds := []*model.Bed{}
	for _, b := range r.store.beds {
		copied := *b
		beds = append(beds, &copied)
	}
	return beds, nil
}

func (r *BedRepository) ListByWard(_ context.Context, ward model.Ward) ([]*model.Bed, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	beds := []*model.Bed{}
	for _, b := range r.store.beds {
		if b.Ward == ward {
			copied := *b
			beds = append(beds, &copied)
		}
	}
	return beds, nil
}

func (r *BedRepository) ListAvailable(_ context.Context) ([]*model.Bed, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	beds := []*model.Bed{}
	for _, b := range r.store.beds {
		if b.Status == model.BedStatusAvailable {
			copied := *b
			beds = append(beds, &copied)
		}
	}
	return beds, nil
}

func (r *BedRepository) StatsByWard(_ context.Context) ([]model.WardOccupancy, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	byWard := map[model.Ward]*model.WardOccupancy{}
	for _, b := range r.store.beds {
		occ, ok := byWard[b.Ward]
		if !ok {
			occ = &model.WardOccupancy{Ward: b.Ward}
			byWard[b.Ward] = occ
		}
		occ.Total++
		switch b.Status {
		case model.BedStatusAvailable:
			occ.Available++
		case model.BedStatusOccupied:
			occ.Occupied++
		case model.BedStatusMaintenance:
			occ.Maintenance++
		}
	}
	stats := make([]model.WardOccupancy, 0, len(byWard))
	for _, occ := range byWard {
		stats = append(stats, *occ)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Ward < stats[j].Ward })
	return stats, nil
}

func (s *Store) findBed(id uuid.UUID) *model.Bed {
	for _, b := range s.beds {
		if b.ID == id {
			return b
		}
	}
	return nil
}
