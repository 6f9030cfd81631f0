package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medhq/hms-api/internal/model"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type PatientRepository struct {
	store *Store
}

func (r *PatientRepository) Create(_ context.Context, patient *model.Patient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.patients {
		if p.MRN == patient.MRN {
			return apperrors.Conflict("Medical Record Number (MRN) already in use")
		}
	}
	copied := *patient
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.store.patients = append(r.store.patients, &copied)
	patient.CreatedAt = copied.CreatedAt
	patient.UpdatedAt = copied.UpdatedAt
	return nil
}

func (r *PatientRepository) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.patients {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("patient")
}

func (r *PatientRepository) GetByMRN(_ context.Context, mrn string) (*model.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.patients {
		if p.MRN == mrn {
			copied := *p
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("patient")
}

func (r *PatientRepository) Update(_ context.Context, patient *model.Patient) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, p := range r.store.patients {
		if p.ID == patient.ID {
			copied := *patient
			copied.CreatedAt = p.CreatedAt
			copied.UpdatedAt = time.Now()
			r.store.patients[i] = &copied
			return nil
		}
	}
	return apperrors.NotFound("patient")
}

func (r *PatientRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, p := range r.store.patients {
		if p.ID == id {
			r.store.patients = append(r.store.patients[:i], r.store.patients[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("patient")
}

func (r *PatientRepository) List(_ context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	patients := []*model.Patient{}
	for _, p := range r.store.patients {
		if filters != nil {
			if filters.Gender != "" && string(p.Gender) != filters.Gender {
				continue
			}
			if filters.Search != "" && !matchesSearch(p, filters.Search) {
				continue
			}
		}
		copied := *p
		patients = append(patients, &copied)
	}
	return patients, nil
}

func (r *PatientRepository) Count(_ context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.patients), nil
}

func matchesSearch(p *model.Patient, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{p.FirstName, p.LastName, p.MRN} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
