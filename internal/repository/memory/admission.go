package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/medhq/hms-api/internal/model"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type AdmissionRepository struct {
	store *Store
}

func (r *AdmissionRepository) Admit(_ context.Context, admission *model.Admission, expectedDischarge *time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, a := range r.store.admissions {
		if a.Status == model.AdmissionStatusActive && a.PatientID == admission.PatientID {
			return apperrors.Conflict("Patient already has an active admission")
		}
	}

	bed := r.store.findBed(admission.BedID)
	if bed == nil {
		return apperrors.NotFound("bed")
	}
	if bed.Status != model.BedStatusAvailable {
		return apperrors.Conflict("Bed is not available")
	}

	bed.Status = model.BedStatusOccupied
	bed.PatientID = &admission.PatientID
	admissionDate := admission.AdmissionDate
	bed.AdmissionDate = &admissionDate
	bed.ExpectedDischargeDate = expectedDischarge
	bed.UpdatedAt = time.Now()

	copied := *admission
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.store.admissions = append(r.store.admissions, &copied)
	admission.CreatedAt = copied.CreatedAt
	admission.UpdatedAt = copied.UpdatedAt
	return nil
}

func (r *AdmissionRepository) Close(_ context.Context, admission *model.Admission) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored := r.find(admission.ID)
	if stored == nil {
		return apperrors.NotFound("admission")
	}
	if stored.Status != model.AdmissionStatusActive {
		return apperrors.Conflict("Admission is no longer active")
	}

	stored.Status = admission.Status
	stored.DischargeDate = admission.DischargeDate
	stored.Diagnosis = admission.Diagnosis
	stored.Notes = admission.Notes
	stored.UpdatedAt = time.Now()

	r.store.freeBed(stored.BedID)
	return nil
}

func (r *AdmissionRepository) Update(_ context.Context, admission *model.Admission) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := r.find(admission.ID)
	if stored == nil {
		return apperrors.NotFound("admission")
	}
	stored.DischargeDate = admission.DischargeDate
	stored.Diagnosis = admission.Diagnosis
	stored.Notes = admission.Notes
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *AdmissionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, a := range r.store.admissions {
		if a.ID == id {
			if a.Status == model.AdmissionStatusActive {
				r.store.freeBed(a.BedID)
			}
			r.store.admissions = append(r.store.admissions[:i], r.store.admissions[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("admission")
}

func (r *AdmissionRepository) Get(_ context.Context, id uuid.UUID) (*model.Admission, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a := r.find(id)
	if a == nil {
		return nil, apperrors.NotFound("admission")
	}
	copied := *a
	return &copied, nil
}

func (r *AdmissionRepository) List(_ context.Context) ([]*model.Admission, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(*model.Admission) bool { return true }), nil
}

func (r *AdmissionRepository) ListActive(_ context.Context) ([]*model.Admission, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(a *model.Admission) bool {
		return a.Status == model.AdmissionStatusActive
	}), nil
}

func (r *AdmissionRepository) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Admission, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(a *model.Admission) bool {
		return a.PatientID == patientID
	}), nil
}

func (r *AdmissionRepository) HasActiveForPatient(_ context.Context, patientID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.admissions {
		if a.PatientID == patientID && a.Status == model.AdmissionStatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *AdmissionRepository) HasActiveForBed(_ context.Context, bedID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.admissions {
		if a.BedID == bedID && a.Status == model.AdmissionStatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *AdmissionRepository) Recent(_ context.Context, limit int) ([]*model.Admission, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	admissions := r.collect(func(*model.Admission) bool { return true })
	sort.SliceStable(admissions, func(i, j int) bool {
		return admissions[i].AdmissionDate.After(admissions[j].AdmissionDate)
	})
	if len(admissions) > limit {
		admissions = admissions[:limit]
	}
	return admissions, nil
}

func (r *AdmissionRepository) find(id uuid.UUID) *model.Admission {
	for _, a := range r.store.admissions {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (r *AdmissionRepository) collect(keep func(*model.Admission) bool) []*model.Admission {
	admissions := []*model.Admission{}
	for _, a := range r.store.admissions {
		if keep(a) {
			copied := *a
			admissions = append(admissions, &copied)
		}
	}
	return admissions
}

func (s *Store) freeBed(id uuid.UUID) {
	bed := s.findBed(id)
	if bed == nil {
		return
	}
	bed.Status = model.BedStatusAvailable
	bed.PatientID = nil
	bed.AdmissionDate = nil
	bed.ExpectedDischargeDate = nil
	bed.UpdatedAt = time.Now()
}
