// Package admission coordinates the paired state of admissions and
// beds: an admission is ACTIVE exactly while its bed is OCCUPIED by
// the same patient. Every transition that touches both rows runs as
// one transaction in the repository layer; this service owns the
// validation order and the error wording.
package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type Service struct {
	repo        repository.AdmissionRepository
	bedRepo     repository.BedRepository
	patientRepo repository.PatientRepository
	userRepo    repository.UserRepository
}

func NewService(
	repo repository.AdmissionRepository,
	bedRepo repository.BedRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
) *Service {
	return &Service{
		repo:        repo,
		bedRepo:     bedRepo,
		patientRepo: patientRepo,
		userRepo:    userRepo,
	}
}

// Admit validates patient, bed and doctor, then creates the ACTIVE
// admission and occupies the bed atomically. No state changes unless
// every check passes and the whole unit commits.
func (s *Service) Admit(ctx context.Context, req *model.CreateAdmissionRequest) (*model.Admission, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.Validation("patient_id must be a valid UUID")
	}
	bedID, err := uuid.Parse(req.BedID)
	if err != nil {
		return nil, apperrors.Validation("bed_id must be a valid UUID")
	}

	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, err
	}

	bed, err := s.bedRepo.Get(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if bed.Status != model.BedStatusAvailable {
		return nil, apperrors.Conflict("Bed is not available")
	}

	doctor, err := s.userRepo.Get(ctx, req.DoctorID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("doctor")
		}
		return nil, err
	}
	if doctor.Role != model.UserRoleDoctor {
		return nil, apperrors.Conflict("Assigned user is not a doctor")
	}

	admitted, err := s.repo.HasActiveForPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active admissions: %w", err)
	}
	if admitted {
		return nil, apperrors.Conflict("Patient already has an active admission")
	}

	admissionDate := time.Now()
	if req.AdmissionDate != nil {
		admissionDate, err = time.Parse(model.DateOnly, *req.AdmissionDate)
		if err != nil {
			return nil, apperrors.Validation("admission_date must be a valid date")
		}
	}
	var expectedDischarge *time.Time
	if req.ExpectedDischargeDate != nil {
		parsed, err := time.Parse(model.DateOnly, *req.ExpectedDischargeDate)
		if err != nil {
			return nil, apperrors.Validation("expected_discharge_date must be a valid date")
		}
		expectedDischarge = &parsed
	}

	admission := &model.Admission{
		Base:          model.Base{ID: uuid.New()},
		PatientID:     patientID,
		BedID:         bedID,
		DoctorID:      req.DoctorID,
		AdmissionDate: admissionDate,
		Status:        model.AdmissionStatusActive,
		Diagnosis:     req.Diagnosis,
		Notes:         req.Notes,
	}

	// The pre-checks above give precise errors; the conditional bed
	// update and the partial unique index inside Admit close the
	// check-then-act window under concurrency.
	if err := s.repo.Admit(ctx, admission, expectedDischarge); err != nil {
		return nil, err
	}
	return s.withRefs(ctx, admission)
}

// UpdateAdmission handles both plain field edits and the
// ACTIVE -> DISCHARGED/TRANSFERRED transition. Only the latter has a
// bed side effect, and it commits together with the bed release.
func (s *Service) UpdateAdmission(ctx context.Context, id uuid.UUID, req *model.UpdateAdmissionRequest) (*model.Admission, error) {
	admission, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Diagnosis != nil {
		admission.Diagnosis = req.Diagnosis
	}
	if req.Notes != nil {
		admission.Notes = req.Notes
	}
	if req.DischargeDate != nil {
		parsed, err := time.Parse(model.DateOnly, *req.DischargeDate)
		if err != nil {
			return nil, apperrors.Validation("discharge_date must be a valid date")
		}
		admission.DischargeDate = &parsed
	}

	closing := req.Status != nil &&
		model.AdmissionStatus(*req.Status) != model.AdmissionStatusActive &&
		admission.Status == model.AdmissionStatusActive

	if closing {
		admission.Status = model.AdmissionStatus(*req.Status)
		if admission.DischargeDate == nil {
			now := time.Now()
			admission.DischargeDate = &now
		}
		if err := s.repo.Close(ctx, admission); err != nil {
			return nil, err
		}
		return s.withRefs(ctx, admission)
	}

	if req.Status != nil && model.AdmissionStatus(*req.Status) != admission.Status {
		// Not closing and a different status requested means the
		// admission is already closed. Its outcome is fixed.
		if model.AdmissionStatus(*req.Status) == model.AdmissionStatusActive {
			return nil, apperrors.Conflict("Cannot reactivate a closed admission")
		}
		return nil, apperrors.Conflict("Cannot change the status of a closed admission")
	}

	if err := s.repo.Update(ctx, admission); err != nil {
		return nil, err
	}
	return s.withRefs(ctx, admission)
}

// DeleteAdmission is the administrative correction path: an ACTIVE
// admission frees its bed in the same transaction as the row delete.
func (s *Service) DeleteAdmission(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetAdmission(ctx context.Context, id uuid.UUID) (*model.Admission, error) {
	admission, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withRefs(ctx, admission)
}

func (s *Service) ListAdmissions(ctx context.Context) ([]*model.Admission, error) {
	admissions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withRefsAll(ctx, admissions)
}

func (s *Service) ListActiveAdmissions(ctx context.Context) ([]*model.Admission, error) {
	admissions, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.withRefsAll(ctx, admissions)
}

func (s *Service) withRefs(ctx context.Context, admission *model.Admission) (*model.Admission, error) {
	patient, err := s.patientRepo.Get(ctx, admission.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}
	admission.Patient = patient

	bed, err := s.bedRepo.Get(ctx, admission.BedID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bed: %w", err)
	}
	admission.Bed = bed

	doctor, err := s.userRepo.Get(ctx, admission.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve doctor: %w", err)
	}
	admission.Doctor = &model.Doctor{
		ID:        doctor.ID,
		FirstName: doctor.FirstName,
		LastName:  doctor.LastName,
		Email:     doctor.Email,
	}
	return admission, nil
}

func (s *Service) withRefsAll(ctx context.Context, admissions []*model.Admission) ([]*model.Admission, error) {
	for _, a := range admissions {
		if _, err := s.withRefs(ctx, a); err != nil {
			return nil, err
		}
	}
	return admissions, nil
}
