package bed

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type Service struct {
	repo          repository.BedRepository
	admissionRepo repository.AdmissionRepository
	patientRepo   repository.PatientRepository
}

func NewService(
	repo repository.BedRepository,
	admissionRepo repository.AdmissionRepository,
	patientRepo repository.PatientRepository,
) *Service {
	return &Service{
		repo:          repo,
		admissionRepo: admissionRepo,
		patientRepo:   patientRepo,
	}
}

func (s *Service) CreateBed(ctx context.Context, req *model.CreateBedRequest) (*model.Bed, error) {
	status := model.BedStatusAvailable
	if req.Status != "" {
		status = model.BedStatus(req.Status)
	}

	bed := &model.Bed{
		Base:      model.Base{ID: uuid.New()},
		BedNumber: req.BedNumber,
		Ward:      model.Ward(req.Ward),
		Status:    status,
	}

	// Duplicate bed numbers surface from the unique index as the
	// same conflict a pre-check would report.
	if err := s.repo.Create(ctx, bed); err != nil {
		return nil, err
	}
	return bed, nil
}

func (s *Service) GetBed(ctx context.Context, id uuid.UUID) (*model.Bed, error) {
	bed, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withPatient(ctx, bed)
}

// UpdateBed covers bed_number, ward and the AVAILABLE/MAINTENANCE
// toggle. Occupancy is owned by the admission flow.
func (s *Service) UpdateBed(ctx context.Context, id uuid.UUID, req *model.UpdateBedRequest) (*model.Bed, error) {
	bed, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && bed.Status == model.BedStatusOccupied {
		return nil, apperrors.Conflict("Cannot change status of an occupied bed")
	}

	if req.BedNumber != nil {
		bed.BedNumber = *req.BedNumber
	}
	if req.Ward != nil {
		bed.Ward = model.Ward(*req.Ward)
	}
	if req.Status != nil {
		bed.Status = model.BedStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, bed); err != nil {
		return nil, err
	}
	return bed, nil
}

// DeleteBed refuses while the bed is occupied or an active admission
// still references it.
func (s *Service) DeleteBed(ctx context.Context, id uuid.UUID) error {
	bed, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if bed.Status == model.BedStatusOccupied {
		return apperrors.Conflict("Cannot delete an occupied bed")
	}

	held, err := s.admissionRepo.HasActiveForBed(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check admissions: %w", err)
	}
	if held {
		return apperrors.Conflict("Cannot delete a bed with an active admission")
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ListBeds(ctx context.Context) ([]*model.Bed, error) {
	beds, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withPatients(ctx, beds)
}

func (s *Service) ListBedsByWard(ctx context.Context, ward string) ([]*model.Bed, error) {
	if !validWard(ward) {
		return nil, apperrors.Validation("invalid ward")
	}
	beds, err := s.repo.ListByWard(ctx, model.Ward(ward))
	if err != nil {
		return nil, err
	}
	return s.withPatients(ctx, beds)
}

func (s *Service) ListAvailableBeds(ctx context.Context) ([]*model.Bed, error) {
	return s.repo.ListAvailable(ctx)
}

func validWard(ward string) bool {
	switch model.Ward(ward) {
	case model.WardGeneral, model.WardICU, model.WardEmergency,
		model.WardPediatric, model.WardMaternity, model.WardPsychiatric:
		return true
	}
	return false
}

func (s *Service) withPatient(ctx context.Context, bed *model.Bed) (*model.Bed, error) {
	if bed.PatientID == nil {
		return bed, nil
	}
	patient, err := s.patientRepo.Get(ctx, *bed.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve occupying patient: %w", err)
	}
	bed.Patient = patient
	return bed, nil
}

func (s *Service) withPatients(ctx context.Context, beds []*model.Bed) ([]*model.Bed, error) {
	for _, b := range beds {
		if _, err := s.withPatient(ctx, b); err != nil {
			return nil, err
		}
	}
	return beds, nil
}
