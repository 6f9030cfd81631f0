package patient

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
	repo            repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	admissionRepo   repository.AdmissionRepository
}

func NewService(
	repo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	admissionRepo repository.AdmissionRepository,
) *Service {
	return &Service{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		admissionRepo:   admissionRepo,
	}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	if _, err := s.repo.GetByMRN(ctx, req.MRN); err == nil {
		return nil, apperrors.Conflict("Medical Record Number (MRN) already in use")
	} else if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check MRN: %w", err)
	}

	dob, err := time.Parse(model.DateOnly, req.DateOfBirth)
	if err != nil {
		return nil, apperrors.Validation("date_of_birth must be a valid date")
	}

	patient := &model.Patient{
		Base:             model.Base{ID: uuid.New()},
		MRN:              req.MRN,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		DateOfBirth:      dob,
		Gender:           model.Gender(req.Gender),
		ContactNumber:    req.ContactNumber,
		Email:            req.Email,
		Address:          req.Address,
		BloodGroup:       req.BloodGroup,
		Allergies:        req.Allergies,
		MedicalHistory:   req.MedicalHistory,
		EmergencyContact: req.EmergencyContact,
	}

	// The unique index on mrn backs up the pre-write check under
	// concurrency; a lost race still surfaces as the same conflict.
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(model.DateOnly, *req.DateOfBirth)
		if err != nil {
			return nil, apperrors.Validation("date_of_birth must be a valid date")
		}
		patient.DateOfBirth = dob
	}
	if req.Gender != nil {
		patient.Gender = model.Gender(*req.Gender)
	}
	if req.ContactNumber != nil {
		patient.ContactNumber = *req.ContactNumber
	}
	if req.Email != nil {
		patient.Email = req.Email
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = req.BloodGroup
	}
	if req.Allergies != nil {
		patient.Allergies = req.Allergies
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = req.MedicalHistory
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = req.EmergencyContact
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// DeletePatient refuses while the patient still owns open
// appointments or an active admission.
func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	open, err := s.appointmentRepo.CountActiveForPatient(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check appointments: %w", err)
	}
	if open > 0 {
		return apperrors.Conflict("Cannot delete patient with active appointments")
	}

	admitted, err := s.admissionRepo.HasActiveForPatient(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check admissions: %w", err)
	}
	if admitted {
		return apperrors.Conflict("Cannot delete patient with an active admission")
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) ListPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	if _, err := s.repo.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.appointmentRepo.List(ctx, &model.AppointmentFilters{PatientID: patientID})
}

func (s *Service) ListPatientAdmissions(ctx context.Context, patientID uuid.UUID) ([]*model.Admission, error) {
	if _, err := s.repo.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.admissionRepo.ListByPatient(ctx, patientID)
}
