package appointment

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
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	userRepo    repository.UserRepository
}

func NewService(
	repo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		userRepo:    userRepo,
	}
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.Validation("patient_id must be a valid UUID")
	}
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, err
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

	date, err := time.Parse(model.DateOnly, req.Date)
	if err != nil {
		return nil, apperrors.Validation("date must be a valid date")
	}

	status := model.AppointmentStatusScheduled
	if req.Status != "" {
		status = model.AppointmentStatus(req.Status)
	}

	appointment := &model.Appointment{
		Base:      model.Base{ID: uuid.New()},
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Status:    status,
		Type:      model.AppointmentType(req.Type),
		Reason:    req.Reason,
		Notes:     req.Notes,
	}

	// Queue-number assignment happens inside the repository
	// transaction so it serializes with concurrent creates.
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return s.withRefs(ctx, appointment)
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withRefs(ctx, appointment)
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse(model.DateOnly, *req.Date)
		if err != nil {
			return nil, apperrors.Validation("date must be a valid date")
		}
		appointment.Date = date
	}
	if req.Time != nil {
		appointment.Time = *req.Time
	}
	if req.Status != nil {
		appointment.Status = model.AppointmentStatus(*req.Status)
		// A cancelled appointment leaves the day's queue.
		if appointment.Status == model.AppointmentStatusCancelled {
			appointment.QueueNumber = nil
		}
	}
	if req.Type != nil {
		appointment.Type = model.AppointmentType(*req.Type)
	}
	if req.Reason != nil {
		appointment.Reason = req.Reason
	}
	if req.Notes != nil {
		appointment.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return s.withRefs(ctx, appointment)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	return s.withRefsAll(ctx, appointments)
}

func (s *Service) ListToday(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListByDate(ctx, Today())
	if err != nil {
		return nil, err
	}
	return s.withRefsAll(ctx, appointments)
}

// Today returns midnight of the current local day.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *Service) withRefs(ctx context.Context, appointment *model.Appointment) (*model.Appointment, error) {
	patient, err := s.patientRepo.Get(ctx, appointment.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}
	appointment.Patient = patient

	doctor, err := s.userRepo.Get(ctx, appointment.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve doctor: %w", err)
	}
	appointment.Doctor = &model.Doctor{
		ID:        doctor.ID,
		FirstName: doctor.FirstName,
		LastName:  doctor.LastName,
		Email:     doctor.Email,
	}
	return appointment, nil
}

func (s *Service) withRefsAll(ctx context.Context, appointments []*model.Appointment) ([]*model.Appointment, error) {
	for _, a := range appointments {
		if _, err := s.withRefs(ctx, a); err != nil {
			return nil, err
		}
	}
	return appointments, nil
}
