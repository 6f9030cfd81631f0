// Package dashboard builds read-only rollups over the other entities.
// Nothing here writes state.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository"
)

type Service struct {
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	bedRepo         repository.BedRepository
	admissionRepo   repository.AdmissionRepository
	inventoryRepo   repository.InventoryRepository
}

func NewService(
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	bedRepo repository.BedRepository,
	admissionRepo repository.AdmissionRepository,
	inventoryRepo repository.InventoryRepository,
) *Service {
	return &Service{
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		bedRepo:         bedRepo,
		admissionRepo:   admissionRepo,
		inventoryRepo:   inventoryRepo,
	}
}

const recentLimit = 5

func (s *Service) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	summary := &model.DashboardSummary{
		RecentAdmissions: []*model.Admission{},
		UpcomingAppts:    []*model.Appointment{},
	}

	var err error
	if summary.TotalPatients, err = s.patientRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	if summary.TotalAppointments, err = s.appointmentRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	today := startOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)
	if summary.AppointmentsToday, err = s.appointmentRepo.CountInRange(ctx, today, tomorrow); err != nil {
		return nil, fmt.Errorf("failed to count today's appointments: %w", err)
	}

	wards, err := s.bedRepo.StatsByWard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bed stats: %w", err)
	}
	for _, w := range wards {
		summary.TotalBeds += w.Total
		summary.AvailableBeds += w.Available
		summary.OccupiedBeds += w.Occupied
		summary.MaintenanceBeds += w.Maintenance
	}
	if summary.TotalBeds > 0 {
		summary.OccupancyRate = int(math.Round(float64(summary.OccupiedBeds) / float64(summary.TotalBeds) * 100))
	}

	if summary.LowStockItems, err = s.inventoryRepo.CountLowStock(ctx); err != nil {
		return nil, fmt.Errorf("failed to count low stock: %w", err)
	}

	recent, err := s.admissionRepo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent admissions: %w", err)
	}
	for _, a := range recent {
		if a.Patient, err = s.patientRepo.Get(ctx, a.PatientID); err != nil {
			return nil, fmt.Errorf("failed to resolve patient: %w", err)
		}
		if a.Bed, err = s.bedRepo.Get(ctx, a.BedID); err != nil {
			return nil, fmt.Errorf("failed to resolve bed: %w", err)
		}
	}
	summary.RecentAdmissions = recent

	upcoming, err := s.appointmentRepo.Upcoming(ctx, today, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming appointments: %w", err)
	}
	for _, a := range upcoming {
		if a.Patient, err = s.patientRepo.Get(ctx, a.PatientID); err != nil {
			return nil, fmt.Errorf("failed to resolve patient: %w", err)
		}
	}
	summary.UpcomingAppts = upcoming

	return summary, nil
}

// AppointmentStats groups counts over the trailing seven days and by
// type and status.
func (s *Service) AppointmentStats(ctx context.Context) (*model.AppointmentStats, error) {
	tomorrow := startOfDay(time.Now()).AddDate(0, 0, 1)
	weekAgo := tomorrow.AddDate(0, 0, -7)

	byDay, err := s.appointmentRepo.CountByDay(ctx, weekAgo, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily counts: %w", err)
	}
	byType, err := s.appointmentRepo.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load type counts: %w", err)
	}
	byStatus, err := s.appointmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load status counts: %w", err)
	}

	return &model.AppointmentStats{
		ByDay:    byDay,
		ByType:   byType,
		ByStatus: byStatus,
	}, nil
}

func (s *Service) BedStats(ctx context.Context) (*model.BedStats, error) {
	wards, err := s.bedRepo.StatsByWard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bed stats: %w", err)
	}
	return &model.BedStats{Wards: wards}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
