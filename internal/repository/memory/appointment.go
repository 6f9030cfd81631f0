package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/medhq/hms-api/internal/model"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type AppointmentRepository struct {
	store *Store
}

func (r *AppointmentRepository) Create(_ context.Context, appointment *model.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if appointment.Status != model.AppointmentStatusCancelled {
		next := 1
		for _, a := range r.store.appointments {
			if sameDay(a.Date, appointment.Date) && a.Status != model.AppointmentStatusCancelled &&
				a.QueueNumber != nil && *a.QueueNumber >= next {
				next = *a.QueueNumber + 1
			}
		}
		appointment.QueueNumber = &next
	} else {
		appointment.QueueNumber = nil
	}

	copied := *appointment
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.store.appointments = append(r.store.appointments, &copied)
	appointment.CreatedAt = copied.CreatedAt
	appointment.UpdatedAt = copied.UpdatedAt
	return nil
}

func (r *AppointmentRepository) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a := r.find(id)
	if a == nil {
		return nil, apperrors.NotFound("appointment")
	}
	copied := *a
	return &copied, nil
}

func (r *AppointmentRepository) Update(_ context.Context, appointment *model.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, a := range r.store.appointments {
		if a.ID == appointment.ID {
			copied := *appointment
			copied.CreatedAt = a.CreatedAt
			copied.UpdatedAt = time.Now()
			r.store.appointments[i] = &copied
			return nil
		}
	}
	return apperrors.NotFound("appointment")
}

func (r *AppointmentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, a := range r.store.appointments {
		if a.ID == id {
			r.store.appointments = append(r.store.appointments[:i], r.store.appointments[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("appointment")
}

func (r *AppointmentRepository) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	appointments := []*model.Appointment{}
	for _, a := range r.store.appointments {
		if filters != nil {
			if filters.PatientID != uuid.Nil && a.PatientID != filters.PatientID {
				continue
			}
			if filters.DoctorID != "" && a.DoctorID != filters.DoctorID {
				continue
			}
			if filters.Status != "" && a.Status != filters.Status {
				continue
			}
			if filters.Date != nil && !sameDay(a.Date, *filters.Date) {
				continue
			}
		}
		copied := *a
		appointments = append(appointments, &copied)
	}
	sortByDateTime(appointments)
	return appointments, nil
}

func (r *AppointmentRepository) ListByDate(_ context.Context, date time.Time) ([]*model.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	appointments := []*model.Appointment{}
	for _, a := range r.store.appointments {
		if sameDay(a.Date, date) {
			copied := *a
			appointments = append(appointments, &copied)
		}
	}
	sortByDateTime(appointments)
	return appointments, nil
}

func (r *AppointmentRepository) CountActiveForPatient(_ context.Context, patientID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, a := range r.store.appointments {
		if a.PatientID == patientID && activeStatus(a.Status) {
			count++
		}
	}
	return count, nil
}

func (r *AppointmentRepository) Count(_ context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.appointments), nil
}

func (r *AppointmentRepository) CountInRange(_ context.Context, from, to time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, a := range r.store.appointments {
		if !a.Date.Before(from) && a.Date.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *AppointmentRepository) Upcoming(_ context.Context, from time.Time, limit int) ([]*model.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	appointments := []*model.Appointment{}
	for _, a := range r.store.appointments {
		if a.Date.Before(from) {
			continue
		}
		if a.Status != model.AppointmentStatusScheduled && a.Status != model.AppointmentStatusInQueue {
			continue
		}
		copied := *a
		appointments = append(appointments, &copied)
	}
	sortByDateTime(appointments)
	if len(appointments) > limit {
		appointments = appointments[:limit]
	}
	return appointments, nil
}

func (r *AppointmentRepository) CountByDay(_ context.Context, from, to time.Time) ([]model.DailyCount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	byDay := map[string]int{}
	for _, a := range r.store.appointments {
		if !a.Date.Before(from) && a.Date.Before(to) {
			byDay[a.Date.Format(model.DateOnly)]++
		}
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	counts := make([]model.DailyCount, 0, len(days))
	for _, day := range days {
		counts = append(counts, model.DailyCount{Date: day, Count: byDay[day]})
	}
	return counts, nil
}

func (r *AppointmentRepository) CountByType(_ context.Context) (map[string]int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	counts := map[string]int{}
	for _, a := range r.store.appointments {
		counts[string(a.Type)]++
	}
	return counts, nil
}

func (r *AppointmentRepository) CountByStatus(_ context.Context) (map[string]int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	counts := map[string]int{}
	for _, a := range r.store.appointments {
		counts[string(a.Status)]++
	}
	return counts, nil
}

func (r *AppointmentRepository) find(id uuid.UUID) *model.Appointment {
	for _, a := range r.store.appointments {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func activeStatus(status model.AppointmentStatus) bool {
	switch status {
	case model.AppointmentStatusScheduled, model.AppointmentStatusInQueue, model.AppointmentStatusInProgress:
		return true
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return a.Format(model.DateOnly) == b.Format(model.DateOnly)
}

func sortByDateTime(appointments []*model.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		if !appointments[i].Date.Equal(appointments[j].Date) {
			return appointments[i].Date.Before(appointments[j].Date)
		}
		return appointments[i].Time < appointments[j].Time
	})
}
