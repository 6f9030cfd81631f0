package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medhq/hms-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Get(ctx context.Context, id string) (*model.User, error)
		// Upsert provisions a user from identity-provider claims,
		// refreshing profile fields on conflict.
		Upsert(ctx context.Context, user *model.User) error
		ListDoctors(ctx context.Context) ([]*model.Doctor, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByMRN(ctx context.Context, mrn string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
		Count(ctx context.Context) (int, error)
	}

	AppointmentRepository interface {
		// Create inserts the appointment and assigns its queue number
		// in one transaction; concurrent creates for the same date
		// serialize on a per-date lock.
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		ListByDate(ctx context.Context, date time.Time) ([]*model.Appointment, error)
		CountActiveForPatient(ctx context.Context, patientID uuid.UUID) (int, error)
		Count(ctx context.Context) (int, error)
		CountInRange(ctx context.Context, from, to time.Time) (int, error)
		Upcoming(ctx context.Context, from time.Time, limit int) ([]*model.Appointment, error)
		CountByDay(ctx context.Context, from, to time.Time) ([]model.DailyCount, error)
		CountByType(ctx context.Context) (map[string]int, error)
		CountByStatus(ctx context.Context) (map[string]int, error)
	}

	BedRepository interface {
		Create(ctx context.Context, bed *model.Bed) error
		Get(ctx context.Context, id uuid.UUID) (*model.Bed, error)
		Update(ctx context.Context, bed *model.Bed) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Bed, error)
		ListByWard(ctx context.Context, ward model.Ward) ([]*model.Bed, error)
		ListAvailable(ctx context.Context) ([]*model.Bed, error)
		StatsByWard(ctx context.Context) ([]model.WardOccupancy, error)
	}

	AdmissionRepository interface {
		// Admit creates the ACTIVE admission and flips its bed to
		// OCCUPIED atomically. The bed flip is a conditional update:
		// a bed that is no longer AVAILABLE fails the whole unit.
		Admit(ctx context.Context, admission *model.Admission, expectedDischarge *time.Time) error
		// Close moves an ACTIVE admission to DISCHARGED or
		// TRANSFERRED and frees its bed in the same transaction.
		Close(ctx context.Context, admission *model.Admission) error
		// Update writes admission fields only; the bed is untouched.
		Update(ctx context.Context, admission *model.Admission) error
		// Delete removes the admission row, freeing the bed first
		// when the admission is still ACTIVE.
		Delete(ctx context.Context, id uuid.UUID) error
		Get(ctx context.Context, id uuid.UUID) (*model.Admission, error)
		List(ctx context.Context) ([]*model.Admission, error)
		ListActive(ctx context.Context) ([]*model.Admission, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Admission, error)
		HasActiveForPatient(ctx context.Context, patientID uuid.UUID) (bool, error)
		HasActiveForBed(ctx context.Context, bedID uuid.UUID) (bool, error)
		Recent(ctx context.Context, limit int) ([]*model.Admission, error)
	}

	InventoryRepository interface {
		Create(ctx context.Context, item *model.InventoryItem) error
		Get(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
		Update(ctx context.Context, item *model.InventoryItem) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.InventoryItem, error)
		ListByCategory(ctx context.Context, category model.InventoryCategory) ([]*model.InventoryItem, error)
		ListLowStock(ctx context.Context) ([]*model.InventoryItem, error)
		CountLowStock(ctx context.Context) (int, error)
	}
)
