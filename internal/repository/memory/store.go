// Package memory implements the repository interfaces over in-memory
// slices. It mirrors the conflict semantics of the postgres layer and
// backs the service test suites.
package memory

import (
	"sync"

	"github.com/medhq/hms-api/internal/model"
)

type Store struct {
	mu           sync.Mutex
	users        []*model.User
	patients     []*model.Patient
	appointments []*model.Appointment
	beds         []*model.Bed
	admissions   []*model.Admission
	items        []*model.InventoryItem
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Patients() *PatientRepository {
	return &PatientRepository{store: s}
}

func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{store: s}
}

func (s *Store) Beds() *BedRepository {
	return &BedRepository{store: s}
}

func (s *Store) Admissions() *AdmissionRepository {
	return &AdmissionRepository{store: s}
}

func (s *Store) Inventory() *InventoryRepository {
	return &InventoryRepository{store: s}
}
