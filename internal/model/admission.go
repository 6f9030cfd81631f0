package model

import (
	"time"

	"github.com/google/uuid"
)

type AdmissionStatus string

const (
	AdmissionStatusActive      AdmissionStatus = "ACTIVE"
	AdmissionStatusDischarged  AdmissionStatus = "DISCHARGED"
	AdmissionStatusTransferred AdmissionStatus = "TRANSFERRED"
)

// Admission records a patient occupying a bed under a doctor's care.
// While status is ACTIVE the referenced bed is OCCUPIED by the same
// patient; the two change together or not at all.
type Admission struct {
	Base
	PatientID     uuid.UUID       `json:"patient_id" db:"patient_id"`
	BedID         uuid.UUID       `json:"bed_id" db:"bed_id"`
	DoctorID      string          `json:"doctor_id" db:"doctor_id"`
	AdmissionDate time.Time       `json:"admission_date" db:"admission_date"`
	DischargeDate *time.Time      `json:"discharge_date,omitempty" db:"discharge_date"`
	Status        AdmissionStatus `json:"status" db:"status"`
	Diagnosis     *string         `json:"diagnosis,omitempty" db:"diagnosis"`
	Notes         *string         `json:"notes,omitempty" db:"notes"`

	Patient *Patient `json:"patient,omitempty" db:"-"`
	Bed     *Bed     `json:"bed,omitempty" db:"-"`
	Doctor  *Doctor  `json:"doctor,omitempty" db:"-"`
}

type CreateAdmissionRequest struct {
	PatientID             string  `json:"patient_id" binding:"required,uuid"`
	BedID                 string  `json:"bed_id" binding:"required,uuid"`
	DoctorID              string  `json:"doctor_id" binding:"required"`
	AdmissionDate         *string `json:"admission_date" binding:"omitempty,datetime=2006-01-02"`
	ExpectedDischargeDate *string `json:"expected_discharge_date" binding:"omitempty,datetime=2006-01-02"`
	Diagnosis             *string `json:"diagnosis"`
	Notes                 *string `json:"notes"`
}

type UpdateAdmissionRequest struct {
	Status        *string `json:"status" binding:"omitempty,oneof=ACTIVE DISCHARGED TRANSFERRED"`
	DischargeDate *string `json:"discharge_date" binding:"omitempty,datetime=2006-01-02"`
	Diagnosis     *string `json:"diagnosis"`
	Notes         *string `json:"notes"`
}
