package model

import (
	"time"

	"github.com/google/uuid"
)

type Ward string

const (
	WardGeneral     Ward = "GENERAL"
	WardICU         Ward = "ICU"
	WardEmergency   Ward = "EMERGENCY"
	WardPediatric   Ward = "PEDIATRIC"
	WardMaternity   Ward = "MATERNITY"
	WardPsychiatric Ward = "PSYCHIATRIC"
)

type BedStatus string

const (
	BedStatusAvailable   BedStatus = "AVAILABLE"
	BedStatusOccupied    BedStatus = "OCCUPIED"
	BedStatusMaintenance BedStatus = "MAINTENANCE"
)

// Bed tracks a physical bed. PatientID is a back-reference kept in
// lockstep with the active admission: it is set exactly while status
// is OCCUPIED.
type Bed struct {
	Base
	BedNumber             string     `json:"bed_number" db:"bed_number"`
	Ward                  Ward       `json:"ward" db:"ward"`
	Status                BedStatus  `json:"status" db:"status"`
	PatientID             *uuid.UUID `json:"patient_id,omitempty" db:"patient_id"`
	AdmissionDate         *time.Time `json:"admission_date,omitempty" db:"admission_date"`
	ExpectedDischargeDate *time.Time `json:"expected_discharge_date,omitempty" db:"expected_discharge_date"`

	Patient *Patient `json:"patient,omitempty" db:"-"`
}

type CreateBedRequest struct {
	BedNumber string `json:"bed_number" binding:"required"`
	Ward      string `json:"ward" binding:"required,oneof=GENERAL ICU EMERGENCY PEDIATRIC MATERNITY PSYCHIATRIC"`
	Status    string `json:"status" binding:"omitempty,oneof=AVAILABLE MAINTENANCE"`
}

type UpdateBedRequest struct {
	BedNumber *string `json:"bed_number"`
	Ward      *string `json:"ward" binding:"omitempty,oneof=GENERAL ICU EMERGENCY PEDIATRIC MATERNITY PSYCHIATRIC"`
	// Status transitions to and from OCCUPIED are owned by the
	// admission flow, so a direct update only toggles
	// AVAILABLE/MAINTENANCE.
	Status *string `json:"status" binding:"omitempty,oneof=AVAILABLE MAINTENANCE"`
}

// WardOccupancy summarizes bed state within one ward.
type WardOccupancy struct {
	Ward        Ward `json:"ward" db:"ward"`
	Total       int  `json:"total" db:"total"`
	Available   int  `json:"available" db:"available"`
	Occupied    int  `json:"occupied" db:"occupied"`
	Maintenance int  `json:"maintenance" db:"maintenance"`
}
