package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "SCHEDULED"
	AppointmentStatusInQueue    AppointmentStatus = "IN_QUEUE"
	AppointmentStatusInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentStatusCompleted  AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled  AppointmentStatus = "CANCELLED"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusInQueue, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type AppointmentType string

const (
	AppointmentTypeGeneral    AppointmentType = "GENERAL"
	AppointmentTypeFollowUp   AppointmentType = "FOLLOW_UP"
	AppointmentTypeSpecialist AppointmentType = "SPECIALIST"
	AppointmentTypeEmergency  AppointmentType = "EMERGENCY"
)

type Appointment struct {
	Base
	PatientID uuid.UUID         `json:"patient_id" db:"patient_id"`
	DoctorID  string            `json:"doctor_id" db:"doctor_id"`
	Date      time.Time         `json:"date" db:"date"`
	Time      string            `json:"time" db:"time"`
	Status    AppointmentStatus `json:"status" db:"status"`
	Type      AppointmentType   `json:"type" db:"type"`
	// QueueNumber is the per-day ordinal for non-cancelled
	// appointments; cancelled appointments carry none.
	QueueNumber *int    `json:"queue_number,omitempty" db:"queue_number"`
	Reason      *string `json:"reason,omitempty" db:"reason"`
	Notes       *string `json:"notes,omitempty" db:"notes"`

	Patient *Patient `json:"patient,omitempty" db:"-"`
	Doctor  *Doctor  `json:"doctor,omitempty" db:"-"`
}

type CreateAppointmentRequest struct {
	PatientID string  `json:"patient_id" binding:"required,uuid"`
	DoctorID  string  `json:"doctor_id" binding:"required"`
	Date      string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string  `json:"time" binding:"required,datetime=15:04"`
	Status    string  `json:"status" binding:"omitempty,oneof=SCHEDULED IN_QUEUE IN_PROGRESS COMPLETED CANCELLED"`
	Type      string  `json:"type" binding:"required,oneof=GENERAL FOLLOW_UP SPECIALIST EMERGENCY"`
	Reason    *string `json:"reason"`
	Notes     *string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Date   *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time   *string `json:"time" binding:"omitempty,datetime=15:04"`
	Status *string `json:"status" binding:"omitempty,oneof=SCHEDULED IN_QUEUE IN_PROGRESS COMPLETED CANCELLED"`
	Type   *string `json:"type" binding:"omitempty,oneof=GENERAL FOLLOW_UP SPECIALIST EMERGENCY"`
	Reason *string `json:"reason"`
	Notes  *string `json:"notes"`
}

type AppointmentFilters struct {
	PatientID uuid.UUID
	DoctorID  string
	Status    AppointmentStatus
	Date      *time.Time
}
