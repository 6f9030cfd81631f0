package model

import "time"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type Patient struct {
	Base
	MRN              string    `json:"mrn" db:"mrn"`
	FirstName        string    `json:"first_name" db:"first_name"`
	LastName         string    `json:"last_name" db:"last_name"`
	DateOfBirth      time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender           Gender    `json:"gender" db:"gender"`
	ContactNumber    string    `json:"contact_number" db:"contact_number"`
	Email            *string   `json:"email,omitempty" db:"email"`
	Address          string    `json:"address" db:"address"`
	BloodGroup       *string   `json:"blood_group,omitempty" db:"blood_group"`
	Allergies        *string   `json:"allergies,omitempty" db:"allergies"`
	MedicalHistory   *string   `json:"medical_history,omitempty" db:"medical_history"`
	EmergencyContact *string   `json:"emergency_contact,omitempty" db:"emergency_contact"`
}

type CreatePatientRequest struct {
	MRN              string  `json:"mrn" binding:"required"`
	FirstName        string  `json:"first_name" binding:"required"`
	LastName         string  `json:"last_name" binding:"required"`
	DateOfBirth      string  `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender           string  `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	ContactNumber    string  `json:"contact_number" binding:"required"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Address          string  `json:"address" binding:"required"`
	BloodGroup       *string `json:"blood_group"`
	Allergies        *string `json:"allergies"`
	MedicalHistory   *string `json:"medical_history"`
	EmergencyContact *string `json:"emergency_contact"`
}

type UpdatePatientRequest struct {
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	DateOfBirth      *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender           *string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	ContactNumber    *string `json:"contact_number"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Address          *string `json:"address"`
	BloodGroup       *string `json:"blood_group"`
	Allergies        *string `json:"allergies"`
	MedicalHistory   *string `json:"medical_history"`
	EmergencyContact *string `json:"emergency_contact"`
}

// PatientFilters narrows patient listings.
type PatientFilters struct {
	Search string `form:"search"`
	Gender string `form:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
}
