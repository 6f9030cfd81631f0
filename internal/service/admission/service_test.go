package admission

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository/memory"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type fixture struct {
	store   *memory.Store
	service *Service
	patient *model.Patient
	doctor  *model.User
	bed     *model.Bed
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	patient := &model.Patient{
		Base:        model.Base{ID: uuid.New()},
		MRN:         "MRN-1001",
		FirstName:   "Asha",
		LastName:    "Rao",
		DateOfBirth: time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:      model.GenderFemale,
	}
	require.NoError(t, store.Patients().Create(ctx, patient))

	doctor := &model.User{
		ID:        "auth0|doc1",
		Email:     "doc@example.com",
		FirstName: "Leela",
		LastName:  "Iyer",
		Role:      model.UserRoleDoctor,
	}
	require.NoError(t, store.Users().Upsert(ctx, doctor))

	bed := &model.Bed{
		Base:      model.Base{ID: uuid.New()},
		BedNumber: "GEN-01",
		Ward:      model.WardGeneral,
		Status:    model.BedStatusAvailable,
	}
	require.NoError(t, store.Beds().Create(ctx, bed))

	return &fixture{
		store:   store,
		service: NewService(store.Admissions(), store.Beds(), store.Patients(), store.Users()),
		patient: patient,
		doctor:  doctor,
		bed:     bed,
	}
}

func (f *fixture) admit(t *testing.T) *model.Admission {
	t.Helper()
	admission, err := f.service.Admit(context.Background(), &model.CreateAdmissionRequest{
		PatientID: f.patient.ID.String(),
		BedID:     f.bed.ID.String(),
		DoctorID:  f.doctor.ID,
	})
	require.NoError(t, err)
	return admission
}

func TestAdmitOccupiesBed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	admission := f.admit(t)

	assert.Equal(t, model.AdmissionStatusActive, admission.Status)
	assert.Nil(t, admission.DischargeDate)
	assert.Equal(t, f.patient.ID, admission.Patient.ID)
	assert.Equal(t, f.doctor.ID, admission.Doctor.ID)

	bed, err := f.store.Beds().Get(ctx, f.bed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BedStatusOccupied, bed.Status)
	require.NotNil(t, bed.PatientID)
	assert.Equal(t, f.patient.ID, *bed.PatientID)
	assert.NotNil(t, bed.AdmissionDate)
}

func TestAdmitRejectsOccupiedBed(t *testing.T) {
	f := setup(t)
	f.admit(t)

	other := &model.Patient{
		Base:        model.Base{ID: uuid.New()},
		MRN:         "MRN-1002",
		FirstName:   "Vik",
		LastName:    "Shah",
		DateOfBirth: time.Date(1990, 7, 3, 0, 0, 0, 0, time.UTC),
		Gender:      model.GenderMale,
	}
	require.NoError(t, f.store.Patients().Create(context.Background(), other))

	_, err := f.service.Admit(context.Background(), &model.CreateAdmissionRequest{
		PatientID: other.ID.String(),
		BedID:     f.bed.ID.String(),
		DoctorID:  f.doctor.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "Bed is not available")
}

func TestAdmitRejectsMaintenanceBed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.bed.Status = model.BedStatusMaintenance
	require.NoError(t, f.store.Beds().Update(ctx, f.bed))

	_, err := f.service.Admit(ctx, &model.CreateAdmissionRequest{
		PatientID: f.patient.ID.String(),
		BedID:     f.bed.ID.String(),
		DoctorID:  f.doctor.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestAdmitRejectsSecondActiveAdmission(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.admit(t)

	spare := &model.Bed{
		Base:      model.Base{ID: uuid.New()},
		BedNumber: "GEN-02",
		Ward:      model.WardGeneral,
		Status:    model.BedStatusAvailable,
	}
	require.NoError(t, f.store.Beds().Create(ctx, spare))

	_, err := f.service.Admit(ctx, &model.CreateAdmissionRequest{
		PatientID: f.patient.ID.String(),
		BedID:     spare.ID.String(),
		DoctorID:  f.doctor.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "active admission")
}

func TestAdmitRejectsNonDoctor(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	clerk := &model.User{ID: "auth0|clerk", Role: model.UserRoleReceptionist}
	require.NoError(t, f.store.Users().Upsert(ctx, clerk))

	_, err := f.service.Admit(ctx, &model.CreateAdmissionRequest{
		PatientID: f.patient.ID.String(),
		BedID:     f.bed.ID.String(),
		DoctorID:  clerk.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "not a doctor")
}

func TestAdmitRejectsUnknownDoctor(t *testing.T) {
	f := setup(t)

	_, err := f.service.Admit(context.Background(), &model.CreateAdmissionRequest{
		PatientID: f.patient.ID.String(),
		BedID:     f.bed.ID.String(),
		DoctorID:  "auth0|nobody",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDischargeFreesBed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	admission := f.admit(t)

	status := string(model.AdmissionStatusDischarged)
	updated, err := f.service.UpdateAdmission(ctx, admission.ID, &model.UpdateAdmissionRequest{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, model.AdmissionStatusDischarged, updated.Status)
	require.NotNil(t, updated.DischargeDate)

	bed, err := f.store.Beds().Get(ctx, f.bed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BedStatusAvailable, bed.Status)
	assert.Nil(t, bed.PatientID)
	assert.Nil(t, bed.AdmissionDate)

	// Once discharged, the patient can be admitted again.
	f.admit(t)
}

func TestTransferClosesAdmission(t *testing.T) {
	f := setup(t)
	admission := f.admit(t)

	status := string(model.AdmissionStatusTransferred)
	discharge := "2026-08-30"
	updated, err := f.service.UpdateAdmission(context.Background(), admission.ID, &model.UpdateAdmissionRequest{
		Status:        &status,
		DischargeDate: &discharge,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AdmissionStatusTransferred, updated.Status)
	require.NotNil(t, updated.DischargeDate)
	assert.Equal(t, discharge, updated.DischargeDate.Format(model.DateOnly))
}

func TestReactivationRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	admission := f.admit(t)

	discharged := string(model.AdmissionStatusDischarged)
	_, err := f.service.UpdateAdmission(ctx, admission.ID, &model.UpdateAdmissionRequest{Status: &discharged})
	require.NoError(t, err)

	active := string(model.AdmissionStatusActive)
	_, err = f.service.UpdateAdmission(ctx, admission.ID, &model.UpdateAdmissionRequest{Status: &active})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestStatusChangeOnClosedAdmissionRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	admission := f.admit(t)

	discharged := string(model.AdmissionStatusDischarged)
	_, err := f.service.UpdateAdmission(ctx, admission.ID, &model.UpdateAdmissionRequest{Status: &discharged})
	require.NoError(t, err)

	transferred := string(model.AdmissionStatusTransferred)
	_, err = f.service.UpdateAdmission(ctx, admission.ID, &model.UpdateAdmissionRequest{Status: &transferred})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	got, err := f.service.GetAdmission(ctx, admission.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AdmissionStatusDischarged, got.Status)
}

func TestUpdateFieldsOnlyKeepsBedOccupied(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	admission := f.admit(t)

	diagnosis := "pneumonia"
	updated, err := f.service.UpdateAdmission(ctx, admission.ID, &model.UpdateAdmissionRequest{
		Diagnosis: &diagnosis,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Diagnosis)
	assert.Equal(t, diagnosis, *updated.Diagnosis)
	assert.Equal(t, model.AdmissionStatusActive, updated.Status)

	bed, err := f.store.Beds().Get(ctx, f.bed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BedStatusOccupied, bed.Status)
}

func TestDeleteActiveAdmissionFreesBed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	admission := f.admit(t)

	require.NoError(t, f.service.DeleteAdmission(ctx, admission.ID))

	bed, err := f.store.Beds().Get(ctx, f.bed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BedStatusAvailable, bed.Status)

	_, err = f.service.GetAdmission(ctx, admission.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListActiveAdmissions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	admission := f.admit(t)

	active, err := f.service.ListActiveAdmissions(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, admission.ID, active[0].ID)
	require.NotNil(t, active[0].Bed)
	assert.Equal(t, f.bed.ID, active[0].Bed.ID)

	status := string(model.AdmissionStatusDischarged)
	_, err = f.service.UpdateAdmission(ctx, admission.ID, &model.UpdateAdmissionRequest{Status: &status})
	require.NoError(t, err)

	active, err = f.service.ListActiveAdmissions(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestAdmitInvalidIDs(t *testing.T) {
	f := setup(t)

	_, err := f.service.Admit(context.Background(), &model.CreateAdmissionRequest{
		PatientID: "not-a-uuid",
		BedID:     f.bed.ID.String(),
		DoctorID:  f.doctor.ID,
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}
