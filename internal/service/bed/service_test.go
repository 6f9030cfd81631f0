package bed

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

func newService(store *memory.Store) *Service {
	return NewService(store.Beds(), store.Admissions(), store.Patients())
}

func occupy(t *testing.T, store *memory.Store, bedID uuid.UUID) *model.Admission {
	t.Helper()
	ctx := context.Background()

	patient := &model.Patient{
		Base:        model.Base{ID: uuid.New()},
		MRN:         "MRN-4001",
		FirstName:   "Asha",
		LastName:    "Rao",
		DateOfBirth: time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:      model.GenderFemale,
	}
	require.NoError(t, store.Patients().Create(ctx, patient))

	admission := &model.Admission{
		Base:          model.Base{ID: uuid.New()},
		PatientID:     patient.ID,
		BedID:         bedID,
		DoctorID:      "auth0|doc1",
		AdmissionDate: time.Now(),
		Status:        model.AdmissionStatusActive,
	}
	require.NoError(t, store.Admissions().Admit(ctx, admission, nil))
	return admission
}

func TestCreateBedDefaultsToAvailable(t *testing.T) {
	service := newService(memory.NewStore())

	b, err := service.CreateBed(context.Background(), &model.CreateBedRequest{
		BedNumber: "ICU-01",
		Ward:      "ICU",
	})
	require.NoError(t, err)
	assert.Equal(t, model.BedStatusAvailable, b.Status)
	assert.Equal(t, model.WardICU, b.Ward)
}

func TestCreateBedDuplicateNumber(t *testing.T) {
	service := newService(memory.NewStore())
	ctx := context.Background()

	_, err := service.CreateBed(ctx, &model.CreateBedRequest{BedNumber: "GEN-01", Ward: "GENERAL"})
	require.NoError(t, err)

	_, err = service.CreateBed(ctx, &model.CreateBedRequest{BedNumber: "GEN-01", Ward: "ICU"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestUpdateOccupiedBedStatusRejected(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	b, err := service.CreateBed(ctx, &model.CreateBedRequest{BedNumber: "GEN-01", Ward: "GENERAL"})
	require.NoError(t, err)
	occupy(t, store, b.ID)

	maintenance := "MAINTENANCE"
	_, err = service.UpdateBed(ctx, b.ID, &model.UpdateBedRequest{Status: &maintenance})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	// Renaming an occupied bed is still fine.
	number := "GEN-01A"
	updated, err := service.UpdateBed(ctx, b.ID, &model.UpdateBedRequest{BedNumber: &number})
	require.NoError(t, err)
	assert.Equal(t, number, updated.BedNumber)
	assert.Equal(t, model.BedStatusOccupied, updated.Status)
}

func TestDeleteOccupiedBedRejected(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	b, err := service.CreateBed(ctx, &model.CreateBedRequest{BedNumber: "GEN-01", Ward: "GENERAL"})
	require.NoError(t, err)
	admission := occupy(t, store, b.ID)

	err = service.DeleteBed(ctx, b.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	// Freeing the bed unblocks the delete.
	now := time.Now()
	admission.Status = model.AdmissionStatusDischarged
	admission.DischargeDate = &now
	require.NoError(t, store.Admissions().Close(ctx, admission))
	require.NoError(t, service.DeleteBed(ctx, b.ID))
}

func TestListAvailableBeds(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	free, err := service.CreateBed(ctx, &model.CreateBedRequest{BedNumber: "GEN-01", Ward: "GENERAL"})
	require.NoError(t, err)
	taken, err := service.CreateBed(ctx, &model.CreateBedRequest{BedNumber: "GEN-02", Ward: "GENERAL"})
	require.NoError(t, err)
	occupy(t, store, taken.ID)

	available, err := service.ListAvailableBeds(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, free.ID, available[0].ID)
}

func TestListBedsByWardValidation(t *testing.T) {
	service := newService(memory.NewStore())

	_, err := service.ListBedsByWard(context.Background(), "BASEMENT")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestGetBedEmbedsOccupyingPatient(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	b, err := service.CreateBed(ctx, &model.CreateBedRequest{BedNumber: "GEN-01", Ward: "GENERAL"})
	require.NoError(t, err)
	admission := occupy(t, store, b.ID)

	got, err := service.GetBed(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Patient)
	assert.Equal(t, admission.PatientID, got.Patient.ID)
}
