package patient

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
	return NewService(store.Patients(), store.Appointments(), store.Admissions())
}

func createRequest(mrn string) *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		MRN:           mrn,
		FirstName:     "Asha",
		LastName:      "Rao",
		DateOfBirth:   "1985-04-12",
		Gender:        "FEMALE",
		ContactNumber: "555-0101",
		Address:       "14 Hill Road",
	}
}

func TestCreatePatient(t *testing.T) {
	service := newService(memory.NewStore())

	p, err := service.CreatePatient(context.Background(), createRequest("MRN-2001"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "MRN-2001", p.MRN)
	assert.Equal(t, 1985, p.DateOfBirth.Year())
}

func TestCreatePatientDuplicateMRN(t *testing.T) {
	service := newService(memory.NewStore())
	ctx := context.Background()

	_, err := service.CreatePatient(ctx, createRequest("MRN-2001"))
	require.NoError(t, err)

	_, err = service.CreatePatient(ctx, createRequest("MRN-2001"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "MRN")
}

func TestUpdatePatientPartial(t *testing.T) {
	service := newService(memory.NewStore())
	ctx := context.Background()

	p, err := service.CreatePatient(ctx, createRequest("MRN-2001"))
	require.NoError(t, err)

	contact := "555-0202"
	updated, err := service.UpdatePatient(ctx, p.ID, &model.UpdatePatientRequest{
		ContactNumber: &contact,
	})
	require.NoError(t, err)
	assert.Equal(t, contact, updated.ContactNumber)
	// Untouched fields survive a partial update.
	assert.Equal(t, p.FirstName, updated.FirstName)
	assert.Equal(t, p.MRN, updated.MRN)
}

func TestDeletePatientWithOpenAppointment(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	p, err := service.CreatePatient(ctx, createRequest("MRN-2001"))
	require.NoError(t, err)

	appointment := &model.Appointment{
		Base:      model.Base{ID: uuid.New()},
		PatientID: p.ID,
		DoctorID:  "auth0|doc1",
		Date:      time.Now().AddDate(0, 0, 1),
		Time:      "09:30",
		Status:    model.AppointmentStatusScheduled,
		Type:      model.AppointmentTypeGeneral,
	}
	require.NoError(t, store.Appointments().Create(ctx, appointment))

	err = service.DeletePatient(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "active appointments")

	// Completed appointments no longer block deletion.
	appointment.Status = model.AppointmentStatusCompleted
	require.NoError(t, store.Appointments().Update(ctx, appointment))
	require.NoError(t, service.DeletePatient(ctx, p.ID))
}

func TestDeletePatientWithActiveAdmission(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	p, err := service.CreatePatient(ctx, createRequest("MRN-2001"))
	require.NoError(t, err)

	bed := &model.Bed{
		Base:      model.Base{ID: uuid.New()},
		BedNumber: "GEN-01",
		Ward:      model.WardGeneral,
		Status:    model.BedStatusAvailable,
	}
	require.NoError(t, store.Beds().Create(ctx, bed))

	admission := &model.Admission{
		Base:          model.Base{ID: uuid.New()},
		PatientID:     p.ID,
		BedID:         bed.ID,
		DoctorID:      "auth0|doc1",
		AdmissionDate: time.Now(),
		Status:        model.AdmissionStatusActive,
	}
	require.NoError(t, store.Admissions().Admit(ctx, admission, nil))

	err = service.DeletePatient(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "active admission")

	// Discharge unblocks the delete.
	now := time.Now()
	admission.Status = model.AdmissionStatusDischarged
	admission.DischargeDate = &now
	require.NoError(t, store.Admissions().Close(ctx, admission))
	require.NoError(t, service.DeletePatient(ctx, p.ID))
}

func TestDeleteMissingPatient(t *testing.T) {
	service := newService(memory.NewStore())
	err := service.DeletePatient(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListPatientsFilters(t *testing.T) {
	service := newService(memory.NewStore())
	ctx := context.Background()

	_, err := service.CreatePatient(ctx, createRequest("MRN-2001"))
	require.NoError(t, err)

	male := createRequest("MRN-2002")
	male.FirstName = "Vik"
	male.Gender = "MALE"
	_, err = service.CreatePatient(ctx, male)
	require.NoError(t, err)

	all, err := service.ListPatients(ctx, &model.PatientFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	males, err := service.ListPatients(ctx, &model.PatientFilters{Gender: "MALE"})
	require.NoError(t, err)
	require.Len(t, males, 1)
	assert.Equal(t, "Vik", males[0].FirstName)

	byName, err := service.ListPatients(ctx, &model.PatientFilters{Search: "asha"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "MRN-2001", byName[0].MRN)
}

func TestListPatientAdmissionsRequiresPatient(t *testing.T) {
	service := newService(memory.NewStore())
	_, err := service.ListPatientAdmissions(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}
