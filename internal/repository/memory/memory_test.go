package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/model"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

func TestPatientRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	p := &model.Patient{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		Username:    "jane",
		Address:     "1 Main St",
		Gender:      "Female",
		Age:         34,
		DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repos.Patients.Create(ctx, p))
	assert.Equal(t, int64(1), p.ID)

	got, err := repos.Patients.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	got.Name = "Changed"
	again, err := repos.Patients.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", again.Name, "returned values must be detached")
}

func TestRepositories_NotFound(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	_, err := repos.Doctors.Get(ctx, 99)
	assert.True(t, apperrors.IsNotFound(err))

	assert.True(t, apperrors.IsNotFound(repos.Doctors.Update(ctx, &model.Doctor{Base: model.Base{ID: 99}})))
	assert.True(t, apperrors.IsNotFound(repos.Doctors.Delete(ctx, 99)))
	assert.True(t, apperrors.IsNotFound(repos.Equipment.Delete(ctx, 1)))
	assert.True(t, apperrors.IsNotFound(repos.MedicalRecords.Update(ctx, &model.MedicalRecord{Base: model.Base{ID: 5}})))
}

func TestRepositories_EmptyListsAreNonNil(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	doctors, err := repos.Doctors.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, doctors)
	assert.Empty(t, doctors)

	records, err := repos.MedicalRecords.ListByPatient(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, records)

	appts, err := repos.Appointments.ListByDoctor(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, appts)
}

func TestAppointmentRepository_Filters(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	p1, p2, d1 := int64(1), int64(2), int64(10)
	for _, a := range []*model.Appointment{
		{PatientID: &p1, DoctorID: &d1, Status: model.StatusScheduled},
		{PatientID: &p2, DoctorID: &d1, Status: model.StatusPending},
		{PatientID: &p1, Status: model.StatusScheduled},
	} {
		require.NoError(t, repos.Appointments.Create(ctx, a))
	}

	byDoctor, err := repos.Appointments.ListByDoctor(ctx, d1)
	require.NoError(t, err)
	require.Len(t, byDoctor, 2)
	assert.Equal(t, int64(1), byDoctor[0].ID)
	assert.Equal(t, int64(2), byDoctor[1].ID)

	byPatient, err := repos.Appointments.ListByPatient(ctx, p1)
	require.NoError(t, err)
	assert.Len(t, byPatient, 2)

	*byPatient[0].PatientID = 77
	fresh, err := repos.Appointments.Get(ctx, byPatient[0].ID)
	require.NoError(t, err)
	assert.Equal(t, p1, *fresh.PatientID)
}

func TestMedicalRecordRepository_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	for _, diagnosis := range []string{"Flu", "Cold", "Migraine"} {
		require.NoError(t, repos.MedicalRecords.Create(ctx, &model.MedicalRecord{PatientID: 4, Diagnosis: diagnosis}))
	}
	require.NoError(t, repos.MedicalRecords.Create(ctx, &model.MedicalRecord{PatientID: 5, Diagnosis: "Other"}))

	records, err := repos.MedicalRecords.ListByPatient(ctx, 4)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Flu", records[0].Diagnosis)
	assert.Equal(t, "Cold", records[1].Diagnosis)
	assert.Equal(t, "Migraine", records[2].Diagnosis)
}

func TestDoctorRepository_DeleteRemovesRow(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	d := &model.Doctor{Name: "Gregory House", Username: "house"}
	require.NoError(t, repos.Doctors.Create(ctx, d))
	require.NoError(t, repos.Doctors.Delete(ctx, d.ID))

	_, err := repos.Doctors.Get(ctx, d.ID)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, repos.Health.Ping(ctx))
}
