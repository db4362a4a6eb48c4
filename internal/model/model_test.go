package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

func TestSession_Require(t *testing.T) {
	var none *Session
	err := none.Require(RoleAdmin)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	doctor := NewSession(3, "house", RoleDoctor)
	assert.NoError(t, doctor.Require(RoleDoctor))
	assert.NoError(t, doctor.Require(RoleAdmin, RoleDoctor))
	assert.True(t, apperrors.Is(doctor.Require(RoleAdmin), apperrors.ErrForbidden))

	assert.Equal(t, "Doctor:house", doctor.Actor())
	assert.Equal(t, "anonymous", none.Actor())
}

func TestTimeOfDay(t *testing.T) {
	tod := NewTimeOfDay(9, 5)
	assert.Equal(t, "09:05", tod.String())
	assert.Equal(t, 9*time.Hour+5*time.Minute, tod.Duration())

	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "09:05:00", v)

	var scanned TimeOfDay
	require.NoError(t, scanned.Scan([]byte("17:00:00")))
	assert.Equal(t, NewTimeOfDay(17, 0), scanned)

	require.NoError(t, scanned.Scan("13:45"))
	assert.Equal(t, NewTimeOfDay(13, 45), scanned)

	require.NoError(t, scanned.Scan(time.Date(0, 1, 1, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, NewTimeOfDay(10, 30), scanned)

	assert.Error(t, scanned.Scan(42))
	assert.Error(t, scanned.Scan("noon"))
}

func TestProvided(t *testing.T) {
	blank, value := "  ", "x"
	assert.False(t, Provided(nil))
	assert.False(t, Provided(&blank))
	assert.True(t, Provided(&value))
}

func TestUpdateRequests_IsEmpty(t *testing.T) {
	assert.True(t, UpdateDoctorRequest{}.IsEmpty())
	age := 40
	assert.False(t, UpdatePatientRequest{Age: &age}.IsEmpty())
}
