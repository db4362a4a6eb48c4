package auth

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/internal/repository/memory"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
	"github.com/jwalitptl/hospital-admin/pkg/security"
)

type fixture struct {
	svc     *Service
	repos   repository.Repositories
	hasher  security.PasswordHasher
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	repos := memory.NewStore().Repositories()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	m := metrics.NewMetrics("test")

	svc := NewService(opts, nil, nil, m,
		NewAdminProvider(nil, hasher),
		NewDoctorProvider(repos.Doctors, hasher),
	)
	return &fixture{svc: svc, repos: repos, hasher: hasher, metrics: m}
}

func (f *fixture) addDoctor(t *testing.T, username, password string) *model.Doctor {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	d := &model.Doctor{Name: "Test Doctor", Specialization: "General", Email: username + "@example.com", Username: username, PasswordHash: hash}
	require.NoError(t, f.repos.Doctors.Create(context.Background(), d))
	return d
}

func TestAuthenticate_DefaultAdmin(t *testing.T) {
	f := newFixture(t, Options{})

	sess, ok, err := f.svc.Authenticate(context.Background(), "admin", "Admin123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.RoleAdmin, sess.Role)
	assert.Equal(t, "admin", sess.Username)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.LoginAttempts.WithLabelValues(metrics.OutcomeSuccess)))
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	f := newFixture(t, Options{})

	sess, ok, err := f.svc.Authenticate(context.Background(), "nope", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, sess)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.LoginAttempts.WithLabelValues(metrics.OutcomeNoMatch)))
}

func TestAuthenticate_Doctor(t *testing.T) {
	f := newFixture(t, Options{})
	d := f.addDoctor(t, "house", "Vicodin123")

	sess, ok, err := f.svc.Authenticate(context.Background(), "house", "Vicodin123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.RoleDoctor, sess.Role)
	assert.Equal(t, d.ID, sess.UserID)

	_, ok, err = f.svc.Authenticate(context.Background(), "house", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthenticate_PlaintextDoctorPassword(t *testing.T) {
	f := newFixture(t, Options{})
	require.NoError(t, f.repos.Doctors.Create(context.Background(), &model.Doctor{
		Name: "Legacy", Specialization: "General", Email: "legacy@example.com", Username: "legacy", PasswordHash: "Legacy123",
	}))

	sess, ok, err := f.svc.Authenticate(context.Background(), "legacy", "Legacy123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.RoleDoctor, sess.Role)
}

func TestAuthenticate_AdminProviderWins(t *testing.T) {
	f := newFixture(t, Options{})
	f.addDoctor(t, "admin", "Admin123")

	sess, ok, err := f.svc.Authenticate(context.Background(), "admin", "Admin123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.RoleAdmin, sess.Role)
}

func TestAuthenticate_Lockout(t *testing.T) {
	f := newFixture(t, Options{MaxAttempts: 3, Lockout: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, ok, err := f.svc.Authenticate(ctx, "admin", "bad")
		require.NoError(t, err)
		require.False(t, ok)
	}

	_, ok, err := f.svc.Authenticate(ctx, "admin", "Admin123")
	assert.False(t, ok)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.LoginAttempts.WithLabelValues(metrics.OutcomeLocked)))

	// Other usernames are unaffected.
	_, ok, err = f.svc.Authenticate(ctx, "nobody", "bad")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthenticate_SuccessResetsFailures(t *testing.T) {
	f := newFixture(t, Options{MaxAttempts: 2, Lockout: time.Minute})
	ctx := context.Background()

	_, _, err := f.svc.Authenticate(ctx, "admin", "bad")
	require.NoError(t, err)
	_, ok, err := f.svc.Authenticate(ctx, "admin", "Admin123")
	require.NoError(t, err)
	require.True(t, ok)

	_, _, err = f.svc.Authenticate(ctx, "admin", "bad")
	require.NoError(t, err)
	_, ok, err = f.svc.Authenticate(ctx, "admin", "Admin123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthenticate_RateLimitHonoursContext(t *testing.T) {
	f := newFixture(t, Options{Rate: 0.001, Burst: 1})

	_, ok, err := f.svc.Authenticate(context.Background(), "admin", "Admin123")
	require.NoError(t, err)
	require.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err = f.svc.Authenticate(ctx, "admin", "Admin123")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestAdminProvider_ConfiguredAccounts(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	p := NewAdminProvider([]Account{{Username: "root", Password: "Root1234"}, {Username: "ops", Password: "Ops12345"}}, hasher)

	sess, ok, err := p.Match(context.Background(), "ops", "Ops12345")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), sess.UserID)

	_, ok, err = p.Match(context.Background(), "admin", "Admin123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogout_NilSession(t *testing.T) {
	f := newFixture(t, Options{})
	assert.NotPanics(t, func() { f.svc.Logout(context.Background(), nil) })
}
