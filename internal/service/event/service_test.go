package event

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/service/audit"
	"github.com/jwalitptl/hospital-admin/pkg/messaging"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

func (m *MockBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	args := m.Called(ctx, channel)
	return args.Get(0).(<-chan []byte), args.Error(1)
}

func (m *MockBroker) Close() error {
	return m.Called().Error(0)
}

func TestType(t *testing.T) {
	assert.Equal(t, "doctor.created", Type(model.EntityDoctor, model.OpCreate))
	assert.Equal(t, "patient.updated", Type(model.EntityPatient, model.OpUpdate))
	assert.Equal(t, "appointment.deleted", Type(model.EntityAppointment, model.OpDelete))
	assert.Equal(t, "session.login", Type(model.EntitySession, model.OpLogin))
}

func TestEmit(t *testing.T) {
	broker := new(MockBroker)
	m := metrics.NewMetrics("test")
	svc := NewService(broker, "", nil, m)
	sess := model.NewSession(1, "admin", model.RoleAdmin)

	broker.On("Publish", mock.Anything, DefaultChannel, mock.MatchedBy(func(msg messaging.Message) bool {
		return msg.Type == "doctor.created" && msg.Actor == "Admin:admin" && msg.ID != ""
	})).Return(nil).Once()

	require.NoError(t, svc.Emit(context.Background(), sess, "doctor.created", map[string]int{"id": 1}))
	broker.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("doctor.created", metrics.OutcomeSuccess)))
}

func TestEmit_BrokerFailure(t *testing.T) {
	broker := new(MockBroker)
	m := metrics.NewMetrics("test")
	svc := NewService(broker, "custom", nil, m)

	broker.On("Publish", mock.Anything, "custom", mock.Anything).Return(errors.New("circuit breaker is open")).Once()

	err := svc.Emit(context.Background(), nil, "doctor.deleted", nil)
	assert.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("doctor.deleted", metrics.OutcomeFailure)))
}

func TestEmit_NilService(t *testing.T) {
	var svc *Service
	assert.NoError(t, svc.Emit(context.Background(), nil, "doctor.created", nil))
}

func TestRecorder_Written(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	auditor := audit.NewWithLogger(zap.New(core))
	broker := new(MockBroker)
	m := metrics.NewMetrics("test")
	rec := NewRecorder(auditor, NewService(broker, "", nil, m), m)
	sess := model.NewSession(1, "admin", model.RoleAdmin)

	broker.On("Publish", mock.Anything, DefaultChannel, mock.Anything).Return(errors.New("down")).Once()

	rec.Written(context.Background(), sess, model.EntityEquipment, model.OpCreate, 5, nil)

	broker.AssertExpectations(t)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, model.OpCreate, entry.Message)
	assert.Equal(t, int64(5), entry.ContextMap()["entity_id"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(model.EntityEquipment, model.OpCreate, metrics.OutcomeSuccess)))
}

func TestRecorder_Nil(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.Observe(model.EntityDoctor, model.OpList, nil)
		rec.Written(context.Background(), nil, model.EntityDoctor, model.OpDelete, 1, nil)
	})
}
