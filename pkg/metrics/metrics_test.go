package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveOperation(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveOperation("doctor", "create", nil)
	m.ObserveOperation("doctor", "create", nil)
	m.ObserveOperation("doctor", "delete", errors.New("constraint"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("doctor", "create", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("doctor", "delete", OutcomeFailure)))
}

func TestMetrics_ObserveStoreAndLogin(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveStore("patient.get", time.Now(), nil)
	m.ObserveLogin(OutcomeLocked)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("patient.get", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(OutcomeLocked)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StoreLatency))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("doctor", "create", nil)
		m.ObserveStore("doctor.list", time.Now(), nil)
		m.ObserveLogin(OutcomeSuccess)
		m.ObserveEvent("doctor.created", nil)
	})
}
