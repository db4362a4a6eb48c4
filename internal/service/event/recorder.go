package event

import (
	"context"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/service/audit"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

// Recorder fans a finished operation out to metrics and, on success, to the
// audit trail and the broker. A nil Recorder records nothing.
type Recorder struct {
	auditor *audit.Service
	events  *Service
	metrics *metrics.Metrics
}

func NewRecorder(auditor *audit.Service, events *Service, m *metrics.Metrics) *Recorder {
	return &Recorder{auditor: auditor, events: events, metrics: m}
}

func (r *Recorder) Observe(entity, op string, err error) {
	if r == nil {
		return
	}
	r.metrics.ObserveOperation(entity, op, err)
}

// Written records a successful write.
func (r *Recorder) Written(ctx context.Context, sess *model.Session, entity, op string, id int64, payload interface{}) {
	if r == nil {
		return
	}
	r.metrics.ObserveOperation(entity, op, nil)
	r.auditor.Log(ctx, sess, op, entity, id, payload)
	_ = r.events.Emit(ctx, sess, Type(entity, op), payload)
}
