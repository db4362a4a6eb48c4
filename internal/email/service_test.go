package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSMTPService_Send(t *testing.T) {
	d := &fakeDialer{}
	svc := newSMTPService(d, "noreply@hospital.local")

	require.NoError(t, svc.Send(context.Background(), "jane@example.com", "Appointment", "See you"))
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"jane@example.com"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"noreply@hospital.local"}, d.sent[0].GetHeader("From"))
}

func TestSMTPService_BreakerOpensAfterFailures(t *testing.T) {
	d := &fakeDialer{err: errors.New("connection refused")}
	svc := newSMTPService(d, "noreply@hospital.local")

	for i := 0; i < 3; i++ {
		assert.Error(t, svc.Send(context.Background(), "a@b.co", "s", "b"))
	}
	assert.Equal(t, "open", svc.cb.State())
}

func TestNopService(t *testing.T) {
	assert.NoError(t, NewNopService().Send(context.Background(), "a@b.co", "s", "b"))
}
