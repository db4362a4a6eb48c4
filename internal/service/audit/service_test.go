package audit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jwalitptl/hospital-admin/internal/model"
)

func TestLog_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewWithLogger(zap.New(core))
	sess := model.NewSession(3, "house", model.RoleDoctor)

	svc.Log(context.Background(), sess, model.OpUpdate, model.EntityMedicalRecord, 12, map[string]string{"treatment": "Rest"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, model.OpUpdate, entry.Message)
	assert.Equal(t, "Doctor:house", fields["actor"])
	assert.Equal(t, sess.ID.String(), fields["session_id"])
	assert.Equal(t, model.EntityMedicalRecord, fields["entity_type"])
	assert.Contains(t, fields, "changes")
}

func TestLog_WithoutSession(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewWithLogger(zap.New(core))

	svc.Log(context.Background(), nil, model.OpDelete, model.EntityDoctor, 1, nil)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "anonymous", fields["actor"])
	assert.NotContains(t, fields, "changes")
}

func TestNewService_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	svc, err := NewService(path)
	require.NoError(t, err)

	svc.Log(context.Background(), model.NewSession(1, "admin", model.RoleAdmin), model.OpCreate, model.EntityDoctor, 7, nil)
	require.NoError(t, svc.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &line))
	assert.Equal(t, "create", line["action"])
	assert.Equal(t, "Admin:admin", line["actor"])
	assert.Contains(t, line, "created_at")
}

func TestNilService(t *testing.T) {
	var svc *Service
	assert.NotPanics(t, func() {
		svc.Log(context.Background(), nil, model.OpCreate, model.EntityDoctor, 1, nil)
	})
	assert.NoError(t, svc.Close())
}
