package audit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jwalitptl/hospital-admin/internal/model"
)

// Service appends one JSON line per successful write.
type Service struct {
	logger *zap.Logger
}

// NewService writes to path. The file is opened in append mode.
func NewService(path string) (*Service, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "created_at"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.MessageKey = "action"

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build audit logger: %w", err)
	}
	return &Service{logger: logger}, nil
}

// NewWithLogger wraps an existing zap logger.
func NewWithLogger(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

func NewNop() *Service {
	return &Service{logger: zap.NewNop()}
}

func (s *Service) Log(ctx context.Context, sess *model.Session, action, entityType string, entityID int64, changes interface{}) {
	if s == nil {
		return
	}
	entry := model.AuditEntry{
		Actor:      sess.Actor(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changes,
		CreatedAt:  time.Now(),
	}
	if sess != nil {
		entry.SessionID = sess.ID.String()
	}

	fields := []zap.Field{
		zap.String("session_id", entry.SessionID),
		zap.String("actor", entry.Actor),
		zap.String("entity_type", entry.EntityType),
		zap.Int64("entity_id", entry.EntityID),
	}
	if changes != nil {
		fields = append(fields, zap.Any("changes", changes))
	}
	s.logger.Info(entry.Action, fields...)
}

func (s *Service) Close() error {
	if s == nil {
		return nil
	}
	// Sync on a console fd can fail harmlessly; the file target is what matters.
	_ = s.logger.Sync()
	return nil
}
