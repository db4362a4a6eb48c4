package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/service/audit"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

const (
	defaultMaxAttempts = 5
	defaultLockout     = 5 * time.Minute
)

type Options struct {
	MaxAttempts int
	Lockout     time.Duration
	// Rate and Burst throttle attempts. A zero Rate disables throttling.
	Rate  float64
	Burst int
}

type Service struct {
	providers   []CredentialProvider
	attempts    *cache.Cache
	maxAttempts int
	lockout     time.Duration
	limiter     *rate.Limiter
	auditor     *audit.Service
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

// NewService tries providers in the order given; the first match wins.
func NewService(opts Options, auditor *audit.Service, log *logger.Logger, m *metrics.Metrics, providers ...CredentialProvider) *Service {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.Lockout <= 0 {
		opts.Lockout = defaultLockout
	}
	if log == nil {
		log = logger.Nop()
	}

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), burst)
	}

	return &Service{
		providers:   providers,
		attempts:    cache.New(opts.Lockout, 2*opts.Lockout),
		maxAttempts: opts.MaxAttempts,
		lockout:     opts.Lockout,
		limiter:     limiter,
		auditor:     auditor,
		logger:      log,
		metrics:     m,
	}
}

// Authenticate returns a new session on a match and (nil, false, nil) otherwise.
// A locked username fails with ErrUnauthorized without consulting any provider.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.Session, bool, error) {
	if s.isLocked(username) {
		s.metrics.ObserveLogin(metrics.OutcomeLocked)
		s.logger.Warn("login attempt on locked username", "username", username)
		return nil, false, apperrors.Unauthorized("too many failed attempts, try again later")
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, false, fmt.Errorf("failed to wait for login slot: %w", err)
		}
	}

	for _, p := range s.providers {
		sess, ok, err := p.Match(ctx, username, password)
		if err != nil {
			s.metrics.ObserveLogin(metrics.OutcomeFailure)
			return nil, false, fmt.Errorf("%s provider: %w", p.Name(), err)
		}
		if ok {
			s.attempts.Delete(attemptsKey(username))
			s.metrics.ObserveLogin(metrics.OutcomeSuccess)
			s.auditor.Log(ctx, sess, model.OpLogin, model.EntitySession, sess.UserID, nil)
			s.logger.Info("login succeeded", "username", username, "role", string(sess.Role))
			return sess, true, nil
		}
	}

	s.recordFailure(username)
	s.metrics.ObserveLogin(metrics.OutcomeNoMatch)
	s.logger.Info("login failed", "username", username)
	return nil, false, nil
}

func (s *Service) Logout(ctx context.Context, sess *model.Session) {
	if sess == nil {
		return
	}
	s.auditor.Log(ctx, sess, model.OpLogout, model.EntitySession, sess.UserID, nil)
	s.logger.Info("logged out", "username", sess.Username, "duration", time.Since(sess.StartedAt).String())
}

func (s *Service) isLocked(username string) bool {
	_, locked := s.attempts.Get(lockKey(username))
	return locked
}

func (s *Service) recordFailure(username string) {
	count := 1
	if v, found := s.attempts.Get(attemptsKey(username)); found {
		count = v.(int) + 1
	}

	if count >= s.maxAttempts {
		s.attempts.Delete(attemptsKey(username))
		s.attempts.Set(lockKey(username), true, s.lockout)
		s.logger.Warn("username locked", "username", username, "lockout", s.lockout.String())
		return
	}
	s.attempts.Set(attemptsKey(username), count, s.lockout)
}

func attemptsKey(username string) string { return "attempts:" + username }
func lockKey(username string) string { return "locked:" + username }
