package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
)

// WizardFactory builds the wizard of a new session. The id lets factories
// derive a per-session autosave key.
type WizardFactory func(id uuid.UUID, seed *domain.Draft) Wizard

type session struct {
	mu     sync.Mutex
	wizard Wizard
}

type sessionService struct {
	factory WizardFactory
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

// SessionRegistry is the session service plus shutdown support.
type SessionRegistry interface {
	ports.SessionService
	// Shutdown flushes and closes every session.
	Shutdown(ctx context.Context)
	Len() int
}

func NewSessionService(factory WizardFactory, logger *slog.Logger) SessionRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionService{
		factory:  factory,
		logger:   logger,
		sessions: make(map[uuid.UUID]*session),
	}
}

func (s *sessionService) Create(ctx context.Context, seed *domain.Draft) (uuid.UUID, domain.WizardState, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, domain.WizardState{}, err
	}
	id := uuid.New()
	w := s.factory(id, seed)

	s.mu.Lock()
	s.sessions[id] = &session{wizard: w}
	s.mu.Unlock()

	s.logger.Info("wizard session created", "session_id", id)
	return id, w.State(), nil
}

func (s *sessionService) With(ctx context.Context, id uuid.UUID, fn func(ports.WizardService) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrWizardNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.wizard)
}

func (s *sessionService) Dispose(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return domain.ErrWizardNotFound
	}

	sess.mu.Lock()
	sess.wizard.Close()
	sess.mu.Unlock()
	s.logger.Info("wizard session disposed", "session_id", id)
	return nil
}

func (s *sessionService) Shutdown(ctx context.Context) {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*session)
	s.mu.Unlock()

	for id, sess := range sessions {
		sess.mu.Lock()
		sess.wizard.Flush(ctx)
		sess.wizard.Close()
		sess.mu.Unlock()
		s.logger.Debug("wizard session flushed", "session_id", id)
	}
}

func (s *sessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
