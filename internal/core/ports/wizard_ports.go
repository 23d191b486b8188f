package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
)

// WizardService is the caller API of one election configuration wizard.
// Implementations are not safe for concurrent use; hosts serialize access.
type WizardService interface {
	Apply(patch domain.Patch, opts domain.ApplyOptions) (domain.Draft, error)
	ApplyBatch(patches []domain.Patch) (domain.Draft, error)
	Reset(seed *domain.Draft) (domain.Draft, error)
	Advance() (int, error)
	Retreat() int

	Step() int
	Draft() domain.Draft
	Errors() map[string]string
	Warnings() map[string]string
	CompletionScore() int
	PublishReady() bool
	Dirty() bool
	// State bundles every read accessor in one value.
	State() domain.WizardState

	Recover(ctx context.Context) (domain.Recovery, bool)
	DiscardRecovery(ctx context.Context)
	Submitted(ctx context.Context) error
	Close()
}

// SessionService keeps wizards alive between requests of a remote host.
type SessionService interface {
	Create(ctx context.Context, seed *domain.Draft) (uuid.UUID, domain.WizardState, error)
	// With runs fn while holding the session exclusively.
	With(ctx context.Context, id uuid.UUID, fn func(WizardService) error) error
	Dispose(ctx context.Context, id uuid.UUID) error
}
