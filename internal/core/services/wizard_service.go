package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
)

// WizardDeps are the collaborators a wizard is built from.
type WizardDeps struct {
	Clock    ports.Clock
	Store    ports.ScratchStore
	Policy   domain.Policy
	AutoSave AutoSaveOptions
	Logger   *slog.Logger
}

type wizardService struct {
	drafts    *DraftStore
	validator *ValidationEngine
	gate      *StepGate
	saver     *AutoSaver
	scorer    *CompletionScorer
	publish   *PublishGate
	clock     ports.Clock
	logger    *slog.Logger

	step   int
	closed bool
}

// Wizard is the concrete caller API. It also exposes Flush for hosts that
// persist before shutting down.
type Wizard interface {
	ports.WizardService
	Flush(ctx context.Context)
}

func NewWizardService(deps WizardDeps, seed *domain.Draft) Wizard {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	validator := NewValidationEngine(deps.Clock, deps.Policy)
	saver := NewAutoSaver(deps.Store, deps.Clock, logger, deps.AutoSave)
	w := &wizardService{
		drafts:    NewDraftStore(validator, saver),
		validator: validator,
		gate:      NewStepGate(validator),
		saver:     saver,
		scorer:    NewCompletionScorer(),
		publish:   NewPublishGate(),
		clock:     deps.Clock,
		logger:    logger,
		step:      domain.FirstStep,
	}
	w.drafts.Initialize(seed)
	return w
}

func (w *wizardService) Apply(patch domain.Patch, opts domain.ApplyOptions) (domain.Draft, error) {
	if w.closed {
		return domain.Draft{}, domain.ErrWizardClosed
	}
	return w.drafts.Apply(patch, opts), nil
}

func (w *wizardService) ApplyBatch(patches []domain.Patch) (domain.Draft, error) {
	if w.closed {
		return domain.Draft{}, domain.ErrWizardClosed
	}
	return w.drafts.ApplyBatch(patches), nil
}

// Reset returns to the first step with a fresh draft.
func (w *wizardService) Reset(seed *domain.Draft) (domain.Draft, error) {
	if w.closed {
		return domain.Draft{}, domain.ErrWizardClosed
	}
	w.step = domain.FirstStep
	return w.drafts.Reset(seed), nil
}

// Advance validates the current step and merges its findings into the
// visible maps whether or not the step may be left.
func (w *wizardService) Advance() (int, error) {
	if w.closed {
		return w.step, domain.ErrWizardClosed
	}
	fields, err := StepFields(w.step)
	if err != nil {
		return w.step, err
	}
	w.drafts.RevalidateFields(fields)

	next, _, err := w.gate.Advance(w.step, w.drafts.Draft())
	if err != nil {
		if errors.Is(err, domain.ErrStepBlocked) {
			w.logger.Debug("step blocked", "step", w.step)
		}
		return w.step, err
	}
	w.step = next
	return w.step, nil
}

func (w *wizardService) Retreat() int {
	w.step = w.gate.Retreat(w.step)
	return w.step
}

func (w *wizardService) Step() int {
	return w.step
}

func (w *wizardService) Draft() domain.Draft {
	return w.drafts.Draft()
}

func (w *wizardService) Errors() map[string]string {
	return w.drafts.Issues().Errors
}

func (w *wizardService) Warnings() map[string]string {
	return w.drafts.Issues().Warnings
}

func (w *wizardService) CompletionScore() int {
	return w.scorer.Score(w.drafts.Draft())
}

// PublishReady evaluates against a full validation pass so fields the user
// never touched are considered too.
func (w *wizardService) PublishReady() bool {
	d := w.drafts.Draft()
	return w.publish.Evaluate(d, w.validator.ValidateAll(d).Errors, w.clock.Now())
}

func (w *wizardService) Dirty() bool {
	return w.drafts.Dirty()
}

func (w *wizardService) State() domain.WizardState {
	issues := w.drafts.Issues()
	return domain.WizardState{
		Step:            w.step,
		Draft:           w.drafts.Draft(),
		Errors:          issues.Errors,
		Warnings:        issues.Warnings,
		CompletionScore: w.CompletionScore(),
		PublishReady:    w.PublishReady(),
		Dirty:           w.drafts.Dirty(),
	}
}

// Recover loads the stored snapshot and, when found, makes it the current
// draft with a full validation pass. The slot is left untouched.
func (w *wizardService) Recover(ctx context.Context) (domain.Recovery, bool) {
	if w.closed {
		return domain.Recovery{}, false
	}
	rec, ok := w.saver.Load(ctx)
	if !ok {
		return domain.Recovery{}, false
	}
	w.saver.CancelPending()
	w.step = domain.FirstStep
	w.drafts.Initialize(&rec.Data)
	w.drafts.Revalidate()
	return rec, true
}

func (w *wizardService) DiscardRecovery(ctx context.Context) {
	w.saver.Clear(ctx)
}

// Submitted is called after the host published the draft. It drops any
// pending snapshot, clears the slot and marks the draft clean.
func (w *wizardService) Submitted(ctx context.Context) error {
	if w.closed {
		return domain.ErrWizardClosed
	}
	w.saver.CancelPending()
	w.saver.Clear(ctx)
	w.drafts.MarkClean()
	return nil
}

func (w *wizardService) Flush(ctx context.Context) {
	w.saver.Flush(ctx)
}

// Close cancels any pending snapshot. Further mutations fail.
func (w *wizardService) Close() {
	w.saver.CancelPending()
	w.closed = true
}
