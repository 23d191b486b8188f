package services

import (
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
)

// Scheduler is the part of the autosaver the draft store drives.
type Scheduler interface {
	Schedule(d domain.Draft)
	CancelPending()
}

// DraftStore owns the current draft and its validation findings. Every
// mutation produces a fresh Draft value; values already handed out are
// never modified, and callers receive copies they may modify freely.
type DraftStore struct {
	validator *ValidationEngine
	saver     Scheduler

	draft  domain.Draft
	issues domain.Issues
	dirty  bool
}

func NewDraftStore(validator *ValidationEngine, saver Scheduler) *DraftStore {
	s := &DraftStore{validator: validator, saver: saver}
	s.Initialize(nil)
	return s
}

// Initialize overlays seed on the defaults and clears all findings.
func (s *DraftStore) Initialize(seed *domain.Draft) domain.Draft {
	d := domain.Seeded(seed)
	d.AssignIDs()
	s.draft = d
	s.issues = domain.NewIssues()
	s.dirty = false
	return s.draft.Clone()
}

// Apply merges one patch, revalidates the touched fields and their
// dependents unless opts.SkipValidation is set, and schedules a snapshot.
// An empty patch is a no-op.
func (s *DraftStore) Apply(p domain.Patch, opts domain.ApplyOptions) domain.Draft {
	if p.IsEmpty() {
		return s.draft.Clone()
	}
	next := s.draft.Clone()
	p.ApplyTo(&next)
	next.AssignIDs()
	s.commit(next, p.Fields(), opts.SkipValidation)
	return s.draft.Clone()
}

// ApplyBatch merges patches in order as one mutation: one validation pass
// over the union of touched fields and one schedule call.
func (s *DraftStore) ApplyBatch(patches []domain.Patch) domain.Draft {
	next := s.draft.Clone()
	var touched []domain.Field
	for _, p := range patches {
		p.ApplyTo(&next)
		touched = append(touched, p.Fields()...)
	}
	if len(touched) == 0 {
		return s.draft.Clone()
	}
	next.AssignIDs()
	s.commit(next, touched, false)
	return s.draft.Clone()
}

func (s *DraftStore) commit(next domain.Draft, touched []domain.Field, skipValidation bool) {
	if !skipValidation {
		s.issues = s.validator.ValidateMany(s.validator.Expand(touched), next, s.issues)
	}
	s.draft = next
	s.dirty = true
	if s.saver != nil {
		s.saver.Schedule(next)
	}
}

// Reset cancels any pending snapshot and reinitializes from seed.
func (s *DraftStore) Reset(seed *domain.Draft) domain.Draft {
	if s.saver != nil {
		s.saver.CancelPending()
	}
	return s.Initialize(seed)
}

// Revalidate replaces the findings with a full validation pass.
func (s *DraftStore) Revalidate() domain.Issues {
	s.issues = s.validator.ValidateAll(s.draft)
	return s.issues.Clone()
}

// RevalidateFields merges a partial pass into the current findings.
func (s *DraftStore) RevalidateFields(fields []domain.Field) domain.Issues {
	s.issues = s.validator.ValidateMany(fields, s.draft, s.issues)
	return s.issues.Clone()
}

func (s *DraftStore) Draft() domain.Draft {
	return s.draft.Clone()
}

// Issues returns a copy of the current findings.
func (s *DraftStore) Issues() domain.Issues {
	return s.issues.Clone()
}

func (s *DraftStore) Dirty() bool {
	return s.dirty
}

// MarkClean clears the dirty flag without touching the draft.
func (s *DraftStore) MarkClean() {
	s.dirty = false
}
