package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/clock"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/storage/memory"
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
)

// testNow is a fixed wall clock; "tomorrow" below is relative to it.
var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

const (
	yesterday = "2026-03-09"
	tomorrow  = "2026-03-11"
)

var fiftyOneCountries = []string{
	"AD", "AE", "AF", "AG", "AL", "AM", "AO", "AR", "AT", "AU",
	"AZ", "BA", "BB", "BD", "BE", "BF", "BG", "BH", "BI", "BJ",
	"BN", "BO", "BR", "BS", "BT", "BW", "BY", "BZ", "CA", "CD",
	"CF", "CG", "CH", "CI", "CL", "CM", "CN", "CO", "CR", "CU",
	"CV", "CY", "CZ", "DE", "DJ", "DK", "DM", "DO", "DZ", "EC",
	"EE",
}

func newEngine(t *testing.T) (*ValidationEngine, *clock.Fake) {
	t.Helper()
	c := clock.NewFake(testNow)
	return NewValidationEngine(c, domain.DefaultPolicy()), c
}

func validQuestion() domain.Question {
	return domain.Question{
		ID:       uuid.New(),
		Text:     "Who should chair the board?",
		Type:     domain.QuestionSingleChoice,
		Required: true,
		Answers: []domain.Answer{
			{ID: uuid.New(), Text: "Alice"},
			{ID: uuid.New(), Text: "Bob"},
		},
	}
}

// validDraft passes every rule without warnings at testNow.
func validDraft() domain.Draft {
	d := domain.Defaults()
	d.Title = "Board of directors election"
	d.Description = "Annual election of the board members."
	d.StartDate = tomorrow
	d.StartTime = "09:00"
	d.EndDate = "2026-03-14"
	d.EndTime = "18:00"
	d.Questions = []domain.Question{validQuestion()}
	return d
}

type recordingScheduler struct {
	scheduled []domain.Draft
	cancels   int
}

func (r *recordingScheduler) Schedule(d domain.Draft) { r.scheduled = append(r.scheduled, d) }
func (r *recordingScheduler) CancelPending()          { r.cancels++ }

// countingStore wraps a ScratchStore and counts writes.
type countingStore struct {
	ports.ScratchStore
	mu   sync.Mutex
	puts int
	last []byte
}

func newCountingStore() *countingStore {
	return &countingStore{ScratchStore: memory.NewStore()}
}

func (s *countingStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.puts++
	s.last = value
	s.mu.Unlock()
	return s.ScratchStore.Put(ctx, key, value)
}

func (s *countingStore) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

var errStoreDown = errors.New("store down")

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errStoreDown }
func (failingStore) Put(context.Context, string, []byte) error   { return errStoreDown }
func (failingStore) Delete(context.Context, string) error        { return errStoreDown }
