package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/clock"
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
)

type wizardFixture struct {
	wizard Wizard
	clock  *clock.Fake
	store  *countingStore
}

func newWizard(t *testing.T, seed *domain.Draft) wizardFixture {
	t.Helper()
	c := clock.NewFake(testNow)
	store := newCountingStore()
	w := NewWizardService(WizardDeps{
		Clock:    c,
		Store:    store,
		Policy:   domain.DefaultPolicy(),
		AutoSave: DefaultAutoSaveOptions(),
	}, seed)
	t.Cleanup(w.Close)
	return wizardFixture{wizard: w, clock: c, store: store}
}

func TestWizardStartsAtFirstStep(t *testing.T) {
	f := newWizard(t, nil)

	state := f.wizard.State()

	assert.Equal(t, domain.FirstStep, state.Step)
	assert.False(t, state.Dirty)
	assert.False(t, state.PublishReady)
	assert.Equal(t, 34, state.CompletionScore)
}

func TestWizardAdvanceSurfacesStepErrors(t *testing.T) {
	f := newWizard(t, nil)

	step, err := f.wizard.Advance()

	assert.ErrorIs(t, err, domain.ErrStepBlocked)
	assert.Equal(t, 1, step)
	assert.Contains(t, f.wizard.Errors(), "title")
	assert.Contains(t, f.wizard.Errors(), "startDate")
}

func TestWizardWalksAllSteps(t *testing.T) {
	seed := validDraft()
	f := newWizard(t, &seed)

	for want := 2; want <= domain.LastStep; want++ {
		step, err := f.wizard.Advance()
		require.NoError(t, err)
		assert.Equal(t, want, step)
	}
	_, err := f.wizard.Advance()
	assert.ErrorIs(t, err, domain.ErrFinalStep)
	assert.Equal(t, domain.LastStep, f.wizard.Step())

	assert.Equal(t, 5, f.wizard.Retreat())
	assert.True(t, f.wizard.PublishReady())
}

func TestWizardPublishReadyConsidersUntouchedFields(t *testing.T) {
	seed := validDraft()
	seed.LogoURL = "not a url"
	f := newWizard(t, &seed)

	assert.Empty(t, f.wizard.Errors(), "seeding does not validate")
	assert.False(t, f.wizard.PublishReady())

	_, err := f.wizard.Apply(domain.Patch{LogoURL: domain.String("")}, domain.ApplyOptions{})
	require.NoError(t, err)
	assert.True(t, f.wizard.PublishReady())
}

func TestWizardApplySchedulesSnapshot(t *testing.T) {
	f := newWizard(t, nil)

	_, err := f.wizard.Apply(domain.Patch{Title: domain.String("Board election")}, domain.ApplyOptions{})
	require.NoError(t, err)
	assert.True(t, f.wizard.Dirty())

	f.clock.Advance(2 * time.Second)
	assert.Equal(t, 1, f.store.Puts())
}

func TestWizardResetCancelsPendingSnapshot(t *testing.T) {
	f := newWizard(t, nil)
	_, err := f.wizard.Apply(domain.Patch{Title: domain.String("Board election")}, domain.ApplyOptions{})
	require.NoError(t, err)

	d, err := f.wizard.Reset(nil)
	require.NoError(t, err)
	f.clock.Advance(time.Minute)

	assert.Empty(t, d.Title)
	assert.Zero(t, f.store.Puts())
	assert.False(t, f.wizard.Dirty())
	assert.Equal(t, domain.FirstStep, f.wizard.Step())
}

func TestWizardRecover(t *testing.T) {
	ctx := context.Background()
	first := newWizard(t, nil)
	_, err := first.wizard.Apply(domain.Patch{
		Title:     domain.String("T1"),
		StartDate: domain.String(tomorrow),
	}, domain.ApplyOptions{})
	require.NoError(t, err)
	first.clock.Advance(2 * time.Second)
	first.wizard.Close()

	second := NewWizardService(WizardDeps{
		Clock:    first.clock,
		Store:    first.store,
		Policy:   domain.DefaultPolicy(),
		AutoSave: DefaultAutoSaveOptions(),
	}, nil)
	defer second.Close()

	rec, ok := second.Recover(ctx)
	require.True(t, ok)
	assert.True(t, rec.IsRecent)
	assert.Equal(t, "T1", second.Draft().Title)
	assert.Contains(t, second.Errors(), "title", "recovered drafts are fully validated")
	assert.Contains(t, second.Errors(), "endDate")

	second.DiscardRecovery(ctx)
	_, ok = second.Recover(ctx)
	assert.False(t, ok)
}

func TestWizardSubmittedClearsSlot(t *testing.T) {
	ctx := context.Background()
	seed := validDraft()
	f := newWizard(t, &seed)
	_, err := f.wizard.Apply(domain.Patch{Description: domain.String("Updated description for voters.")}, domain.ApplyOptions{})
	require.NoError(t, err)
	f.clock.Advance(2 * time.Second)
	require.Equal(t, 1, f.store.Puts())

	require.NoError(t, f.wizard.Submitted(ctx))

	assert.False(t, f.wizard.Dirty())
	_, ok := f.wizard.Recover(ctx)
	assert.False(t, ok)
}

func TestWizardCloseStopsEverything(t *testing.T) {
	f := newWizard(t, nil)
	_, err := f.wizard.Apply(domain.Patch{Title: domain.String("Board election")}, domain.ApplyOptions{})
	require.NoError(t, err)

	f.wizard.Close()
	f.wizard.Close()
	f.clock.Advance(time.Minute)

	assert.Zero(t, f.store.Puts(), "no write after disposal")
	_, err = f.wizard.Apply(domain.Patch{Title: domain.String("Late")}, domain.ApplyOptions{})
	assert.ErrorIs(t, err, domain.ErrWizardClosed)
	_, err = f.wizard.ApplyBatch(nil)
	assert.ErrorIs(t, err, domain.ErrWizardClosed)
	_, err = f.wizard.Advance()
	assert.ErrorIs(t, err, domain.ErrWizardClosed)
	assert.ErrorIs(t, f.wizard.Submitted(context.Background()), domain.ErrWizardClosed)
}

func TestWizardStateMatchesAccessors(t *testing.T) {
	f := newWizard(t, nil)
	_, err := f.wizard.ApplyBatch([]domain.Patch{
		{Title: domain.String("Vote")},
		{Description: domain.String("Short")},
	})
	require.NoError(t, err)

	state := f.wizard.State()

	assert.Equal(t, f.wizard.Draft(), state.Draft)
	assert.Equal(t, f.wizard.Errors(), state.Errors)
	assert.Equal(t, f.wizard.Warnings(), state.Warnings)
	assert.Equal(t, f.wizard.CompletionScore(), state.CompletionScore)
	assert.Contains(t, state.Warnings, "title")
	assert.Contains(t, state.Warnings, "description")
}
