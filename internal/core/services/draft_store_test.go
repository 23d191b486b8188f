package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
)

func newDraftStore(t *testing.T) (*DraftStore, *recordingScheduler) {
	t.Helper()
	v, _ := newEngine(t)
	rec := &recordingScheduler{}
	return NewDraftStore(v, rec), rec
}

func TestNewDraftStoreStartsFromDefaults(t *testing.T) {
	s, rec := newDraftStore(t)

	assert.Equal(t, domain.Defaults(), s.Draft())
	assert.False(t, s.Dirty())
	assert.Empty(t, s.Issues().Errors)
	assert.Empty(t, rec.scheduled)
}

func TestInitializeOverlaysSeedAndAssignsIDs(t *testing.T) {
	s, _ := newDraftStore(t)
	seed := domain.Draft{
		ElectionID: "e-42",
		Title:      "Seeded",
		IsPaid:     true,
		Questions: []domain.Question{{
			Text:    "Pick one",
			Type:    domain.QuestionSingleChoice,
			Answers: []domain.Answer{{Text: "A"}, {Text: "B"}},
		}},
	}

	d := s.Initialize(&seed)

	assert.Equal(t, "e-42", d.ElectionID)
	assert.Equal(t, "Seeded", d.Title)
	assert.Equal(t, "UTC", d.Timezone)
	assert.True(t, d.IsPaid)
	require.Len(t, d.Questions, 1)
	assert.NotEqual(t, uuid.Nil, d.Questions[0].ID)
	assert.NotEqual(t, uuid.Nil, d.Questions[0].Answers[1].ID)
	assert.Equal(t, uuid.Nil, seed.Questions[0].ID, "seed must not be modified")
}

func TestApplyProducesNewValue(t *testing.T) {
	s, _ := newDraftStore(t)
	s.Apply(domain.Patch{
		PermissionToVote: domain.String(domain.PermissionCountrySpecific),
		Countries:        domain.Strings("BR"),
	}, domain.ApplyOptions{})
	before := s.Draft()

	after := s.Apply(domain.Patch{Countries: domain.Strings("BR", "PT")}, domain.ApplyOptions{})

	assert.Equal(t, []string{"BR"}, before.Countries)
	assert.Equal(t, []string{"BR", "PT"}, after.Countries)
	after.Countries[0] = "XX"
	assert.Equal(t, "BR", s.Draft().Countries[0], "callers cannot reach into the store through a returned slice")
}

func TestApplyCopiesPatchSlices(t *testing.T) {
	s, _ := newDraftStore(t)
	countries := []string{"BR"}

	s.Apply(domain.Patch{Countries: &countries}, domain.ApplyOptions{})
	countries[0] = "XX"

	assert.Equal(t, []string{"BR"}, s.Draft().Countries)
}

func TestApplyValidatesAndSchedules(t *testing.T) {
	s, rec := newDraftStore(t)

	d := s.Apply(domain.Patch{Title: domain.String("T")}, domain.ApplyOptions{})

	assert.True(t, s.Dirty())
	assert.Contains(t, s.Issues().Errors, "title")
	require.Len(t, rec.scheduled, 1)
	assert.Equal(t, d, rec.scheduled[0])
}

func TestApplySkipValidation(t *testing.T) {
	s, rec := newDraftStore(t)

	s.Apply(domain.Patch{Title: domain.String("T")}, domain.ApplyOptions{SkipValidation: true})

	assert.Empty(t, s.Issues().Errors)
	assert.True(t, s.Dirty())
	assert.Len(t, rec.scheduled, 1)
}

func TestApplyEmptyPatchIsNoop(t *testing.T) {
	s, rec := newDraftStore(t)

	s.Apply(domain.Patch{}, domain.ApplyOptions{})

	assert.False(t, s.Dirty())
	assert.Empty(t, rec.scheduled)
}

func TestApplyRevalidatesDependents(t *testing.T) {
	s, _ := newDraftStore(t)
	s.Apply(domain.Patch{
		IsPaid:           domain.Bool(true),
		ParticipationFee: domain.Amount(domain.Float(10)),
	}, domain.ApplyOptions{})
	require.NotContains(t, s.Issues().Errors, "participationFee")

	s.Apply(domain.Patch{ParticipationFee: domain.Amount(nil)}, domain.ApplyOptions{})
	assert.Contains(t, s.Issues().Errors, "participationFee")

	s.Apply(domain.Patch{IsPaid: domain.Bool(false)}, domain.ApplyOptions{})
	assert.NotContains(t, s.Issues().Errors, "participationFee")
}

func TestRewardAmountErrorClearsWhenFixed(t *testing.T) {
	s, _ := newDraftStore(t)

	s.Apply(domain.Patch{
		IsLotterized: domain.Bool(true),
		RewardAmount: domain.Amount(domain.Float(0)),
	}, domain.ApplyOptions{})
	require.Contains(t, s.Issues().Errors, "rewardAmount")

	s.Apply(domain.Patch{RewardAmount: domain.Amount(domain.Float(100))}, domain.ApplyOptions{})
	assert.NotContains(t, s.Issues().Errors, "rewardAmount")
}

func TestCountryListLifecycle(t *testing.T) {
	s, _ := newDraftStore(t)

	s.Apply(domain.Patch{
		PermissionToVote: domain.String(domain.PermissionCountrySpecific),
		Countries:        domain.Strings(),
	}, domain.ApplyOptions{})
	require.Contains(t, s.Issues().Errors, "countries")

	s.Apply(domain.Patch{Countries: domain.Strings("BR")}, domain.ApplyOptions{})
	assert.NotContains(t, s.Issues().Errors, "countries")

	s.Apply(domain.Patch{Countries: &fiftyOneCountries}, domain.ApplyOptions{})
	assert.NotContains(t, s.Issues().Errors, "countries")
	assert.Contains(t, s.Issues().Warnings, "countries")
}

func TestApplyBatchIsOneMutation(t *testing.T) {
	s, rec := newDraftStore(t)

	d := s.ApplyBatch([]domain.Patch{
		{Title: domain.String("First")},
		{Title: domain.String("Second title"), StartDate: domain.String(yesterday)},
		{},
	})

	assert.Equal(t, "Second title", d.Title)
	assert.Len(t, rec.scheduled, 1)
	assert.NotContains(t, s.Issues().Warnings, "title")
	assert.Contains(t, s.Issues().Errors, "startDate")
}

func TestApplyBatchOfEmptyPatches(t *testing.T) {
	s, rec := newDraftStore(t)

	s.ApplyBatch([]domain.Patch{{}, {}})
	s.ApplyBatch(nil)

	assert.False(t, s.Dirty())
	assert.Empty(t, rec.scheduled)
}

func TestResetClearsEverything(t *testing.T) {
	s, rec := newDraftStore(t)
	s.Apply(domain.Patch{Title: domain.String("T")}, domain.ApplyOptions{})
	require.NotEmpty(t, s.Issues().Errors)

	d := s.Reset(&domain.Draft{Title: "Fresh start"})

	assert.Equal(t, "Fresh start", d.Title)
	assert.False(t, s.Dirty())
	assert.Empty(t, s.Issues().Errors)
	assert.Empty(t, s.Issues().Warnings)
	assert.Equal(t, 1, rec.cancels)
}

func TestIssuesReturnsCopy(t *testing.T) {
	s, _ := newDraftStore(t)
	s.Apply(domain.Patch{Title: domain.String("T")}, domain.ApplyOptions{})

	issues := s.Issues()
	delete(issues.Errors, "title")

	assert.Contains(t, s.Issues().Errors, "title")
}
