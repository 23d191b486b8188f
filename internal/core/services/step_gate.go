package services

import (
	"fmt"
	"slices"

	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
)

var stepFields = map[int][]domain.Field{
	1: {
		domain.FieldTitle, domain.FieldDescription,
		domain.FieldStartDate, domain.FieldStartTime,
		domain.FieldEndDate, domain.FieldEndTime, domain.FieldTimezone,
	},
	2: {
		domain.FieldVotingMethod, domain.FieldPermissionToVote,
		domain.FieldIsPaid, domain.FieldParticipationFee,
	},
	3: {domain.FieldCountries},
	4: {domain.FieldAuthMethod, domain.FieldBiometricRequired},
	5: {
		domain.FieldIsLotterized, domain.FieldRewardAmount, domain.FieldWinnerCount,
		domain.FieldLogoURL, domain.FieldBannerURL, domain.FieldVideoURL,
		domain.FieldCustomVotingURL, domain.FieldPrimaryColor, domain.FieldShowLiveResults,
		domain.FieldDefaultLanguage, domain.FieldSupportedLanguages,
	},
	6: {domain.FieldQuestions},
}

// StepFields returns the fields gated by step.
func StepFields(step int) ([]domain.Field, error) {
	fields, ok := stepFields[step]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownStep, step)
	}
	return slices.Clone(fields), nil
}

// StepGate decides navigation between the wizard steps.
type StepGate struct {
	validator *ValidationEngine
}

func NewStepGate(validator *ValidationEngine) *StepGate {
	return &StepGate{validator: validator}
}

// Check validates the fields of step only. The returned issues hold those
// fields' findings and nothing else.
func (g *StepGate) Check(step int, d domain.Draft) (domain.Issues, error) {
	fields, err := StepFields(step)
	if err != nil {
		return domain.Issues{}, err
	}
	return g.validator.ValidateMany(fields, d, domain.NewIssues()), nil
}

// CanLeaveStep reports whether step has no blocking findings. Warnings
// never block.
func (g *StepGate) CanLeaveStep(step int, d domain.Draft) bool {
	issues, err := g.Check(step, d)
	return err == nil && !issues.HasErrors()
}

// Advance returns the next step when step may be left. It returns
// domain.ErrStepBlocked with the step's findings when it may not, and
// domain.ErrFinalStep on the last step.
func (g *StepGate) Advance(step int, d domain.Draft) (int, domain.Issues, error) {
	issues, err := g.Check(step, d)
	if err != nil {
		return step, issues, err
	}
	if issues.HasErrors() {
		return step, issues, domain.ErrStepBlocked
	}
	if step >= domain.LastStep {
		return step, issues, domain.ErrFinalStep
	}
	return step + 1, issues, nil
}

// Retreat moves back one step without validating.
func (g *StepGate) Retreat(step int) int {
	return max(domain.FirstStep, min(step, domain.LastStep)-1)
}
