package services

import (
	"strings"

	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
)

// Tier weights in percent. Integer weights keep the sum exact before rounding.
const (
	requiredWeight  = 60
	importantWeight = 30
	optionalWeight  = 10
)

var (
	requiredFields = []domain.Field{
		domain.FieldTitle, domain.FieldStartDate, domain.FieldEndDate,
		domain.FieldVotingMethod, domain.FieldPermissionToVote, domain.FieldAuthMethod,
		domain.FieldQuestions,
	}
	importantFields = []domain.Field{
		domain.FieldDescription, domain.FieldStartTime, domain.FieldEndTime,
		domain.FieldTimezone, domain.FieldLogoURL,
	}
	optionalFields = []domain.Field{
		domain.FieldBannerURL, domain.FieldVideoURL, domain.FieldCustomVotingURL,
		domain.FieldPrimaryColor, domain.FieldDefaultLanguage,
	}
)

// CompletionScorer rates how much of a draft is filled in.
type CompletionScorer struct{}

func NewCompletionScorer() *CompletionScorer {
	return &CompletionScorer{}
}

// Score returns the weighted share of non-empty fields, 0 to 100.
func (CompletionScorer) Score(d domain.Draft) int {
	num := tierPoints(d, requiredFields, requiredWeight) +
		tierPoints(d, importantFields, importantWeight) +
		tierPoints(d, optionalFields, optionalWeight)
	return int(num + 0.5)
}

func tierPoints(d domain.Draft, fields []domain.Field, weight int) float64 {
	n := 0
	for _, f := range fields {
		if filled(d, f) {
			n++
		}
	}
	return float64(n*weight) / float64(len(fields))
}

// filled reports whether the field holds a value. A question list counts
// once it has an entry.
func filled(d domain.Draft, f domain.Field) bool {
	switch f {
	case domain.FieldQuestions:
		return len(d.Questions) > 0
	case domain.FieldCountries:
		return len(d.Countries) > 0
	case domain.FieldParticipationFee:
		return d.ParticipationFee != nil
	case domain.FieldRewardAmount:
		return d.RewardAmount != nil
	}
	return strings.TrimSpace(textValue(d, f)) != ""
}

func textValue(d domain.Draft, f domain.Field) string {
	switch f {
	case domain.FieldTitle:
		return d.Title
	case domain.FieldDescription:
		return d.Description
	case domain.FieldLogoURL:
		return d.LogoURL
	case domain.FieldBannerURL:
		return d.BannerURL
	case domain.FieldVideoURL:
		return d.VideoURL
	case domain.FieldCustomVotingURL:
		return d.CustomVotingURL
	case domain.FieldStartDate:
		return d.StartDate
	case domain.FieldStartTime:
		return d.StartTime
	case domain.FieldEndDate:
		return d.EndDate
	case domain.FieldEndTime:
		return d.EndTime
	case domain.FieldTimezone:
		return d.Timezone
	case domain.FieldVotingMethod:
		return d.VotingMethod
	case domain.FieldPermissionToVote:
		return d.PermissionToVote
	case domain.FieldAuthMethod:
		return d.AuthMethod
	case domain.FieldPrimaryColor:
		return d.PrimaryColor
	case domain.FieldDefaultLanguage:
		return d.DefaultLanguage
	}
	return ""
}
