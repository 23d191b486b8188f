package domain

import (
	"strconv"
	"strings"
)

// Field identifies one editable attribute of a Draft. Its string value is the
// JSON name of the attribute and the key used in Issues.
type Field string

const (
	FieldTitle           Field = "title"
	FieldDescription     Field = "description"
	FieldLogoURL         Field = "logoUrl"
	FieldBannerURL       Field = "bannerUrl"
	FieldVideoURL        Field = "videoUrl"
	FieldCustomVotingURL Field = "customVotingUrl"

	FieldStartDate Field = "startDate"
	FieldStartTime Field = "startTime"
	FieldEndDate   Field = "endDate"
	FieldEndTime   Field = "endTime"
	FieldTimezone  Field = "timezone"

	FieldVotingMethod     Field = "votingMethod"
	FieldPermissionToVote Field = "permissionToVote"
	FieldIsPaid           Field = "isPaid"
	FieldParticipationFee Field = "participationFee"

	FieldCountries Field = "countries"

	FieldAuthMethod        Field = "authMethod"
	FieldBiometricRequired Field = "biometricRequired"

	FieldIsLotterized Field = "isLotterized"
	FieldRewardAmount Field = "rewardAmount"
	FieldWinnerCount  Field = "winnerCount"

	FieldPrimaryColor    Field = "primaryColor"
	FieldShowLiveResults Field = "showLiveResults"

	FieldDefaultLanguage    Field = "defaultLanguage"
	FieldSupportedLanguages Field = "supportedLanguages"

	FieldQuestions Field = "questions"
)

// Synthetic keys for cross-field findings that belong to no single input.
const (
	KeySchedule         = "_schedule"
	KeyLotteryEconomics = "_lotteryEconomics"
)

// Key returns the Issues key of the field itself.
func (f Field) Key() string {
	return string(f)
}

// Sub builds a composite key such as "questions_0_text" or
// "questions_1_answers_0_text". Each part is either a string or an int index.
func (f Field) Sub(parts ...any) string {
	var b strings.Builder
	b.WriteString(string(f))
	for _, p := range parts {
		b.WriteByte('_')
		switch v := p.(type) {
		case int:
			b.WriteString(strconv.Itoa(v))
		case string:
			b.WriteString(v)
		}
	}
	return b.String()
}

// Owns reports whether key is the field's own key or one of its composite keys.
func (f Field) Owns(key string) bool {
	return key == string(f) || strings.HasPrefix(key, string(f)+"_")
}
