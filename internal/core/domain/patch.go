package domain

import (
	"bytes"
	"encoding/json"
)

// Patch selectively mutates Draft fields. A nil pointer leaves the field
// untouched; a non-nil pointer replaces it, slices included.
type Patch struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	LogoURL         *string `json:"logoUrl,omitempty"`
	BannerURL       *string `json:"bannerUrl,omitempty"`
	VideoURL        *string `json:"videoUrl,omitempty"`
	CustomVotingURL *string `json:"customVotingUrl,omitempty"`

	StartDate *string `json:"startDate,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Timezone  *string `json:"timezone,omitempty"`

	VotingMethod     *string `json:"votingMethod,omitempty"`
	PermissionToVote *string `json:"permissionToVote,omitempty"`
	IsPaid           *bool   `json:"isPaid,omitempty"`
	// ParticipationFee is doubly optional: an outer nil leaves the fee
	// untouched, an inner nil clears it.
	ParticipationFee **float64 `json:"participationFee,omitempty"`

	Countries *[]string `json:"countries,omitempty"`

	AuthMethod        *string `json:"authMethod,omitempty"`
	BiometricRequired *bool   `json:"biometricRequired,omitempty"`

	IsLotterized *bool     `json:"isLotterized,omitempty"`
	RewardAmount **float64 `json:"rewardAmount,omitempty"`
	WinnerCount  *int      `json:"winnerCount,omitempty"`

	PrimaryColor    *string `json:"primaryColor,omitempty"`
	ShowLiveResults *bool   `json:"showLiveResults,omitempty"`

	DefaultLanguage    *string   `json:"defaultLanguage,omitempty"`
	SupportedLanguages *[]string `json:"supportedLanguages,omitempty"`

	Questions *[]Question `json:"questions,omitempty"`
}

// Fields lists the fields the patch touches, in declaration order.
func (p Patch) Fields() []Field {
	var out []Field
	add := func(set bool, f Field) {
		if set {
			out = append(out, f)
		}
	}
	add(p.Title != nil, FieldTitle)
	add(p.Description != nil, FieldDescription)
	add(p.LogoURL != nil, FieldLogoURL)
	add(p.BannerURL != nil, FieldBannerURL)
	add(p.VideoURL != nil, FieldVideoURL)
	add(p.CustomVotingURL != nil, FieldCustomVotingURL)
	add(p.StartDate != nil, FieldStartDate)
	add(p.StartTime != nil, FieldStartTime)
	add(p.EndDate != nil, FieldEndDate)
	add(p.EndTime != nil, FieldEndTime)
	add(p.Timezone != nil, FieldTimezone)
	add(p.VotingMethod != nil, FieldVotingMethod)
	add(p.PermissionToVote != nil, FieldPermissionToVote)
	add(p.IsPaid != nil, FieldIsPaid)
	add(p.ParticipationFee != nil, FieldParticipationFee)
	add(p.Countries != nil, FieldCountries)
	add(p.AuthMethod != nil, FieldAuthMethod)
	add(p.BiometricRequired != nil, FieldBiometricRequired)
	add(p.IsLotterized != nil, FieldIsLotterized)
	add(p.RewardAmount != nil, FieldRewardAmount)
	add(p.WinnerCount != nil, FieldWinnerCount)
	add(p.PrimaryColor != nil, FieldPrimaryColor)
	add(p.ShowLiveResults != nil, FieldShowLiveResults)
	add(p.DefaultLanguage != nil, FieldDefaultLanguage)
	add(p.SupportedLanguages != nil, FieldSupportedLanguages)
	add(p.Questions != nil, FieldQuestions)
	return out
}

// IsEmpty reports whether the patch touches nothing.
func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// ApplyTo writes the patch into d. Callers pass a clone; slices from the
// patch are copied so the caller may keep mutating its own.
func (p Patch) ApplyTo(d *Draft) {
	setString(&d.Title, p.Title)
	setString(&d.Description, p.Description)
	setString(&d.LogoURL, p.LogoURL)
	setString(&d.BannerURL, p.BannerURL)
	setString(&d.VideoURL, p.VideoURL)
	setString(&d.CustomVotingURL, p.CustomVotingURL)
	setString(&d.StartDate, p.StartDate)
	setString(&d.StartTime, p.StartTime)
	setString(&d.EndDate, p.EndDate)
	setString(&d.EndTime, p.EndTime)
	setString(&d.Timezone, p.Timezone)
	setString(&d.VotingMethod, p.VotingMethod)
	setString(&d.PermissionToVote, p.PermissionToVote)
	setString(&d.AuthMethod, p.AuthMethod)
	setString(&d.PrimaryColor, p.PrimaryColor)
	setString(&d.DefaultLanguage, p.DefaultLanguage)

	setBool(&d.IsPaid, p.IsPaid)
	setBool(&d.BiometricRequired, p.BiometricRequired)
	setBool(&d.IsLotterized, p.IsLotterized)
	setBool(&d.ShowLiveResults, p.ShowLiveResults)

	if p.ParticipationFee != nil {
		d.ParticipationFee = cloneFloat(*p.ParticipationFee)
	}
	if p.RewardAmount != nil {
		d.RewardAmount = cloneFloat(*p.RewardAmount)
	}
	if p.WinnerCount != nil {
		d.WinnerCount = *p.WinnerCount
	}
	if p.Countries != nil {
		d.Countries = cloneStrings(*p.Countries)
	}
	if p.SupportedLanguages != nil {
		d.SupportedLanguages = cloneStrings(*p.SupportedLanguages)
	}
	if p.Questions != nil {
		d.Questions = cloneQuestions(*p.Questions)
	}
}

// UnmarshalJSON keeps an explicit null on the amount fields as "clear"
// rather than "untouched".
func (p *Patch) UnmarshalJSON(data []byte) error {
	type plain Patch
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Patch(decoded)
	if isNull(raw, FieldParticipationFee) {
		p.ParticipationFee = Amount(nil)
	}
	if isNull(raw, FieldRewardAmount) {
		p.RewardAmount = Amount(nil)
	}
	return nil
}

func isNull(raw map[string]json.RawMessage, f Field) bool {
	v, ok := raw[f.Key()]
	return ok && bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// String, Bool, Int, Amount, Strings and Questions build patch values inline:
//
//	domain.Patch{Title: domain.String("Board election")}
func String(v string) *string { return &v }

func Bool(v bool) *bool { return &v }

func Int(v int) *int { return &v }

// Amount sets an optional amount; Amount(nil) clears it.
func Amount(v *float64) **float64 {
	c := cloneFloat(v)
	return &c
}

func Strings(v ...string) *[]string {
	if v == nil {
		v = []string{}
	}
	return &v
}

func Questions(v ...Question) *[]Question {
	if v == nil {
		v = []Question{}
	}
	return &v
}
