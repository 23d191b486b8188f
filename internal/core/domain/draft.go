package domain

import (
	"github.com/google/uuid"
)

// Voting methods accepted by the wizard.
const (
	VotingMethodPlurality    = "plurality"
	VotingMethodRankedChoice = "ranked_choice"
	VotingMethodApproval     = "approval"
)

// Permission scopes for who may vote.
const (
	PermissionWorldCitizens     = "world_citizens"
	PermissionCountrySpecific   = "country_specific"
	PermissionRegisteredMembers = "registered_members"
)

// Authentication methods a voter may be asked to use.
const (
	AuthMethodPasskey   = "passkey"
	AuthMethodOAuth     = "oauth"
	AuthMethodEmailLink = "email_link"
)

// Question types.
const (
	QuestionSingleChoice   = "single_choice"
	QuestionMultipleChoice = "multiple_choice"
	QuestionRankedChoice   = "ranked_choice"
	QuestionOpenText       = "open_text"
)

// Draft is the election configuration under construction.
//
// A Draft is treated as an immutable value once handed out: every mutation
// goes through Clone so that slices are never shared between versions.
type Draft struct {
	ElectionID string `json:"electionId,omitempty"`

	Title           string `json:"title"`
	Description     string `json:"description"`
	LogoURL         string `json:"logoUrl"`
	BannerURL       string `json:"bannerUrl"`
	VideoURL        string `json:"videoUrl"`
	CustomVotingURL string `json:"customVotingUrl"`

	StartDate string `json:"startDate"`
	StartTime string `json:"startTime"`
	EndDate   string `json:"endDate"`
	EndTime   string `json:"endTime"`
	Timezone  string `json:"timezone"`

	VotingMethod     string   `json:"votingMethod"`
	PermissionToVote string   `json:"permissionToVote"`
	IsPaid           bool     `json:"isPaid"`
	ParticipationFee *float64 `json:"participationFee,omitempty"`

	Countries []string `json:"countries"`

	AuthMethod        string `json:"authMethod"`
	BiometricRequired bool   `json:"biometricRequired"`

	IsLotterized bool     `json:"isLotterized"`
	RewardAmount *float64 `json:"rewardAmount,omitempty"`
	WinnerCount  int      `json:"winnerCount"`

	PrimaryColor    string `json:"primaryColor"`
	ShowLiveResults bool   `json:"showLiveResults"`

	DefaultLanguage    string   `json:"defaultLanguage"`
	SupportedLanguages []string `json:"supportedLanguages"`

	Questions []Question `json:"questions"`
}

// Question is one ballot question.
type Question struct {
	ID       uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	Type     string    `json:"type"`
	Required bool      `json:"required"`
	Answers  []Answer  `json:"answers"`
}

// Answer is one selectable option of a Question.
type Answer struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

// IsChoice reports whether the question type requires a list of answers.
func (q Question) IsChoice() bool {
	switch q.Type {
	case QuestionSingleChoice, QuestionMultipleChoice, QuestionRankedChoice:
		return true
	default:
		return false
	}
}

// CountryRestricted reports whether voting is limited to a country list.
func (d Draft) CountryRestricted() bool {
	return d.PermissionToVote == PermissionCountrySpecific
}

// Defaults returns the empty draft a new wizard starts from.
func Defaults() Draft {
	return Draft{
		Timezone:         "UTC",
		VotingMethod:     VotingMethodPlurality,
		PermissionToVote: PermissionWorldCitizens,
		AuthMethod:       AuthMethodPasskey,
		WinnerCount:      1,
		DefaultLanguage:  "en",
	}
}

// Seeded overlays the non-zero fields of seed on top of Defaults. Boolean
// flags are always taken from the seed.
func Seeded(seed *Draft) Draft {
	d := Defaults()
	if seed == nil {
		return d
	}
	s := seed.Clone()

	d.ElectionID = s.ElectionID
	overlay(&d.Title, s.Title)
	overlay(&d.Description, s.Description)
	overlay(&d.LogoURL, s.LogoURL)
	overlay(&d.BannerURL, s.BannerURL)
	overlay(&d.VideoURL, s.VideoURL)
	overlay(&d.CustomVotingURL, s.CustomVotingURL)
	overlay(&d.StartDate, s.StartDate)
	overlay(&d.StartTime, s.StartTime)
	overlay(&d.EndDate, s.EndDate)
	overlay(&d.EndTime, s.EndTime)
	overlay(&d.Timezone, s.Timezone)
	overlay(&d.VotingMethod, s.VotingMethod)
	overlay(&d.PermissionToVote, s.PermissionToVote)
	overlay(&d.AuthMethod, s.AuthMethod)
	overlay(&d.PrimaryColor, s.PrimaryColor)
	overlay(&d.DefaultLanguage, s.DefaultLanguage)

	d.IsPaid = s.IsPaid
	d.BiometricRequired = s.BiometricRequired
	d.IsLotterized = s.IsLotterized
	d.ShowLiveResults = s.ShowLiveResults

	if s.ParticipationFee != nil {
		d.ParticipationFee = s.ParticipationFee
	}
	if s.RewardAmount != nil {
		d.RewardAmount = s.RewardAmount
	}
	if s.WinnerCount != 0 {
		d.WinnerCount = s.WinnerCount
	}
	if len(s.Countries) > 0 {
		d.Countries = s.Countries
	}
	if len(s.SupportedLanguages) > 0 {
		d.SupportedLanguages = s.SupportedLanguages
	}
	if len(s.Questions) > 0 {
		d.Questions = s.Questions
	}
	return d
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Clone returns a deep copy that shares no slices or pointers with d.
func (d Draft) Clone() Draft {
	out := d
	out.ParticipationFee = cloneFloat(d.ParticipationFee)
	out.RewardAmount = cloneFloat(d.RewardAmount)
	out.Countries = cloneStrings(d.Countries)
	out.SupportedLanguages = cloneStrings(d.SupportedLanguages)
	out.Questions = cloneQuestions(d.Questions)
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneQuestions(values []Question) []Question {
	if values == nil {
		return nil
	}
	out := make([]Question, len(values))
	for i, q := range values {
		out[i] = q
		if q.Answers != nil {
			out[i].Answers = make([]Answer, len(q.Answers))
			copy(out[i].Answers, q.Answers)
		}
	}
	return out
}

// AssignIDs gives every question and answer without an id a fresh one.
func (d *Draft) AssignIDs() {
	for i := range d.Questions {
		if d.Questions[i].ID == uuid.Nil {
			d.Questions[i].ID = uuid.New()
		}
		for j := range d.Questions[i].Answers {
			if d.Questions[i].Answers[j].ID == uuid.Nil {
				d.Questions[i].Answers[j].ID = uuid.New()
			}
		}
	}
}

// Float returns a pointer to v, for building Patches and seeds.
func Float(v float64) *float64 {
	return &v
}
