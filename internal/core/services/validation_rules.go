package services

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	slugPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

var (
	votingMethods = []string{domain.VotingMethodPlurality, domain.VotingMethodRankedChoice, domain.VotingMethodApproval}
	permissions   = []string{domain.PermissionWorldCitizens, domain.PermissionCountrySpecific, domain.PermissionRegisteredMembers}
	authMethods   = []string{domain.AuthMethodPasskey, domain.AuthMethodOAuth, domain.AuthMethodEmailLink}
	questionTypes = []string{domain.QuestionSingleChoice, domain.QuestionMultipleChoice, domain.QuestionRankedChoice, domain.QuestionOpenText}
)

var scheduleInputs = []domain.Field{
	domain.FieldStartDate, domain.FieldStartTime,
	domain.FieldEndDate, domain.FieldEndTime,
	domain.FieldTimezone,
}

func defaultFieldRules() []FieldRule {
	return []FieldRule{
		{Field: domain.FieldTitle, Check: checkTitle},
		{Field: domain.FieldDescription, Check: checkDescription},
		{Field: domain.FieldStartDate, Check: checkStartDate, Dependents: []domain.Field{domain.FieldEndDate}},
		{Field: domain.FieldStartTime, Check: checkClock(domain.FieldStartTime, func(d domain.Draft) string { return d.StartTime }),
			Dependents: []domain.Field{domain.FieldStartDate, domain.FieldEndDate}},
		{Field: domain.FieldEndDate, Check: checkEndDate},
		{Field: domain.FieldEndTime, Check: checkClock(domain.FieldEndTime, func(d domain.Draft) string { return d.EndTime }),
			Dependents: []domain.Field{domain.FieldEndDate}},
		{Field: domain.FieldTimezone, Check: checkTimezone, Dependents: []domain.Field{domain.FieldStartDate, domain.FieldEndDate}},
		{Field: domain.FieldVotingMethod, Check: checkMember(domain.FieldVotingMethod, "Voting method", votingMethods, func(d domain.Draft) string { return d.VotingMethod })},
		{Field: domain.FieldPermissionToVote, Check: checkMember(domain.FieldPermissionToVote, "Voter eligibility", permissions, func(d domain.Draft) string { return d.PermissionToVote }),
			Dependents: []domain.Field{domain.FieldCountries}},
		{Field: domain.FieldIsPaid, Dependents: []domain.Field{domain.FieldParticipationFee}},
		{Field: domain.FieldParticipationFee, Check: checkParticipationFee},
		{Field: domain.FieldCountries, Check: checkCountries},
		{Field: domain.FieldAuthMethod, Check: checkMember(domain.FieldAuthMethod, "Authentication method", authMethods, func(d domain.Draft) string { return d.AuthMethod })},
		{Field: domain.FieldBiometricRequired},
		{Field: domain.FieldIsLotterized, Dependents: []domain.Field{domain.FieldRewardAmount, domain.FieldWinnerCount}},
		{Field: domain.FieldRewardAmount, Check: checkRewardAmount},
		{Field: domain.FieldWinnerCount, Check: checkWinnerCount},
		{Field: domain.FieldLogoURL, Check: checkMediaURL(domain.FieldLogoURL, func(d domain.Draft) string { return d.LogoURL })},
		{Field: domain.FieldBannerURL, Check: checkMediaURL(domain.FieldBannerURL, func(d domain.Draft) string { return d.BannerURL })},
		{Field: domain.FieldVideoURL, Check: checkMediaURL(domain.FieldVideoURL, func(d domain.Draft) string { return d.VideoURL })},
		{Field: domain.FieldCustomVotingURL, Check: checkSlug},
		{Field: domain.FieldPrimaryColor, Check: checkColor},
		{Field: domain.FieldShowLiveResults},
		{Field: domain.FieldDefaultLanguage, Check: checkDefaultLanguage},
		{Field: domain.FieldSupportedLanguages, Check: checkSupportedLanguages, Dependents: []domain.Field{domain.FieldDefaultLanguage}},
		{Field: domain.FieldQuestions, Check: checkQuestions},
	}
}

func defaultCrossRules() []CrossRule {
	return []CrossRule{
		{Key: domain.KeySchedule, Inputs: scheduleInputs, Check: checkSchedule},
		{
			Key: domain.KeyLotteryEconomics,
			Inputs: []domain.Field{
				domain.FieldIsPaid, domain.FieldParticipationFee,
				domain.FieldIsLotterized, domain.FieldRewardAmount, domain.FieldWinnerCount,
			},
			Check: checkLotteryEconomics,
		},
	}
}

func checkTitle(c CheckContext, d domain.Draft, out domain.Issues) {
	key := domain.FieldTitle.Key()
	title := norm.NFC.String(strings.TrimSpace(d.Title))
	n := utf8.RuneCountInString(title)
	switch {
	case n == 0:
		out.Error(key, "Title is required")
	case n < c.Policy.TitleMinLength:
		out.Error(key, fmt.Sprintf("Title must be at least %d characters", c.Policy.TitleMinLength))
	case n > c.Policy.TitleMaxLength:
		out.Error(key, fmt.Sprintf("Title must be at most %d characters", c.Policy.TitleMaxLength))
	case n < c.Policy.TitleShortWarn:
		out.Warn(key, "Short titles are hard for voters to recognize")
	}
}

func checkDescription(c CheckContext, d domain.Draft, out domain.Issues) {
	key := domain.FieldDescription.Key()
	n := utf8.RuneCountInString(norm.NFC.String(strings.TrimSpace(d.Description)))
	switch {
	case n > c.Policy.DescriptionMax:
		out.Error(key, fmt.Sprintf("Description must be at most %d characters", c.Policy.DescriptionMax))
	case n > 0 && n < c.Policy.DescriptionWarn:
		out.Warn(key, "A longer description helps voters understand the election")
	}
}

// dateProblem maps an instant resolution error onto the date field. Time and
// zone failures belong to their own fields, so they report nothing here.
func dateProblem(label string, err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrMissingDate):
		return label + " is required", true
	case errors.Is(err, domain.ErrInvalidDate):
		return label + " must use YYYY-MM-DD", true
	}
	return "", false
}

func checkStartDate(c CheckContext, d domain.Draft, out domain.Issues) {
	key := domain.FieldStartDate.Key()
	start, err := d.StartInstant()
	if err != nil {
		if msg, ok := dateProblem("Start date", err); ok {
			out.Error(key, msg)
		}
		return
	}
	if !start.After(c.Now) {
		out.Error(key, "Start must be in the future")
		return
	}
	if start.Sub(c.Now) < c.Policy.StartLeadWarn {
		out.Warn(key, "Voting starts very soon")
	}
}

func checkEndDate(c CheckContext, d domain.Draft, out domain.Issues) {
	key := domain.FieldEndDate.Key()
	end, err := d.EndInstant()
	if err != nil {
		if msg, ok := dateProblem("End date", err); ok {
			out.Error(key, msg)
		}
		return
	}
	start, err := d.StartInstant()
	if err != nil {
		return
	}
	w := domain.Window{Start: start, End: end}
	switch dur := w.Duration(); {
	case !w.Valid():
		out.Error(key, "End must be after start")
	case dur < c.Policy.MinDuration:
		out.Error(key, fmt.Sprintf("Voting must last at least %s", humanDuration(c.Policy.MinDuration)))
	case dur > c.Policy.MaxDuration:
		out.Error(key, fmt.Sprintf("Voting cannot last more than %s", humanDuration(c.Policy.MaxDuration)))
	case dur < c.Policy.ShortDurationWarn:
		out.Warn(key, fmt.Sprintf("Voting lasts less than %s", humanDuration(c.Policy.ShortDurationWarn)))
	}
}

func checkClock(f domain.Field, get func(domain.Draft) string) Check {
	return func(_ CheckContext, d domain.Draft, out domain.Issues) {
		if _, err := domain.ParseClock(get(d)); err != nil {
			out.Error(f.Key(), "Time must use HH:MM")
		}
	}
}

func checkTimezone(_ CheckContext, d domain.Draft, out domain.Issues) {
	if _, err := d.Location(); err != nil {
		out.Error(domain.FieldTimezone.Key(), "Unknown timezone")
	}
}

func checkMember(f domain.Field, label string, allowed []string, get func(domain.Draft) string) Check {
	return func(_ CheckContext, d domain.Draft, out domain.Issues) {
		v := get(d)
		switch {
		case v == "":
			out.Error(f.Key(), label+" is required")
		case !slices.Contains(allowed, v):
			out.Error(f.Key(), fmt.Sprintf("%s must be one of %s", label, strings.Join(allowed, ", ")))
		}
	}
}

func checkParticipationFee(c CheckContext, d domain.Draft, out domain.Issues) {
	if !d.IsPaid {
		return
	}
	key := domain.FieldParticipationFee.Key()
	switch {
	case d.ParticipationFee == nil:
		out.Error(key, "Participation fee is required for paid elections")
	case *d.ParticipationFee <= 0:
		out.Error(key, "Participation fee must be greater than 0")
	case *d.ParticipationFee > c.Policy.FeeWarnAbove:
		out.Warn(key, "High participation fees reduce turnout")
	}
}

func checkRewardAmount(c CheckContext, d domain.Draft, out domain.Issues) {
	if !d.IsLotterized {
		return
	}
	key := domain.FieldRewardAmount.Key()
	switch {
	case d.RewardAmount == nil:
		out.Error(key, "Reward amount is required for lotteries")
	case *d.RewardAmount <= 0:
		out.Error(key, "Reward amount must be greater than 0")
	case *d.RewardAmount > c.Policy.RewardMax:
		out.Error(key, fmt.Sprintf("Reward amount cannot exceed %.0f", c.Policy.RewardMax))
	}
}

func checkWinnerCount(c CheckContext, d domain.Draft, out domain.Issues) {
	if !d.IsLotterized {
		return
	}
	key := domain.FieldWinnerCount.Key()
	switch n := d.WinnerCount; {
	case n < c.Policy.WinnerMin || n > c.Policy.WinnerMax:
		out.Error(key, fmt.Sprintf("Winner count must be between %d and %d", c.Policy.WinnerMin, c.Policy.WinnerMax))
	case n > c.Policy.WinnerWarnAbove:
		out.Warn(key, "Many winners dilute each reward")
	}
}

func checkCountries(c CheckContext, d domain.Draft, out domain.Issues) {
	if !d.CountryRestricted() {
		return
	}
	f := domain.FieldCountries
	if len(d.Countries) == 0 {
		out.Error(f.Key(), "Select at least one country")
		return
	}
	for i, code := range d.Countries {
		if len(code) != 2 || code != strings.ToUpper(code) {
			out.Error(f.Sub(i), "Country must be an ISO 3166-1 alpha-2 code")
			continue
		}
		if _, err := language.ParseRegion(code); err != nil {
			out.Error(f.Sub(i), "Unknown country code")
		}
	}
	if len(d.Countries) > c.Policy.CountryWarnOver {
		out.Warn(f.Key(), "Long country lists are hard to review")
	}
}

func checkMediaURL(f domain.Field, get func(domain.Draft) string) Check {
	return func(_ CheckContext, d domain.Draft, out domain.Issues) {
		raw := strings.TrimSpace(get(d))
		if raw == "" {
			return
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			out.Error(f.Key(), "Must be an absolute http(s) URL")
		}
	}
}

func checkSlug(c CheckContext, d domain.Draft, out domain.Issues) {
	slug := d.CustomVotingURL
	if slug == "" {
		return
	}
	key := domain.FieldCustomVotingURL.Key()
	switch n := len(slug); {
	case n < c.Policy.SlugMinLength || n > c.Policy.SlugMaxLength:
		out.Error(key, fmt.Sprintf("Custom URL must be between %d and %d characters", c.Policy.SlugMinLength, c.Policy.SlugMaxLength))
	case !slugPattern.MatchString(slug):
		out.Error(key, "Custom URL may only contain letters, digits, hyphens and underscores")
	case strings.ContainsAny(slug[:1], "-_") || strings.ContainsAny(slug[n-1:], "-_"):
		out.Error(key, "Custom URL cannot start or end with a hyphen or underscore")
	}
}

func checkColor(_ CheckContext, d domain.Draft, out domain.Issues) {
	if d.PrimaryColor != "" && !colorPattern.MatchString(d.PrimaryColor) {
		out.Error(domain.FieldPrimaryColor.Key(), "Color must use #RRGGBB")
	}
}

func checkDefaultLanguage(_ CheckContext, d domain.Draft, out domain.Issues) {
	if d.DefaultLanguage == "" {
		return
	}
	key := domain.FieldDefaultLanguage.Key()
	tag, err := language.Parse(d.DefaultLanguage)
	if err != nil {
		out.Error(key, "Unsupported language tag")
		return
	}
	if len(d.SupportedLanguages) == 0 {
		return
	}
	for _, s := range d.SupportedLanguages {
		if other, err := language.Parse(s); err == nil && other == tag {
			return
		}
	}
	out.Warn(key, "Default language is not among the supported languages")
}

func checkSupportedLanguages(_ CheckContext, d domain.Draft, out domain.Issues) {
	f := domain.FieldSupportedLanguages
	for i, s := range d.SupportedLanguages {
		if _, err := language.Parse(s); err != nil {
			out.Error(f.Sub(i), "Unsupported language tag")
		}
	}
}

func checkQuestions(_ CheckContext, d domain.Draft, out domain.Issues) {
	f := domain.FieldQuestions
	if len(d.Questions) == 0 {
		out.Warn(f.Key(), "Add at least one question before publishing")
		return
	}
	for i, q := range d.Questions {
		if strings.TrimSpace(q.Text) == "" {
			out.Error(f.Sub(i, "text"), "Question text is required")
		}
		if !slices.Contains(questionTypes, q.Type) {
			out.Error(f.Sub(i, "type"), "Unknown question type")
			continue
		}
		if !q.IsChoice() {
			continue
		}
		if len(q.Answers) < 2 {
			out.Error(f.Sub(i, "answers"), "Choice questions need at least 2 answers")
		}
		for j, a := range q.Answers {
			if strings.TrimSpace(a.Text) == "" {
				out.Error(f.Sub(i, "answers", j, "text"), "Answer text is required")
			}
		}
	}
}

func checkSchedule(_ CheckContext, d domain.Draft, out domain.Issues) {
	w, err := d.Window()
	if err != nil {
		return
	}
	if !w.Valid() {
		out.Error(domain.KeySchedule, "Voting must end after it starts")
	}
}

// checkLotteryEconomics compares the prize pool against the revenue of a
// full turnout at the assumed participant cap. Free elections are skipped.
func checkLotteryEconomics(c CheckContext, d domain.Draft, out domain.Issues) {
	if !d.IsPaid || !d.IsLotterized || d.ParticipationFee == nil || d.RewardAmount == nil {
		return
	}
	pool := *d.RewardAmount * float64(d.WinnerCount)
	revenue := *d.ParticipationFee * float64(c.Policy.AssumedMaxParticipants)
	if pool > revenue {
		out.Warn(domain.KeyLotteryEconomics,
			fmt.Sprintf("Prize pool of %.2f exceeds expected fee revenue of %.2f", pool, revenue))
	}
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= 48*time.Hour && d%(24*time.Hour) == 0:
		return fmt.Sprintf("%d days", d/(24*time.Hour))
	case d == time.Hour:
		return "1 hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", d/time.Hour)
	}
	return d.String()
}
