package domain

import "time"

// Policy holds the numeric limits the validation rules enforce.
type Policy struct {
	TitleMinLength  int
	TitleMaxLength  int
	TitleShortWarn  int
	DescriptionMax  int
	DescriptionWarn int

	StartLeadWarn     time.Duration
	MinDuration       time.Duration
	MaxDuration       time.Duration
	ShortDurationWarn time.Duration

	FeeWarnAbove    float64
	RewardMax       float64
	WinnerMin       int
	WinnerMax       int
	WinnerWarnAbove int
	CountryWarnOver int

	SlugMinLength int
	SlugMaxLength int

	// AssumedMaxParticipants feeds the lottery economics heuristic. It is a
	// placeholder estimate, which is why that finding is only a warning.
	AssumedMaxParticipants int
}

// DefaultPolicy returns the limits used when no policy file is configured.
func DefaultPolicy() Policy {
	return Policy{
		TitleMinLength:  3,
		TitleMaxLength:  500,
		TitleShortWarn:  10,
		DescriptionMax:  5000,
		DescriptionWarn: 20,

		StartLeadWarn:     time.Hour,
		MinDuration:       time.Hour,
		MaxDuration:       8760 * time.Hour,
		ShortDurationWarn: 24 * time.Hour,

		FeeWarnAbove:    1000,
		RewardMax:       1_000_000,
		WinnerMin:       1,
		WinnerMax:       100,
		WinnerWarnAbove: 50,
		CountryWarnOver: 50,

		SlugMinLength: 3,
		SlugMaxLength: 200,

		AssumedMaxParticipants: 1000,
	}
}
