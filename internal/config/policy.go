package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// PolicyFile models the optional YAML file overriding validation limits.
// Zero values keep the built-in default.
type PolicyFile struct {
	Title struct {
		Min       int `yaml:"min"`
		Max       int `yaml:"max"`
		ShortWarn int `yaml:"short_warn"`
	} `yaml:"title"`
	Description struct {
		Max       int `yaml:"max"`
		ShortWarn int `yaml:"short_warn"`
	} `yaml:"description"`
	Schedule struct {
		StartLeadWarn     time.Duration `yaml:"start_lead_warn"`
		MinDuration       time.Duration `yaml:"min_duration"`
		MaxDuration       time.Duration `yaml:"max_duration"`
		ShortDurationWarn time.Duration `yaml:"short_duration_warn"`
	} `yaml:"schedule"`
	Monetization struct {
		FeeWarnAbove           float64 `yaml:"fee_warn_above"`
		RewardMax              float64 `yaml:"reward_max"`
		AssumedMaxParticipants int     `yaml:"assumed_max_participants"`
	} `yaml:"monetization"`
	Lottery struct {
		WinnerMin       int `yaml:"winner_min"`
		WinnerMax       int `yaml:"winner_max"`
		WinnerWarnAbove int `yaml:"winner_warn_above"`
	} `yaml:"lottery"`
	Countries struct {
		WarnOver int `yaml:"warn_over"`
	} `yaml:"countries"`
	Slug struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	} `yaml:"slug"`
}

// LoadPolicy reads path into a Policy. An empty path yields the defaults; a
// missing file is an error.
func LoadPolicy(path string) (domain.Policy, error) {
	if path == "" {
		return domain.DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Policy{}, fmt.Errorf("policy file %s does not exist", path)
		}
		return domain.Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes YAML policy overrides on top of the defaults.
func ParsePolicy(data []byte) (domain.Policy, error) {
	var file PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Policy{}, fmt.Errorf("parse policy: %w", err)
	}
	p := file.applyDefaults(domain.DefaultPolicy())
	if err := validatePolicy(p); err != nil {
		return domain.Policy{}, err
	}
	return p, nil
}

func (f PolicyFile) applyDefaults(p domain.Policy) domain.Policy {
	setInt(&p.TitleMinLength, f.Title.Min)
	setInt(&p.TitleMaxLength, f.Title.Max)
	setInt(&p.TitleShortWarn, f.Title.ShortWarn)
	setInt(&p.DescriptionMax, f.Description.Max)
	setInt(&p.DescriptionWarn, f.Description.ShortWarn)

	setDuration(&p.StartLeadWarn, f.Schedule.StartLeadWarn)
	setDuration(&p.MinDuration, f.Schedule.MinDuration)
	setDuration(&p.MaxDuration, f.Schedule.MaxDuration)
	setDuration(&p.ShortDurationWarn, f.Schedule.ShortDurationWarn)

	if f.Monetization.FeeWarnAbove > 0 {
		p.FeeWarnAbove = f.Monetization.FeeWarnAbove
	}
	if f.Monetization.RewardMax > 0 {
		p.RewardMax = f.Monetization.RewardMax
	}
	setInt(&p.AssumedMaxParticipants, f.Monetization.AssumedMaxParticipants)

	setInt(&p.WinnerMin, f.Lottery.WinnerMin)
	setInt(&p.WinnerMax, f.Lottery.WinnerMax)
	setInt(&p.WinnerWarnAbove, f.Lottery.WinnerWarnAbove)
	setInt(&p.CountryWarnOver, f.Countries.WarnOver)
	setInt(&p.SlugMinLength, f.Slug.Min)
	setInt(&p.SlugMaxLength, f.Slug.Max)
	return p
}

func validatePolicy(p domain.Policy) error {
	switch {
	case p.TitleMinLength > p.TitleMaxLength:
		return fmt.Errorf("policy: title min %d exceeds max %d", p.TitleMinLength, p.TitleMaxLength)
	case p.MinDuration > p.MaxDuration:
		return fmt.Errorf("policy: min duration %s exceeds max %s", p.MinDuration, p.MaxDuration)
	case p.WinnerMin > p.WinnerMax:
		return fmt.Errorf("policy: winner min %d exceeds max %d", p.WinnerMin, p.WinnerMax)
	case p.SlugMinLength > p.SlugMaxLength:
		return fmt.Errorf("policy: slug min %d exceeds max %d", p.SlugMinLength, p.SlugMaxLength)
	}
	return nil
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
