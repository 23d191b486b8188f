package services

import (
	"time"

	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
)

// PublishGate decides whether a draft may be submitted.
type PublishGate struct{}

func NewPublishGate() *PublishGate {
	return &PublishGate{}
}

// Evaluate reports true when the required fields are present, the schedule
// starts in the future and ends after it starts, errors is empty, and the
// options the draft switched on are fully configured.
func (PublishGate) Evaluate(d domain.Draft, errors map[string]string, now time.Time) bool {
	if len(errors) > 0 {
		return false
	}
	for _, f := range requiredFields {
		if !filled(d, f) {
			return false
		}
	}
	w, err := d.Window()
	if err != nil || !w.Start.After(now) || !w.Valid() {
		return false
	}
	if d.CountryRestricted() && len(d.Countries) == 0 {
		return false
	}
	if d.IsPaid && !positive(d.ParticipationFee) {
		return false
	}
	if d.IsLotterized && !positive(d.RewardAmount) {
		return false
	}
	return true
}

func positive(v *float64) bool {
	return v != nil && *v > 0
}
