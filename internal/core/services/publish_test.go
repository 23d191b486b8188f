package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
)

func TestPublishGate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Draft)
		errors map[string]string
		want   bool
	}{
		{"valid", func(*domain.Draft) {}, nil, true},
		{"outstanding errors", func(*domain.Draft) {}, map[string]string{"title": "x"}, false},
		{"missing title", func(d *domain.Draft) { d.Title = "" }, nil, false},
		{"no questions", func(d *domain.Draft) { d.Questions = nil }, nil, false},
		{"started already", func(d *domain.Draft) { d.StartDate = yesterday }, nil, false},
		{"ends before start", func(d *domain.Draft) { d.EndDate, d.EndTime = tomorrow, "08:00" }, nil, false},
		{"country list missing", func(d *domain.Draft) { d.PermissionToVote = domain.PermissionCountrySpecific }, nil, false},
		{"country list present", func(d *domain.Draft) {
			d.PermissionToVote = domain.PermissionCountrySpecific
			d.Countries = []string{"BR"}
		}, nil, true},
		{"paid without fee", func(d *domain.Draft) { d.IsPaid = true }, nil, false},
		{"paid with zero fee", func(d *domain.Draft) { d.IsPaid, d.ParticipationFee = true, domain.Float(0) }, nil, false},
		{"paid with fee", func(d *domain.Draft) { d.IsPaid, d.ParticipationFee = true, domain.Float(3) }, nil, true},
		{"lottery without reward", func(d *domain.Draft) { d.IsLotterized = true }, nil, false},
		{"lottery with reward", func(d *domain.Draft) { d.IsLotterized, d.RewardAmount = true, domain.Float(50) }, nil, true},
	}
	gate := NewPublishGate()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			assert.Equal(t, tt.want, gate.Evaluate(d, tt.errors, testNow))
		})
	}
}
