package services

import (
	"slices"
	"time"

	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
)

// Check inspects one field of the draft and records findings into out.
type Check func(c CheckContext, d domain.Draft, out domain.Issues)

// CheckContext is the evaluation environment shared by every check of one
// validation pass.
type CheckContext struct {
	Now    time.Time
	Policy domain.Policy
}

// FieldRule binds a field to its check and to the fields whose findings
// depend on its value.
type FieldRule struct {
	Field      domain.Field
	Check      Check
	Dependents []domain.Field
}

// CrossRule is a whole-draft check surfaced under a synthetic key.
type CrossRule struct {
	Key    string
	Inputs []domain.Field
	Check  Check
}

// ValidationEngine evaluates drafts against the registered rules. It holds
// no per-draft state; every method is a pure function of its arguments and
// the clock reading taken at the start of the call.
type ValidationEngine struct {
	clock  ports.Clock
	policy domain.Policy
	rules  map[domain.Field]FieldRule
	order  []domain.Field
	cross  []CrossRule
}

func NewValidationEngine(clock ports.Clock, policy domain.Policy) *ValidationEngine {
	v := &ValidationEngine{
		clock:  clock,
		policy: policy,
		rules:  make(map[domain.Field]FieldRule),
	}
	for _, rule := range defaultFieldRules() {
		v.Register(rule)
	}
	v.cross = defaultCrossRules()
	return v
}

// Register adds or replaces the rule for a field.
func (v *ValidationEngine) Register(rule FieldRule) {
	if _, ok := v.rules[rule.Field]; !ok {
		v.order = append(v.order, rule.Field)
	}
	v.rules[rule.Field] = rule
}

// Fields returns every registered field in registration order.
func (v *ValidationEngine) Fields() []domain.Field {
	return slices.Clone(v.order)
}

// Policy returns the limits the engine applies.
func (v *ValidationEngine) Policy() domain.Policy {
	return v.policy
}

func (v *ValidationEngine) context() CheckContext {
	return CheckContext{Now: v.clock.Now(), Policy: v.policy}
}

// ValidateField returns the findings of a single field, composite keys
// included. Unknown fields yield empty maps.
func (v *ValidationEngine) ValidateField(f domain.Field, d domain.Draft) domain.Issues {
	out := domain.NewIssues()
	v.runField(v.context(), f, d, out)
	return out
}

func (v *ValidationEngine) runField(c CheckContext, f domain.Field, d domain.Draft, out domain.Issues) {
	rule, ok := v.rules[f]
	if !ok || rule.Check == nil {
		return
	}
	rule.Check(c, d, out)
}

// Expand returns fields followed by their dependents, deduplicated, in
// first-seen order.
func (v *ValidationEngine) Expand(fields []domain.Field) []domain.Field {
	seen := make(map[domain.Field]bool, len(fields))
	var out []domain.Field
	var visit func(f domain.Field)
	visit = func(f domain.Field) {
		if seen[f] {
			return
		}
		seen[f] = true
		out = append(out, f)
		for _, dep := range v.rules[f].Dependents {
			visit(dep)
		}
	}
	for _, f := range fields {
		visit(f)
	}
	return out
}

// ValidateMany revalidates the given fields on top of prior. For each field
// every existing entry owned by it is cleared before the fresh result is
// inserted, so fixed problems disappear. A cross-field finding already
// present in prior is re-evaluated when one of its inputs is among fields;
// new cross-field findings are only raised by ValidateAll.
func (v *ValidationEngine) ValidateMany(fields []domain.Field, d domain.Draft, prior domain.Issues) domain.Issues {
	out := prior.Clone()
	c := v.context()
	for _, f := range fields {
		out.Drop(f)
		v.runField(c, f, d, out)
	}
	for _, rule := range v.cross {
		if !touches(rule.Inputs, fields) || !present(prior, rule.Key) {
			continue
		}
		delete(out.Errors, rule.Key)
		delete(out.Warnings, rule.Key)
		rule.Check(c, d, out)
	}
	return out
}

// ValidateAll evaluates every registered field and all cross-field rules
// from scratch. The result depends only on the draft and the clock reading.
func (v *ValidationEngine) ValidateAll(d domain.Draft) domain.Issues {
	out := domain.NewIssues()
	c := v.context()
	for _, f := range v.order {
		v.runField(c, f, d, out)
	}
	for _, rule := range v.cross {
		rule.Check(c, d, out)
	}
	return out
}

func touches(inputs, changed []domain.Field) bool {
	for _, f := range changed {
		if slices.Contains(inputs, f) {
			return true
		}
	}
	return false
}

func present(i domain.Issues, key string) bool {
	if _, ok := i.Errors[key]; ok {
		return true
	}
	_, ok := i.Warnings[key]
	return ok
}
