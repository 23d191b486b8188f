package domain

import "maps"

// Issues carries the two severities of validation findings. Errors block
// step advancement and publishing; warnings are informational.
type Issues struct {
	Errors   map[string]string `json:"errors"`
	Warnings map[string]string `json:"warnings"`
}

// NewIssues returns an Issues value with empty, non-nil maps.
func NewIssues() Issues {
	return Issues{Errors: map[string]string{}, Warnings: map[string]string{}}
}

// Clone copies both maps.
func (i Issues) Clone() Issues {
	out := NewIssues()
	maps.Copy(out.Errors, i.Errors)
	maps.Copy(out.Warnings, i.Warnings)
	return out
}

// Error records a blocking finding.
func (i Issues) Error(key, message string) {
	i.Errors[key] = message
}

// Warn records an informational finding.
func (i Issues) Warn(key, message string) {
	i.Warnings[key] = message
}

// Merge copies every entry of other into i, overwriting existing keys.
func (i Issues) Merge(other Issues) {
	maps.Copy(i.Errors, other.Errors)
	maps.Copy(i.Warnings, other.Warnings)
}

// Drop removes the field's own key and all of its composite keys.
func (i Issues) Drop(f Field) {
	maps.DeleteFunc(i.Errors, func(k, _ string) bool { return f.Owns(k) })
	maps.DeleteFunc(i.Warnings, func(k, _ string) bool { return f.Owns(k) })
}

// HasErrors reports whether any blocking finding is present.
func (i Issues) HasErrors() bool {
	return len(i.Errors) > 0
}
