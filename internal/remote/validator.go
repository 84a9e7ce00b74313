package remote

import (
	"context"
)

// Reference names a foreign identifier carried by a write request. ID is nil
// when the request did not supply the reference; optional references with a
// nil ID are skipped entirely.
type Reference struct {
	Name     string
	Service  string
	ID       *uint
	Required bool
}

// Result is the verdict of validating an ordered reference list. A zero
// Result means every reference resolved.
type Result struct {
	Name    string
	Service string
	Verdict Verdict
}

// OK reports whether validation passed.
func (r Result) OK() bool {
	return r.Name == ""
}

// Validator checks a write request's foreign references against the services
// that own them.
type Validator struct {
	checker ExistenceChecker
}

// NewValidator creates a Validator backed by the given checker.
func NewValidator(checker ExistenceChecker) *Validator {
	return &Validator{checker: checker}
}

// Validate evaluates references in declared order and stops at the first one
// that does not resolve to Exists. The failing reference's name and verdict
// are both surfaced so callers can distinguish bad input from a dependency
// being down.
func (v *Validator) Validate(ctx context.Context, refs []Reference) Result {
	for _, ref := range refs {
		if ref.ID == nil {
			if ref.Required {
				return Result{Name: ref.Name, Service: ref.Service, Verdict: NotFound}
			}
			continue
		}

		if verdict := v.checker.Check(ctx, ref.Service, *ref.ID); verdict != Exists {
			return Result{Name: ref.Name, Service: ref.Service, Verdict: verdict}
		}
	}
	return Result{}
}
