package core

import (
	"context"
	"fmt"

	"schedcore/pkg/domain"
)

// NewMissingQuarterRule returns the rule emitting one standing diagnostic when
// the variant has no quarter set.
func NewMissingQuarterRule() domain.Rule {
	return missingQuarterRule{}
}

type missingQuarterRule struct{}

func (missingQuarterRule) Name() string { return "missing_quarter" }

func (missingQuarterRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	variant := view.Variant()
	if variant == nil || variant.Quarter != "" {
		return domain.Result{}, nil
	}
	return domain.Result{Diagnostics: []domain.Diagnostic{{
		Rule:     "missing_quarter",
		Severity: domain.SeverityInfo,
		Message:  fmt.Sprintf("schedule %q has no quarter set", view.ScheduleName()),
		Schedule: view.ScheduleName(),
	}}}, nil
}
