package core

import (
	"context"
	"fmt"
	"strings"

	"schedcore/pkg/domain"
)

// NewQuarterMismatchRule returns the rule flagging scheduled courses whose
// offering set excludes the variant's quarter. Variants without a quarter and
// courses with an empty offering set are skipped.
func NewQuarterMismatchRule() domain.Rule {
	return quarterMismatchRule{}
}

type quarterMismatchRule struct{}

func (quarterMismatchRule) Name() string { return "quarter_mismatch" }

func (quarterMismatchRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	variant := view.Variant()
	if variant == nil || variant.Quarter == "" {
		return domain.Result{}, nil
	}
	res := domain.Result{}
	for _, courseID := range view.ScheduledCourseIDs() {
		course, ok := view.FindCourse(courseID)
		if !ok || len(course.QuartersOffered) == 0 || course.OfferedIn(variant.Quarter) {
			continue
		}
		offered := make([]string, 0, len(course.QuartersOffered))
		for _, q := range course.QuartersOffered {
			offered = append(offered, string(q))
		}
		name := course.Name
		if name == "" {
			name = courseID
		}
		res.Diagnostics = append(res.Diagnostics, domain.Diagnostic{
			Rule:     "quarter_mismatch",
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("%s is only offered in %s, not %s", name, strings.Join(offered, ", "), variant.Quarter),
			Schedule: view.ScheduleName(),
			CourseID: courseID,
			Quarters: append([]domain.Quarter(nil), course.QuartersOffered...),
		})
	}
	return res, nil
}
