package core

import (
	"context"
	"fmt"

	"schedcore/pkg/domain"
)

// NewMissingProgramRule returns the rule flagging scheduled courses whose
// catalog entry is not attached to any program.
func NewMissingProgramRule() domain.Rule {
	return missingProgramRule{}
}

type missingProgramRule struct{}

func (missingProgramRule) Name() string { return "missing_program" }

func (missingProgramRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	res := domain.Result{}
	for _, courseID := range view.ScheduledCourseIDs() {
		course, ok := view.FindCourse(courseID)
		if !ok || course.ProgramID != nil {
			continue
		}
		name := course.Name
		if name == "" {
			name = courseID
		}
		res.Diagnostics = append(res.Diagnostics, domain.Diagnostic{
			Rule:     "missing_program",
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("%s is scheduled but not attached to a program", name),
			Schedule: view.ScheduleName(),
			CourseID: courseID,
		})
	}
	return res, nil
}
