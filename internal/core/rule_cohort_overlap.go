package core

import (
	"context"
	"fmt"
	"strings"

	"schedcore/pkg/domain"
)

// NewCohortOverlapRule returns the rule flagging two different courses that
// share a cohort tag placed at the same grid coordinate. Cohorts come from the
// catalog's free-text quarterTaken label, trimmed and lowercased.
func NewCohortOverlapRule() domain.Rule {
	return cohortOverlapRule{}
}

type cohortOverlapRule struct{}

func (cohortOverlapRule) Name() string { return "cohort_overlap" }

func (cohortOverlapRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	res := domain.Result{}
	for _, cell := range view.Cells() {
		groups := map[string][]domain.CellEntry{}
		var order []string
		for _, entry := range cell.Entries {
			course, ok := view.FindCourse(entry.CourseID)
			if !ok {
				continue
			}
			cohort := course.CohortLabel()
			if cohort == "" {
				continue
			}
			if _, seen := groups[cohort]; !seen {
				order = append(order, cohort)
			}
			groups[cohort] = append(groups[cohort], entry)
		}
		for _, cohort := range order {
			entries := groups[cohort]
			courseIDs := map[string]bool{}
			for _, entry := range entries {
				courseIDs[entry.CourseID] = true
			}
			if len(courseIDs) < 2 {
				continue
			}
			refs := make([]domain.CourseRef, 0, len(entries))
			labels := make([]string, 0, len(entries))
			for _, entry := range entries {
				course, _ := view.FindCourse(entry.CourseID)
				ref := domain.CourseRef{
					CourseID:   entry.CourseID,
					CourseName: course.Name,
					RoomNumber: entry.RoomNumber,
					Section:    entry.Section,
				}
				refs = append(refs, ref)
				labels = append(labels, ref.Label())
			}
			res.Diagnostics = append(res.Diagnostics, domain.Diagnostic{
				Rule:     "cohort_overlap",
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("cohort %q has %s at %s %s", cohort, strings.Join(labels, " and "), cell.Day, cell.Slot),
				Schedule: view.ScheduleName(),
				Day:      cell.Day,
				Slot:     cell.Slot,
				Cohort:   cohort,
				Courses:  refs,
			})
		}
	}
	return res, nil
}
