package core

import (
	"context"
	"fmt"
	"strings"

	"schedcore/pkg/domain"
)

// NewInstructorOverlapRule returns the rule flagging instructors booked into
// two different (course, section) pairs at the same grid coordinate. The same
// pair placed in two rooms at once is cross-listing, not a conflict.
func NewInstructorOverlapRule() domain.Rule {
	return instructorOverlapRule{}
}

type instructorOverlapRule struct{}

func (instructorOverlapRule) Name() string { return "instructor_overlap" }

func (instructorOverlapRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	variant := view.Variant()
	res := domain.Result{}
	for _, cell := range view.Cells() {
		groups := map[string][]domain.CellEntry{}
		var order []string
		for _, entry := range cell.Entries {
			key := domain.AssignmentKey{CourseID: entry.CourseID, Section: entry.Section}.Canonical()
			instructorID := variant.CourseInstructors[key]
			if instructorID == "" {
				continue
			}
			if _, seen := groups[instructorID]; !seen {
				order = append(order, instructorID)
			}
			groups[instructorID] = append(groups[instructorID], entry)
		}
		for _, instructorID := range order {
			entries := groups[instructorID]
			distinct := map[string]bool{}
			for _, entry := range entries {
				distinct[domain.AssignmentKey{CourseID: entry.CourseID, Section: entry.Section}.Canonical()] = true
			}
			if len(distinct) < 2 {
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
			name := instructorID
			if instructor, ok := view.FindInstructor(instructorID); ok && instructor.Name != "" {
				name = instructor.Name
			}
			res.Diagnostics = append(res.Diagnostics, domain.Diagnostic{
				Rule:         "instructor_overlap",
				Severity:     domain.SeverityWarn,
				Message:      fmt.Sprintf("%s is booked into %s at %s %s", name, strings.Join(labels, " and "), cell.Day, cell.Slot),
				Schedule:     view.ScheduleName(),
				Day:          cell.Day,
				Slot:         cell.Slot,
				InstructorID: instructorID,
				Courses:      refs,
			})
		}
	}
	return res, nil
}
