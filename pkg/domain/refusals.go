package domain

import (
	"errors"
	"fmt"
)

// Refusal discriminates why a mutator declined a structurally valid but
// semantically forbidden operation. The store is left untouched.
type Refusal string

// Refusal reasons.
const (
	// RefusalHasDependentCourses blocks deleting a program still referenced by
	// catalog courses.
	RefusalHasDependentCourses Refusal = "has_dependent_courses"
	// RefusalHasAssignments blocks deleting an instructor still assigned to a
	// (course, section) pair in any schedule variant.
	RefusalHasAssignments Refusal = "has_assignments"
	// RefusalLastVariant blocks deleting the only remaining schedule variant.
	RefusalLastVariant Refusal = "last_variant"
	// RefusalInvalidInterval blocks adding a timeslot whose start does not
	// precede its end.
	RefusalInvalidInterval Refusal = "invalid_interval"
	// RefusalDuplicateSchedule blocks creating, renaming, or importing onto an
	// existing schedule name without explicit overwrite.
	RefusalDuplicateSchedule Refusal = "duplicate_schedule"
)

// RefusalError is returned by mutators that decline an operation.
type RefusalError struct {
	Reason Refusal
	Entity string
	ID     string
}

func (e RefusalError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

// RefusedBecause reports whether err is a refusal with the given reason.
func RefusedBecause(err error, reason Refusal) bool {
	var refusal RefusalError
	return errors.As(err, &refusal) && refusal.Reason == reason
}

// NotFoundError is returned when a mutator references a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
