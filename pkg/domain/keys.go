package domain

import "strings"

// assignmentKeySep joins course id and section in the canonical string form.
// Sections are created implicitly by placement, never declared ahead of time.
const assignmentKeySep = "::"

// AssignmentKey identifies an instructor assignment target: a catalog course,
// optionally narrowed to one section. The canonical string form is the course
// id alone, or "courseId::section" when a section is present.
type AssignmentKey struct {
	CourseID string
	Section  string
}

// Canonical returns the string form used as a CourseInstructors map key.
func (k AssignmentKey) Canonical() string {
	if k.Section == "" {
		return k.CourseID
	}
	return k.CourseID + assignmentKeySep + k.Section
}

// ParseAssignmentKey splits a canonical key string back into its parts.
func ParseAssignmentKey(s string) AssignmentKey {
	courseID, section, found := strings.Cut(s, assignmentKeySep)
	if !found {
		return AssignmentKey{CourseID: s}
	}
	return AssignmentKey{CourseID: courseID, Section: section}
}

// KeyReferencesCourse reports whether a canonical assignment key targets the
// given course, either exactly or via any of its sections.
func KeyReferencesCourse(key, courseID string) bool {
	return key == courseID || strings.HasPrefix(key, courseID+assignmentKeySep)
}
