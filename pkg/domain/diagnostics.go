package domain

import "context"

// Severity captures how a diagnostic should be surfaced. Diagnostics are
// advisory: none of them blocks a mutation from committing.
type Severity string

// Diagnostic severities.
const (
	// SeverityWarn marks a scheduling conflict the user should resolve.
	SeverityWarn Severity = "warn"
	// SeverityInfo marks incomplete data worth surfacing but not conflicting.
	SeverityInfo Severity = "info"
)

// CourseRef names one placement involved in a diagnostic.
type CourseRef struct {
	CourseID   string `json:"courseId"`
	CourseName string `json:"courseName"`
	RoomNumber string `json:"roomNumber"`
	Section    string `json:"section,omitempty"`
}

// Label renders the "course-name (Room X)" form used in diagnostic messages.
func (r CourseRef) Label() string {
	name := r.CourseName
	if r.Section != "" {
		name += " [" + r.Section + "]"
	}
	return name + " (Room " + r.RoomNumber + ")"
}

// Diagnostic reports one advisory finding from the validator. Rule names the
// emitting rule; the remaining fields carry the message data relevant to it.
type Diagnostic struct {
	Rule         string      `json:"rule"`
	Severity     Severity    `json:"severity"`
	Message      string      `json:"message"`
	Schedule     string      `json:"schedule,omitempty"`
	Day          Day         `json:"day,omitempty"`
	Slot         SlotKey     `json:"slot,omitempty"`
	InstructorID string      `json:"instructorId,omitempty"`
	Cohort       string      `json:"cohort,omitempty"`
	CourseID     string      `json:"courseId,omitempty"`
	Courses      []CourseRef `json:"courses,omitempty"`
	Quarters     []Quarter   `json:"quarters,omitempty"`
}

// Result aggregates diagnostics from the rules engine.
type Result struct {
	Diagnostics []Diagnostic
}

// Merge appends diagnostics from another result.
func (r *Result) Merge(other Result) {
	if len(other.Diagnostics) == 0 {
		return
	}
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// Cell is one (day, slot) grid coordinate with every placement found there,
// across all of the variant's classrooms, in grid-iteration order.
type Cell struct {
	Day     Day
	Slot    SlotKey
	Entries []CellEntry
}

// CellEntry is one placement joined with its classroom.
type CellEntry struct {
	CourseID    string
	ClassroomID string
	RoomNumber  string
	Modality    Modality
	Section     string
}

// RuleView provides read-only access to the validation target. Cells and
// ScheduledCourseIDs come from a single pre-pass over the variant's grid and
// preserve grid-iteration order, so rule output is deterministic.
type RuleView interface {
	ScheduleName() string
	Variant() *ScheduleVariant
	Programs() []Program
	Courses() []Course
	FindProgram(id string) (Program, bool)
	FindCourse(id string) (Course, bool)
	FindInstructor(id string) (Instructor, bool)
	Cells() []Cell
	ScheduledCourseIDs() []string
}

// Rule is one independent validation evaluated over a schedule variant.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view RuleView) (Result, error)
}

// RulesEngine orchestrates rule evaluation in registration order.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(ctx context.Context, view RuleView) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
