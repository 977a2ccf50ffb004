// Package domain defines the persistent entities, value types, and
// diagnostic-rule primitives used by schedcore.
package domain

import "strings"

// Day identifies a column of the weekly grid. Arranged is a pseudo-day that
// carries a single slot and no time intervals.
type Day string

// Grid days in canonical order.
const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Arranged  Day = "Arranged"
)

// Days lists every grid day in canonical iteration order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Arranged}

// Weekdays lists the interval-bearing days (everything except Arranged).
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// Modality describes how a placed class meets.
type Modality string

// Supported meeting modalities.
const (
	ModalityInPerson Modality = "in-person"
	ModalityOnline   Modality = "online"
	ModalityHybrid   Modality = "hybrid"
)

// Quarter names an academic term. The empty string means "not set".
type Quarter string

// Canonical quarters in catalog display order.
const (
	QuarterFall   Quarter = "Fall"
	QuarterWinter Quarter = "Winter"
	QuarterSpring Quarter = "Spring"
	QuarterSummer Quarter = "Summer"
)

// SlotKey addresses a cell within a day: either an Interval token or ArrangedSlot.
type SlotKey = string

// ArrangedSlot is the single pseudo-slot owned by the Arranged day. It carries
// no time interval and is exempt from interval validation and the in-person
// capacity rule.
const ArrangedSlot SlotKey = "arranged"

// Interval is a "HH:MM-HH:MM" token. Times are zero-padded, so lexicographic
// order equals chronological order.
type Interval string

// MakeInterval joins start and end times into an interval token.
func MakeInterval(start, end string) Interval {
	return Interval(start + "-" + end)
}

// ValidIntervalBounds reports whether start strictly precedes end.
func ValidIntervalBounds(start, end string) bool {
	return start != "" && end != "" && start < end
}

// DefaultInstructorColor is assigned to instructors persisted before colors existed.
const DefaultInstructorColor = "#3498db"

// DefaultScheduleName names the variant synthesized for legacy single-schedule
// snapshots and for empty stores.
const DefaultScheduleName = "Default"

// Program is a global catalog entry grouping courses (e.g. a degree program).
type Program struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Course is a global catalog entry. QuarterTaken is a free-text cohort tag and
// is unrelated to QuartersOffered, the set of terms the course may run in; an
// empty QuartersOffered means the course is offered on demand.
type Course struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Credits         int       `json:"credits"`
	ProgramID       *string   `json:"programId"`
	CourseNumber    string    `json:"courseNumber"`
	QuarterTaken    string    `json:"quarterTaken"`
	QuartersOffered []Quarter `json:"quartersOffered"`
}

// OfferedIn reports whether the course may run in the given quarter. An empty
// offering set imposes no restriction.
func (c Course) OfferedIn(q Quarter) bool {
	if len(c.QuartersOffered) == 0 {
		return true
	}
	for _, offered := range c.QuartersOffered {
		if offered == q {
			return true
		}
	}
	return false
}

// CohortLabel returns the normalized form of QuarterTaken used for cohort
// grouping, or "" when the course carries no cohort tag.
func (c Course) CohortLabel() string {
	return strings.ToLower(strings.TrimSpace(c.QuarterTaken))
}

// Instructor is a global registry entry.
type Instructor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Classroom is scoped to a single schedule variant. Timeslots holds the
// per-day interval sets, de-duplicated and lexicographically sorted.
// Visible and TimeslotFormExpanded are persisted UI-state scalars.
type Classroom struct {
	ID                   string             `json:"id"`
	RoomNumber           string             `json:"roomNumber"`
	Timeslots            map[Day][]Interval `json:"timeslots"`
	Visible              bool               `json:"visible"`
	TimeslotFormExpanded bool               `json:"timeslotFormExpanded"`
}

// Placement is one class meeting dropped into a grid cell.
type Placement struct {
	CourseID string   `json:"courseId"`
	Modality Modality `json:"modality"`
	Section  string   `json:"section"`
}

// Grid maps classroom id -> day -> slot key -> placements.
type Grid = map[string]map[Day]map[SlotKey][]Placement

// ScheduleVariant is one named schedule: its own classrooms, grid, instructor
// assignments, and target quarter. CourseInstructors is keyed by the canonical
// AssignmentKey string form.
type ScheduleVariant struct {
	Quarter           Quarter           `json:"quarter"`
	CourseInstructors map[string]string `json:"courseInstructors"`
	Classrooms        []Classroom       `json:"classrooms"`
	Schedule          Grid              `json:"schedule"`
}

// InstructorFor resolves the instructor assigned to a (course, section) pair.
func (v *ScheduleVariant) InstructorFor(key AssignmentKey) (string, bool) {
	id, ok := v.CourseInstructors[key.Canonical()]
	return id, ok
}

// FindClassroom returns a pointer into the variant's classroom slice.
func (v *ScheduleVariant) FindClassroom(id string) (*Classroom, bool) {
	for i := range v.Classrooms {
		if v.Classrooms[i].ID == id {
			return &v.Classrooms[i], true
		}
	}
	return nil, false
}

// Store is the persisted root document.
type Store struct {
	Programs          []Program                   `json:"programs"`
	CourseCatalog     []Course                    `json:"courseCatalog"`
	Instructors       []Instructor                `json:"instructors"`
	Schedules         map[string]*ScheduleVariant `json:"schedules"`
	CurrentSchedule   string                      `json:"currentSchedule"`
	CollapsedSections map[string]bool             `json:"collapsedSections"`
	InstructorFilter  []string                    `json:"instructorFilter"`
	ProgramFilter     string                      `json:"programFilter"`
}

// CurrentVariant resolves the current schedule by name. Call sites must never
// hold the returned pointer across a CurrentSchedule change.
func (s *Store) CurrentVariant() *ScheduleVariant {
	return s.Schedules[s.CurrentSchedule]
}

// FindProgram looks up a program by id.
func (s *Store) FindProgram(id string) (Program, bool) {
	for _, p := range s.Programs {
		if p.ID == id {
			return p, true
		}
	}
	return Program{}, false
}

// FindCourse looks up a catalog course by id.
func (s *Store) FindCourse(id string) (Course, bool) {
	for _, c := range s.CourseCatalog {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

// FindInstructor looks up an instructor by id.
func (s *Store) FindInstructor(id string) (Instructor, bool) {
	for _, i := range s.Instructors {
		if i.ID == id {
			return i, true
		}
	}
	return Instructor{}, false
}

// CourseDisplayName renders "<Program> <Number> - <Name>", degrading to
// whichever parts exist.
func (s *Store) CourseDisplayName(courseID string) string {
	course, ok := s.FindCourse(courseID)
	if !ok {
		return ""
	}
	var prefix []string
	if course.ProgramID != nil {
		if program, ok := s.FindProgram(*course.ProgramID); ok && program.Name != "" {
			prefix = append(prefix, program.Name)
		}
	}
	if course.CourseNumber != "" {
		prefix = append(prefix, course.CourseNumber)
	}
	if len(prefix) == 0 {
		return course.Name
	}
	return strings.Join(prefix, " ") + " - " + course.Name
}

// NewDefaultStore returns the empty single-variant store used when no snapshot
// exists or the persisted one is unrecognizable.
func NewDefaultStore() *Store {
	return &Store{
		Programs:          []Program{},
		CourseCatalog:     []Course{},
		Instructors:       []Instructor{},
		Schedules:         map[string]*ScheduleVariant{DefaultScheduleName: NewScheduleVariant()},
		CurrentSchedule:   DefaultScheduleName,
		CollapsedSections: map[string]bool{},
		InstructorFilter:  []string{},
		ProgramFilter:     "",
	}
}

// NewScheduleVariant returns an empty variant with all containers initialized.
func NewScheduleVariant() *ScheduleVariant {
	return &ScheduleVariant{
		Quarter:           "",
		CourseInstructors: map[string]string{},
		Classrooms:        []Classroom{},
		Schedule:          Grid{},
	}
}
