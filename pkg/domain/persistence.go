package domain

import "context"

// Transaction exposes the mutation set a persistence implementation must
// support within an atomic scope. Variant-scoped operations (classrooms,
// timeslots, placements, assignments) act on the current schedule.
type Transaction interface {
	AddProgram(name string) (Program, error)
	EditProgram(id, name string) (Program, error)
	DeleteProgram(id string) error

	AddCourse(course Course) (Course, error)
	EditCourse(id string, mutator func(*Course) error) (Course, error)
	DeleteCourse(id string) error

	AddInstructor(instructor Instructor) (Instructor, error)
	EditInstructor(id string, mutator func(*Instructor) error) (Instructor, error)
	DeleteInstructor(id string) error

	AddClassroom(roomNumber string) (Classroom, error)
	DeleteClassroom(id string) error
	ToggleClassroomVisible(id string) (bool, error)
	SetTimeslotFormExpanded(id string, expanded bool) error

	AddTimeslot(classroomID string, day Day, start, end string) (Interval, error)
	RemoveTimeslot(classroomID string, day Day, interval Interval) error
	CopyTimeslots(classroomID string, source Day) error

	Place(classroomID string, day Day, slot SlotKey, courseID string, modality Modality, section string) error
	Unplace(classroomID string, day Day, slot SlotKey, index int) error
	SetPlacementModality(classroomID string, day Day, slot SlotKey, index int, modality Modality) error
	AssignInstructor(courseID, section, instructorID string) error

	CreateSchedule(name string, quarter Quarter, copyCurrent bool) error
	RenameSchedule(oldName, newName string) error
	DeleteSchedule(name string) error
	SetScheduleQuarter(name string, quarter Quarter) error
	SelectSchedule(name string) error

	SetInstructorFilter(ids []string) error
	SetProgramFilter(programID string) error
	SetSectionCollapsed(section string, collapsed bool) error
}

// StoreView provides read-only access to a consistent snapshot of the store.
type StoreView interface {
	Programs() []Program
	Courses() []Course
	Instructors() []Instructor
	ScheduleNames() []string
	CurrentScheduleName() string
	Variant(name string) (*ScheduleVariant, bool)
	CurrentVariant() *ScheduleVariant
	FindProgram(id string) (Program, bool)
	FindCourse(id string) (Course, bool)
	FindInstructor(id string) (Instructor, bool)

	// InstructorWorkload sums credits over the distinct (course, section)
	// pairs assigned to the instructor that are placed somewhere in the
	// current variant's grid.
	InstructorWorkload(instructorID string) int
	// IsCoursePlaced reports whether the course appears anywhere in the
	// current variant's grid.
	IsCoursePlaced(courseID string) bool
	// CourseDisplayName renders "<Program> <Number> - <Name>", degrading to
	// whichever parts exist.
	CourseDisplayName(courseID string) string
}

// PersistentStore is the durable-backend abstraction consumed by the service
// layer. RunInTransaction evaluates the rules engine over the current variant
// after the mutation set applies; the result is advisory and never vetoes the
// commit.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(StoreView) error) error
	Validate(ctx context.Context, scheduleName string) (Result, error)
	ExportState() *Store
	ImportState(store *Store)
}
