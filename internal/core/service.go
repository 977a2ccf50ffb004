package core

import (
	"context"
	"time"

	"schedcore/pkg/domain"
)

// Service exposes the scheduling operations the UI layer consumes: catalog
// and variant mutators, the validator, and the read accessors. Every mutation
// runs in a store transaction and returns the advisory validation result for
// the state it produced.
type Service struct {
	store   domain.PersistentStore
	metrics MetricsRecorder
	tracer  Tracer
}

// ServiceOption customizes service construction.
type ServiceOption func(*Service)

// WithMetricsRecorder attaches a metrics recorder to the service.
func WithMetricsRecorder(rec MetricsRecorder) ServiceOption {
	return func(s *Service) { s.metrics = rec }
}

// WithTracer attaches a tracer to the service.
func WithTracer(tr Tracer) ServiceOption {
	return func(s *Service) { s.tracer = tr }
}

// NewService constructs a service backed by the supplied store.
func NewService(store domain.PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.PersistentStore {
	return s.store
}

func (s *Service) run(ctx context.Context, operation string, fn func(Transaction) error) (Result, error) {
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operation)
	}
	start := time.Now()
	res, err := s.store.RunInTransaction(ctx, fn)
	if span != nil {
		span.End(err)
	}
	if s.metrics != nil {
		s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
	}
	return res, err
}

// AddProgram creates a program.
func (s *Service) AddProgram(ctx context.Context, name string) (Program, Result, error) {
	var created Program
	res, err := s.run(ctx, "add_program", func(tx Transaction) error {
		var err error
		created, err = tx.AddProgram(name)
		return err
	})
	return created, res, err
}

// EditProgram renames a program.
func (s *Service) EditProgram(ctx context.Context, id, name string) (Program, Result, error) {
	var updated Program
	res, err := s.run(ctx, "edit_program", func(tx Transaction) error {
		var err error
		updated, err = tx.EditProgram(id, name)
		return err
	})
	return updated, res, err
}

// DeleteProgram removes a program without dependent courses.
func (s *Service) DeleteProgram(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_program", func(tx Transaction) error {
		return tx.DeleteProgram(id)
	})
}

// AddCourse creates a catalog course.
func (s *Service) AddCourse(ctx context.Context, course Course) (Course, Result, error) {
	var created Course
	res, err := s.run(ctx, "add_course", func(tx Transaction) error {
		var err error
		created, err = tx.AddCourse(course)
		return err
	})
	return created, res, err
}

// EditCourse applies mutator to a catalog course.
func (s *Service) EditCourse(ctx context.Context, id string, mutator func(*Course) error) (Course, Result, error) {
	var updated Course
	res, err := s.run(ctx, "edit_course", func(tx Transaction) error {
		var err error
		updated, err = tx.EditCourse(id, mutator)
		return err
	})
	return updated, res, err
}

// DeleteCourse removes a course and cascades across every variant.
func (s *Service) DeleteCourse(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_course", func(tx Transaction) error {
		return tx.DeleteCourse(id)
	})
}

// AddInstructor creates an instructor.
func (s *Service) AddInstructor(ctx context.Context, instructor Instructor) (Instructor, Result, error) {
	var created Instructor
	res, err := s.run(ctx, "add_instructor", func(tx Transaction) error {
		var err error
		created, err = tx.AddInstructor(instructor)
		return err
	})
	return created, res, err
}

// EditInstructor applies mutator to an instructor.
func (s *Service) EditInstructor(ctx context.Context, id string, mutator func(*Instructor) error) (Instructor, Result, error) {
	var updated Instructor
	res, err := s.run(ctx, "edit_instructor", func(tx Transaction) error {
		var err error
		updated, err = tx.EditInstructor(id, mutator)
		return err
	})
	return updated, res, err
}

// DeleteInstructor removes an instructor without assignments.
func (s *Service) DeleteInstructor(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_instructor", func(tx Transaction) error {
		return tx.DeleteInstructor(id)
	})
}

// AddClassroom creates a classroom in the current variant.
func (s *Service) AddClassroom(ctx context.Context, roomNumber string) (Classroom, Result, error) {
	var created Classroom
	res, err := s.run(ctx, "add_classroom", func(tx Transaction) error {
		var err error
		created, err = tx.AddClassroom(roomNumber)
		return err
	})
	return created, res, err
}

// DeleteClassroom removes a classroom and its grid subtree.
func (s *Service) DeleteClassroom(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_classroom", func(tx Transaction) error {
		return tx.DeleteClassroom(id)
	})
}

// ToggleClassroomVisible flips a classroom's visibility.
func (s *Service) ToggleClassroomVisible(ctx context.Context, id string) (bool, Result, error) {
	var visible bool
	res, err := s.run(ctx, "toggle_classroom_visible", func(tx Transaction) error {
		var err error
		visible, err = tx.ToggleClassroomVisible(id)
		return err
	})
	return visible, res, err
}

// SetTimeslotFormExpanded persists a classroom's form state.
func (s *Service) SetTimeslotFormExpanded(ctx context.Context, id string, expanded bool) (Result, error) {
	return s.run(ctx, "set_timeslot_form_expanded", func(tx Transaction) error {
		return tx.SetTimeslotFormExpanded(id, expanded)
	})
}

// AddTimeslot inserts an interval into a classroom's day.
func (s *Service) AddTimeslot(ctx context.Context, classroomID string, day Day, start, end string) (Interval, Result, error) {
	var interval Interval
	res, err := s.run(ctx, "add_timeslot", func(tx Transaction) error {
		var err error
		interval, err = tx.AddTimeslot(classroomID, day, start, end)
		return err
	})
	return interval, res, err
}

// RemoveTimeslot drops an interval and its grid cell.
func (s *Service) RemoveTimeslot(ctx context.Context, classroomID string, day Day, interval Interval) (Result, error) {
	return s.run(ctx, "remove_timeslot", func(tx Transaction) error {
		return tx.RemoveTimeslot(classroomID, day, interval)
	})
}

// CopyTimeslots replicates one day's intervals onto the other weekdays.
func (s *Service) CopyTimeslots(ctx context.Context, classroomID string, source Day) (Result, error) {
	return s.run(ctx, "copy_timeslots", func(tx Transaction) error {
		return tx.CopyTimeslots(classroomID, source)
	})
}

// Place drops a course into a grid cell.
func (s *Service) Place(ctx context.Context, classroomID string, day Day, slot SlotKey, courseID string, modality Modality, section string) (Result, error) {
	return s.run(ctx, "place", func(tx Transaction) error {
		return tx.Place(classroomID, day, slot, courseID, modality, section)
	})
}

// Unplace removes one placement by position.
func (s *Service) Unplace(ctx context.Context, classroomID string, day Day, slot SlotKey, index int) (Result, error) {
	return s.run(ctx, "unplace", func(tx Transaction) error {
		return tx.Unplace(classroomID, day, slot, index)
	})
}

// SetPlacementModality updates one placement's modality.
func (s *Service) SetPlacementModality(ctx context.Context, classroomID string, day Day, slot SlotKey, index int, modality Modality) (Result, error) {
	return s.run(ctx, "set_placement_modality", func(tx Transaction) error {
		return tx.SetPlacementModality(classroomID, day, slot, index, modality)
	})
}

// PlacementRef addresses one placement in the current variant's grid.
type PlacementRef struct {
	ClassroomID string
	Day         Day
	Slot        SlotKey
	Index       int
}

// EditCourseAndPlacement applies mutator to a catalog course and updates one
// placement's modality in the same transaction, matching the combined course
// editing form.
func (s *Service) EditCourseAndPlacement(ctx context.Context, id string, mutator func(*Course) error, ref PlacementRef, modality Modality) (Course, Result, error) {
	var updated Course
	res, err := s.run(ctx, "edit_course_and_placement", func(tx Transaction) error {
		var err error
		updated, err = tx.EditCourse(id, mutator)
		if err != nil {
			return err
		}
		return tx.SetPlacementModality(ref.ClassroomID, ref.Day, ref.Slot, ref.Index, modality)
	})
	return updated, res, err
}

// AssignInstructor binds or clears an instructor on a (course, section) pair.
func (s *Service) AssignInstructor(ctx context.Context, courseID, section, instructorID string) (Result, error) {
	return s.run(ctx, "assign_instructor", func(tx Transaction) error {
		return tx.AssignInstructor(courseID, section, instructorID)
	})
}

// CreateSchedule adds a schedule variant and selects it.
func (s *Service) CreateSchedule(ctx context.Context, name string, quarter Quarter, copyCurrent bool) (Result, error) {
	return s.run(ctx, "create_schedule", func(tx Transaction) error {
		return tx.CreateSchedule(name, quarter, copyCurrent)
	})
}

// RenameSchedule moves a variant to a new name.
func (s *Service) RenameSchedule(ctx context.Context, oldName, newName string) (Result, error) {
	return s.run(ctx, "rename_schedule", func(tx Transaction) error {
		return tx.RenameSchedule(oldName, newName)
	})
}

// DeleteSchedule removes a variant, refusing for the last one.
func (s *Service) DeleteSchedule(ctx context.Context, name string) (Result, error) {
	return s.run(ctx, "delete_schedule", func(tx Transaction) error {
		return tx.DeleteSchedule(name)
	})
}

// SetScheduleQuarter retargets a variant's quarter.
func (s *Service) SetScheduleQuarter(ctx context.Context, name string, quarter Quarter) (Result, error) {
	return s.run(ctx, "set_schedule_quarter", func(tx Transaction) error {
		return tx.SetScheduleQuarter(name, quarter)
	})
}

// SelectSchedule moves the current-schedule pointer.
func (s *Service) SelectSchedule(ctx context.Context, name string) (Result, error) {
	return s.run(ctx, "select_schedule", func(tx Transaction) error {
		return tx.SelectSchedule(name)
	})
}

// SetInstructorFilter persists the sidebar instructor filter.
func (s *Service) SetInstructorFilter(ctx context.Context, ids []string) (Result, error) {
	return s.run(ctx, "set_instructor_filter", func(tx Transaction) error {
		return tx.SetInstructorFilter(ids)
	})
}

// SetProgramFilter persists the sidebar program filter.
func (s *Service) SetProgramFilter(ctx context.Context, programID string) (Result, error) {
	return s.run(ctx, "set_program_filter", func(tx Transaction) error {
		return tx.SetProgramFilter(programID)
	})
}

// SetSectionCollapsed persists one sidebar section's collapsed state.
func (s *Service) SetSectionCollapsed(ctx context.Context, section string, collapsed bool) (Result, error) {
	return s.run(ctx, "set_section_collapsed", func(tx Transaction) error {
		return tx.SetSectionCollapsed(section, collapsed)
	})
}

// Validate evaluates the rule set over the named variant without mutating
// anything. An empty name targets the current variant.
func (s *Service) Validate(ctx context.Context, scheduleName string) (Result, error) {
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, "validate")
	}
	start := time.Now()
	res, err := s.store.Validate(ctx, scheduleName)
	if span != nil {
		span.End(err)
	}
	if s.metrics != nil {
		s.metrics.Observe(ctx, "validate", err == nil, time.Since(start))
	}
	return res, err
}

// View executes fn against a read-only snapshot.
func (s *Service) View(ctx context.Context, fn func(StoreView) error) error {
	return s.store.View(ctx, fn)
}

// CurrentVariant returns a copy of the current schedule variant.
func (s *Service) CurrentVariant(ctx context.Context) (*ScheduleVariant, error) {
	var variant *ScheduleVariant
	err := s.store.View(ctx, func(view StoreView) error {
		variant = view.CurrentVariant()
		return nil
	})
	return variant, err
}

// InstructorWorkload sums credits over the distinct placed (course, section)
// pairs assigned to the instructor in the current variant.
func (s *Service) InstructorWorkload(ctx context.Context, instructorID string) (int, error) {
	var workload int
	err := s.store.View(ctx, func(view StoreView) error {
		workload = view.InstructorWorkload(instructorID)
		return nil
	})
	return workload, err
}

// IsCoursePlaced reports whether the course appears anywhere in the current
// variant's grid.
func (s *Service) IsCoursePlaced(ctx context.Context, courseID string) (bool, error) {
	var placed bool
	err := s.store.View(ctx, func(view StoreView) error {
		placed = view.IsCoursePlaced(courseID)
		return nil
	})
	return placed, err
}

// CourseDisplayName renders the catalog display name of a course.
func (s *Service) CourseDisplayName(ctx context.Context, courseID string) (string, error) {
	var name string
	err := s.store.View(ctx, func(view StoreView) error {
		name = view.CourseDisplayName(courseID)
		return nil
	})
	return name, err
}

// ScheduleNames lists variant names in sorted order alongside the current one.
func (s *Service) ScheduleNames(ctx context.Context) ([]string, string, error) {
	var names []string
	var current string
	err := s.store.View(ctx, func(view StoreView) error {
		names = view.ScheduleNames()
		current = view.CurrentScheduleName()
		return nil
	})
	return names, current, err
}
