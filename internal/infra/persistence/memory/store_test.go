package memory

import (
	"context"
	"errors"
	"testing"

	"schedcore/pkg/domain"
)

func mustRun(t *testing.T, s *Store, fn func(domain.Transaction) error) {
	t.Helper()
	if _, err := s.RunInTransaction(context.Background(), fn); err != nil {
		t.Fatalf("transaction failed: %v", err)
	}
}

func seedCourse(t *testing.T, s *Store, id, name string, credits int) domain.Course {
	t.Helper()
	var created domain.Course
	mustRun(t, s, func(tx domain.Transaction) error {
		var err error
		created, err = tx.AddCourse(domain.Course{ID: id, Name: name, Credits: credits})
		return err
	})
	return created
}

func seedClassroom(t *testing.T, s *Store, roomNumber string) domain.Classroom {
	t.Helper()
	var created domain.Classroom
	mustRun(t, s, func(tx domain.Transaction) error {
		var err error
		created, err = tx.AddClassroom(roomNumber)
		return err
	})
	return created
}

func TestDeleteProgramRefusedWithDependentCourses(t *testing.T) {
	s := NewStore(nil)
	var program domain.Program
	mustRun(t, s, func(tx domain.Transaction) error {
		var err error
		program, err = tx.AddProgram("CS")
		if err != nil {
			return err
		}
		_, err = tx.AddCourse(domain.Course{Name: "Algorithms", ProgramID: &program.ID})
		return err
	})

	_, err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		return tx.DeleteProgram(program.ID)
	})
	if !domain.RefusedBecause(err, domain.RefusalHasDependentCourses) {
		t.Fatalf("expected HasDependentCourses refusal, got %v", err)
	}
	if len(s.ExportState().Programs) != 1 {
		t.Fatalf("refused delete must leave the program in place")
	}
}

func TestDeleteCourseCascadesAcrossVariants(t *testing.T) {
	s := NewStore(nil)
	course := seedCourse(t, s, "c1", "Algorithms", 4)
	other := seedCourse(t, s, "c2", "Databases", 3)
	room := seedClassroom(t, s, "101")
	var instructor domain.Instructor
	mustRun(t, s, func(tx domain.Transaction) error {
		var err error
		instructor, err = tx.AddInstructor(domain.Instructor{Name: "Rivera"})
		if err != nil {
			return err
		}
		if err := tx.Place(room.ID, domain.Monday, "09:00-10:00", course.ID, "", ""); err != nil {
			return err
		}
		if err := tx.Place(room.ID, domain.Monday, "09:00-10:00", other.ID, "", ""); err != nil {
			return err
		}
		if err := tx.AssignInstructor(course.ID, "A", instructor.ID); err != nil {
			return err
		}
		// Second variant copied from the current one carries the same grid.
		return tx.CreateSchedule("Spring Plan", domain.QuarterSpring, true)
	})

	mustRun(t, s, func(tx domain.Transaction) error {
		return tx.DeleteCourse(course.ID)
	})

	st := s.ExportState()
	if _, ok := st.FindCourse(course.ID); ok {
		t.Fatalf("course still in catalog")
	}
	for name, variant := range st.Schedules {
		for _, days := range variant.Schedule {
			for day, slots := range days {
				for slot, placements := range slots {
					if len(placements) == 0 {
						t.Fatalf("%s: orphan slot %s %s", name, day, slot)
					}
					for _, p := range placements {
						if p.CourseID == course.ID {
							t.Fatalf("%s: placement for deleted course survived", name)
						}
					}
				}
			}
		}
		for key := range variant.CourseInstructors {
			if domain.KeyReferencesCourse(key, course.ID) {
				t.Fatalf("%s: assignment key %q survived cascade", name, key)
			}
		}
	}
	// The co-located course keeps its placement in both variants.
	for name, variant := range st.Schedules {
		if len(variant.Schedule[room.ID][domain.Monday]["09:00-10:00"]) != 1 {
			t.Fatalf("%s: surviving course lost its placement", name)
		}
	}
}

func TestDeleteInstructorRefusedWhileAssigned(t *testing.T) {
	s := NewStore(nil)
	course := seedCourse(t, s, "c1", "Algorithms", 4)
	var instructor domain.Instructor
	mustRun(t, s, func(tx domain.Transaction) error {
		var err error
		instructor, err = tx.AddInstructor(domain.Instructor{Name: "Kim"})
		if err != nil {
			return err
		}
		return tx.AssignInstructor(course.ID, "", instructor.ID)
	})

	_, err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		return tx.DeleteInstructor(instructor.ID)
	})
	if !domain.RefusedBecause(err, domain.RefusalHasAssignments) {
		t.Fatalf("expected HasAssignments refusal, got %v", err)
	}

	mustRun(t, s, func(tx domain.Transaction) error {
		if err := tx.AssignInstructor(course.ID, "", ""); err != nil {
			return err
		}
		return tx.DeleteInstructor(instructor.ID)
	})
	if len(s.ExportState().Instructors) != 0 {
		t.Fatalf("instructor not removed after clearing assignment")
	}
}

func TestAddTimeslotValidation(t *testing.T) {
	s := NewStore(nil)
	room := seedClassroom(t, s, "101")

	_, err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.AddTimeslot(room.ID, domain.Monday, "10:00", "09:00")
		return err
	})
	if !domain.RefusedBecause(err, domain.RefusalInvalidInterval) {
		t.Fatalf("expected InvalidInterval refusal, got %v", err)
	}

	mustRun(t, s, func(tx domain.Transaction) error {
		for _, bounds := range [][2]string{{"10:00", "11:00"}, {"09:00", "10:00"}, {"09:00", "10:00"}} {
			if _, err := tx.AddTimeslot(room.ID, domain.Monday, bounds[0], bounds[1]); err != nil {
				return err
			}
		}
		return nil
	})
	variant := s.ExportState().CurrentVariant()
	got := variant.Classrooms[0].Timeslots[domain.Monday]
	if len(got) != 2 || got[0] != "09:00-10:00" || got[1] != "10:00-11:00" {
		t.Fatalf("intervals not deduped and sorted: %v", got)
	}
}

func TestRemoveTimeslotClearsGridCell(t *testing.T) {
	s := NewStore(nil)
	course := seedCourse(t, s, "c1", "Algorithms", 4)
	room := seedClassroom(t, s, "101")
	mustRun(t, s, func(tx domain.Transaction) error {
		if _, err := tx.AddTimeslot(room.ID, domain.Monday, "09:00", "10:00"); err != nil {
			return err
		}
		return tx.Place(room.ID, domain.Monday, "09:00-10:00", course.ID, "", "")
	})

	mustRun(t, s, func(tx domain.Transaction) error {
		return tx.RemoveTimeslot(room.ID, domain.Monday, "09:00-10:00")
	})

	variant := s.ExportState().CurrentVariant()
	if len(variant.Classrooms[0].Timeslots[domain.Monday]) != 0 {
		t.Fatalf("interval survived removal")
	}
	if _, ok := variant.Schedule[room.ID][domain.Monday]; ok {
		t.Fatalf("grid cell for removed interval survived")
	}
}

func TestCopyTimeslotsOverwritesOtherWeekdays(t *testing.T) {
	s := NewStore(nil)
	room := seedClassroom(t, s, "101")
	mustRun(t, s, func(tx domain.Transaction) error {
		if _, err := tx.AddTimeslot(room.ID, domain.Monday, "09:00", "10:00"); err != nil {
			return err
		}
		if _, err := tx.AddTimeslot(room.ID, domain.Friday, "13:00", "14:00"); err != nil {
			return err
		}
		return tx.CopyTimeslots(room.ID, domain.Monday)
	})

	variant := s.ExportState().CurrentVariant()
	room = variant.Classrooms[0]
	for _, day := range domain.Weekdays {
		slots := room.Timeslots[day]
		if len(slots) != 1 || slots[0] != "09:00-10:00" {
			t.Fatalf("%s not overwritten with source intervals: %v", day, slots)
		}
	}
	if len(room.Timeslots[domain.Arranged]) != 0 {
		t.Fatalf("arranged day must never be a copy target")
	}
}

func TestUnplacePrunesEmptySlot(t *testing.T) {
	s := NewStore(nil)
	course := seedCourse(t, s, "c1", "Algorithms", 4)
	room := seedClassroom(t, s, "101")
	mustRun(t, s, func(tx domain.Transaction) error {
		if err := tx.Place(room.ID, domain.Monday, "09:00-10:00", course.ID, "", "A"); err != nil {
			return err
		}
		return tx.Place(room.ID, domain.Monday, "09:00-10:00", course.ID, domain.ModalityOnline, "B")
	})

	mustRun(t, s, func(tx domain.Transaction) error {
		return tx.Unplace(room.ID, domain.Monday, "09:00-10:00", 0)
	})
	variant := s.ExportState().CurrentVariant()
	placements := variant.Schedule[room.ID][domain.Monday]["09:00-10:00"]
	if len(placements) != 1 || placements[0].Section != "B" {
		t.Fatalf("wrong placement removed: %+v", placements)
	}

	mustRun(t, s, func(tx domain.Transaction) error {
		return tx.Unplace(room.ID, domain.Monday, "09:00-10:00", 0)
	})
	variant = s.ExportState().CurrentVariant()
	if _, ok := variant.Schedule[room.ID][domain.Monday]; ok {
		t.Fatalf("empty slot key not pruned")
	}
}

func TestPlaceDefaultsModalityAndNeverRejectsConflicts(t *testing.T) {
	s := NewStore(nil)
	a := seedCourse(t, s, "c1", "Algorithms", 4)
	b := seedCourse(t, s, "c2", "Databases", 3)
	room := seedClassroom(t, s, "101")

	mustRun(t, s, func(tx domain.Transaction) error {
		if err := tx.Place(room.ID, domain.Monday, "09:00-10:00", a.ID, "", ""); err != nil {
			return err
		}
		// Same cell, different course: advisory conflict, not an error.
		return tx.Place(room.ID, domain.Monday, "09:00-10:00", b.ID, "", "")
	})

	placements := s.ExportState().CurrentVariant().Schedule[room.ID][domain.Monday]["09:00-10:00"]
	if len(placements) != 2 {
		t.Fatalf("conflicting placement rejected: %+v", placements)
	}
	if placements[0].Modality != domain.ModalityInPerson {
		t.Fatalf("modality not defaulted: %+v", placements[0])
	}
}

func TestScheduleLifecycle(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	// Last variant guard.
	_, err := s.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteSchedule(domain.DefaultScheduleName)
	})
	if !domain.RefusedBecause(err, domain.RefusalLastVariant) {
		t.Fatalf("expected LastVariant refusal, got %v", err)
	}
	if len(s.ExportState().Schedules) != 1 {
		t.Fatalf("refused delete must leave the variant in place")
	}

	mustRun(t, s, func(tx domain.Transaction) error {
		return tx.CreateSchedule("Winter Plan", domain.QuarterWinter, false)
	})
	if s.ExportState().CurrentSchedule != "Winter Plan" {
		t.Fatalf("create must select the new variant")
	}

	_, err = s.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.CreateSchedule("Winter Plan", domain.QuarterWinter, false)
	})
	if !domain.RefusedBecause(err, domain.RefusalDuplicateSchedule) {
		t.Fatalf("expected DuplicateSchedule refusal, got %v", err)
	}

	mustRun(t, s, func(tx domain.Transaction) error {
		return tx.RenameSchedule("Winter Plan", "Winter Final")
	})
	st := s.ExportState()
	if _, ok := st.Schedules["Winter Final"]; !ok || st.CurrentSchedule != "Winter Final" {
		t.Fatalf("rename must follow the current pointer: %q", st.CurrentSchedule)
	}

	mustRun(t, s, func(tx domain.Transaction) error {
		return tx.DeleteSchedule("Winter Final")
	})
	st = s.ExportState()
	if st.CurrentSchedule != domain.DefaultScheduleName {
		t.Fatalf("deleting the current variant must select the smallest remaining name, got %q", st.CurrentSchedule)
	}
}

func TestAssignInstructorScopedToCurrentVariant(t *testing.T) {
	s := NewStore(nil)
	course := seedCourse(t, s, "c1", "Algorithms", 4)
	var instructor domain.Instructor
	mustRun(t, s, func(tx domain.Transaction) error {
		var err error
		instructor, err = tx.AddInstructor(domain.Instructor{Name: "Silva"})
		if err != nil {
			return err
		}
		return tx.CreateSchedule("Other", "", false)
	})

	mustRun(t, s, func(tx domain.Transaction) error {
		return tx.AssignInstructor(course.ID, "A", instructor.ID)
	})

	st := s.ExportState()
	if st.Schedules["Other"].CourseInstructors["c1::A"] != instructor.ID {
		t.Fatalf("assignment missing in current variant")
	}
	if len(st.Schedules[domain.DefaultScheduleName].CourseInstructors) != 0 {
		t.Fatalf("assignment leaked into another variant")
	}
}

func TestInstructorWorkloadCountsDistinctPlacedPairs(t *testing.T) {
	s := NewStore(nil)
	a := seedCourse(t, s, "c1", "Algorithms", 4)
	b := seedCourse(t, s, "c2", "Databases", 3)
	unplaced := seedCourse(t, s, "c3", "Ethics", 2)
	room := seedClassroom(t, s, "101")
	var instructor domain.Instructor
	mustRun(t, s, func(tx domain.Transaction) error {
		var err error
		instructor, err = tx.AddInstructor(domain.Instructor{Name: "Okafor"})
		if err != nil {
			return err
		}
		for _, assign := range []struct{ course, section string }{
			{a.ID, ""}, {b.ID, "A"}, {unplaced.ID, ""},
		} {
			if err := tx.AssignInstructor(assign.course, assign.section, instructor.ID); err != nil {
				return err
			}
		}
		// Course a placed twice (cross-listed) still counts once.
		if err := tx.Place(room.ID, domain.Monday, "09:00-10:00", a.ID, "", ""); err != nil {
			return err
		}
		if err := tx.Place(room.ID, domain.Tuesday, "09:00-10:00", a.ID, "", ""); err != nil {
			return err
		}
		return tx.Place(room.ID, domain.Monday, "10:00-11:00", b.ID, "", "A")
	})

	var workload int
	if err := s.View(context.Background(), func(view domain.StoreView) error {
		workload = view.InstructorWorkload(instructor.ID)
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	if workload != 7 {
		t.Fatalf("workload = %d, want 7 (4 + 3, unplaced excluded, duplicates once)", workload)
	}
}

func TestFailedTransactionLeavesStateUntouched(t *testing.T) {
	s := NewStore(nil)
	seedCourse(t, s, "c1", "Algorithms", 4)
	before := s.ExportState()

	sentinel := errors.New("boom")
	_, err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.AddProgram("CS"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	after := s.ExportState()
	if len(after.Programs) != len(before.Programs) {
		t.Fatalf("failed transaction mutated state")
	}
}

func TestToggleClassroomVisible(t *testing.T) {
	s := NewStore(nil)
	room := seedClassroom(t, s, "101")

	var visible bool
	mustRun(t, s, func(tx domain.Transaction) error {
		var err error
		visible, err = tx.ToggleClassroomVisible(room.ID)
		return err
	})
	if visible {
		t.Fatalf("first toggle should hide the classroom")
	}
	mustRun(t, s, func(tx domain.Transaction) error {
		var err error
		visible, err = tx.ToggleClassroomVisible(room.ID)
		return err
	})
	if !visible {
		t.Fatalf("second toggle should show the classroom again")
	}
}

func TestDeleteClassroomRemovesGridSubtree(t *testing.T) {
	s := NewStore(nil)
	course := seedCourse(t, s, "c1", "Algorithms", 4)
	room := seedClassroom(t, s, "101")
	mustRun(t, s, func(tx domain.Transaction) error {
		return tx.Place(room.ID, domain.Monday, "09:00-10:00", course.ID, "", "")
	})

	mustRun(t, s, func(tx domain.Transaction) error {
		return tx.DeleteClassroom(room.ID)
	})
	variant := s.ExportState().CurrentVariant()
	if len(variant.Classrooms) != 0 {
		t.Fatalf("classroom survived delete")
	}
	if _, ok := variant.Schedule[room.ID]; ok {
		t.Fatalf("grid subtree survived delete")
	}
}

func TestMutatorsRejectMissingEntities(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()
	for name, fn := range map[string]func(domain.Transaction) error{
		"edit program":     func(tx domain.Transaction) error { _, err := tx.EditProgram("nope", "x"); return err },
		"delete course":    func(tx domain.Transaction) error { return tx.DeleteCourse("nope") },
		"place":            func(tx domain.Transaction) error { return tx.Place("nope", domain.Monday, "09:00-10:00", "c", "", "") },
		"select schedule":  func(tx domain.Transaction) error { return tx.SelectSchedule("nope") },
		"assign missing":   func(tx domain.Transaction) error { return tx.AssignInstructor("nope", "", "") },
		"toggle classroom": func(tx domain.Transaction) error { _, err := tx.ToggleClassroomVisible("nope"); return err },
	} {
		_, err := s.RunInTransaction(ctx, fn)
		if !domain.IsNotFound(err) {
			t.Fatalf("%s: expected not-found error, got %v", name, err)
		}
	}
}
