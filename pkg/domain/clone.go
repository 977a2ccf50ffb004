package domain

// Deep-clone helpers. The memory store commits by cloning the whole root
// document, mutating the copy, and swapping it in; variants are also cloned
// when a new schedule is created from the current one.

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneIntervals(in []Interval) []Interval {
	if in == nil {
		return nil
	}
	return append([]Interval(nil), in...)
}

// Clone returns a deep copy of the course.
func (c Course) Clone() Course {
	cp := c
	if c.ProgramID != nil {
		id := *c.ProgramID
		cp.ProgramID = &id
	}
	cp.QuartersOffered = append([]Quarter(nil), c.QuartersOffered...)
	return cp
}

// Clone returns a deep copy of the classroom.
func (c Classroom) Clone() Classroom {
	cp := c
	cp.Timeslots = make(map[Day][]Interval, len(c.Timeslots))
	for day, slots := range c.Timeslots {
		cp.Timeslots[day] = cloneIntervals(slots)
	}
	return cp
}

// Clone returns a deep copy of the variant.
func (v *ScheduleVariant) Clone() *ScheduleVariant {
	if v == nil {
		return nil
	}
	cp := NewScheduleVariant()
	cp.Quarter = v.Quarter
	for key, instructorID := range v.CourseInstructors {
		cp.CourseInstructors[key] = instructorID
	}
	cp.Classrooms = make([]Classroom, 0, len(v.Classrooms))
	for _, room := range v.Classrooms {
		cp.Classrooms = append(cp.Classrooms, room.Clone())
	}
	for roomID, days := range v.Schedule {
		clonedDays := make(map[Day]map[SlotKey][]Placement, len(days))
		for day, slots := range days {
			clonedSlots := make(map[SlotKey][]Placement, len(slots))
			for slot, placements := range slots {
				clonedSlots[slot] = append([]Placement(nil), placements...)
			}
			clonedDays[day] = clonedSlots
		}
		cp.Schedule[roomID] = clonedDays
	}
	return cp
}

// Clone returns a deep copy of the root document.
func (s *Store) Clone() *Store {
	if s == nil {
		return nil
	}
	cp := &Store{
		Programs:          append([]Program(nil), s.Programs...),
		CourseCatalog:     make([]Course, 0, len(s.CourseCatalog)),
		Instructors:       append([]Instructor(nil), s.Instructors...),
		Schedules:         make(map[string]*ScheduleVariant, len(s.Schedules)),
		CurrentSchedule:   s.CurrentSchedule,
		CollapsedSections: make(map[string]bool, len(s.CollapsedSections)),
		InstructorFilter:  cloneStrings(s.InstructorFilter),
		ProgramFilter:     s.ProgramFilter,
	}
	for _, course := range s.CourseCatalog {
		cp.CourseCatalog = append(cp.CourseCatalog, course.Clone())
	}
	for name, variant := range s.Schedules {
		cp.Schedules[name] = variant.Clone()
	}
	for section, collapsed := range s.CollapsedSections {
		cp.CollapsedSections[section] = collapsed
	}
	return cp
}
