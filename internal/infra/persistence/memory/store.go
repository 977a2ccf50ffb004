// Package memory provides the in-memory implementation of the scheduling
// persistence store. It is the engine behind the durable backends and is used
// directly for tests and ephemeral environments.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"schedcore/pkg/domain"
)

// Compile-time contract assertions.
var (
	_ domain.PersistentStore = (*Store)(nil)
	_ domain.Transaction     = (*transaction)(nil)
	_ domain.StoreView       = storeView{}
	_ domain.RuleView        = ruleView{}
)

// Store holds the root document guarded by a single mutex. Transactions apply
// against a deep clone and swap it in on success, so readers never observe a
// partially applied mutation set.
type Store struct {
	mu     sync.RWMutex
	state  *domain.Store
	engine *domain.RulesEngine
}

// NewStore constructs a store seeded with the default single-variant document.
// The engine may be nil, in which case transactions commit without evaluation.
func NewStore(engine *domain.RulesEngine) *Store {
	return &Store{
		state:  domain.NewDefaultStore(),
		engine: engine,
	}
}

func (s *Store) newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// RunInTransaction executes fn against a transactional copy of the document.
// After fn succeeds the rules engine evaluates the current variant; the result
// is advisory and never blocks the commit.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{store: s, state: s.state.Clone()}
	if err := fn(tx); err != nil {
		return domain.Result{}, err
	}

	var result domain.Result
	if s.engine != nil {
		view := newRuleView(tx.state, tx.state.CurrentSchedule)
		res, err := s.engine.Evaluate(ctx, view)
		if err != nil {
			return domain.Result{}, err
		}
		result = res
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the document.
func (s *Store) View(ctx context.Context, fn func(domain.StoreView) error) error {
	s.mu.RLock()
	snapshot := s.state.Clone()
	s.mu.RUnlock()
	return fn(storeView{state: snapshot})
}

// Validate evaluates the rules engine over the named variant without mutating
// anything. An empty name targets the current variant.
func (s *Store) Validate(ctx context.Context, scheduleName string) (domain.Result, error) {
	s.mu.RLock()
	snapshot := s.state.Clone()
	s.mu.RUnlock()

	if scheduleName == "" {
		scheduleName = snapshot.CurrentSchedule
	}
	if _, ok := snapshot.Schedules[scheduleName]; !ok {
		return domain.Result{}, domain.NotFoundError{Entity: "schedule", ID: scheduleName}
	}
	if s.engine == nil {
		return domain.Result{}, nil
	}
	return s.engine.Evaluate(ctx, newRuleView(snapshot, scheduleName))
}

// ExportState returns a deep clone of the root document.
func (s *Store) ExportState() *domain.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// ImportState replaces the root document with a deep clone of the argument.
func (s *Store) ImportState(st *domain.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st.Clone()
}

// transaction mutates a private clone of the document. All variant-scoped
// operations act on the clone's current variant.
type transaction struct {
	store *Store
	state *domain.Store
}

func (tx *transaction) current() *domain.ScheduleVariant {
	return tx.state.CurrentVariant()
}

func (tx *transaction) classroom(id string) (*domain.Classroom, error) {
	room, ok := tx.current().FindClassroom(id)
	if !ok {
		return nil, domain.NotFoundError{Entity: "classroom", ID: id}
	}
	return room, nil
}

// AddProgram appends a program to the global catalog.
func (tx *transaction) AddProgram(name string) (domain.Program, error) {
	program := domain.Program{ID: tx.store.newID(), Name: name}
	tx.state.Programs = append(tx.state.Programs, program)
	return program, nil
}

// EditProgram renames a program.
func (tx *transaction) EditProgram(id, name string) (domain.Program, error) {
	for i := range tx.state.Programs {
		if tx.state.Programs[i].ID == id {
			tx.state.Programs[i].Name = name
			return tx.state.Programs[i], nil
		}
	}
	return domain.Program{}, domain.NotFoundError{Entity: "program", ID: id}
}

// DeleteProgram removes a program. Refused while catalog courses still
// reference it.
func (tx *transaction) DeleteProgram(id string) error {
	if _, ok := tx.state.FindProgram(id); !ok {
		return domain.NotFoundError{Entity: "program", ID: id}
	}
	for _, course := range tx.state.CourseCatalog {
		if course.ProgramID != nil && *course.ProgramID == id {
			return domain.RefusalError{Reason: domain.RefusalHasDependentCourses, Entity: "program", ID: id}
		}
	}
	kept := tx.state.Programs[:0]
	for _, p := range tx.state.Programs {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	tx.state.Programs = kept
	return nil
}

// AddCourse appends a catalog course, assigning an id when absent.
func (tx *transaction) AddCourse(course domain.Course) (domain.Course, error) {
	if course.ID == "" {
		course.ID = tx.store.newID()
	}
	if course.QuartersOffered == nil {
		course.QuartersOffered = []domain.Quarter{}
	}
	clone := course.Clone()
	tx.state.CourseCatalog = append(tx.state.CourseCatalog, clone)
	return clone, nil
}

// EditCourse applies mutator to a copy of the course and stores it. The id is
// immutable.
func (tx *transaction) EditCourse(id string, mutator func(*domain.Course) error) (domain.Course, error) {
	for i := range tx.state.CourseCatalog {
		if tx.state.CourseCatalog[i].ID != id {
			continue
		}
		updated := tx.state.CourseCatalog[i].Clone()
		if err := mutator(&updated); err != nil {
			return domain.Course{}, err
		}
		updated.ID = id
		if updated.QuartersOffered == nil {
			updated.QuartersOffered = []domain.Quarter{}
		}
		tx.state.CourseCatalog[i] = updated
		return updated.Clone(), nil
	}
	return domain.Course{}, domain.NotFoundError{Entity: "course", ID: id}
}

// DeleteCourse removes a course from the catalog and cascades across every
// variant: placements of the course disappear from all grids, slot keys left
// empty are pruned, and instructor assignments targeting the course or any of
// its sections are dropped.
func (tx *transaction) DeleteCourse(id string) error {
	if _, ok := tx.state.FindCourse(id); !ok {
		return domain.NotFoundError{Entity: "course", ID: id}
	}
	for _, name := range sortedScheduleNames(tx.state.Schedules) {
		variant := tx.state.Schedules[name]
		for _, days := range variant.Schedule {
			for day, slots := range days {
				for slot, placements := range slots {
					kept := placements[:0]
					for _, p := range placements {
						if p.CourseID != id {
							kept = append(kept, p)
						}
					}
					if len(kept) == 0 {
						delete(slots, slot)
					} else {
						slots[slot] = kept
					}
				}
				if len(slots) == 0 {
					delete(days, day)
				}
			}
		}
		for key := range variant.CourseInstructors {
			if domain.KeyReferencesCourse(key, id) {
				delete(variant.CourseInstructors, key)
			}
		}
	}
	kept := tx.state.CourseCatalog[:0]
	for _, c := range tx.state.CourseCatalog {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	tx.state.CourseCatalog = kept
	return nil
}

// AddInstructor appends an instructor, assigning an id and the default color
// when absent.
func (tx *transaction) AddInstructor(instructor domain.Instructor) (domain.Instructor, error) {
	if instructor.ID == "" {
		instructor.ID = tx.store.newID()
	}
	if instructor.Color == "" {
		instructor.Color = domain.DefaultInstructorColor
	}
	tx.state.Instructors = append(tx.state.Instructors, instructor)
	return instructor, nil
}

// EditInstructor applies mutator to a copy of the instructor and stores it.
func (tx *transaction) EditInstructor(id string, mutator func(*domain.Instructor) error) (domain.Instructor, error) {
	for i := range tx.state.Instructors {
		if tx.state.Instructors[i].ID != id {
			continue
		}
		updated := tx.state.Instructors[i]
		if err := mutator(&updated); err != nil {
			return domain.Instructor{}, err
		}
		updated.ID = id
		if updated.Color == "" {
			updated.Color = domain.DefaultInstructorColor
		}
		tx.state.Instructors[i] = updated
		return updated, nil
	}
	return domain.Instructor{}, domain.NotFoundError{Entity: "instructor", ID: id}
}

// DeleteInstructor removes an instructor. Refused while any variant still
// assigns them to a (course, section) pair.
func (tx *transaction) DeleteInstructor(id string) error {
	if _, ok := tx.state.FindInstructor(id); !ok {
		return domain.NotFoundError{Entity: "instructor", ID: id}
	}
	for _, variant := range tx.state.Schedules {
		for _, assigned := range variant.CourseInstructors {
			if assigned == id {
				return domain.RefusalError{Reason: domain.RefusalHasAssignments, Entity: "instructor", ID: id}
			}
		}
	}
	kept := tx.state.Instructors[:0]
	for _, in := range tx.state.Instructors {
		if in.ID != id {
			kept = append(kept, in)
		}
	}
	tx.state.Instructors = kept
	return nil
}

// AddClassroom appends a classroom to the current variant with empty interval
// sets for every day and an empty grid subtree.
func (tx *transaction) AddClassroom(roomNumber string) (domain.Classroom, error) {
	room := domain.Classroom{
		ID:                   tx.store.newID(),
		RoomNumber:           roomNumber,
		Timeslots:            map[domain.Day][]domain.Interval{},
		Visible:              true,
		TimeslotFormExpanded: true,
	}
	for _, day := range domain.Days {
		room.Timeslots[day] = []domain.Interval{}
	}
	variant := tx.current()
	variant.Classrooms = append(variant.Classrooms, room)
	variant.Schedule[room.ID] = map[domain.Day]map[domain.SlotKey][]domain.Placement{}
	return room.Clone(), nil
}

// DeleteClassroom removes a classroom from the current variant along with its
// entire grid subtree.
func (tx *transaction) DeleteClassroom(id string) error {
	variant := tx.current()
	if _, ok := variant.FindClassroom(id); !ok {
		return domain.NotFoundError{Entity: "classroom", ID: id}
	}
	kept := variant.Classrooms[:0]
	for _, room := range variant.Classrooms {
		if room.ID != id {
			kept = append(kept, room)
		}
	}
	variant.Classrooms = kept
	delete(variant.Schedule, id)
	return nil
}

// ToggleClassroomVisible flips the visibility flag and returns the new value.
func (tx *transaction) ToggleClassroomVisible(id string) (bool, error) {
	room, err := tx.classroom(id)
	if err != nil {
		return false, err
	}
	room.Visible = !room.Visible
	return room.Visible, nil
}

// SetTimeslotFormExpanded persists the per-classroom form state.
func (tx *transaction) SetTimeslotFormExpanded(id string, expanded bool) error {
	room, err := tx.classroom(id)
	if err != nil {
		return err
	}
	room.TimeslotFormExpanded = expanded
	return nil
}

// AddTimeslot inserts an interval into a weekday's set, keeping it
// de-duplicated and sorted. Refused when start does not strictly precede end;
// the Arranged day carries no intervals.
func (tx *transaction) AddTimeslot(classroomID string, day domain.Day, start, end string) (domain.Interval, error) {
	room, err := tx.classroom(classroomID)
	if err != nil {
		return "", err
	}
	if day == domain.Arranged || !domain.ValidIntervalBounds(start, end) {
		return "", domain.RefusalError{Reason: domain.RefusalInvalidInterval, Entity: "timeslot", ID: start + "-" + end}
	}
	interval := domain.MakeInterval(start, end)
	for _, existing := range room.Timeslots[day] {
		if existing == interval {
			return interval, nil
		}
	}
	room.Timeslots[day] = append(room.Timeslots[day], interval)
	sort.Slice(room.Timeslots[day], func(i, j int) bool {
		return room.Timeslots[day][i] < room.Timeslots[day][j]
	})
	return interval, nil
}

// RemoveTimeslot drops an interval from a day's set and clears the matching
// grid cell, placements included.
func (tx *transaction) RemoveTimeslot(classroomID string, day domain.Day, interval domain.Interval) error {
	room, err := tx.classroom(classroomID)
	if err != nil {
		return err
	}
	kept := room.Timeslots[day][:0]
	for _, existing := range room.Timeslots[day] {
		if existing != interval {
			kept = append(kept, existing)
		}
	}
	room.Timeslots[day] = kept

	variant := tx.current()
	if slots := variant.Schedule[classroomID][day]; slots != nil {
		delete(slots, domain.SlotKey(interval))
		if len(slots) == 0 {
			delete(variant.Schedule[classroomID], day)
		}
	}
	return nil
}

// CopyTimeslots replicates the source day's interval set onto every other
// weekday, overwriting their sets. Grid placements are untouched.
func (tx *transaction) CopyTimeslots(classroomID string, source domain.Day) error {
	room, err := tx.classroom(classroomID)
	if err != nil {
		return err
	}
	template := append([]domain.Interval{}, room.Timeslots[source]...)
	for _, day := range domain.Weekdays {
		if day == source {
			continue
		}
		room.Timeslots[day] = append([]domain.Interval{}, template...)
	}
	return nil
}

// Place appends a placement to a grid cell. Conflicts never reject here; the
// validator reports them after commit.
func (tx *transaction) Place(classroomID string, day domain.Day, slot domain.SlotKey, courseID string, modality domain.Modality, section string) error {
	if _, err := tx.classroom(classroomID); err != nil {
		return err
	}
	if _, ok := tx.state.FindCourse(courseID); !ok {
		return domain.NotFoundError{Entity: "course", ID: courseID}
	}
	if modality == "" {
		modality = domain.ModalityInPerson
	}
	variant := tx.current()
	days := variant.Schedule[classroomID]
	if days == nil {
		days = map[domain.Day]map[domain.SlotKey][]domain.Placement{}
		variant.Schedule[classroomID] = days
	}
	slots := days[day]
	if slots == nil {
		slots = map[domain.SlotKey][]domain.Placement{}
		days[day] = slots
	}
	slots[slot] = append(slots[slot], domain.Placement{CourseID: courseID, Modality: modality, Section: section})
	return nil
}

// Unplace removes the placement at index within a cell, pruning the slot key
// when it empties.
func (tx *transaction) Unplace(classroomID string, day domain.Day, slot domain.SlotKey, index int) error {
	placements, slots, err := tx.cell(classroomID, day, slot)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(placements) {
		return fmt.Errorf("placement index %d out of range for %s %s", index, day, slot)
	}
	placements = append(placements[:index], placements[index+1:]...)
	if len(placements) == 0 {
		delete(slots, slot)
		if len(slots) == 0 {
			delete(tx.current().Schedule[classroomID], day)
		}
	} else {
		slots[slot] = placements
	}
	return nil
}

// SetPlacementModality updates the modality of the placement at index.
func (tx *transaction) SetPlacementModality(classroomID string, day domain.Day, slot domain.SlotKey, index int, modality domain.Modality) error {
	placements, _, err := tx.cell(classroomID, day, slot)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(placements) {
		return fmt.Errorf("placement index %d out of range for %s %s", index, day, slot)
	}
	if modality == "" {
		modality = domain.ModalityInPerson
	}
	placements[index].Modality = modality
	return nil
}

func (tx *transaction) cell(classroomID string, day domain.Day, slot domain.SlotKey) ([]domain.Placement, map[domain.SlotKey][]domain.Placement, error) {
	if _, err := tx.classroom(classroomID); err != nil {
		return nil, nil, err
	}
	slots := tx.current().Schedule[classroomID][day]
	placements, ok := slots[slot]
	if !ok {
		return nil, nil, domain.NotFoundError{Entity: "slot", ID: string(day) + " " + slot}
	}
	return placements, slots, nil
}

// AssignInstructor binds an instructor to a (course, section) pair in the
// current variant. An empty instructor id clears the assignment.
func (tx *transaction) AssignInstructor(courseID, section, instructorID string) error {
	if _, ok := tx.state.FindCourse(courseID); !ok {
		return domain.NotFoundError{Entity: "course", ID: courseID}
	}
	key := domain.AssignmentKey{CourseID: courseID, Section: section}.Canonical()
	variant := tx.current()
	if instructorID == "" {
		delete(variant.CourseInstructors, key)
		return nil
	}
	if _, ok := tx.state.FindInstructor(instructorID); !ok {
		return domain.NotFoundError{Entity: "instructor", ID: instructorID}
	}
	variant.CourseInstructors[key] = instructorID
	return nil
}

// CreateSchedule adds a new variant and selects it. With copyCurrent the new
// variant starts as a deep copy of the current one, otherwise empty.
func (tx *transaction) CreateSchedule(name string, quarter domain.Quarter, copyCurrent bool) error {
	if name == "" {
		return fmt.Errorf("schedule name must not be empty")
	}
	if _, exists := tx.state.Schedules[name]; exists {
		return domain.RefusalError{Reason: domain.RefusalDuplicateSchedule, Entity: "schedule", ID: name}
	}
	var variant *domain.ScheduleVariant
	if copyCurrent {
		variant = tx.current().Clone()
	} else {
		variant = domain.NewScheduleVariant()
	}
	variant.Quarter = quarter
	tx.state.Schedules[name] = variant
	tx.state.CurrentSchedule = name
	return nil
}

// RenameSchedule moves a variant to a new name, following the current-schedule
// pointer when it targets the renamed variant.
func (tx *transaction) RenameSchedule(oldName, newName string) error {
	variant, ok := tx.state.Schedules[oldName]
	if !ok {
		return domain.NotFoundError{Entity: "schedule", ID: oldName}
	}
	if newName == "" {
		return fmt.Errorf("schedule name must not be empty")
	}
	if newName == oldName {
		return nil
	}
	if _, exists := tx.state.Schedules[newName]; exists {
		return domain.RefusalError{Reason: domain.RefusalDuplicateSchedule, Entity: "schedule", ID: newName}
	}
	tx.state.Schedules[newName] = variant
	delete(tx.state.Schedules, oldName)
	if tx.state.CurrentSchedule == oldName {
		tx.state.CurrentSchedule = newName
	}
	return nil
}

// DeleteSchedule removes a variant. Refused for the last remaining one; when
// the current variant is deleted the lexicographically smallest remaining name
// becomes current.
func (tx *transaction) DeleteSchedule(name string) error {
	if _, ok := tx.state.Schedules[name]; !ok {
		return domain.NotFoundError{Entity: "schedule", ID: name}
	}
	if len(tx.state.Schedules) == 1 {
		return domain.RefusalError{Reason: domain.RefusalLastVariant, Entity: "schedule", ID: name}
	}
	delete(tx.state.Schedules, name)
	if tx.state.CurrentSchedule == name {
		tx.state.CurrentSchedule = sortedScheduleNames(tx.state.Schedules)[0]
	}
	return nil
}

// SetScheduleQuarter retargets a variant's quarter.
func (tx *transaction) SetScheduleQuarter(name string, quarter domain.Quarter) error {
	variant, ok := tx.state.Schedules[name]
	if !ok {
		return domain.NotFoundError{Entity: "schedule", ID: name}
	}
	variant.Quarter = quarter
	return nil
}

// SelectSchedule moves the current-schedule pointer.
func (tx *transaction) SelectSchedule(name string) error {
	if _, ok := tx.state.Schedules[name]; !ok {
		return domain.NotFoundError{Entity: "schedule", ID: name}
	}
	tx.state.CurrentSchedule = name
	return nil
}

// SetInstructorFilter replaces the persisted instructor filter.
func (tx *transaction) SetInstructorFilter(ids []string) error {
	tx.state.InstructorFilter = append([]string{}, ids...)
	return nil
}

// SetProgramFilter replaces the persisted program filter.
func (tx *transaction) SetProgramFilter(programID string) error {
	tx.state.ProgramFilter = programID
	return nil
}

// SetSectionCollapsed records a sidebar section's collapsed state. Expanded
// sections are dropped from the map rather than stored as false.
func (tx *transaction) SetSectionCollapsed(section string, collapsed bool) error {
	if collapsed {
		tx.state.CollapsedSections[section] = true
	} else {
		delete(tx.state.CollapsedSections, section)
	}
	return nil
}

func sortedScheduleNames(schedules map[string]*domain.ScheduleVariant) []string {
	names := make([]string, 0, len(schedules))
	for name := range schedules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// storeView adapts a cloned document to the read-only StoreView contract.
type storeView struct {
	state *domain.Store
}

func (v storeView) Programs() []domain.Program {
	return append([]domain.Program{}, v.state.Programs...)
}

func (v storeView) Courses() []domain.Course {
	out := make([]domain.Course, 0, len(v.state.CourseCatalog))
	for _, c := range v.state.CourseCatalog {
		out = append(out, c.Clone())
	}
	return out
}

func (v storeView) Instructors() []domain.Instructor {
	return append([]domain.Instructor{}, v.state.Instructors...)
}

func (v storeView) ScheduleNames() []string {
	return sortedScheduleNames(v.state.Schedules)
}

func (v storeView) CurrentScheduleName() string {
	return v.state.CurrentSchedule
}

func (v storeView) Variant(name string) (*domain.ScheduleVariant, bool) {
	variant, ok := v.state.Schedules[name]
	if !ok {
		return nil, false
	}
	return variant.Clone(), true
}

func (v storeView) CurrentVariant() *domain.ScheduleVariant {
	variant := v.state.CurrentVariant()
	if variant == nil {
		return nil
	}
	return variant.Clone()
}

func (v storeView) FindProgram(id string) (domain.Program, bool) {
	return v.state.FindProgram(id)
}

func (v storeView) FindCourse(id string) (domain.Course, bool) {
	course, ok := v.state.FindCourse(id)
	if !ok {
		return domain.Course{}, false
	}
	return course.Clone(), true
}

func (v storeView) FindInstructor(id string) (domain.Instructor, bool) {
	return v.state.FindInstructor(id)
}

// InstructorWorkload sums credits over the distinct (course, section) pairs
// assigned to the instructor and placed somewhere in the current variant.
func (v storeView) InstructorWorkload(instructorID string) int {
	variant := v.state.CurrentVariant()
	if variant == nil {
		return 0
	}
	counted := map[string]bool{}
	total := 0
	for _, cell := range domain.BuildCells(variant) {
		for _, entry := range cell.Entries {
			key := domain.AssignmentKey{CourseID: entry.CourseID, Section: entry.Section}.Canonical()
			if counted[key] || variant.CourseInstructors[key] != instructorID {
				continue
			}
			counted[key] = true
			if course, ok := v.state.FindCourse(entry.CourseID); ok {
				total += course.Credits
			}
		}
	}
	return total
}

func (v storeView) IsCoursePlaced(courseID string) bool {
	variant := v.state.CurrentVariant()
	if variant == nil {
		return false
	}
	for _, days := range variant.Schedule {
		for _, slots := range days {
			for _, placements := range slots {
				for _, p := range placements {
					if p.CourseID == courseID {
						return true
					}
				}
			}
		}
	}
	return false
}

func (v storeView) CourseDisplayName(courseID string) string {
	return v.state.CourseDisplayName(courseID)
}

// ruleView adapts one variant of a document to the validator's RuleView. The
// cell index and scheduled-course list are computed once up front so every
// rule sees the same deterministic ordering.
type ruleView struct {
	state     *domain.Store
	schedule  string
	cells     []domain.Cell
	scheduled []string
}

func newRuleView(state *domain.Store, scheduleName string) ruleView {
	variant := state.Schedules[scheduleName]
	return ruleView{
		state:     state,
		schedule:  scheduleName,
		cells:     domain.BuildCells(variant),
		scheduled: domain.ScheduledCourseIDs(variant),
	}
}

func (v ruleView) ScheduleName() string { return v.schedule }

func (v ruleView) Variant() *domain.ScheduleVariant { return v.state.Schedules[v.schedule] }

func (v ruleView) Programs() []domain.Program { return v.state.Programs }

func (v ruleView) Courses() []domain.Course { return v.state.CourseCatalog }

func (v ruleView) FindProgram(id string) (domain.Program, bool) { return v.state.FindProgram(id) }

func (v ruleView) FindCourse(id string) (domain.Course, bool) { return v.state.FindCourse(id) }

func (v ruleView) FindInstructor(id string) (domain.Instructor, bool) {
	return v.state.FindInstructor(id)
}

func (v ruleView) Cells() []domain.Cell { return v.cells }

func (v ruleView) ScheduledCourseIDs() []string { return v.scheduled }
