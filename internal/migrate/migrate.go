// Package migrate upgrades any historical persisted snapshot shape to the
// current root document. It never fails: structurally plausible input is
// normalized best-effort, and unrecognizable input falls back to the default
// single-variant store with a logged warning.
package migrate

import (
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"schedcore/pkg/domain"
)

// shape discriminates the closed set of historical snapshot layouts. Detection
// order matters: the first matching branch wins.
type shape int

const (
	shapeUnknown shape = iota
	// shapeCurrent has top-level programs, courseCatalog, and a global
	// instructors array.
	shapeCurrent
	// shapeVariantInstructors has the catalog but still stores instructors
	// inside each schedule variant.
	shapeVariantInstructors
	// shapeNoCatalog has the schedules map but embeds courses per variant
	// instead of a global catalog.
	shapeNoCatalog
	// shapeFlatLegacy is the original single-schedule layout with
	// instructors/courses/classrooms/schedule at the top level.
	shapeFlatLegacy
)

// Normalize decodes raw snapshot bytes and upgrades them to the current shape.
func Normalize(raw []byte, logger *zap.Logger) *domain.Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(raw) == 0 {
		return domain.NewDefaultStore()
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("snapshot undecodable, starting from empty store", zap.Error(err))
		return domain.NewDefaultStore()
	}
	return NormalizeValue(v, logger)
}

// NormalizeValue upgrades an already-decoded snapshot value.
func NormalizeValue(v any, logger *zap.Logger) *domain.Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	root, ok := v.(map[string]any)
	if !ok {
		logger.Warn("snapshot root is not an object, starting from empty store")
		return domain.NewDefaultStore()
	}
	switch detectShape(root) {
	case shapeCurrent:
		// Only missing sub-fields need defaulting.
	case shapeVariantInstructors:
		hoistVariantInstructors(root)
	case shapeNoCatalog:
		// Per-variant course extraction happens during the uniform pass.
	case shapeFlatLegacy:
		root = wrapFlatLegacy(root)
	default:
		logger.Warn("snapshot shape unrecognized, starting from empty store")
		return domain.NewDefaultStore()
	}
	return build(root)
}

func detectShape(root map[string]any) shape {
	_, hasPrograms := root["programs"]
	_, hasCatalog := root["courseCatalog"]
	if hasPrograms && hasCatalog {
		if _, ok := root["instructors"].([]any); ok {
			return shapeCurrent
		}
		return shapeVariantInstructors
	}
	_, hasSchedules := root["schedules"]
	_, hasCurrent := root["currentSchedule"]
	if hasSchedules && hasCurrent {
		return shapeNoCatalog
	}
	for _, key := range []string{"instructors", "courses", "classrooms", "schedule"} {
		if _, ok := root[key]; ok {
			return shapeFlatLegacy
		}
	}
	return shapeUnknown
}

// hoistVariantInstructors moves per-variant instructor arrays into a global
// list, deduplicated by id, and deletes the per-variant field.
func hoistVariantInstructors(root map[string]any) {
	global, _ := root["instructors"].([]any)
	seen := map[string]bool{}
	for _, entry := range global {
		if m, ok := entry.(map[string]any); ok {
			seen[asString(m["id"])] = true
		}
	}
	schedules := asMap(root["schedules"])
	for _, name := range sortedKeys(schedules) {
		variant := asMap(schedules[name])
		if variant == nil {
			continue
		}
		for _, entry := range asList(variant["instructors"]) {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			id := asString(m["id"])
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			global = append(global, entry)
		}
		delete(variant, "instructors")
	}
	root["instructors"] = global
}

// wrapFlatLegacy turns the original single-schedule layout into a one-entry
// schedules map under the default name. Embedded courses are extracted later
// by the uniform pass.
func wrapFlatLegacy(root map[string]any) map[string]any {
	variant := map[string]any{}
	for _, key := range []string{"courses", "classrooms", "schedule"} {
		if v, ok := root[key]; ok {
			variant[key] = v
		}
	}
	wrapped := map[string]any{
		"schedules":       map[string]any{domain.DefaultScheduleName: variant},
		"currentSchedule": domain.DefaultScheduleName,
	}
	if v, ok := root["instructors"]; ok {
		wrapped["instructors"] = v
	}
	return wrapped
}

// build converts an upgraded raw document into a typed store, applying every
// uniform defaulting and coercion step.
func build(root map[string]any) *domain.Store {
	st := &domain.Store{
		Programs:          buildPrograms(asList(root["programs"])),
		CourseCatalog:     []domain.Course{},
		Instructors:       []domain.Instructor{},
		Schedules:         map[string]*domain.ScheduleVariant{},
		CollapsedSections: buildBoolMap(root["collapsedSections"]),
		InstructorFilter:  buildStringList(root["instructorFilter"]),
		ProgramFilter:     asString(root["programFilter"]),
	}
	for _, entry := range asList(root["courseCatalog"]) {
		if m, ok := entry.(map[string]any); ok {
			if course, ok := buildCourse(m); ok {
				st.CourseCatalog = append(st.CourseCatalog, course)
			}
		}
	}
	for _, entry := range asList(root["instructors"]) {
		if m, ok := entry.(map[string]any); ok {
			if instructor, ok := buildInstructor(m); ok {
				st.Instructors = append(st.Instructors, instructor)
			}
		}
	}

	schedules := asMap(root["schedules"])
	for _, name := range sortedKeys(schedules) {
		st.Schedules[name] = buildVariant(asMap(schedules[name]), st)
	}
	if len(st.Schedules) == 0 {
		st.Schedules[domain.DefaultScheduleName] = domain.NewScheduleVariant()
	}
	current := asString(root["currentSchedule"])
	if _, ok := st.Schedules[current]; !ok {
		current = scheduleNames(st.Schedules)[0]
	}
	st.CurrentSchedule = current
	return st
}

// ExtractVariant upgrades one raw variant payload in any historical encoding
// into a typed variant. Embedded per-variant courses and instructors are
// merged into st's catalogs by id, and embedded instructorId fields become
// assignments on the returned variant. Import of versioned export documents
// reuses this for their data payloads.
func ExtractVariant(value any, st *domain.Store) *domain.ScheduleVariant {
	return buildVariant(asMap(value), st)
}

func buildPrograms(raw []any) []domain.Program {
	out := []domain.Program{}
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id := asString(m["id"])
		if id == "" {
			continue
		}
		out = append(out, domain.Program{ID: id, Name: asString(m["name"])})
	}
	return out
}

func buildCourse(m map[string]any) (domain.Course, bool) {
	id := asString(m["id"])
	if id == "" {
		return domain.Course{}, false
	}
	course := domain.Course{
		ID:              id,
		Name:            asString(m["name"]),
		Credits:         asInt(m["credits"]),
		CourseNumber:    asString(m["courseNumber"]),
		QuarterTaken:    asString(m["quarterTaken"]),
		QuartersOffered: []domain.Quarter{},
	}
	if programID := asString(m["programId"]); programID != "" {
		course.ProgramID = &programID
	}
	for _, q := range asList(m["quartersOffered"]) {
		if s, ok := q.(string); ok && s != "" {
			course.QuartersOffered = append(course.QuartersOffered, domain.Quarter(s))
		}
	}
	return course, true
}

func buildInstructor(m map[string]any) (domain.Instructor, bool) {
	id := asString(m["id"])
	if id == "" {
		return domain.Instructor{}, false
	}
	color := asString(m["color"])
	if color == "" {
		color = domain.DefaultInstructorColor
	}
	return domain.Instructor{ID: id, Name: asString(m["name"]), Color: color}, true
}

func buildVariant(raw map[string]any, st *domain.Store) *domain.ScheduleVariant {
	variant := domain.NewScheduleVariant()
	if raw == nil {
		return variant
	}
	variant.Quarter = domain.Quarter(asString(raw["quarter"]))
	for key, value := range asMap(raw["courseInstructors"]) {
		if id, ok := value.(string); ok && id != "" {
			variant.CourseInstructors[key] = id
		}
	}

	// Older mixed snapshots can still carry a per-variant courses array:
	// extract each distinct course into the global catalog once and turn its
	// instructorId into an assignment.
	extractCourses(asList(raw["courses"]), st, variant)
	// Likewise, stray per-variant instructors get hoisted into the registry.
	harvestInstructors(asList(raw["instructors"]), st)

	for _, entry := range asList(raw["classrooms"]) {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if room, ok := buildClassroom(m); ok {
			variant.Classrooms = append(variant.Classrooms, room)
		}
	}

	grid := asMap(raw["schedule"])
	for _, room := range variant.Classrooms {
		variant.Schedule[room.ID] = buildRoomGrid(asMap(grid[room.ID]))
	}
	return variant
}

func extractCourses(raw []any, st *domain.Store, variant *domain.ScheduleVariant) {
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id := asString(m["id"])
		if id == "" {
			continue
		}
		if _, exists := st.FindCourse(id); !exists {
			if course, ok := buildCourse(m); ok {
				st.CourseCatalog = append(st.CourseCatalog, course)
			}
		}
		if instructorID := asString(m["instructorId"]); instructorID != "" {
			variant.CourseInstructors[id] = instructorID
		}
	}
}

func harvestInstructors(raw []any, st *domain.Store) {
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id := asString(m["id"])
		if id == "" {
			continue
		}
		if _, exists := st.FindInstructor(id); exists {
			continue
		}
		if instructor, ok := buildInstructor(m); ok {
			st.Instructors = append(st.Instructors, instructor)
		}
	}
}

func buildClassroom(m map[string]any) (domain.Classroom, bool) {
	id := asString(m["id"])
	if id == "" {
		return domain.Classroom{}, false
	}
	room := domain.Classroom{
		ID:                   id,
		RoomNumber:           asString(m["roomNumber"]),
		Timeslots:            map[domain.Day][]domain.Interval{},
		Visible:              asBool(m["visible"], true),
		TimeslotFormExpanded: asBool(m["timeslotFormExpanded"], true),
	}
	switch slots := m["timeslots"].(type) {
	case []any:
		// Oldest shape: one flat interval list shared by every weekday.
		shared := buildIntervalList(slots)
		for _, day := range domain.Weekdays {
			room.Timeslots[day] = append([]domain.Interval(nil), shared...)
		}
	case map[string]any:
		for dayName, value := range slots {
			room.Timeslots[domain.Day(dayName)] = buildIntervalList(asList(value))
		}
	}
	for _, day := range domain.Days {
		if room.Timeslots[day] == nil {
			room.Timeslots[day] = []domain.Interval{}
		}
	}
	return room, true
}

func buildIntervalList(raw []any) []domain.Interval {
	seen := map[string]bool{}
	out := []domain.Interval{}
	for _, entry := range raw {
		s, ok := entry.(string)
		if !ok || s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, domain.Interval(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func buildRoomGrid(raw map[string]any) map[domain.Day]map[domain.SlotKey][]domain.Placement {
	days := make(map[domain.Day]map[domain.SlotKey][]domain.Placement, len(domain.Days))
	for _, day := range domain.Days {
		days[day] = map[domain.SlotKey][]domain.Placement{}
		for slot, value := range asMap(raw[string(day)]) {
			placements := buildCell(value)
			if len(placements) > 0 {
				days[day][slot] = placements
			}
		}
	}
	return days
}

// buildCell coerces the three historical cell encodings into a placement list:
// a bare courseId string, a single placement object, or the current list form.
func buildCell(value any) []domain.Placement {
	switch cell := value.(type) {
	case string:
		if cell == "" {
			return nil
		}
		return []domain.Placement{{CourseID: cell, Modality: domain.ModalityInPerson, Section: ""}}
	case map[string]any:
		if p, ok := buildPlacement(cell); ok {
			return []domain.Placement{p}
		}
		return nil
	case []any:
		out := []domain.Placement{}
		for _, entry := range cell {
			if m, ok := entry.(map[string]any); ok {
				if p, ok := buildPlacement(m); ok {
					out = append(out, p)
				}
			}
		}
		return out
	default:
		return nil
	}
}

func buildPlacement(m map[string]any) (domain.Placement, bool) {
	courseID := asString(m["courseId"])
	if courseID == "" {
		return domain.Placement{}, false
	}
	modality := domain.Modality(asString(m["modality"]))
	if modality == "" {
		modality = domain.ModalityInPerson
	}
	return domain.Placement{CourseID: courseID, Modality: modality, Section: asString(m["section"])}, true
}

func buildBoolMap(v any) map[string]bool {
	out := map[string]bool{}
	for key, value := range asMap(v) {
		if b, ok := value.(bool); ok {
			out[key] = b
		}
	}
	return out
}

func buildStringList(v any) []string {
	out := []string{}
	for _, entry := range asList(v) {
		if s, ok := entry.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any, fallback bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return fallback
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func scheduleNames(m map[string]*domain.ScheduleVariant) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
