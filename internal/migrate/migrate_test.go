package migrate

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"schedcore/pkg/domain"
)

func TestNormalizeFlatLegacy(t *testing.T) {
	raw := []byte(`{
		"instructors": [{"id": "i1", "name": "Rivera"}],
		"courses": [{"id": "c1", "name": "Algorithms", "credits": 4, "instructorId": "i1"}],
		"classrooms": [{"id": "r1", "roomNumber": "101", "timeslots": ["09:00-10:00", "09:00-10:00", "08:00-09:00"]}],
		"schedule": {"r1": {"Monday": {"09:00-10:00": "c1"}}}
	}`)
	st := Normalize(raw, nil)

	if len(st.Schedules) != 1 {
		t.Fatalf("expected one schedule, got %d", len(st.Schedules))
	}
	if st.CurrentSchedule != domain.DefaultScheduleName {
		t.Fatalf("current schedule = %q", st.CurrentSchedule)
	}
	variant := st.CurrentVariant()
	if len(st.CourseCatalog) != 1 || st.CourseCatalog[0].ID != "c1" {
		t.Fatalf("embedded course not extracted: %+v", st.CourseCatalog)
	}
	if got := variant.CourseInstructors["c1"]; got != "i1" {
		t.Fatalf("instructorId not converted to assignment, got %q", got)
	}
	if len(st.Instructors) != 1 || st.Instructors[0].Color != domain.DefaultInstructorColor {
		t.Fatalf("instructor missing or without default color: %+v", st.Instructors)
	}
	room := variant.Classrooms[0]
	want := []domain.Interval{"08:00-09:00", "09:00-10:00"}
	for _, day := range domain.Weekdays {
		if diff := cmp.Diff(want, room.Timeslots[day]); diff != "" {
			t.Fatalf("timeslots for %s not deduped/sorted/shared (-want +got):\n%s", day, diff)
		}
	}
	if len(room.Timeslots[domain.Arranged]) != 0 {
		t.Fatalf("arranged day should carry no intervals")
	}
	placements := variant.Schedule["r1"][domain.Monday]["09:00-10:00"]
	if len(placements) != 1 || placements[0].Modality != domain.ModalityInPerson {
		t.Fatalf("string cell not coerced to in-person placement: %+v", placements)
	}
}

func TestNormalizeNoCatalog(t *testing.T) {
	raw := []byte(`{
		"schedules": {
			"Fall Plan": {
				"quarter": "Fall",
				"courses": [{"id": "c1", "name": "Databases", "credits": 3, "instructorId": "i1"}],
				"instructors": [{"id": "i1", "name": "Kim", "color": "#123456"}],
				"classrooms": [{"id": "r1", "roomNumber": "12", "timeslots": {"Monday": ["09:00-10:00"]}}],
				"schedule": {"r1": {"Monday": {"09:00-10:00": {"courseId": "c1", "modality": "online"}}}}
			}
		},
		"currentSchedule": "Fall Plan"
	}`)
	st := Normalize(raw, nil)

	if _, ok := st.FindCourse("c1"); !ok {
		t.Fatalf("per-variant course not hoisted into catalog")
	}
	if instructor, ok := st.FindInstructor("i1"); !ok || instructor.Color != "#123456" {
		t.Fatalf("per-variant instructor not hoisted: %+v", st.Instructors)
	}
	variant := st.Schedules["Fall Plan"]
	if variant.Quarter != domain.QuarterFall {
		t.Fatalf("quarter = %q", variant.Quarter)
	}
	placements := variant.Schedule["r1"][domain.Monday]["09:00-10:00"]
	if len(placements) != 1 || placements[0].Modality != domain.ModalityOnline {
		t.Fatalf("object cell not coerced: %+v", placements)
	}
}

func TestNormalizeVariantInstructorsHoisted(t *testing.T) {
	raw := []byte(`{
		"programs": [{"id": "p1", "name": "CS"}],
		"courseCatalog": [{"id": "c1", "name": "Compilers", "credits": 4, "programId": "p1"}],
		"schedules": {
			"A": {"instructors": [{"id": "i1", "name": "Okafor"}]},
			"B": {"instructors": [{"id": "i1", "name": "Okafor"}, {"id": "i2", "name": "Silva"}]}
		},
		"currentSchedule": "A"
	}`)
	st := Normalize(raw, nil)

	if len(st.Instructors) != 2 {
		t.Fatalf("expected 2 deduped instructors, got %+v", st.Instructors)
	}
	course, _ := st.FindCourse("c1")
	if course.ProgramID == nil || *course.ProgramID != "p1" {
		t.Fatalf("programId lost: %+v", course)
	}
}

func TestNormalizeCurrentShape(t *testing.T) {
	raw := []byte(`{
		"programs": [],
		"courseCatalog": [{"id": "c1", "name": "Ethics", "credits": 2, "quartersOffered": ["Fall", "Spring"]}],
		"instructors": [],
		"schedules": {"Default": {"quarter": "", "courseInstructors": {"c1::A": "i9"}, "classrooms": [], "schedule": {}}},
		"currentSchedule": "Default",
		"collapsedSections": {"programs": true},
		"instructorFilter": ["i9"],
		"programFilter": "p1"
	}`)
	st := Normalize(raw, nil)

	if got := st.Schedules["Default"].CourseInstructors["c1::A"]; got != "i9" {
		t.Fatalf("sectioned assignment lost, got %q", got)
	}
	if !st.CollapsedSections["programs"] || len(st.InstructorFilter) != 1 || st.ProgramFilter != "p1" {
		t.Fatalf("ui state not preserved: %+v", st)
	}
	course, _ := st.FindCourse("c1")
	if len(course.QuartersOffered) != 2 {
		t.Fatalf("quartersOffered lost: %+v", course)
	}
}

func TestNormalizeUnknownFallsBackToDefault(t *testing.T) {
	for _, raw := range [][]byte{
		nil,
		[]byte(`"just a string"`),
		[]byte(`{"unrelated": true}`),
		[]byte(`{broken`),
	} {
		st := Normalize(raw, nil)
		if diff := cmp.Diff(domain.NewDefaultStore(), st); diff != "" {
			t.Fatalf("input %q did not fall back to default store (-want +got):\n%s", raw, diff)
		}
	}
}

func TestNormalizeInvalidCurrentSchedule(t *testing.T) {
	raw := []byte(`{
		"programs": [],
		"courseCatalog": [],
		"instructors": [],
		"schedules": {"B": {}, "A": {}},
		"currentSchedule": "Gone"
	}`)
	st := Normalize(raw, nil)
	if st.CurrentSchedule != "A" {
		t.Fatalf("expected fallback to first sorted name, got %q", st.CurrentSchedule)
	}
}

func TestNormalizeDropsGridForUnknownClassroom(t *testing.T) {
	raw := []byte(`{
		"schedules": {"Default": {
			"classrooms": [{"id": "r1", "roomNumber": "1"}],
			"schedule": {"ghost": {"Monday": {"09:00-10:00": "c1"}}}
		}},
		"currentSchedule": "Default"
	}`)
	st := Normalize(raw, nil)
	if _, ok := st.CurrentVariant().Schedule["ghost"]; ok {
		t.Fatalf("grid subtree for unknown classroom survived")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	fixtures := map[string][]byte{
		"flat": []byte(`{
			"instructors": [{"id": "i1", "name": "Rivera"}],
			"courses": [{"id": "c1", "name": "Algorithms", "credits": 4, "instructorId": "i1"}],
			"classrooms": [{"id": "r1", "roomNumber": "101", "timeslots": ["09:00-10:00"]}],
			"schedule": {"r1": {"Monday": {"09:00-10:00": "c1"}}}
		}`),
		"noCatalog": []byte(`{
			"schedules": {"Default": {
				"courses": [{"id": "c1", "name": "Databases", "credits": 3}],
				"classrooms": [{"id": "r1", "roomNumber": "12"}],
				"schedule": {"r1": {"Tuesday": {"arranged": {"courseId": "c1"}}}}
			}},
			"currentSchedule": "Default"
		}`),
		"variantInstructors": []byte(`{
			"programs": [],
			"courseCatalog": [{"id": "c1", "name": "Compilers", "credits": 4}],
			"schedules": {"A": {"instructors": [{"id": "i1", "name": "Okafor"}]}},
			"currentSchedule": "A"
		}`),
		"current": []byte(`{
			"programs": [{"id": "p1", "name": "CS"}],
			"courseCatalog": [{"id": "c1", "name": "Ethics", "credits": 2, "programId": "p1"}],
			"instructors": [{"id": "i1", "name": "Kim", "color": "#123456"}],
			"schedules": {"Default": {"quarter": "Winter", "courseInstructors": {"c1": "i1"}, "classrooms": [], "schedule": {}}},
			"currentSchedule": "Default"
		}`),
		"empty": []byte(`{"instructors": []}`),
	}
	for name, raw := range fixtures {
		first := Normalize(raw, nil)
		data, err := json.Marshal(first)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		second := Normalize(data, nil)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("%s: normalize not idempotent (-first +second):\n%s", name, diff)
		}
	}
}
