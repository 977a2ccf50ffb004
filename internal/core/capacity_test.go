package core

import (
	"testing"

	"schedcore/pkg/domain"
)

func capacityVariant() *domain.ScheduleVariant {
	v := domain.NewScheduleVariant()
	v.Classrooms = []domain.Classroom{
		{ID: "r1", RoomNumber: "101"},
		{ID: "r2", RoomNumber: "202"},
		{ID: "r3", RoomNumber: "303"},
	}
	return v
}

func placeAt(v *domain.ScheduleVariant, room string, day domain.Day, slot domain.SlotKey, courseID string, modality domain.Modality) {
	if v.Schedule[room] == nil {
		v.Schedule[room] = map[domain.Day]map[domain.SlotKey][]domain.Placement{}
	}
	if v.Schedule[room][day] == nil {
		v.Schedule[room][day] = map[domain.SlotKey][]domain.Placement{}
	}
	v.Schedule[room][day][slot] = append(v.Schedule[room][day][slot], domain.Placement{CourseID: courseID, Modality: modality})
}

func TestOverCapacityCountsInPersonAcrossRooms(t *testing.T) {
	v := capacityVariant()
	placeAt(v, "r1", domain.Tuesday, "09:00-10:00", "c1", domain.ModalityInPerson)
	placeAt(v, "r2", domain.Tuesday, "09:00-10:00", "c2", domain.ModalityInPerson)
	placeAt(v, "r3", domain.Tuesday, "09:00-10:00", "c3", domain.ModalityInPerson)

	if !OverCapacity(v, domain.Tuesday, "09:00-10:00") {
		t.Fatalf("three in-person placements at one coordinate must flag")
	}

	flags := CapacityFlags(v)
	if !flags[domain.Tuesday]["09:00-10:00"] {
		t.Fatalf("flags missing the crowded cell: %+v", flags)
	}
}

func TestOverCapacityIgnoresOnlinePlacements(t *testing.T) {
	v := capacityVariant()
	placeAt(v, "r1", domain.Tuesday, "09:00-10:00", "c1", domain.ModalityOnline)
	placeAt(v, "r2", domain.Tuesday, "09:00-10:00", "c2", domain.ModalityOnline)
	placeAt(v, "r3", domain.Tuesday, "09:00-10:00", "c3", domain.ModalityInPerson)

	if OverCapacity(v, domain.Tuesday, "09:00-10:00") {
		t.Fatalf("one in-person placement is within capacity")
	}
	if flags := CapacityFlags(v); len(flags) != 0 {
		t.Fatalf("no cell should be flagged: %+v", flags)
	}
}

func TestOverCapacityArrangedExempt(t *testing.T) {
	v := capacityVariant()
	placeAt(v, "r1", domain.Arranged, domain.ArrangedSlot, "c1", domain.ModalityInPerson)
	placeAt(v, "r2", domain.Arranged, domain.ArrangedSlot, "c2", domain.ModalityInPerson)
	placeAt(v, "r3", domain.Arranged, domain.ArrangedSlot, "c3", domain.ModalityInPerson)

	if OverCapacity(v, domain.Arranged, domain.ArrangedSlot) {
		t.Fatalf("arranged pseudo-slot must never flag")
	}
	if flags := CapacityFlags(v); len(flags) != 0 {
		t.Fatalf("no cell should be flagged: %+v", flags)
	}
}

func TestOverCapacityNilVariant(t *testing.T) {
	if OverCapacity(nil, domain.Monday, "09:00-10:00") {
		t.Fatalf("nil variant must not flag")
	}
}
