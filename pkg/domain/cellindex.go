package domain

import "sort"

// BuildCells scans the variant's grid once and returns every occupied
// (day, slot) coordinate with its placements across all classrooms.
// Iteration order is deterministic: days in canonical order, slot keys
// lexicographically within a day (zero-padded intervals sort chronologically,
// "arranged" sorts last), classrooms in variant slice order.
func BuildCells(v *ScheduleVariant) []Cell {
	if v == nil {
		return nil
	}
	var cells []Cell
	for _, day := range Days {
		seen := map[SlotKey]bool{}
		var slots []SlotKey
		for _, room := range v.Classrooms {
			for slot := range v.Schedule[room.ID][day] {
				if !seen[slot] {
					seen[slot] = true
					slots = append(slots, slot)
				}
			}
		}
		sort.Strings(slots)
		for _, slot := range slots {
			cell := Cell{Day: day, Slot: slot}
			for _, room := range v.Classrooms {
				for _, p := range v.Schedule[room.ID][day][slot] {
					cell.Entries = append(cell.Entries, CellEntry{
						CourseID:    p.CourseID,
						ClassroomID: room.ID,
						RoomNumber:  room.RoomNumber,
						Modality:    p.Modality,
						Section:     p.Section,
					})
				}
			}
			if len(cell.Entries) > 0 {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// ScheduledCourseIDs returns every course placed anywhere in the variant's
// grid, in first-appearance order of the BuildCells iteration.
func ScheduledCourseIDs(v *ScheduleVariant) []string {
	seen := map[string]bool{}
	var ids []string
	for _, cell := range BuildCells(v) {
		for _, entry := range cell.Entries {
			if !seen[entry.CourseID] {
				seen[entry.CourseID] = true
				ids = append(ids, entry.CourseID)
			}
		}
	}
	return ids
}
