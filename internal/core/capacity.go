package core

import "schedcore/pkg/domain"

// OverCapacity reports whether the (day, slot) coordinate holds two or more
// in-person placements summed across all of the variant's classrooms. This is
// the cell-highlighting check recomputed per render; it is not part of the
// validator's diagnostic list. The arranged pseudo-slot never counts.
func OverCapacity(variant *domain.ScheduleVariant, day domain.Day, slot domain.SlotKey) bool {
	if variant == nil || slot == domain.ArrangedSlot {
		return false
	}
	count := 0
	for _, days := range variant.Schedule {
		for _, placement := range days[day][slot] {
			if placement.Modality == domain.ModalityInPerson {
				count++
				if count >= 2 {
					return true
				}
			}
		}
	}
	return false
}

// CapacityFlags computes the over-capacity marker for every occupied cell of
// the variant, keyed by day then slot. Cells not present are not flagged.
func CapacityFlags(variant *domain.ScheduleVariant) map[domain.Day]map[domain.SlotKey]bool {
	flags := map[domain.Day]map[domain.SlotKey]bool{}
	for _, cell := range domain.BuildCells(variant) {
		if !OverCapacity(variant, cell.Day, cell.Slot) {
			continue
		}
		if flags[cell.Day] == nil {
			flags[cell.Day] = map[domain.SlotKey]bool{}
		}
		flags[cell.Day][cell.Slot] = true
	}
	return flags
}
