// Package core wires the scheduling domain together: the default rule set,
// the service facade over a persistent store, storage selection, and the
// observability seams.
package core

import "schedcore/pkg/domain"

type (
	// Program aliases domain.Program for service-level operations.
	Program = domain.Program
	// Course aliases domain.Course.
	Course = domain.Course
	// Instructor aliases domain.Instructor.
	Instructor = domain.Instructor
	// Classroom aliases domain.Classroom.
	Classroom = domain.Classroom
	// Placement aliases domain.Placement.
	Placement = domain.Placement
	// ScheduleVariant aliases domain.ScheduleVariant.
	ScheduleVariant = domain.ScheduleVariant
	// Day aliases domain.Day.
	Day = domain.Day
	// SlotKey aliases domain.SlotKey.
	SlotKey = domain.SlotKey
	// Interval aliases domain.Interval.
	Interval = domain.Interval
	// Modality aliases domain.Modality.
	Modality = domain.Modality
	// Quarter aliases domain.Quarter.
	Quarter = domain.Quarter
	// Diagnostic aliases domain.Diagnostic emitted by the validator.
	Diagnostic = domain.Diagnostic
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// Rule aliases domain.Rule.
	Rule = domain.Rule
	// RulesEngine aliases domain.RulesEngine.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// StoreView aliases domain.StoreView providing read-only state.
	StoreView = domain.StoreView
	// PersistentStore aliases the domain persistence abstraction.
	PersistentStore = domain.PersistentStore
)
