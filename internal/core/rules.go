package core

import "schedcore/pkg/domain"

// NewDefaultRulesEngine builds a rules engine with the built-in advisory set.
// Registration order fixes diagnostic order.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewInstructorOverlapRule())
	engine.Register(NewCohortOverlapRule())
	engine.Register(NewMissingProgramRule())
	engine.Register(NewQuarterMismatchRule())
	engine.Register(NewMissingQuarterRule())
	return engine
}
