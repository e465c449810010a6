// Package journey models a candidate's progression through the fixed,
// ordered coaching milestones. Stages only ever move forward.
package journey

import "fmt"

// Stage is an ordered milestone in the coaching flow.
type Stage int

const (
	StageProfile Stage = iota
	StageAnalysis
	StageLearning
	StageCVUpdate
	StageJobReady
	StagePlaced
)

// Advance returns the stage after proposing a transition. The machine is a
// one-way ratchet: the result is never lower than current.
func Advance(current, proposed Stage) Stage {
	if proposed > current {
		return proposed
	}
	return current
}

// IsTerminal reports whether no further advancement is defined for s.
func (s Stage) IsTerminal() bool {
	return s >= StagePlaced
}

// Valid reports whether s is one of the defined stages.
func (s Stage) Valid() bool {
	return s >= StageProfile && s <= StagePlaced
}

func (s Stage) String() string {
	switch s {
	case StageProfile:
		return "PROFILE"
	case StageAnalysis:
		return "ANALYSIS"
	case StageLearning:
		return "LEARNING"
	case StageCVUpdate:
		return "CV_UPDATE"
	case StageJobReady:
		return "JOB_READY"
	case StagePlaced:
		return "PLACED"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}
