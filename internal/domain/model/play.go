// Package model contains the play record passed between layers.
package model

import (
	"errors"
	"fmt"
)

// Alignment is the defensive personnel grouping in effect on a play.
type Alignment string

// Known defensive alignments.
const (
	AlignmentBase43 Alignment = "4-3 Base"
	AlignmentBase34 Alignment = "3-4 Base"
	AlignmentNickel Alignment = "Nickel"
	AlignmentDime   Alignment = "Dime"
	AlignmentBlitz  Alignment = "Blitz"
)

// Alignments lists every known alignment in report order.
func Alignments() []Alignment {
	return []Alignment{AlignmentBase43, AlignmentBase34, AlignmentNickel, AlignmentDime, AlignmentBlitz}
}

// Validation sentinels. Callers can errors.Is against these.
var (
	ErrOutcomeConflict = errors.New("completion, sack and interception are mutually exclusive")
	ErrInvalidField    = errors.New("field out of range")
)

// Play is one simulated passing play. The table of plays is produced once
// by the generator and treated as immutable afterwards.
type Play struct {
	ID int

	// Situational context.
	Down          int     // 1-4
	Distance      int     // yards to go, >= 1
	FieldPosition float64 // yards from own goal line, 0-100
	Quarter       int     // 1-4
	ScoreDiff     int     // positive when the offense leads

	// Pressure context.
	PressureApplied bool
	TimeToPressure  float64 // seconds; meaningful only when PressureApplied
	Rushers         int
	Alignment       Alignment

	// Timing.
	TimeToThrow float64 // seconds from snap to release

	// Outcome. At most one of Completion, Sack, Interception is true.
	Completion   bool
	Sack         bool
	Interception bool
	YardsGained  float64
}

// PressureBeatThrow reports whether the defense reached the quarterback
// before the ball came out.
func (p Play) PressureBeatThrow() bool {
	return p.PressureApplied && p.TimeToPressure < p.TimeToThrow
}

// DefensiveSuccess reports whether the play ended in anything other than a
// completion: incompletion, sack, or interception.
func (p Play) DefensiveSuccess() bool {
	return !p.Completion
}

// Validate checks every invariant a generated play must satisfy.
func (p Play) Validate() error {
	flags := 0
	for _, f := range []bool{p.Completion, p.Sack, p.Interception} {
		if f {
			flags++
		}
	}
	if flags > 1 {
		return fmt.Errorf("play %d: %w", p.ID, ErrOutcomeConflict)
	}
	if p.Down < 1 || p.Down > 4 {
		return fmt.Errorf("play %d: down %d: %w", p.ID, p.Down, ErrInvalidField)
	}
	if p.Distance < 1 {
		return fmt.Errorf("play %d: distance %d: %w", p.ID, p.Distance, ErrInvalidField)
	}
	if p.FieldPosition < 0 || p.FieldPosition > 100 {
		return fmt.Errorf("play %d: field position %.1f: %w", p.ID, p.FieldPosition, ErrInvalidField)
	}
	if p.Quarter < 1 || p.Quarter > 4 {
		return fmt.Errorf("play %d: quarter %d: %w", p.ID, p.Quarter, ErrInvalidField)
	}
	if p.TimeToThrow <= 0 {
		return fmt.Errorf("play %d: time to throw %.2f: %w", p.ID, p.TimeToThrow, ErrInvalidField)
	}
	if p.PressureApplied && p.TimeToPressure <= 0 {
		return fmt.Errorf("play %d: time to pressure %.2f: %w", p.ID, p.TimeToPressure, ErrInvalidField)
	}
	if !p.PressureApplied && p.TimeToPressure != 0 {
		return fmt.Errorf("play %d: time to pressure set without pressure: %w", p.ID, ErrInvalidField)
	}
	if p.Sack && p.YardsGained > 0 {
		return fmt.Errorf("play %d: positive yards on a sack: %w", p.ID, ErrInvalidField)
	}
	if !p.Completion && !p.Sack && p.YardsGained != 0 {
		return fmt.Errorf("play %d: yards on an incomplete pass: %w", p.ID, ErrInvalidField)
	}
	return nil
}
