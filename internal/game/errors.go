package game

import (
	"errors"
	"fmt"
)

var (
	ErrDegenerateVector    = errors.New("degenerate vector: magnitude is zero")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrUnknownBuildingType = errors.New("unknown building type")
	ErrInvalidWeaponSlot   = errors.New("invalid weapon slot")
	ErrInvalidMove         = errors.New("invalid move direction")
	ErrInvalidTuning       = errors.New("invalid tuning")
)

// Outcome tells the caller what an intent did. Everything except
// OutcomeApplied is an expected no-op: the state is left unchanged.
type Outcome uint8

const (
	OutcomeApplied Outcome = iota
	OutcomeWrongPhase
	OutcomePlayerDead
	OutcomeNotFound
	OutcomeInsufficientMaterials
	OutcomeCooldown
	OutcomeNoAmmo
	// OutcomeInvalid accompanies a validation error.
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeWrongPhase:
		return "wrong_phase"
	case OutcomePlayerDead:
		return "player_dead"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInsufficientMaterials:
		return "insufficient_materials"
	case OutcomeCooldown:
		return "cooldown"
	case OutcomeNoAmmo:
		return "no_ammo"
	case OutcomeInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Result pairs the snapshot published after an intent with its outcome.
type Result struct {
	Snapshot *Snapshot
	Outcome  Outcome
}

// Applied reports whether the intent changed the state.
func (r Result) Applied() bool {
	return r.Outcome == OutcomeApplied
}

// InvariantError is raised in strict mode when the match state is inconsistent.
type InvariantError struct {
	Rule   string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant %s violated: %s", e.Rule, e.Detail)
}
