package game

import (
	"fmt"

	"github.com/rs/zerolog"
)

// KillCause represents the origin of damage for shield routing and logging.
type KillCause string

const (
	KillCauseProjectile KillCause = "projectile"
	KillCauseStorm      KillCause = "storm"
)

// bypassesShield is true for damage that goes straight to health.
func (cause KillCause) bypassesShield() bool {
	return cause == KillCauseStorm
}

func (cause KillCause) describe() string {
	switch cause {
	case KillCauseProjectile:
		return "a projectile"
	case KillCauseStorm:
		return "the storm"
	default:
		return string(cause)
	}
}

// GameMechanics holds the rules shared by the combat resolver and the storm
// controller: damage routing, elimination and the end-of-match check.
type GameMechanics struct {
	tuning *Tuning
	log    zerolog.Logger
	ids    *idSource
}

// NewGameMechanics creates the shared rule set.
func NewGameMechanics(tuning *Tuning, log zerolog.Logger) *GameMechanics {
	return &GameMechanics{tuning: tuning, log: log, ids: &idSource{}}
}

// ApplyDamage routes damage through shield (weapon damage only) then health,
// and eliminates the target at zero health. It reports whether the target died.
func (gm *GameMechanics) ApplyDamage(state *MatchState, target *Player, amount int, cause KillCause, attackerID string) bool {
	if target == nil || !target.Alive || amount <= 0 {
		return false
	}

	if !cause.bypassesShield() && target.Shield > 0 {
		absorbed := min(target.Shield, amount)
		target.Shield -= absorbed
		amount -= absorbed
	}

	target.Health = max(0, target.Health-amount)
	if target.Health > 0 {
		return false
	}

	gm.eliminate(state, target, cause, attackerID)
	return true
}

func (gm *GameMechanics) eliminate(state *MatchState, victim *Player, cause KillCause, killerID string) {
	victim.Health = 0
	victim.Alive = false
	state.PlayersAlive--

	event := gm.log.Info().
		Str("victim", victim.ID).
		Str("cause", cause.describe()).
		Int("players_alive", state.PlayersAlive)
	if killerID != "" {
		event = event.Str("killer", killerID)
	}
	event.Msg("player eliminated")

	if state.Phase != PhasePlaying {
		return
	}

	switch {
	case state.PlayersAlive <= 1:
		gm.endMatch(state, state.soleSurvivor(), "last player standing")
	case victim.ID == state.HumanID && gm.tuning.EndOnHumanElimination:
		gm.endMatch(state, nil, "human eliminated")
	}
}

// endMatch moves the match to its terminal phase. winner may be nil.
func (gm *GameMechanics) endMatch(state *MatchState, winner *Player, reason string) {
	if state.Phase == PhaseEnded {
		return
	}
	state.Phase = PhaseEnded
	state.Winner = ""
	if winner != nil && winner.Alive {
		state.Winner = winner.ID
	}
	gm.log.Info().
		Str("match_id", state.MatchID).
		Str("winner", state.Winner).
		Str("reason", reason).
		Msg("match ended")
}

// idSource hands out sequential, prefixed entity ids.
type idSource struct {
	next map[string]int
}

func (s *idSource) newID(prefix string) string {
	if s.next == nil {
		s.next = make(map[string]int)
	}
	id := fmt.Sprintf("%s-%d", prefix, s.next[prefix])
	s.next[prefix]++
	return id
}
