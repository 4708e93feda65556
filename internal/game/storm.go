package game

// StormController shrinks the safe zone and damages anyone caught outside it.
type StormController struct {
	gm *GameMechanics
}

// NewStormController creates a storm controller on top of the shared mechanics.
func NewStormController(gm *GameMechanics) *StormController {
	return &StormController{gm: gm}
}

// InZone reports whether a position lies within the safe zone.
func InZone(state *MatchState, pos Vec3) bool {
	return Distance(pos, state.StormCenter) <= state.StormRadius
}

// Tick runs one storm period: shrink, floor win check, then zone damage.
// It returns the ids of players eliminated by the storm.
func (s *StormController) Tick(state *MatchState) []string {
	if state.Phase != PhasePlaying {
		return nil
	}

	t := s.gm.tuning
	state.StormRadius = max(t.StormMinRadius, state.StormRadius-t.StormShrinkPerTick)

	if state.StormRadius <= t.StormMinRadius {
		if human := state.Human(); human != nil && human.Alive {
			s.gm.endMatch(state, human, "storm closed")
			return nil
		}
	}

	var eliminated []string
	for _, player := range state.Players {
		if state.Phase != PhasePlaying {
			break
		}
		if !player.Alive || InZone(state, player.Position) {
			continue
		}
		if s.gm.ApplyDamage(state, player, t.StormDamagePerTick, KillCauseStorm, "") {
			eliminated = append(eliminated, player.ID)
		}
	}

	return eliminated
}
