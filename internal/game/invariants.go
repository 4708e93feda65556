package game

import "fmt"

// checkInvariants audits the state after every mutation. In strict mode a
// violation panics with an *InvariantError; otherwise the value is repaired
// and a warning is logged so a long-running server keeps going.
func (e *Engine) checkInvariants() {
	s := e.state

	if alive := s.countAlive(); s.PlayersAlive != alive {
		e.violation("players-alive", fmt.Sprintf("counter %d, live players %d", s.PlayersAlive, alive))
		s.PlayersAlive = alive
	}

	if s.Winner != "" {
		if s.Phase != PhaseEnded {
			e.violation("winner", fmt.Sprintf("winner %q in phase %s", s.Winner, s.Phase))
			s.Winner = ""
		} else if winner := s.Player(s.Winner); winner == nil || !winner.Alive {
			e.violation("winner", fmt.Sprintf("winner %q is not a live player", s.Winner))
			s.Winner = ""
		}
	}

	for _, p := range s.Players {
		if p.Health < 0 || p.Health > MaxHealth {
			e.violation("health-bounds", fmt.Sprintf("%s has health %d", p.ID, p.Health))
			p.Health = min(max(p.Health, 0), MaxHealth)
		}
		if p.Shield < 0 || p.Shield > MaxShield {
			e.violation("shield-bounds", fmt.Sprintf("%s has shield %d", p.ID, p.Shield))
			p.Shield = min(max(p.Shield, 0), MaxShield)
		}
		if p.Alive && p.Health == 0 {
			e.violation("alive-health", fmt.Sprintf("%s is alive at zero health", p.ID))
			p.Health = 1
		}
		if len(p.Inventory.Weapons) == 0 {
			e.violation("inventory", fmt.Sprintf("%s has no weapons", p.ID))
			p.Inventory.Weapons = []Weapon{mustWeapon(WeaponAssaultRifle, p.ID+"-weapon-0")}
		}
		if p.Inventory.Active < 0 || p.Inventory.Active >= len(p.Inventory.Weapons) {
			e.violation("active-weapon", fmt.Sprintf("%s selects slot %d of %d", p.ID, p.Inventory.Active, len(p.Inventory.Weapons)))
			p.Inventory.Active = 0
		}
	}

	if s.Phase == PhasePlaying && s.StormRadius < e.tuning.StormMinRadius {
		e.violation("storm-floor", fmt.Sprintf("radius %.2f below %.2f", s.StormRadius, e.tuning.StormMinRadius))
		s.StormRadius = e.tuning.StormMinRadius
	}
}

func (e *Engine) violation(rule, detail string) {
	if e.tuning.StrictInvariants {
		panic(&InvariantError{Rule: rule, Detail: detail})
	}
	e.log.Warn().Str("rule", rule).Str("detail", detail).Msg("invariant repaired")
}
