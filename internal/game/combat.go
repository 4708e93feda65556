package game

import (
	"time"
)

// HitEvent records a projectile striking a player.
type HitEvent struct {
	ProjectileID string
	VictimID     string
	AttackerID   string
	Damage       int
	Eliminated   bool
}

// CombatResolver creates projectiles and resolves their flight.
type CombatResolver struct {
	gm *GameMechanics
}

// NewCombatResolver creates a resolver on top of the shared mechanics.
func NewCombatResolver(gm *GameMechanics) *CombatResolver {
	return &CombatResolver{gm: gm}
}

// AttemptShot fires weapon from origin along direction, which must already be
// unit length. On any outcome other than OutcomeApplied nothing is mutated.
func (c *CombatResolver) AttemptShot(state *MatchState, shooter *Player, origin, direction Vec3, weapon *Weapon, now time.Time) (*Projectile, Outcome) {
	if outcome := shooter.CanFire(weapon, now); outcome != OutcomeApplied {
		return nil, outcome
	}

	weapon.Ammo--
	shooter.lastShotAt = now

	projectile := &Projectile{
		ID:        c.gm.ids.newID("projectile"),
		Position:  origin.Add(Vec3{Y: MuzzleHeight}),
		Direction: direction,
		Speed:     weapon.ProjectileSpeed,
		Damage:    weapon.Damage,
		OwnerID:   shooter.ID,
		Weapon:    *weapon,
	}
	state.Projectiles = append(state.Projectiles, projectile)

	c.gm.log.Debug().
		Str("shooter", shooter.ID).
		Str("projectile", projectile.ID).
		Str("weapon", weapon.Name).
		Int("ammo", weapon.Ammo).
		Msg("shot fired")

	return projectile, OutcomeApplied
}

// AdvanceProjectiles moves every projectile by speed*dt and resolves exactly
// one terminal event per projectile: leaving the arena volume, checked first,
// or hitting the first live non-owner within hit radius.
func (c *CombatResolver) AdvanceProjectiles(state *MatchState, dt time.Duration) []HitEvent {
	var hits []HitEvent
	seconds := dt.Seconds()

	kept := make([]*Projectile, 0, len(state.Projectiles))
	for i, projectile := range state.Projectiles {
		if state.Phase != PhasePlaying {
			kept = append(kept, state.Projectiles[i:]...)
			break
		}

		projectile.Position = projectile.Position.Add(projectile.Direction.Scale(projectile.Speed * seconds))

		if !insideVolume(projectile.Position, c.gm.tuning) {
			continue
		}

		target := c.findTarget(state, projectile)
		if target == nil {
			kept = append(kept, projectile)
			continue
		}

		eliminated := c.gm.ApplyDamage(state, target, projectile.Damage, KillCauseProjectile, projectile.OwnerID)
		hits = append(hits, HitEvent{
			ProjectileID: projectile.ID,
			VictimID:     target.ID,
			AttackerID:   projectile.OwnerID,
			Damage:       projectile.Damage,
			Eliminated:   eliminated,
		})
	}

	state.Projectiles = kept
	return hits
}

// findTarget returns the first live player, other than the shooter, inside
// hit radius of the projectile.
func (c *CombatResolver) findTarget(state *MatchState, projectile *Projectile) *Player {
	for _, player := range state.Players {
		if !player.Alive || player.ID == projectile.OwnerID {
			continue
		}
		if Distance(projectile.Position, player.Position) <= c.gm.tuning.HitRadius {
			return player
		}
	}
	return nil
}
