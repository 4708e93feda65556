package game

import (
	"testing"
	"time"
)

func TestAttemptShotRespectsCooldown(t *testing.T) {
	gm := newTestMechanics(nil)
	combat := NewCombatResolver(gm)
	shooter := NewHumanPlayer(HumanPlayerID, Vec3{X: 500, Y: 1, Z: 500})
	state := newPlayingState(shooter)
	weapon := shooter.Inventory.ActiveWeapon()
	forward := Vec3{Z: 1}

	if _, outcome := combat.AttemptShot(state, shooter, shooter.Position, forward, weapon, testEpoch); outcome != OutcomeApplied {
		t.Fatalf("first shot outcome = %v", outcome)
	}

	_, outcome := combat.AttemptShot(state, shooter, shooter.Position, forward, weapon, testEpoch.Add(100*time.Millisecond))
	if outcome != OutcomeCooldown {
		t.Fatalf("second shot outcome = %v, want cooldown", outcome)
	}
	if weapon.Ammo != weapon.MaxAmmo-1 {
		t.Fatalf("ammo = %d, want %d", weapon.Ammo, weapon.MaxAmmo-1)
	}
	if len(state.Projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(state.Projectiles))
	}

	if _, outcome := combat.AttemptShot(state, shooter, shooter.Position, forward, weapon, testEpoch.Add(weapon.Cooldown())); outcome != OutcomeApplied {
		t.Fatalf("shot after cooldown outcome = %v", outcome)
	}
	if weapon.Ammo != weapon.MaxAmmo-2 {
		t.Fatalf("ammo = %d, want %d", weapon.Ammo, weapon.MaxAmmo-2)
	}
}

func TestAttemptShotWithoutAmmo(t *testing.T) {
	gm := newTestMechanics(nil)
	combat := NewCombatResolver(gm)
	shooter := NewHumanPlayer(HumanPlayerID, Vec3{X: 500, Y: 1, Z: 500})
	state := newPlayingState(shooter)
	weapon := shooter.Inventory.ActiveWeapon()
	weapon.Ammo = 0

	projectile, outcome := combat.AttemptShot(state, shooter, shooter.Position, Vec3{Z: 1}, weapon, testEpoch)
	if outcome != OutcomeNoAmmo || projectile != nil {
		t.Fatalf("outcome = %v, projectile = %v; want no_ammo and nil", outcome, projectile)
	}
	if len(state.Projectiles) != 0 {
		t.Fatalf("projectiles = %d, want 0", len(state.Projectiles))
	}
}

func TestAttemptShotSpawnsAtMuzzle(t *testing.T) {
	gm := newTestMechanics(nil)
	combat := NewCombatResolver(gm)
	shooter := NewHumanPlayer(HumanPlayerID, Vec3{X: 500, Y: 1, Z: 500})
	state := newPlayingState(shooter)

	projectile, _ := combat.AttemptShot(state, shooter, shooter.Position, Vec3{X: 1}, shooter.Inventory.ActiveWeapon(), testEpoch)

	if want := (Vec3{X: 500, Y: 1 + MuzzleHeight, Z: 500}); projectile.Position != want {
		t.Fatalf("position = %+v, want %+v", projectile.Position, want)
	}
	if projectile.OwnerID != shooter.ID || projectile.Damage != 30 || projectile.Speed != 150 {
		t.Fatalf("unexpected projectile %+v", projectile)
	}
}

func TestProjectileHitGoesThroughShieldFirst(t *testing.T) {
	gm := newTestMechanics(nil)
	combat := NewCombatResolver(gm)
	shooter := NewHumanPlayer(HumanPlayerID, Vec3{X: 500, Y: 1, Z: 500})
	target := newTestBot("bot-0", Vec3{X: 500, Y: 1, Z: 510})
	state := newPlayingState(shooter, target)

	combat.AttemptShot(state, shooter, shooter.Position, Vec3{Z: 1}, shooter.Inventory.ActiveWeapon(), testEpoch)

	if hits := combat.AdvanceProjectiles(state, 10*time.Millisecond); len(hits) != 0 {
		t.Fatalf("hit too early: %+v", hits)
	}

	hits := combat.AdvanceProjectiles(state, 40*time.Millisecond)
	if len(hits) != 1 || hits[0].VictimID != target.ID || hits[0].Eliminated {
		t.Fatalf("hits = %+v", hits)
	}
	if target.Shield != 20 || target.Health != 100 {
		t.Fatalf("target shield/health = %d/%d, want 20/100", target.Shield, target.Health)
	}
	if len(state.Projectiles) != 0 {
		t.Fatalf("projectile not removed after hit")
	}
}

func TestProjectileLeavingArenaWinsOverHit(t *testing.T) {
	gm := newTestMechanics(nil)
	combat := NewCombatResolver(gm)
	shooter := NewHumanPlayer(HumanPlayerID, Vec3{X: 995, Y: 1, Z: 500})
	target := newTestBot("bot-0", Vec3{X: 1003, Y: 1, Z: 500})
	state := newPlayingState(shooter, target)

	combat.AttemptShot(state, shooter, shooter.Position, Vec3{X: 1}, shooter.Inventory.ActiveWeapon(), testEpoch)
	hits := combat.AdvanceProjectiles(state, 50*time.Millisecond)

	if len(hits) != 0 {
		t.Fatalf("hits = %+v, want none", hits)
	}
	if len(state.Projectiles) != 0 {
		t.Fatalf("projectile outside the arena was kept")
	}
	if target.Health != MaxHealth || target.Shield != StartingShield {
		t.Fatalf("target was damaged: %d/%d", target.Health, target.Shield)
	}
}

func TestProjectileRemovedAboveCeiling(t *testing.T) {
	gm := newTestMechanics(nil)
	combat := NewCombatResolver(gm)
	shooter := NewHumanPlayer(HumanPlayerID, Vec3{X: 500, Y: 1, Z: 500})
	state := newPlayingState(shooter)

	combat.AttemptShot(state, shooter, shooter.Position, Vec3{Y: 1}, shooter.Inventory.ActiveWeapon(), testEpoch)
	combat.AdvanceProjectiles(state, time.Second)

	if len(state.Projectiles) != 0 {
		t.Fatalf("projectile above the ceiling was kept")
	}
}

func TestProjectileIgnoresOwner(t *testing.T) {
	gm := newTestMechanics(nil)
	combat := NewCombatResolver(gm)
	shooter := NewHumanPlayer(HumanPlayerID, Vec3{X: 500, Y: 1, Z: 500})
	state := newPlayingState(shooter)

	combat.AttemptShot(state, shooter, shooter.Position, Vec3{Z: 1}, shooter.Inventory.ActiveWeapon(), testEpoch)
	hits := combat.AdvanceProjectiles(state, time.Millisecond)

	if len(hits) != 0 || len(state.Projectiles) != 1 {
		t.Fatalf("hits = %+v, projectiles = %d", hits, len(state.Projectiles))
	}
}

func TestLethalHitEndsMatchAndFreezesRemainingProjectiles(t *testing.T) {
	gm := newTestMechanics(nil)
	combat := NewCombatResolver(gm)
	shooter := NewHumanPlayer(HumanPlayerID, Vec3{X: 500, Y: 1, Z: 500})
	target := newTestBot("bot-0", Vec3{X: 500, Y: 1, Z: 507})
	target.Health = 10
	target.Shield = 0
	state := newPlayingState(shooter, target)

	combat.AttemptShot(state, shooter, shooter.Position, Vec3{Z: 1}, shooter.Inventory.ActiveWeapon(), testEpoch)
	stray := &Projectile{
		ID:        "stray",
		Position:  Vec3{X: 100, Y: 50, Z: 100},
		Direction: Vec3{X: 1},
		Speed:     50,
		Damage:    25,
		OwnerID:   target.ID,
	}
	state.Projectiles = append(state.Projectiles, stray)

	hits := combat.AdvanceProjectiles(state, 50*time.Millisecond)

	if len(hits) != 1 || !hits[0].Eliminated {
		t.Fatalf("hits = %+v, want one elimination", hits)
	}
	if state.Phase != PhaseEnded || state.Winner != shooter.ID || state.PlayersAlive != 1 {
		t.Fatalf("phase=%s winner=%q alive=%d", state.Phase, state.Winner, state.PlayersAlive)
	}
	if target.Alive || target.Health != 0 {
		t.Fatalf("target still alive: %+v", target)
	}
	if len(state.Projectiles) != 1 || state.Projectiles[0] != stray {
		t.Fatalf("remaining projectiles = %+v", state.Projectiles)
	}
	if stray.Position != (Vec3{X: 100, Y: 50, Z: 100}) {
		t.Fatalf("stray projectile moved after the match ended: %+v", stray.Position)
	}
}
