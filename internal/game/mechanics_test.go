package game

import (
	"testing"

	"pgregory.net/rapid"
)

func TestApplyDamageKeepsVitalsInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gm := newTestMechanics(nil)
		target := newTestBot("bot-0", arenaCenter)
		target.Health = rapid.IntRange(1, MaxHealth).Draw(t, "health")
		target.Shield = rapid.IntRange(0, MaxShield).Draw(t, "shield")
		state := newPlayingState(NewHumanPlayer(HumanPlayerID, arenaCenter), target, newTestBot("bot-1", arenaCenter))

		amount := rapid.IntRange(0, 500).Draw(t, "amount")
		cause := rapid.SampledFrom([]KillCause{KillCauseProjectile, KillCauseStorm}).Draw(t, "cause")
		health, shield := target.Health, target.Shield

		died := gm.ApplyDamage(state, target, amount, cause, "player-1")

		if target.Health < 0 || target.Shield < 0 {
			t.Fatalf("negative vitals: %d/%d", target.Health, target.Shield)
		}
		if died != !target.Alive || target.Alive != (target.Health > 0) {
			t.Fatalf("died=%v alive=%v health=%d", died, target.Alive, target.Health)
		}
		if cause == KillCauseStorm && target.Shield != shield {
			t.Fatalf("storm damage changed shield %d -> %d", shield, target.Shield)
		}
		if lost := (health - target.Health) + (shield - target.Shield); !died && lost != amount {
			t.Fatalf("lost %d of %d damage", lost, amount)
		}
		if state.PlayersAlive != state.countAlive() {
			t.Fatalf("playersAlive = %d, counted %d", state.PlayersAlive, state.countAlive())
		}
	})
}

func TestApplyDamageIgnoresDeadTargets(t *testing.T) {
	gm := newTestMechanics(nil)
	target := newTestBot("bot-0", arenaCenter)
	state := newPlayingState(NewHumanPlayer(HumanPlayerID, arenaCenter), target, newTestBot("bot-1", arenaCenter))

	if !gm.ApplyDamage(state, target, 1000, KillCauseProjectile, HumanPlayerID) {
		t.Fatalf("expected elimination")
	}
	if gm.ApplyDamage(state, target, 1000, KillCauseProjectile, HumanPlayerID) {
		t.Fatalf("a dead player was eliminated twice")
	}
	if state.PlayersAlive != 2 {
		t.Fatalf("playersAlive = %d, want 2", state.PlayersAlive)
	}
}

func TestIDSourceIsSequentialPerPrefix(t *testing.T) {
	ids := &idSource{}

	got := []string{ids.newID("loot"), ids.newID("loot"), ids.newID("projectile")}
	want := []string{"loot-0", "loot-1", "projectile-0"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}
