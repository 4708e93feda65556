package game

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var testEpoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

var arenaCenter = Vec3{X: 500, Y: 0, Z: 500}

// scriptedRandom replays a fixed sequence of rolls, wrapping at the end.
type scriptedRandom struct {
	values []float64
	next   int
}

func (s *scriptedRandom) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func newTestMechanics(mutate func(*Tuning)) *GameMechanics {
	tuning := DefaultTuning()
	if mutate != nil {
		mutate(&tuning)
	}
	return NewGameMechanics(&tuning, zerolog.Nop())
}

func newTestEngine(t *testing.T, mutate func(*Tuning)) *Engine {
	t.Helper()

	tuning := DefaultTuning()
	tuning.BotCount = 0
	tuning.StrictInvariants = true
	if mutate != nil {
		mutate(&tuning)
	}

	e, err := NewEngine(tuning, zerolog.Nop(),
		WithRandom(NewRandomSource(7)),
		WithClock(func() time.Time { return testEpoch }),
	)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func newPlayingState(players ...*Player) *MatchState {
	state := &MatchState{
		MatchID:     "match-test",
		HumanID:     HumanPlayerID,
		Players:     players,
		StormRadius: StormInitialRadius,
		StormCenter: arenaCenter,
		Phase:       PhasePlaying,
	}
	state.PlayersAlive = state.countAlive()
	return state
}

func newTestBot(id string, pos Vec3) *Player {
	bot := NewHumanPlayer(id, pos)
	bot.IsBot = true
	bot.Behavior = BehaviorIdle
	bot.Inventory.Weapons = []Weapon{mustWeapon(WeaponBotRifle, id+"-weapon")}
	return bot
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// assertSnapshotConsistent checks the rules every published snapshot obeys.
func assertSnapshotConsistent(t fataler, snap *Snapshot) {
	t.Helper()

	alive := 0
	for _, p := range snap.Players {
		if p.Health < 0 || p.Health > MaxHealth {
			t.Fatalf("%s health %d out of bounds", p.ID, p.Health)
		}
		if p.Shield < 0 || p.Shield > MaxShield {
			t.Fatalf("%s shield %d out of bounds", p.ID, p.Shield)
		}
		if p.Alive != (p.Health > 0) {
			t.Fatalf("%s alive=%v with health %d", p.ID, p.Alive, p.Health)
		}
		if p.Alive {
			alive++
		}
	}
	if snap.PlayersAlive != alive {
		t.Fatalf("playersAlive = %d, counted %d", snap.PlayersAlive, alive)
	}
	if snap.Winner != "" && snap.Phase != PhaseEnded {
		t.Fatalf("winner %q set in phase %s", snap.Winner, snap.Phase)
	}
}
