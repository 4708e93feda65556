package game

import (
	"math"
	"time"
)

// BotIntent is the single action a bot chose for one decision cycle.
type BotIntent struct {
	BotID    string
	Behavior BotBehavior
	// Destination is set for escape, hunt and wander moves.
	Destination Vec3
	// Aim is the unit direction of an attack.
	Aim Vec3
}

// Moves reports whether the intent relocates the bot.
func (i BotIntent) Moves() bool {
	switch i.Behavior {
	case BehaviorEscaping, BehaviorHunting, BehaviorWander:
		return true
	default:
		return false
	}
}

// BotController runs the priority policy for every live bot:
// escape storm, attack, hunt, wander. The first matching rule wins.
type BotController struct {
	gm     *GameMechanics
	combat *CombatResolver
	rng    RandomSource
}

// NewBotController creates a bot controller drawing randomness from rng.
func NewBotController(gm *GameMechanics, combat *CombatResolver, rng RandomSource) *BotController {
	return &BotController{gm: gm, combat: combat, rng: rng}
}

// Decide picks the bot's action without mutating anything.
func (b *BotController) Decide(state *MatchState, bot *Player) BotIntent {
	t := b.gm.tuning
	intent := BotIntent{BotID: bot.ID, Behavior: BehaviorIdle}

	toCenter := Distance(bot.Position, state.StormCenter)
	if toCenter > state.StormRadius-t.BotSafetyMargin {
		if dir, err := DirectionTo(bot.Position, state.StormCenter); err == nil {
			intent.Behavior = BehaviorEscaping
			intent.Destination = bot.Position.Add(dir.Scale(t.BotSpeed * t.BotEscapeMultiplier))
			return intent
		}
	}

	if human := state.Human(); human != nil && human.Alive && human.ID != bot.ID {
		toHuman := Distance(bot.Position, human.Position)

		if toHuman < t.BotAttackRange && b.rng.Float64() < t.BotAttackChance {
			if dir, err := DirectionTo(bot.Position, human.Position); err == nil {
				intent.Behavior = BehaviorAttack
				intent.Aim = dir
				return intent
			}
		}

		if toHuman > t.BotApproachRange {
			if dir, err := DirectionTo(bot.Position, human.Position); err == nil {
				intent.Behavior = BehaviorHunting
				intent.Destination = bot.Position.Add(dir.Scale(t.BotSpeed * t.BotHuntMultiplier))
				return intent
			}
		}
	}

	if b.rng.Float64() < t.BotWanderChance {
		heading := b.rng.Float64() * 2 * math.Pi
		intent.Behavior = BehaviorWander
		intent.Destination = bot.Position.Add(Vec3{
			X: math.Cos(heading) * t.BotSpeed,
			Z: math.Sin(heading) * t.BotSpeed,
		})
	}

	return intent
}

// Run decides and applies one cycle for every live bot in insertion order.
func (b *BotController) Run(state *MatchState, now time.Time) []BotIntent {
	var intents []BotIntent
	for _, bot := range state.Players {
		if state.Phase != PhasePlaying {
			break
		}
		if !bot.IsBot || !bot.Alive {
			continue
		}

		intent := b.Decide(state, bot)
		b.apply(state, bot, intent, now)
		intents = append(intents, intent)
	}
	return intents
}

func (b *BotController) apply(state *MatchState, bot *Player, intent BotIntent, now time.Time) {
	bot.Behavior = intent.Behavior

	switch {
	case intent.Moves():
		if dir, err := DirectionTo(bot.Position, intent.Destination); err == nil {
			bot.Rotation.Y = yawOf(dir)
		}
		bot.Position = clampToArena(intent.Destination, b.gm.tuning)
	case intent.Behavior == BehaviorAttack:
		bot.Rotation.Y = yawOf(intent.Aim)
		if _, outcome := b.combat.AttemptShot(state, bot, bot.Position, intent.Aim, bot.Inventory.ActiveWeapon(), now); outcome != OutcomeApplied {
			b.gm.log.Debug().Str("bot", bot.ID).Stringer("outcome", outcome).Msg("bot shot rejected")
		}
	}
}

// yawOf is the heading of a ground-plane direction; see headingOf.
func yawOf(dir Vec3) float64 {
	return math.Atan2(dir.X, dir.Z)
}
