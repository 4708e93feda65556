package game

import (
	"fmt"
	"time"
)

// Tuning holds every gameplay knob the engine reads. Zero values are not
// meaningful; start from DefaultTuning and override.
type Tuning struct {
	ArenaSize    float64
	ArenaCeiling float64
	ArenaMargin  float64
	MoveSpeed    float64

	StormInitialRadius float64
	StormMinRadius     float64
	StormShrinkPerTick float64
	StormTickPeriod    time.Duration
	StormDamagePerTick int
	StormCenter        Vec3

	BotCount            int
	BotSpeed            float64
	BotEscapeMultiplier float64
	BotHuntMultiplier   float64
	BotDecisionPeriod   time.Duration
	BotSafetyMargin     float64
	BotAttackRange      float64
	BotApproachRange    float64
	BotAttackChance     float64
	BotWanderChance     float64

	LootCount        int
	LootPickupRadius float64
	BuildCost        int
	HitRadius        float64

	// EndOnHumanElimination ends the match without a winner as soon as the
	// human player dies, even if several bots are still alive.
	EndOnHumanElimination bool

	// StrictInvariants turns invariant repairs into panics.
	StrictInvariants bool
}

// DefaultTuning returns the stock match settings.
func DefaultTuning() Tuning {
	return Tuning{
		ArenaSize:    ArenaSize,
		ArenaCeiling: ArenaCeiling,
		ArenaMargin:  ArenaMargin,
		MoveSpeed:    PlayerMoveSpeed,

		StormInitialRadius: StormInitialRadius,
		StormMinRadius:     StormMinRadius,
		StormShrinkPerTick: StormShrinkPerTick,
		StormTickPeriod:    StormTickPeriod,
		StormDamagePerTick: StormDamagePerTick,
		StormCenter:        Vec3{X: ArenaSize / 2, Y: 0, Z: ArenaSize / 2},

		BotCount:            BotCount,
		BotSpeed:            BotSpeed,
		BotEscapeMultiplier: BotEscapeMultiplier,
		BotHuntMultiplier:   BotHuntMultiplier,
		BotDecisionPeriod:   BotDecisionPeriod,
		BotSafetyMargin:     BotSafetyMargin,
		BotAttackRange:      BotAttackRange,
		BotApproachRange:    BotApproachRange,
		BotAttackChance:     BotAttackChance,
		BotWanderChance:     BotWanderChance,

		LootCount:        LootCount,
		LootPickupRadius: LootPickupRadius,
		BuildCost:        BuildCost,
		HitRadius:        HitRadius,

		EndOnHumanElimination: true,
	}
}

// Validate reports the first setting that would break an engine invariant.
func (t Tuning) Validate() error {
	switch {
	case t.ArenaSize <= 0:
		return fmt.Errorf("%w: arena size must be positive", ErrInvalidTuning)
	case t.ArenaCeiling <= 0:
		return fmt.Errorf("%w: arena ceiling must be positive", ErrInvalidTuning)
	case t.ArenaMargin < 0 || t.ArenaMargin*2 >= t.ArenaSize:
		return fmt.Errorf("%w: arena margin %.2f does not fit arena", ErrInvalidTuning, t.ArenaMargin)
	case t.StormMinRadius <= 0:
		return fmt.Errorf("%w: storm floor must be positive", ErrInvalidTuning)
	case t.StormInitialRadius < t.StormMinRadius:
		return fmt.Errorf("%w: initial storm radius below floor", ErrInvalidTuning)
	case t.StormShrinkPerTick < 0:
		return fmt.Errorf("%w: storm shrink must not be negative", ErrInvalidTuning)
	case t.StormTickPeriod <= 0 || t.BotDecisionPeriod <= 0:
		return fmt.Errorf("%w: periods must be positive", ErrInvalidTuning)
	case t.StormDamagePerTick < 0:
		return fmt.Errorf("%w: storm damage must not be negative", ErrInvalidTuning)
	case t.BotCount < 0:
		return fmt.Errorf("%w: bot count must not be negative", ErrInvalidTuning)
	case t.LootCount < 0:
		return fmt.Errorf("%w: loot count must not be negative", ErrInvalidTuning)
	case t.BuildCost < 0:
		return fmt.Errorf("%w: build cost must not be negative", ErrInvalidTuning)
	case t.HitRadius <= 0 || t.LootPickupRadius <= 0:
		return fmt.Errorf("%w: radii must be positive", ErrInvalidTuning)
	}
	return nil
}
