package game

import "time"

// Arena constants
const (
	ArenaSize       = 1000.0
	ArenaCeiling    = 100.0
	ArenaMargin     = 1.0 // inset so entities never sit exactly on the boundary
	SpawnHeight     = 1.0 // resting Y of every player
	MuzzleHeight    = 1.5 // projectile spawn offset above the shooter
	PlayerMoveSpeed = 10.0
	MaxHealth       = 100
	MaxShield       = 100
)

// Storm constants
const (
	StormInitialRadius = 500.0
	StormMinRadius     = 50.0
	StormShrinkPerTick = 2.0
	StormTickPeriod    = time.Second
	StormDamagePerTick = 5
)

// Bot constants
const (
	BotCount            = 5
	BotSpeed            = 0.8
	BotEscapeMultiplier = 5.0
	BotHuntMultiplier   = 2.0
	BotDecisionPeriod   = 2 * time.Second
	BotSafetyMargin     = 50.0
	BotAttackRange      = 100.0
	BotApproachRange    = 150.0
	BotAttackChance     = 0.3
	BotWanderChance     = 0.2
)

// Loot and building constants
const (
	LootCount          = 20
	LootPickupRadius   = 10.0
	MaterialLootAmount = 50
	HealthLootAmount   = 25
	ShieldLootAmount   = 25
	BuildCost          = 10
	BuildingHealth     = 100
)

// Combat constants
const (
	HitRadius = 3.0
)

// Starting loadout
const (
	StartingWood   = 100
	StartingStone  = 50
	StartingMetal  = 25
	StartingShield = 50
)

// Driver constants
const (
	TickRate        = 60 // Engine ticks per second
	ShutdownTimeout = 5 * time.Second
)

// HumanPlayerID is the identity of the single human-controlled player.
const HumanPlayerID = "player-1"
