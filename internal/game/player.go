package game

import (
	"fmt"
	"math"
)

// NewHumanPlayer creates the human combatant at the given spawn point.
func NewHumanPlayer(id string, spawn Vec3) *Player {
	return &Player{
		ID:       id,
		Position: spawn,
		Health:   MaxHealth,
		Shield:   StartingShield,
		Alive:    true,
		Materials: Materials{
			Wood:  StartingWood,
			Stone: StartingStone,
			Metal: StartingMetal,
		},
		Inventory: Inventory{
			Weapons: []Weapon{mustWeapon(WeaponAssaultRifle, id+"-weapon-0")},
		},
	}
}

// newBot creates bot number i somewhere inside the arena's inner area.
func newBot(i int, rng RandomSource, t *Tuning) *Player {
	id := fmt.Sprintf("bot-%d", i)
	inset := t.ArenaSize * 0.1

	shield := 0
	if rng.Float64() > 0.5 {
		shield = StartingShield
	}

	return &Player{
		ID: id,
		Position: Vec3{
			X: between(rng, inset, t.ArenaSize-inset),
			Y: SpawnHeight,
			Z: between(rng, inset, t.ArenaSize-inset),
		},
		Rotation: Vec3{Y: normalizeAngle(rng.Float64() * 2 * math.Pi)},
		Health:   MaxHealth,
		Shield:   shield,
		Alive:    true,
		IsBot:    true,
		Behavior: BehaviorIdle,
		Materials: Materials{
			Wood:  StartingWood,
			Stone: StartingStone,
			Metal: StartingMetal,
		},
		Inventory: Inventory{
			Weapons: []Weapon{mustWeapon(WeaponBotRifle, fmt.Sprintf("bot-weapon-%d", i))},
		},
	}
}

// clone returns a deep copy safe to hand to readers.
func (p *Player) clone() Player {
	c := *p
	c.Inventory.Weapons = append([]Weapon(nil), p.Inventory.Weapons...)
	return c
}
