package game

// Loot table thresholds over a uniform roll in [0, 1).
const (
	lootWeaponRoll   = 0.30
	lootMaterialRoll = 0.55
	lootHealthRoll   = 0.80
)

// SpawnLoot generates the match's loot batch at random arena positions.
func (gm *GameMechanics) SpawnLoot(rng RandomSource) []*LootItem {
	t := gm.tuning
	lo, hi := t.ArenaMargin, t.ArenaSize-t.ArenaMargin

	loot := make([]*LootItem, 0, t.LootCount)
	for i := 0; i < t.LootCount; i++ {
		item := &LootItem{
			ID: gm.ids.newID("loot"),
			Position: Vec3{
				X: between(rng, lo, hi),
				Y: SpawnHeight,
				Z: between(rng, lo, hi),
			},
		}

		switch roll := rng.Float64(); {
		case roll < lootWeaponRoll:
			kind := WeaponShotgun
			if rng.Float64() >= 0.5 {
				kind = WeaponSniper
			}
			w := mustWeapon(kind, item.ID+"-weapon")
			item.Category = LootWeapon
			item.Weapon = &w
		case roll < lootMaterialRoll:
			item.Category = LootMaterial
		case roll < lootHealthRoll:
			item.Category = LootHealth
		default:
			item.Category = LootShield
		}

		loot = append(loot, item)
	}
	return loot
}

// CollectLoot removes the item and grants its effect in one step. Missing
// items and collectors beyond pickup radius yield OutcomeNotFound.
func (gm *GameMechanics) CollectLoot(state *MatchState, player *Player, lootID string) Outcome {
	idx := -1
	for i, item := range state.Loot {
		if item.ID == lootID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return OutcomeNotFound
	}

	item := state.Loot[idx]
	if Distance(player.Position, item.Position) > gm.tuning.LootPickupRadius {
		gm.log.Debug().
			Str("player", player.ID).
			Str("loot", item.ID).
			Msg("loot out of reach")
		return OutcomeNotFound
	}

	state.Loot = append(state.Loot[:idx:idx], state.Loot[idx+1:]...)
	gm.ApplyItemEffect(player, item)

	gm.log.Info().
		Str("player", player.ID).
		Str("loot", item.ID).
		Str("category", string(item.Category)).
		Msg("loot collected")
	return OutcomeApplied
}

// ApplyItemEffect applies the effect of a collected item to a player.
func (gm *GameMechanics) ApplyItemEffect(player *Player, item *LootItem) {
	switch item.Category {
	case LootWeapon:
		if item.Weapon != nil {
			player.Inventory.Weapons = append(player.Inventory.Weapons, *item.Weapon)
		}
	case LootMaterial:
		player.Materials.Wood += MaterialLootAmount
	case LootHealth:
		player.Health = min(MaxHealth, player.Health+HealthLootAmount)
	case LootShield:
		player.Shield = min(MaxShield, player.Shield+ShieldLootAmount)
	}
}
