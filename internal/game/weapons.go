package game

import (
	"fmt"
	"time"
)

// WeaponKind names a catalogue entry.
type WeaponKind string

const (
	WeaponAssaultRifle WeaponKind = "assault_rifle"
	WeaponShotgun      WeaponKind = "shotgun"
	WeaponSniper       WeaponKind = "sniper"
	WeaponBotRifle     WeaponKind = "bot_rifle"
)

// Predefined weapon stats, keyed by kind.
var weaponCatalogue = map[WeaponKind]Weapon{
	WeaponAssaultRifle: {
		Name:            "Assault Rifle",
		Damage:          30,
		Ammo:            30,
		MaxAmmo:         30,
		Rarity:          RarityRare,
		Range:           200,
		FireRate:        5,
		ProjectileSpeed: 150,
	},
	WeaponShotgun: {
		Name:            "Shotgun",
		Damage:          80,
		Ammo:            8,
		MaxAmmo:         8,
		Rarity:          RarityEpic,
		Range:           50,
		FireRate:        1,
		ProjectileSpeed: 120,
	},
	WeaponSniper: {
		Name:            "Sniper",
		Damage:          120,
		Ammo:            5,
		MaxAmmo:         5,
		Rarity:          RarityLegendary,
		Range:           400,
		FireRate:        0.5,
		ProjectileSpeed: 180,
	},
	WeaponBotRifle: {
		Name:            "Bot Rifle",
		Damage:          25,
		Ammo:            30,
		MaxAmmo:         30,
		Rarity:          RarityRare,
		Range:           150,
		FireRate:        2,
		ProjectileSpeed: 50,
	},
}

// NewWeapon builds a fresh, fully loaded weapon of the given kind.
func NewWeapon(kind WeaponKind, id string) (Weapon, error) {
	w, ok := weaponCatalogue[kind]
	if !ok {
		return Weapon{}, fmt.Errorf("unknown weapon kind %q", kind)
	}
	w.ID = id
	return w, nil
}

func mustWeapon(kind WeaponKind, id string) Weapon {
	w, err := NewWeapon(kind, id)
	if err != nil {
		panic(err)
	}
	return w
}

// CanFire checks ammo and the shooter's own fire-rate cooldown.
func (p *Player) CanFire(w *Weapon, now time.Time) Outcome {
	if w.Ammo <= 0 {
		return OutcomeNoAmmo
	}
	if !p.lastShotAt.IsZero() && now.Sub(p.lastShotAt) < w.Cooldown() {
		return OutcomeCooldown
	}
	return OutcomeApplied
}
