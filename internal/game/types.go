package game

import "time"

// Phase is the match lifecycle state.
type Phase string

const (
	PhaseLobby Phase = "lobby"
	// PhaseDropping is reserved for a pre-match drop sequence and behaves as lobby.
	PhaseDropping Phase = "dropping"
	PhasePlaying  Phase = "playing"
	PhaseEnded    Phase = "ended"
)

func (p Phase) acceptsInitialize() bool {
	return p == PhaseLobby || p == PhaseDropping
}

// Rarity tiers weapons for presentation. Ordered: common < rare < epic < legendary.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "unknown"
	}
}

// Weapon stats are fixed at spawn; only Ammo changes.
type Weapon struct {
	ID              string  `msgpack:"id" json:"id"`
	Name            string  `msgpack:"name" json:"name"`
	Damage          int     `msgpack:"damage" json:"damage"`
	Ammo            int     `msgpack:"ammo" json:"ammo"`
	MaxAmmo         int     `msgpack:"maxAmmo" json:"maxAmmo"`
	Rarity          Rarity  `msgpack:"rarity" json:"rarity"`
	Range           float64 `msgpack:"range" json:"range"`
	FireRate        float64 `msgpack:"fireRate" json:"fireRate"` // shots per second
	ProjectileSpeed float64 `msgpack:"projectileSpeed" json:"projectileSpeed"`
}

// Cooldown is the minimum spacing between two shots.
func (w *Weapon) Cooldown() time.Duration {
	return time.Duration(float64(time.Second) / w.FireRate)
}

// Materials is a player's building stock.
type Materials struct {
	Wood  int `msgpack:"wood" json:"wood"`
	Stone int `msgpack:"stone" json:"stone"`
	Metal int `msgpack:"metal" json:"metal"`
}

// Inventory holds at least one weapon; Active always indexes Weapons.
type Inventory struct {
	Weapons []Weapon `msgpack:"weapons" json:"weapons"`
	Active  int      `msgpack:"active" json:"active"`
}

// ActiveWeapon returns a pointer into Weapons for the selected slot.
func (inv *Inventory) ActiveWeapon() *Weapon {
	return &inv.Weapons[inv.Active]
}

// BotBehavior is the label of a bot's last decision.
type BotBehavior string

const (
	BehaviorIdle     BotBehavior = "idle"
	BehaviorEscaping BotBehavior = "escaping_storm"
	BehaviorAttack   BotBehavior = "attacking"
	BehaviorHunting  BotBehavior = "hunting"
	BehaviorWander   BotBehavior = "wandering"
)

// Player is a human or bot combatant.
type Player struct {
	ID        string      `msgpack:"id" json:"id"`
	Position  Vec3        `msgpack:"position" json:"position"`
	Rotation  Vec3        `msgpack:"rotation" json:"rotation"` // X pitch, Y yaw
	Health    int         `msgpack:"health" json:"health"`
	Shield    int         `msgpack:"shield" json:"shield"`
	Alive     bool        `msgpack:"alive" json:"alive"`
	IsBot     bool        `msgpack:"isBot" json:"isBot"`
	Materials Materials   `msgpack:"materials" json:"materials"`
	Inventory Inventory   `msgpack:"inventory" json:"inventory"`
	Behavior  BotBehavior `msgpack:"behavior,omitempty" json:"behavior,omitempty"`

	lastShotAt time.Time
}

// LootCategory selects what a loot item grants.
type LootCategory string

const (
	LootWeapon   LootCategory = "weapon"
	LootMaterial LootCategory = "material"
	LootHealth   LootCategory = "health"
	LootShield   LootCategory = "shield"
)

// LootItem lies on the ground until collected. Weapon is set only for LootWeapon.
type LootItem struct {
	ID       string       `msgpack:"id" json:"id"`
	Category LootCategory `msgpack:"category" json:"category"`
	Position Vec3         `msgpack:"position" json:"position"`
	Weapon   *Weapon      `msgpack:"weapon,omitempty" json:"weapon,omitempty"`
}

// BuildingType is the structural shape of a building piece.
type BuildingType string

const (
	BuildingWall  BuildingType = "wall"
	BuildingRamp  BuildingType = "ramp"
	BuildingFloor BuildingType = "floor"
)

// Material is what a building piece is made of.
type Material string

const (
	MaterialWood  Material = "wood"
	MaterialStone Material = "stone"
	MaterialMetal Material = "metal"
)

// Building is a placed structure. Buildings are decorative: nothing collides
// with them and nothing damages them yet.
type Building struct {
	ID       string       `msgpack:"id" json:"id"`
	Type     BuildingType `msgpack:"type" json:"type"`
	Position Vec3         `msgpack:"position" json:"position"`
	Rotation Vec3         `msgpack:"rotation" json:"rotation"`
	Material Material     `msgpack:"material" json:"material"`
	Health   int          `msgpack:"health" json:"health"`
	PlacedBy string       `msgpack:"placedBy" json:"placedBy"`
}

// Projectile is a shot in flight. Direction is unit length.
type Projectile struct {
	ID        string  `msgpack:"id" json:"id"`
	Position  Vec3    `msgpack:"position" json:"position"`
	Direction Vec3    `msgpack:"direction" json:"direction"`
	Speed     float64 `msgpack:"speed" json:"speed"`
	Damage    int     `msgpack:"damage" json:"damage"`
	OwnerID   string  `msgpack:"ownerId" json:"ownerId"`
	Weapon    Weapon  `msgpack:"weapon" json:"weapon"`
}

// MatchState is the aggregate the engine owns. Nothing outside the engine
// holds a reference to it; readers get Snapshots.
type MatchState struct {
	MatchID      string
	HumanID      string
	Players      []*Player
	Loot         []*LootItem
	Buildings    []*Building
	Projectiles  []*Projectile
	StormRadius  float64
	StormCenter  Vec3
	Phase        Phase
	Winner       string
	PlayersAlive int
}

// Player looks up a player by id.
func (s *MatchState) Player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Human returns the human-controlled player, or nil before initialization.
func (s *MatchState) Human() *Player {
	return s.Player(s.HumanID)
}

func (s *MatchState) countAlive() int {
	n := 0
	for _, p := range s.Players {
		if p.Alive {
			n++
		}
	}
	return n
}

func (s *MatchState) soleSurvivor() *Player {
	var survivor *Player
	for _, p := range s.Players {
		if !p.Alive {
			continue
		}
		if survivor != nil {
			return nil
		}
		survivor = p
	}
	return survivor
}
