package game

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Message types for the presentation layer.
const (
	MsgTypeSnapshot = "snapshot"
	MsgTypeDelta    = "delta"
)

// Snapshot is an immutable copy of the match published after each mutation.
// Nothing in it aliases engine state.
type Snapshot struct {
	Type         string       `msgpack:"type" json:"type"`
	MatchID      string       `msgpack:"matchId" json:"matchId"`
	Seq          uint64       `msgpack:"seq" json:"seq"`
	Time         int64        `msgpack:"time" json:"time"`
	HumanID      string       `msgpack:"humanId" json:"humanId"`
	Players      []Player     `msgpack:"players" json:"players"`
	Loot         []LootItem   `msgpack:"loot" json:"loot"`
	Buildings    []Building   `msgpack:"buildings" json:"buildings"`
	Projectiles  []Projectile `msgpack:"projectiles" json:"projectiles"`
	StormRadius  float64      `msgpack:"stormRadius" json:"stormRadius"`
	StormCenter  Vec3         `msgpack:"stormCenter" json:"stormCenter"`
	Phase        Phase        `msgpack:"phase" json:"phase"`
	Winner       string       `msgpack:"winner,omitempty" json:"winner,omitempty"`
	PlayersAlive int          `msgpack:"playersAlive" json:"playersAlive"`
}

// Player finds a player in the snapshot.
func (s *Snapshot) Player(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// LootItem finds a loot item in the snapshot.
func (s *Snapshot) LootItem(id string) (LootItem, bool) {
	for _, l := range s.Loot {
		if l.ID == id {
			return l, true
		}
	}
	return LootItem{}, false
}

func newSnapshot(state *MatchState, seq uint64, now time.Time) *Snapshot {
	snap := &Snapshot{
		Type:         MsgTypeSnapshot,
		MatchID:      state.MatchID,
		Seq:          seq,
		Time:         now.UnixMilli(),
		HumanID:      state.HumanID,
		Players:      make([]Player, 0, len(state.Players)),
		Loot:         make([]LootItem, 0, len(state.Loot)),
		Buildings:    make([]Building, 0, len(state.Buildings)),
		Projectiles:  make([]Projectile, 0, len(state.Projectiles)),
		StormRadius:  state.StormRadius,
		StormCenter:  state.StormCenter,
		Phase:        state.Phase,
		Winner:       state.Winner,
		PlayersAlive: state.PlayersAlive,
	}

	for _, p := range state.Players {
		snap.Players = append(snap.Players, p.clone())
	}
	for _, item := range state.Loot {
		c := *item
		if item.Weapon != nil {
			w := *item.Weapon
			c.Weapon = &w
		}
		snap.Loot = append(snap.Loot, c)
	}
	for _, b := range state.Buildings {
		snap.Buildings = append(snap.Buildings, *b)
	}
	for _, p := range state.Projectiles {
		snap.Projectiles = append(snap.Projectiles, *p)
	}

	return snap
}

// DeltaSnapshot carries only what changed since the client's last snapshot.
// Players are small and always sent whole; projectiles are extrapolated by
// the client from direction and speed, so only spawns and removals travel.
type DeltaSnapshot struct {
	Type               string       `msgpack:"type"`
	Seq                uint64       `msgpack:"seq"`
	Time               int64        `msgpack:"time"`
	Players            []Player     `msgpack:"players"`
	LootRemoved        []string     `msgpack:"lootRemoved,omitempty"`
	BuildingsAdded     []Building   `msgpack:"buildingsAdded,omitempty"`
	ProjectilesAdded   []Projectile `msgpack:"projectilesAdded,omitempty"`
	ProjectilesRemoved []string     `msgpack:"projectilesRemoved,omitempty"`
	StormRadius        float64      `msgpack:"stormRadius"`
	Phase              Phase        `msgpack:"phase"`
	Winner             string       `msgpack:"winner,omitempty"`
	PlayersAlive       int          `msgpack:"playersAlive"`
}

// Diff compares two snapshots of the same match and returns the delta that
// turns prev into next.
func Diff(prev, next *Snapshot) DeltaSnapshot {
	delta := DeltaSnapshot{
		Type:         MsgTypeDelta,
		Seq:          next.Seq,
		Time:         next.Time,
		Players:      next.Players,
		StormRadius:  next.StormRadius,
		Phase:        next.Phase,
		Winner:       next.Winner,
		PlayersAlive: next.PlayersAlive,
	}

	// Loot is only ever removed after the initial batch.
	nextLoot := make(map[string]struct{}, len(next.Loot))
	for _, item := range next.Loot {
		nextLoot[item.ID] = struct{}{}
	}
	for _, item := range prev.Loot {
		if _, exists := nextLoot[item.ID]; !exists {
			delta.LootRemoved = append(delta.LootRemoved, item.ID)
		}
	}

	prevBuildings := make(map[string]struct{}, len(prev.Buildings))
	for _, b := range prev.Buildings {
		prevBuildings[b.ID] = struct{}{}
	}
	for _, b := range next.Buildings {
		if _, exists := prevBuildings[b.ID]; !exists {
			delta.BuildingsAdded = append(delta.BuildingsAdded, b)
		}
	}

	delta.ProjectilesAdded, delta.ProjectilesRemoved = calculateProjectileDeltas(prev.Projectiles, next.Projectiles)
	return delta
}

// calculateProjectileDeltas finds projectiles spawned and removed between two lists.
func calculateProjectileDeltas(prev, next []Projectile) ([]Projectile, []string) {
	prevMap := make(map[string]struct{}, len(prev))
	for _, p := range prev {
		prevMap[p.ID] = struct{}{}
	}
	nextMap := make(map[string]struct{}, len(next))
	for _, p := range next {
		nextMap[p.ID] = struct{}{}
	}

	var added []Projectile
	var removed []string

	for _, p := range next {
		if _, exists := prevMap[p.ID]; !exists {
			added = append(added, p)
		}
	}
	for _, p := range prev {
		if _, exists := nextMap[p.ID]; !exists {
			removed = append(removed, p.ID)
		}
	}

	return added, removed
}

// EncodeSnapshot serializes a full snapshot for the wire.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	return msgpack.Marshal(s)
}

// EncodeDelta serializes a delta snapshot for the wire.
func EncodeDelta(d DeltaSnapshot) ([]byte, error) {
	return msgpack.Marshal(d)
}

// DecodeSnapshot is the inverse of EncodeSnapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
