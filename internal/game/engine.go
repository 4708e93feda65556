package game

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MoveDirection is a yaw-relative movement key.
type MoveDirection string

const (
	MoveForward  MoveDirection = "forward"
	MoveBackward MoveDirection = "backward"
	MoveLeft     MoveDirection = "left"
	MoveRight    MoveDirection = "right"
)

// Engine owns one MatchState and serializes every mutation of it. Intents
// and ticks take the same lock, so a bot decision can never interleave with
// a half-applied player intent.
type Engine struct {
	mu     sync.Mutex
	tuning Tuning
	log    zerolog.Logger
	rng    RandomSource
	clock  func() time.Time

	state  *MatchState
	gm     *GameMechanics
	combat *CombatResolver
	storm  *StormController
	bots   *BotController

	stormElapsed time.Duration
	botElapsed   time.Duration

	seq      uint64
	snapshot atomic.Pointer[Snapshot]
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRandom injects the random source used by bots and loot generation.
func WithRandom(rng RandomSource) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock replaces time.Now for intents that need a timestamp.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// NewEngine creates an engine in the lobby phase.
func NewEngine(tuning Tuning, log zerolog.Logger, opts ...Option) (*Engine, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		tuning: tuning,
		log:    log,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRandomSource(0)
	}

	e.gm = NewGameMechanics(&e.tuning, log)
	e.combat = NewCombatResolver(e.gm)
	e.storm = NewStormController(e.gm)
	e.bots = NewBotController(e.gm, e.combat, e.rng)

	e.state = &MatchState{
		MatchID:     uuid.NewString(),
		StormRadius: tuning.StormInitialRadius,
		StormCenter: tuning.StormCenter,
		Phase:       PhaseLobby,
	}
	e.log = log.With().Str("match_id", e.state.MatchID).Logger()
	e.gm.log = e.log

	e.publish(e.clock())
	return e, nil
}

// Snapshot returns the most recently published state.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Tuning returns the engine's settings.
func (e *Engine) Tuning() Tuning {
	return e.tuning
}

// InitializeMatch spawns the human, the bot roster and the loot batch, then
// starts play. Only valid from the lobby.
func (e *Engine) InitializeMatch() Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Phase.acceptsInitialize() {
		return e.noop(OutcomeWrongPhase)
	}

	t := &e.tuning
	spawn := Vec3{X: t.ArenaSize / 2, Y: SpawnHeight, Z: t.ArenaSize / 2}

	players := make([]*Player, 0, t.BotCount+1)
	players = append(players, NewHumanPlayer(HumanPlayerID, spawn))
	for i := 0; i < t.BotCount; i++ {
		players = append(players, newBot(i, e.rng, t))
	}

	e.state.HumanID = HumanPlayerID
	e.state.Players = players
	e.state.Loot = e.gm.SpawnLoot(e.rng)
	e.state.Buildings = nil
	e.state.Projectiles = nil
	e.state.StormRadius = t.StormInitialRadius
	e.state.StormCenter = t.StormCenter
	e.state.Winner = ""
	e.state.PlayersAlive = len(players)
	e.state.Phase = PhasePlaying
	e.stormElapsed = 0
	e.botElapsed = 0

	e.log.Info().
		Int("bots", t.BotCount).
		Int("loot", len(e.state.Loot)).
		Float64("storm_radius", e.state.StormRadius).
		Msg("match started")

	return e.applied()
}

// MovePlayer steps a living player one move-speed unit along the ground
// projection of direction, clamped inside the arena.
func (e *Engine) MovePlayer(playerID string, direction Vec3) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player, outcome, err := e.actor(playerID)
	if err != nil || outcome != OutcomeApplied {
		return e.noop(outcome), err
	}
	return e.walk(player, direction)
}

// walk moves player along the ground projection of direction. Callers hold mu.
func (e *Engine) walk(player *Player, direction Vec3) (Result, error) {
	dir, err := Normalize(direction.Flat())
	if err != nil {
		return e.noop(OutcomeInvalid), err
	}

	player.Position = clampToArena(player.Position.Add(dir.Scale(e.tuning.MoveSpeed)), &e.tuning)
	return e.applied(), nil
}

// MoveRelative moves a player relative to where it is facing. The heading is
// read and the move applied under one lock, so a concurrent rotation lands
// either wholly before or wholly after it.
func (e *Engine) MoveRelative(playerID string, move MoveDirection) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player, outcome, err := e.actor(playerID)
	if err != nil || outcome != OutcomeApplied {
		return e.noop(outcome), err
	}

	dir, ok := relativeHeading(player.Rotation.Y, move)
	if !ok {
		return e.noop(OutcomeInvalid), ErrInvalidMove
	}
	return e.walk(player, dir)
}

func relativeHeading(yaw float64, move MoveDirection) (Vec3, bool) {
	forward := headingOf(yaw)
	switch move {
	case MoveForward:
		return forward, true
	case MoveBackward:
		return forward.Scale(-1), true
	case MoveLeft:
		return Vec3{X: forward.Z, Z: -forward.X}, true
	case MoveRight:
		return Vec3{X: -forward.Z, Z: forward.X}, true
	default:
		return Vec3{}, false
	}
}

// RotatePlayer turns a living player. Yaw wraps; pitch is clamped to straight
// up and straight down.
func (e *Engine) RotatePlayer(playerID string, deltaYaw, deltaPitch float64) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player, outcome, err := e.actor(playerID)
	if err != nil || outcome != OutcomeApplied {
		return e.noop(outcome), err
	}

	player.Rotation.Y = normalizeAngle(player.Rotation.Y + deltaYaw)
	player.Rotation.X = Clamp(player.Rotation.X+deltaPitch, -math.Pi/2, math.Pi/2)
	return e.applied(), nil
}

// SelectWeapon switches the active inventory slot.
func (e *Engine) SelectWeapon(playerID string, slot int) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player, outcome, err := e.actor(playerID)
	if err != nil || outcome != OutcomeApplied {
		return e.noop(outcome), err
	}
	if slot < 0 || slot >= len(player.Inventory.Weapons) {
		return e.noop(OutcomeInvalid), ErrInvalidWeaponSlot
	}

	player.Inventory.Active = slot
	return e.applied(), nil
}

// Build places a structure for the player if it has enough wood.
func (e *Engine) Build(playerID string, kind BuildingType, position Vec3) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player, outcome, err := e.actor(playerID)
	if err != nil || outcome != OutcomeApplied {
		return e.noop(outcome), err
	}

	_, outcome, err = e.gm.Build(e.state, player, kind, position)
	if err != nil || outcome != OutcomeApplied {
		return e.noop(outcome), err
	}
	return e.applied(), nil
}

// CollectLoot picks up a loot item within reach of the player.
func (e *Engine) CollectLoot(playerID, lootID string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player, outcome, err := e.actor(playerID)
	if err != nil || outcome != OutcomeApplied {
		return e.noop(outcome), err
	}

	if outcome := e.gm.CollectLoot(e.state, player, lootID); outcome != OutcomeApplied {
		return e.noop(outcome), nil
	}
	return e.applied(), nil
}

// Shoot fires the player's active weapon along direction at the engine clock.
func (e *Engine) Shoot(playerID string, direction Vec3) (Result, error) {
	return e.ShootAt(playerID, direction, e.clock())
}

// ShootAt fires the player's active weapon along direction at time now.
// The direction is normalized here; the resolver trusts it.
func (e *Engine) ShootAt(playerID string, direction Vec3, now time.Time) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player, outcome, err := e.actor(playerID)
	if err != nil || outcome != OutcomeApplied {
		return e.noop(outcome), err
	}

	dir, err := Normalize(direction)
	if err != nil {
		return e.noop(OutcomeInvalid), err
	}

	_, outcome = e.combat.AttemptShot(e.state, player, player.Position, dir, player.Inventory.ActiveWeapon(), now)
	if outcome != OutcomeApplied {
		return e.noop(outcome), nil
	}
	return e.applied(), nil
}

// Tick advances the simulation by dt: projectiles every call, the storm and
// the bots whenever their own periods have elapsed. After the match ends it
// is a no-op.
func (e *Engine) Tick(now time.Time, dt time.Duration) *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != PhasePlaying || dt <= 0 {
		return e.snapshot.Load()
	}

	for _, hit := range e.combat.AdvanceProjectiles(e.state, dt) {
		e.log.Debug().
			Str("victim", hit.VictimID).
			Str("attacker", hit.AttackerID).
			Int("damage", hit.Damage).
			Bool("eliminated", hit.Eliminated).
			Msg("projectile hit")
	}

	e.stormElapsed += dt
	for e.stormElapsed >= e.tuning.StormTickPeriod && e.state.Phase == PhasePlaying {
		e.stormElapsed -= e.tuning.StormTickPeriod
		e.storm.Tick(e.state)
	}

	e.botElapsed += dt
	for e.botElapsed >= e.tuning.BotDecisionPeriod && e.state.Phase == PhasePlaying {
		e.botElapsed -= e.tuning.BotDecisionPeriod
		e.bots.Run(e.state, now)
	}

	e.checkInvariants()
	return e.publish(now)
}

// actor resolves a player for an intent. Wrong phase and dead players are
// outcomes; an unknown id in a running match is an error.
func (e *Engine) actor(playerID string) (*Player, Outcome, error) {
	if e.state.Phase != PhasePlaying {
		return nil, OutcomeWrongPhase, nil
	}
	player := e.state.Player(playerID)
	if player == nil {
		return nil, OutcomeInvalid, ErrUnknownPlayer
	}
	if !player.Alive {
		return nil, OutcomePlayerDead, nil
	}
	return player, OutcomeApplied, nil
}

func (e *Engine) noop(outcome Outcome) Result {
	return Result{Snapshot: e.snapshot.Load(), Outcome: outcome}
}

func (e *Engine) applied() Result {
	e.checkInvariants()
	return Result{Snapshot: e.publish(e.clock()), Outcome: OutcomeApplied}
}

func (e *Engine) publish(now time.Time) *Snapshot {
	e.seq++
	snap := newSnapshot(e.state, e.seq, now)
	e.snapshot.Store(snap)
	return snap
}

// headingOf is the ground-plane forward vector for a yaw angle.
func headingOf(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}
