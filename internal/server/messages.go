package server

import "stormfall/internal/game"

// Intent message types sent by the browser client as JSON text frames.
const (
	MsgTypeStart        = "start"
	MsgTypeMove         = "move"
	MsgTypeMoveRelative = "moveRelative"
	MsgTypeRotate       = "rotate"
	MsgTypeShoot        = "shoot"
	MsgTypeBuild        = "build"
	MsgTypeCollect      = "collect"
	MsgTypeSelect       = "select"
)

// MsgTypeWelcome and MsgTypeResult go back to the client as msgpack binary
// frames, next to game.MsgTypeSnapshot and game.MsgTypeDelta.
const (
	MsgTypeWelcome = "welcome"
	MsgTypeResult  = "result"
)

// IntentMsg is the single envelope for every player intent. Only the fields
// relevant to Type are read.
type IntentMsg struct {
	Type      string             `json:"type"`
	Direction game.Vec3          `json:"direction"`
	Move      game.MoveDirection `json:"move,omitempty"`
	Yaw       float64            `json:"yaw,omitempty"`
	Pitch     float64            `json:"pitch,omitempty"`
	Building  game.BuildingType  `json:"building,omitempty"`
	Position  game.Vec3          `json:"position"`
	LootID    string             `json:"lootId,omitempty"`
	Slot      int                `json:"slot,omitempty"`
}

// WelcomeMsg tells a new connection who it is and which player it drives.
type WelcomeMsg struct {
	Type     string `msgpack:"type"`
	ClientID string `msgpack:"clientId"`
	PlayerID string `msgpack:"playerId"`
	MatchID  string `msgpack:"matchId"`
}

// ResultMsg reports an intent that did not apply.
type ResultMsg struct {
	Type    string `msgpack:"type"`
	Intent  string `msgpack:"intent"`
	Outcome string `msgpack:"outcome"`
	Error   string `msgpack:"error,omitempty"`
}
