package server

import (
	"fmt"

	"github.com/gorilla/websocket"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"stormfall/internal/game"
)

const sendBuffer = 16

// Client is one websocket connection. Every client drives the match's human
// player; extra connections act as co-pilots and spectators.
type Client struct {
	ID       string
	PlayerID string
	Conn     *websocket.Conn
	// Send carries direct replies (welcome, rejected intents) already encoded.
	Send chan []byte

	log  zerolog.Logger
	last *game.Snapshot
}

// NewClient wraps conn with a fresh client id.
func NewClient(conn *websocket.Conn, playerID string, log zerolog.Logger) (*Client, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate client id: %w", err)
	}
	return &Client{
		ID:       id,
		PlayerID: playerID,
		Conn:     conn,
		Send:     make(chan []byte, sendBuffer),
		log:      log.With().Str("client", id).Logger(),
	}, nil
}

// encodeState returns the wire form of snap for this client: a full snapshot
// the first time or when the match changed, otherwise a delta against the
// previous snapshot it received.
func (c *Client) encodeState(snap *game.Snapshot) ([]byte, error) {
	prev := c.last
	if prev != nil && snap.Seq <= prev.Seq && snap.MatchID == prev.MatchID {
		return nil, nil
	}
	c.last = snap

	if prev == nil || prev.MatchID != snap.MatchID {
		return game.EncodeSnapshot(snap)
	}
	return game.EncodeDelta(game.Diff(prev, snap))
}

func (c *Client) queue(v any) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		c.log.Error().Err(err).Msg("error marshaling message")
		return
	}

	select {
	case c.Send <- data:
	default:
		c.log.Warn().Msg("send buffer full, message dropped")
	}
}

func (c *Client) sendWelcome(matchID string) {
	c.queue(WelcomeMsg{
		Type:     MsgTypeWelcome,
		ClientID: c.ID,
		PlayerID: c.PlayerID,
		MatchID:  matchID,
	})
}

func (c *Client) sendResult(intent string, outcome game.Outcome, err error) {
	msg := ResultMsg{
		Type:    MsgTypeResult,
		Intent:  intent,
		Outcome: outcome.String(),
	}
	if err != nil {
		msg.Error = err.Error()
	}
	c.queue(msg)
}
