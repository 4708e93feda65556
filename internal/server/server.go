package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"stormfall/internal/config"
	"stormfall/internal/game"
	applog "stormfall/internal/logger"
	"stormfall/internal/middleware"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

// ErrUnknownIntent is returned for an intent message with an unrecognized type.
var ErrUnknownIntent = errors.New("unknown intent type")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server exposes one match over HTTP: intents in over /ws, snapshots out over
// the same socket, and the latest snapshot as JSON on /state.
type Server struct {
	loop      *game.Loop
	log       zerolog.Logger
	staticDir string
}

// New creates a server for the loop's match.
func New(loop *game.Loop, cfg *config.Config, logger zerolog.Logger) *Server {
	return &Server{
		loop:      loop,
		log:       applog.Component(logger, "server"),
		staticDir: cfg.StaticDir,
	}
}

// Handler returns the routed, CORS-enabled handler tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/state", s.handleState)
	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return middleware.RequestID(s.log)(c.Handler(mux))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.loop.Engine().Snapshot()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("error encoding state")
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade error")
		return
	}

	log := s.log.With().Str("request_id", middleware.GetRequestID(r.Context())).Logger()
	client, err := NewClient(conn, game.HumanPlayerID, log)
	if err != nil {
		s.log.Error().Err(err).Msg("error creating client")
		conn.Close()
		return
	}

	snapshots := s.loop.Subscribe(client.ID)
	client.sendWelcome(s.loop.Engine().Snapshot().MatchID)
	client.log.Info().Str("player", client.PlayerID).Msg("client connected")

	go s.handleClientReads(client)
	go s.handleClientWrites(client, snapshots)
}

// handleClientReads decodes JSON intents until the connection drops.
func (s *Server) handleClientReads(client *Client) {
	defer func() {
		s.loop.Unsubscribe(client.ID)
		client.Conn.Close()
		client.log.Info().Msg("client disconnected")
	}()

	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				client.log.Warn().Err(err).Msg("websocket error")
			}
			return
		}

		var msg IntentMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			client.log.Debug().Err(err).Msg("error unmarshaling intent")
			client.sendResult("", game.OutcomeInvalid, err)
			continue
		}

		res, err := s.dispatch(client.PlayerID, msg)
		if err != nil || !res.Applied() {
			client.sendResult(msg.Type, res.Outcome, err)
			continue
		}
		s.loop.Broadcast(res.Snapshot)
	}
}

// handleClientWrites streams snapshots, direct replies and keepalive pings.
func (s *Server) handleClientWrites(client *Client, snapshots <-chan *game.Snapshot) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	if !s.writeState(client, s.loop.Engine().Snapshot()) {
		return
	}

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if !s.writeState(client, snap) {
				return
			}

		case message := <-client.Send:
			if !s.write(client, message) {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) writeState(client *Client, snap *game.Snapshot) bool {
	data, err := client.encodeState(snap)
	if err != nil {
		client.log.Error().Err(err).Msg("error encoding snapshot")
		return true
	}
	if data == nil {
		return true
	}
	return s.write(client, data)
}

func (s *Server) write(client *Client, data []byte) bool {
	client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := client.Conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		client.log.Debug().Err(err).Msg("write error")
		return false
	}
	return true
}

// dispatch applies one intent to the engine on behalf of playerID.
func (s *Server) dispatch(playerID string, msg IntentMsg) (game.Result, error) {
	engine := s.loop.Engine()

	switch msg.Type {
	case MsgTypeStart:
		return engine.InitializeMatch(), nil
	case MsgTypeMove:
		return engine.MovePlayer(playerID, msg.Direction)
	case MsgTypeMoveRelative:
		return engine.MoveRelative(playerID, msg.Move)
	case MsgTypeRotate:
		return engine.RotatePlayer(playerID, msg.Yaw, msg.Pitch)
	case MsgTypeShoot:
		return engine.Shoot(playerID, msg.Direction)
	case MsgTypeBuild:
		return engine.Build(playerID, msg.Building, msg.Position)
	case MsgTypeCollect:
		return engine.CollectLoot(playerID, msg.LootID)
	case MsgTypeSelect:
		return engine.SelectWeapon(playerID, msg.Slot)
	default:
		return game.Result{Snapshot: engine.Snapshot(), Outcome: game.OutcomeInvalid},
			fmt.Errorf("%w: %q", ErrUnknownIntent, msg.Type)
	}
}
