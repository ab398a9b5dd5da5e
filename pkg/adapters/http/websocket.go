package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/input"
	"github.com/aretw0/folio/pkg/tween"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const wsWriteTimeout = 5 * time.Second

// ClientMessage is an intent sent by a WebSocket client. A message carrying
// Key is a key press by DOM name; unmapped keys are ignored.
type ClientMessage struct {
	Kind   string        `json:"kind,omitempty"`
	Index  int           `json:"index,omitempty"`
	Source domain.Source `json:"source,omitempty"`
	Key    string        `json:"key,omitempty"`
}

// ServerMessage is pushed to WebSocket clients.
type ServerMessage struct {
	Type    string         `json:"type"` // "state", "visuals" or "error"
	State   *domain.State  `json:"state,omitempty"`
	Visuals []tween.Visual `json:"visuals,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func (m ClientMessage) route(ctx context.Context, d input.Dispatcher) error {
	if m.Key != "" {
		_, err := input.NewRouter(d).Key(ctx, m.Key)
		return err
	}
	kind, err := domain.ParseIntentKind(m.Kind)
	if err != nil {
		return err
	}
	return routeIntent(ctx, d, domain.Intent{Kind: kind, Index: m.Index, Source: m.Source})
}

// ServeWebSocket handles GET /ws: intents in, full states and sampled
// visuals out. The carousel is mounted by the first connection.
func (s *Server) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	c, release, err := s.sessions.Acquire(r.Context(), id)
	if err != nil {
		s.fail(w, err, "session_id", id)
		return
	}
	defer release()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Warn("websocket accept failed", "session_id", id, "err", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		defer cancel()
		for {
			var msg ClientMessage
			if err := wsjson.Read(ctx, conn, &msg); err != nil {
				if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure &&
					status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
					s.logger.Debug("websocket read failed", "session_id", id, "err", err)
				}
				return
			}
			if err := msg.route(ctx, c); err != nil {
				if errors.Is(err, domain.ErrClosed) {
					return
				}
				s.write(ctx, conn, ServerMessage{Type: "error", Error: err.Error()})
			}
		}
	}()

	states, frames := c.Watch(ctx), c.WatchVisuals(ctx)
	for states != nil || frames != nil {
		var msg ServerMessage
		select {
		case st, ok := <-states:
			if !ok {
				states = nil
				continue
			}
			msg = ServerMessage{Type: "state", State: &st}
		case v, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			msg = ServerMessage{Type: "visuals", Visuals: v}
		}
		if err := s.write(ctx, conn, msg); err != nil {
			return
		}
	}
	if ctx.Err() == nil {
		conn.Close(websocket.StatusGoingAway, "carousel closed")
	}
}

func (s *Server) write(ctx context.Context, conn *websocket.Conn, msg ServerMessage) error {
	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, conn, msg)
}
