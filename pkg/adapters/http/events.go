package http

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SubscribeEvents handles GET /api/events (SSE).
// The stream opens with a full "state" event followed by "diff" events.
// "visuals" events carry the sampled slide visuals while transitions run.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	if s.broadcaster == nil {
		writeError(w, http.StatusNotImplemented, "event streaming is disabled")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	id, ok := sessionID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	ctx := r.Context()
	c, release, err := s.sessions.Acquire(ctx, id)
	if err != nil {
		s.fail(w, err, "session_id", id)
		return
	}
	defer release()

	// Subscribe before the snapshot so no diff falls in between.
	diffs, err := s.broadcaster.Subscribe(ctx, id)
	if err != nil {
		s.fail(w, err, "session_id", id)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	s.logger.Info("SSE: client subscribed", "session_id", id)
	writeEvent(w, "state", c.State())
	flusher.Flush()

	frames := c.WatchVisuals(ctx)
	for {
		select {
		case v, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			writeEvent(w, "visuals", v)
			flusher.Flush()
		case <-ctx.Done():
			s.logger.Info("SSE: client disconnected", "session_id", id)
			return
		case <-c.Done():
			fmt.Fprint(w, "event: closed\ndata: {}\n\n")
			flusher.Flush()
			return
		case diff, ok := <-diffs:
			if !ok {
				return
			}
			writeEvent(w, "diff", diff)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
}
