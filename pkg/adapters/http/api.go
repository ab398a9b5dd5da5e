package http

import (
	"net/http"
	"time"

	"github.com/aretw0/folio/pkg/carousel"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/tween"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// CarouselResponse is the body of every /api/carousel answer.
type CarouselResponse struct {
	State       domain.State   `json:"state"`
	Slide       domain.Slide   `json:"slide"`
	Visuals     []tween.Visual `json:"visuals"`
	NextAdvance *time.Time     `json:"next_advance,omitempty"`
}

func newCarouselResponse(c *carousel.Controller) CarouselResponse {
	st := c.State()
	resp := CarouselResponse{
		State:   st,
		Slide:   c.Registry().At(st.ActiveIndex),
		Visuals: c.Visuals(),
	}
	if at, ok := c.NextAdvance(); ok {
		resp.NextAdvance = &at
	}
	return resp
}

// GetCarousel handles GET /api/carousel.
func (s *Server) GetCarousel(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCarouselResponse(c))
}

func (s *Server) intentHandler(kind domain.IntentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.dispatch(w, r, domain.Intent{Kind: kind, Source: requestSource(r)})
	}
}

// GoTo handles POST /api/carousel/goto/{index}. Out of range indices wrap.
func (s *Server) GoTo(w http.ResponseWriter, r *http.Request) {
	var index int
	err := runtime.BindStyledParameterWithOptions("simple", "index", chi.URLParam(r, "index"), &index,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index: "+err.Error())
		return
	}
	s.dispatch(w, r, domain.GoTo(index, requestSource(r)))
}

// requestSource reads the optional source query parameter. The OpenAPI
// validator has already restricted it to the known values.
func requestSource(r *http.Request) domain.Source {
	if v := r.URL.Query().Get(SourceParam); v != "" {
		return domain.Source(v)
	}
	return domain.SourceAPI
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, intent domain.Intent) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}
	if err := routeIntent(r.Context(), c, intent); err != nil {
		s.fail(w, err, "session_id", c.State().SessionID, "intent", intent.String())
		return
	}
	s.logger.Debug("intent applied", "session_id", c.State().SessionID, "intent", intent.String())
	writeJSON(w, http.StatusOK, newCarouselResponse(c))
}

// GetSlides handles GET /api/slides.
func (s *Server) GetSlides(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.Slides())
}
