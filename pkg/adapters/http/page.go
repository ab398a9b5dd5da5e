package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/i18n"
	"github.com/google/uuid"
)

// ThemeParam selects the color scheme of the page.
const ThemeParam = "theme"

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templatesFS, "templates/*.html"))

type slideView struct {
	Index  int
	Slide  domain.Slide
	Active bool
}

type themeLink struct {
	Theme  domain.Theme
	URL    string
	Active bool
}

type langLink struct {
	i18n.Option
	URL string
}

type pageData struct {
	Lang      string
	Languages []langLink
	Theme     domain.Theme
	Themes    []themeLink
	Toggle    string
	SessionID string
	Sections  []domain.Section
	Portfolio *domain.Portfolio
	State     domain.State
	Slides    []slideView
	Year      int
	T         func(key string, args ...any) string
}

// Page handles GET /. Every page view without an explicit session gets its
// own session id so hover pauses stay private to the visitor. Rendering never
// mounts a carousel: the page script does that when it opens /ws.
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(SessionParam)
	if id == "" {
		id = uuid.NewString()
	} else if !sessionPattern.MatchString(id) {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}
	st := domain.NewState(id, s.slides.Len())
	if c, err := s.sessions.Lookup(id); err == nil {
		st = c.State()
	}

	tag := s.catalog.Resolve(r)
	theme := s.theme
	if v := r.URL.Query().Get(ThemeParam); v != "" {
		theme = domain.ParseTheme(v)
	}

	data := pageData{
		Lang:      tag.String(),
		Theme:     theme,
		SessionID: id,
		Sections:  domain.Sections(),
		Portfolio: s.library.For(tag),
		State:     st,
		Slides:    slideViews(s.slides.Slides(), st.ActiveIndex),
		Year:      time.Now().Year(),
		T:         s.catalog.Translator(tag),
	}
	for _, opt := range s.catalog.Options(tag) {
		data.Languages = append(data.Languages, langLink{Option: opt, URL: pageURL(r, i18n.LangParam, opt.Tag)})
	}
	for _, t := range domain.Themes() {
		data.Themes = append(data.Themes, themeLink{Theme: t, URL: pageURL(r, ThemeParam, string(t)), Active: t == theme})
	}
	data.Toggle = pageURL(r, ThemeParam, string(theme.Toggle()))

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page.html", data); err != nil {
		s.logger.Error("page render failed", "session_id", id, "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// slideViews renders class state only. Sampled visuals are applied by the
// page script from the /ws stream, so nothing inline can go stale.
func slideViews(slides []domain.Slide, active int) []slideView {
	out := make([]slideView, len(slides))
	for i, sl := range slides {
		out[i] = slideView{Index: i, Slide: sl, Active: i == active}
	}
	return out
}

// pageURL rewrites one query parameter of the current page URL.
func pageURL(r *http.Request, key, value string) string {
	q := url.Values{}
	for k, v := range r.URL.Query() {
		q[k] = v
	}
	q.Set(key, value)
	return "/?" + q.Encode()
}
