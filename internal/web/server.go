package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"almanac-cli/internal/calview"
	"almanac-cli/internal/model"
	"almanac-cli/internal/store"

	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

type ServerConfig struct {
	Dir string
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
	hub  *taskHub

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, errors.New("web: missing store dir")
	}
	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	srv := &Server{
		cfg:    cfg,
		tmpl:   tmpl,
		hub:    newTaskHub(),
		stopCh: make(chan struct{}),
	}
	go srv.watchLoop()
	return srv, nil
}

func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/calendar", http.StatusFound)
	})
	mux.HandleFunc("GET /calendar", s.handleCalendar)
	mux.HandleFunc("GET /calendar/events", s.handleCalendarEvents)
	mux.HandleFunc("POST /calendar/drop", s.handleCalendarDrop)
	mux.HandleFunc("GET /static/app.css", s.handleStatic("static/app.css", "text/css; charset=utf-8"))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (s *Server) handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}

// handleCalendar renders the calendar screen. The request URL's query string
// is the canonical (date, view) pair: links computed here rewrite exactly one
// parameter each, so navigating dates never resets the chosen view and vice
// versa.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	db, err := (store.Store{Dir: s.cfg.Dir}).Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	vm := buildCalendarVM(r.URL.Query(), db, time.Now())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "calendar.html", vm); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCalendarEvents streams re-renders of the events region whenever the
// store changes underneath the page (CLI writes, other tabs' drops).
func (s *Server) handleCalendarEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	ch, cancel := s.hub.subscribe()
	defer cancel()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			db, err := (store.Store{Dir: s.cfg.Dir}).Load()
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			vm := buildCalendarVM(r.URL.Query(), db, time.Now())
			html, err := s.renderTemplate("calendar_grid", vm)
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			_ = sse.PatchElements(html, datastar.WithSelector("#almanac-grid"), datastar.WithMode(datastar.ElementPatchModeOuter))
		}
	}
}

// handleCalendarDrop creates a task from a template dropped on a date. The
// form carries the page's (date, view) so the redirect lands back on the
// same screen; a slot time is only honored on time-grid views.
func (s *Server) handleCalendarDrop(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st := store.Store{Dir: s.cfg.Dir}
	db, err := st.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	tpl, ok := db.FindTemplate(r.PostFormValue("templateId"))
	if !ok {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}

	pageQuery := url.Values{}
	pageQuery.Set("date", r.PostFormValue("date"))
	pageQuery.Set("view", r.PostFormValue("view"))

	hist := calview.NewMemoryHistory()
	hist.Replace(pageQuery)

	ctrl := calview.NewController(calview.Config{
		History: hist,
		CreateTask: func(sd model.ScheduledDrop) error {
			_, err := store.CreateTaskFromDrop(db, sd)
			return err
		},
	})

	now := time.Now()
	dropDate := calview.ParseDate(r.PostFormValue("dropDate"), now)
	hint, err := store.NormalizeHM(r.PostFormValue("dropTime"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := ctrl.Drop(*tpl, dropDate, hint); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := st.Save(db); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.hub.broadcast()

	http.Redirect(w, r, "/calendar?"+pageQuery.Encode(), http.StatusSeeOther)
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var sb strings.Builder
	if err := s.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// watchLoop polls the sqlite index stamp so SSE subscribers hear about writes
// made by other processes (the CLI, the TUI).
func (s *Server) watchLoop() {
	tick := time.NewTicker(2 * time.Second)
	defer tick.Stop()

	last := s.storeStamp()
	for {
		select {
		case <-s.stopCh:
			return
		case <-tick.C:
			cur := s.storeStamp()
			if cur != last {
				last = cur
				s.hub.broadcast()
			}
		}
	}
}

func (s *Server) storeStamp() string {
	st, err := os.Stat(filepath.Join(s.cfg.Dir, "index.sqlite"))
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d:%d", st.ModTime().UnixNano(), st.Size())
}

type taskHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newTaskHub() *taskHub {
	return &taskHub{subs: map[chan struct{}]struct{}{}}
}

func (h *taskHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}
}

func (h *taskHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}
