package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"almanac-cli/internal/model"
	"almanac-cli/internal/store"
)

func newTestServer(t *testing.T, templates ...model.EventTemplate) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	st := store.Store{Dir: dir}
	if err := st.Save(&store.DB{Templates: templates, Tasks: []model.Task{}}); err != nil {
		t.Fatal(err)
	}
	srv, err := NewServer(ServerConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(srv.Stop)
	return srv, dir
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCalendarPageRendersGridFromQuery(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/calendar?date=2024-05-15&view=week", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="almanac-grid"`) {
		t.Fatalf("grid region missing:\n%s", body)
	}
	// Week nav link steps by 7 days and keeps the view param.
	if !strings.Contains(body, "date=2024-05-22") || !strings.Contains(body, "view=week") {
		t.Fatalf("nav links wrong:\n%s", body)
	}
}

func TestCalendarDropCreatesTaskAndRedirects(t *testing.T) {
	start := "10:00"
	srv, dir := newTestServer(t, model.EventTemplate{
		ID: "tmpl-standup0", Title: "Standup", StartTime: &start, CreatedAt: time.Now().UTC(),
	})

	form := url.Values{}
	form.Set("templateId", "tmpl-standup0")
	form.Set("date", "2024-05-15")
	form.Set("view", "month")
	form.Set("dropDate", "2024-05-02")
	form.Set("dropTime", "14:30") // must be ignored on a month-view drop

	req := httptest.NewRequest("POST", "/calendar/drop", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "date=2024-05-15") || !strings.Contains(loc, "view=month") {
		t.Fatalf("redirect lost the page state: %s", loc)
	}

	db, err := (store.Store{Dir: dir}).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(db.Tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(db.Tasks))
	}
	task := db.Tasks[0]
	if task.Due == nil || task.Due.Date != "2024-05-02" {
		t.Fatalf("due = %+v", task.Due)
	}
	if task.Due.Time == nil || *task.Due.Time != "10:00" {
		t.Fatalf("time = %v, want template default (slot hint ignored off the time grid)", task.Due.Time)
	}
}

func TestCalendarDropUnknownTemplate(t *testing.T) {
	srv, _ := newTestServer(t)

	form := url.Values{}
	form.Set("templateId", "tmpl-missing0")
	form.Set("dropDate", "2024-05-02")

	req := httptest.NewRequest("POST", "/calendar/drop", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
