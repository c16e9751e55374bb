package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/store"
)

type stubRelay struct {
	err  error
	sent []contact.Submission
}

func (r *stubRelay) Send(_ context.Context, sub contact.Submission) error {
	r.sent = append(r.sent, sub)
	return r.err
}

func newTestServer(t *testing.T, relay contact.Relay, withDB bool) (*Server, *store.DB) {
	t.Helper()
	var db *store.DB
	if withDB {
		var err error
		db, err = store.OpenMemory()
		if err != nil {
			t.Fatalf("OpenMemory: %v", err)
		}
		t.Cleanup(func() { db.Close() })
	}
	srv, err := New(Options{
		Mode:          "test",
		AlertTTL:      3 * time.Second,
		RelayName:     "stub",
		AdminUsername: "admin",
		AdminPassword: "hunter2",
	}, db, relay, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, db
}

func do(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func contactRequestBody(name, email, message string) *strings.Reader {
	form := url.Values{}
	form.Set("name", name)
	form.Set("email", email)
	form.Set("message", message)
	return strings.NewReader(form.Encode())
}

func postContact(srv *Server, body *strings.Reader, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return do(srv, req)
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t, &stubRelay{}, false)
	w := do(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestIndexHighlightsTab(t *testing.T) {
	srv, _ := newTestServer(t, &stubRelay{}, false)

	tests := []struct {
		query  string
		active string
		scroll bool
	}{
		{"", "about", false},
		{"?tab=skills", "skills", true},
		{"?tab=contact", "contact", true},
		{"?tab=blog", "about", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(srv, httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			body := w.Body.String()
			want := `<a href="/?tab=` + tt.active + `#` + tt.active + `" class="tab active"`
			if !strings.Contains(body, want) {
				t.Errorf("active tab %q not highlighted", tt.active)
			}
			if strings.Count(body, `class="tab active"`) != 1 {
				t.Errorf("expected exactly one active tab")
			}
			hasScroll := strings.Contains(body, `data-scroll-target="`+tt.active+`"`)
			if hasScroll != tt.scroll {
				t.Errorf("scroll target present = %v, want %v", hasScroll, tt.scroll)
			}
			for _, id := range []string{"about", "skills", "projects", "experience", "contact"} {
				if !strings.Contains(body, `<section id="`+id+`">`) {
					t.Errorf("section %q missing", id)
				}
			}
		})
	}
}

func TestContactSuccess(t *testing.T) {
	relay := &stubRelay{}
	srv, db := newTestServer(t, relay, true)

	w := postContact(srv, contactRequestBody("Ada", "ada@example.com", "Hello there"), true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, contact.SuccessNotice) {
		t.Errorf("success alert missing: %s", body)
	}
	if !strings.Contains(body, `hx-trigger="load delay:3000ms"`) {
		t.Errorf("alert does not dismiss itself after 3s: %s", body)
	}
	if strings.Contains(body, "Hello there") || strings.Contains(body, "ada@example.com") {
		t.Errorf("form not cleared after success: %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Error("htmx request got a full page")
	}
	if len(relay.sent) != 1 || relay.sent[0].Field(contact.FieldMessage) != "Hello there" {
		t.Fatalf("relay got %+v", relay.sent)
	}

	srv.Wait()
	deliveries, err := db.RecentDeliveries(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(deliveries) != 1 || deliveries[0].Status != contact.StatusSent || deliveries[0].Relay != "stub" {
		t.Errorf("deliveries = %+v", deliveries)
	}
}

func TestContactFailureKeepsValues(t *testing.T) {
	relay := &stubRelay{err: &contact.RelayError{Status: 400, Body: "bad template"}}
	srv, _ := newTestServer(t, relay, false)

	w := postContact(srv, contactRequestBody("Ada", "ada@example.com", "Hello there"), true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, contact.FailureNotice) {
		t.Errorf("failure notice missing: %s", body)
	}
	if strings.Contains(body, contact.SuccessNotice) {
		t.Error("success alert shown for failed delivery")
	}
	if !strings.Contains(body, "Hello there") || !strings.Contains(body, `value="ada@example.com"`) {
		t.Errorf("form values lost: %s", body)
	}
	if strings.Contains(body, "bad template") {
		t.Error("relay error detail leaked to the visitor")
	}
}

func TestContactWithoutHTMXRendersPage(t *testing.T) {
	srv, _ := newTestServer(t, &stubRelay{err: errors.New("down")}, false)
	w := postContact(srv, contactRequestBody("Ada", "ada@example.com", "Hi"), false)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<html") || !strings.Contains(body, `class="tab active" aria-current="page">Contact`) {
		t.Errorf("expected full page with contact tab active: %s", body)
	}
}

func TestContactValidation(t *testing.T) {
	relay := &stubRelay{}
	srv, _ := newTestServer(t, relay, false)

	w := postContact(srv, contactRequestBody("Ada", "not-an-email", "Hi"), false)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Please check these fields: email.") {
		t.Errorf("validation message missing: %s", w.Body.String())
	}
	if len(relay.sent) != 0 {
		t.Error("invalid form was relayed")
	}
}

func TestAlertDismiss(t *testing.T) {
	srv, _ := newTestServer(t, &stubRelay{}, false)
	w := do(srv, httptest.NewRequest(http.MethodGet, "/alert/dismiss", nil))
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Fatalf("dismiss = %d %q", w.Code, w.Body.String())
	}
}

func TestVisitorTracking(t *testing.T) {
	srv, db := newTestServer(t, &stubRelay{}, true)

	do(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	do(srv, dnt)
	do(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	srv.Wait()

	visitors, err := db.RecentVisitors(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visitors) != 1 {
		t.Fatalf("tracked %d visits, want 1", len(visitors))
	}
	if visitors[0].HashedIP == "" || strings.Contains(visitors[0].HashedIP, "192.0.2.1") {
		t.Errorf("visitor address not hashed: %q", visitors[0].HashedIP)
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	srv, _ := newTestServer(t, &stubRelay{}, true)
	w := do(srv, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
		t.Fatalf("expected redirect to login, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestAdminLoginFlow(t *testing.T) {
	srv, _ := newTestServer(t, &stubRelay{}, true)

	bad := url.Values{"username": {"admin"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(bad.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if w := do(srv, req); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", w.Code)
	}

	good := url.Values{"username": {"admin"}, "password": {"hunter2"}}
	req = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(good.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := do(srv, req)
	if w.Code != http.StatusFound {
		t.Fatalf("login status = %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no admin cookie set")
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	req.AddCookie(cookies[0])
	w = do(srv, req)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats store.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("unmarshal stats: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookies[0])
	w = do(srv, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Dashboard") {
		t.Fatalf("dashboard status = %d", w.Code)
	}
}

func TestAdminDisabledWithoutDB(t *testing.T) {
	srv, _ := newTestServer(t, &stubRelay{}, false)
	w := do(srv, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a database, got %d", w.Code)
	}
}
