package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"

	"wayfarer/internal"
	"wayfarer/pkg/types"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Service{
		logger: logger,
		config: &types.Config{SessionMaxAgeSec: 3600},
		cookie: securecookie.New(
			securecookie.GenerateRandomKey(32),
			securecookie.GenerateRandomKey(32),
		),
	}
}

func TestRequireAuthRedirectsWithoutSession(t *testing.T) {
	s := newTestService(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a session")
	})

	req := httptest.NewRequest(http.MethodGet, "/documents/new", nil)
	rec := httptest.NewRecorder()

	s.RequireAuth(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}

	var redirect *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == internal.COOKIE_REDIRECT_NAME {
			redirect = cookie
		}
	}
	if redirect == nil {
		t.Fatal("expected a redirect cookie to be set")
	}
	if redirect.Value != "/documents/new" {
		t.Fatalf("expected redirect cookie %q, got %q", "/documents/new", redirect.Value)
	}
}

func TestRequireAuthPassesSessionThroughContext(t *testing.T) {
	s := newTestService(t)

	encoded, err := s.cookie.Encode(internal.COOKIE_SESSION_NAME, session{
		UserID: "user-1",
		Email:  "traveler@example.com",
		Name:   "Traveler",
	})
	if err != nil {
		t.Fatal(err)
	}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(contextKeyUserID).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	req.AddCookie(&http.Cookie{Name: internal.COOKIE_SESSION_NAME, Value: encoded})
	rec := httptest.NewRecorder()

	s.RequireAuth(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if gotUserID != "user-1" {
		t.Fatalf("expected user id %q in context, got %q", "user-1", gotUserID)
	}
}

func TestStripTrailingSlash(t *testing.T) {
	s := newTestService(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		path       string
		wantStatus int
		wantTarget string
	}{
		{path: "/documents/", wantStatus: http.StatusMovedPermanently, wantTarget: "/documents"},
		{path: "/documents", wantStatus: http.StatusOK},
		{path: "/", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		rec := httptest.NewRecorder()

		s.StripTrailingSlash(next).ServeHTTP(rec, req)

		if rec.Code != tt.wantStatus {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.wantStatus, rec.Code)
		}
		if tt.wantTarget != "" && rec.Header().Get("Location") != tt.wantTarget {
			t.Errorf("%s: expected redirect to %q, got %q", tt.path, tt.wantTarget, rec.Header().Get("Location"))
		}
	}
}

func TestDocumentFormDecodesFieldMap(t *testing.T) {
	values := url.Values{
		"name":            {"Flight to London"},
		"type":            {"flight"},
		"mode":            {"manual"},
		"fields[airline]": {"BA"},
		"fields[from]":    {"JFK"},
		"fields[to]":      {"LHR"},
	}

	var docForm types.DocumentForm
	if err := decoder.Decode(&docForm, values); err != nil {
		t.Fatal(err)
	}

	if docForm.Name != "Flight to London" || docForm.Type != "flight" {
		t.Fatalf("unexpected form: %+v", docForm)
	}
	if docForm.Fields["airline"] != "BA" || docForm.Fields["from"] != "JFK" || docForm.Fields["to"] != "LHR" {
		t.Fatalf("field map did not decode: %+v", docForm.Fields)
	}
}
