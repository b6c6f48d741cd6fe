package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"wayfarer/internal"
)

type contextKey string

const (
	contextKeyUserID contextKey = "userID"
	contextKeyEmail  contextKey = "email"
	contextKeyName   contextKey = "name"
)

// session is the payload encoded into the signed session cookie.
type session struct {
	UserID string
	Email  string
	Name   string
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rw.statusCode,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/") {
			http.Redirect(w, r, strings.TrimSuffix(r.URL.Path, "/"), http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth decodes the session cookie and stashes the user identity in the
// request context. Unauthenticated requests are sent to the login page with a
// redirect cookie pointing back at the original path.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.currentSession(r)
		if !ok {
			s.setRedirectCookie(w, r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, sess.UserID)
		ctx = context.WithValue(ctx, contextKeyEmail, sess.Email)
		ctx = context.WithValue(ctx, contextKeyName, sess.Name)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) currentSession(r *http.Request) (session, bool) {
	cookie, err := r.Cookie(internal.COOKIE_SESSION_NAME)
	if err != nil {
		return session{}, false
	}

	var sess session
	if err := s.cookie.Decode(internal.COOKIE_SESSION_NAME, cookie.Value, &sess); err != nil {
		return session{}, false
	}

	return sess, sess.UserID != ""
}

func (s *Service) setSessionCookie(w http.ResponseWriter, sess session) error {
	encoded, err := s.cookie.Encode(internal.COOKIE_SESSION_NAME, sess)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_SESSION_NAME,
		Value:    encoded,
		Path:     "/",
		MaxAge:   s.config.SessionMaxAgeSec,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Service) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_SESSION_NAME,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (s *Service) setRedirectCookie(w http.ResponseWriter, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_REDIRECT_NAME,
		Value:    path,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
	})
}

// consumeRedirectCookie returns the stored post-login destination, falling
// back to the saved documents page.
func (s *Service) consumeRedirectCookie(w http.ResponseWriter, r *http.Request) string {
	target := "/documents"

	cookie, err := r.Cookie(internal.COOKIE_REDIRECT_NAME)
	if err == nil && strings.HasPrefix(cookie.Value, "/") {
		target = cookie.Value
	}

	http.SetCookie(w, &http.Cookie{
		Name:   internal.COOKIE_REDIRECT_NAME,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	return target
}
