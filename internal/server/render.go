package server

import (
	"bytes"
	"net/http"
	"net/url"

	"wayfarer/pkg/types"
)

// renderTemplate executes a page template into a buffer first so a failed
// render produces a clean 500 instead of a half-written response.
func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	if setter, ok := data.(types.NavbarDataSetter); ok {
		setter.SetNavbarData(s.navbarData(r))
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.WithError(err).WithField("template", name).Error("failed to render template")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Service) navbarData(r *http.Request) types.NavbarData {
	ctx := r.Context()
	if userID, ok := ctx.Value(contextKeyUserID).(string); ok && userID != "" {
		email, _ := ctx.Value(contextKeyEmail).(string)
		name, _ := ctx.Value(contextKeyName).(string)
		return types.NavbarData{
			IsAuthenticated: true,
			UserID:          userID,
			UserEmail:       email,
			UserName:        name,
		}
	}

	// public pages still show the logged-in navbar when a session exists
	if sess, ok := s.currentSession(r); ok {
		return types.NavbarData{
			IsAuthenticated: true,
			UserID:          sess.UserID,
			UserEmail:       sess.Email,
			UserName:        sess.Name,
		}
	}

	return types.NavbarData{}
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	http.Redirect(w, r, path+"?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (s *Service) internalServerError(w http.ResponseWriter, err error, msg string) {
	s.logger.WithError(err).Error(msg)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
