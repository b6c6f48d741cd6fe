package server

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"wayfarer/internal/utils"
	"wayfarer/pkg/types"
)

type authPageData struct {
	types.BasePageData
	Error  string
	Notice string
	Email  string
	Name   string
}

func (s *Service) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentSession(r); ok {
		http.Redirect(w, r, "/documents", http.StatusSeeOther)
		return
	}

	s.renderTemplate(w, r, "page.login", &authPageData{
		BasePageData: types.BasePageData{Title: "Sign In"},
		Error:        r.URL.Query().Get("error"),
		Notice:       r.URL.Query().Get("notice"),
	})
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.internalServerError(w, err, "failed to parse login form")
		return
	}

	var loginForm types.LoginForm
	if err := decoder.Decode(&loginForm, r.Form); err != nil {
		s.internalServerError(w, err, "failed to decode login form")
		return
	}
	loginForm.Email = strings.ToLower(strings.TrimSpace(loginForm.Email))

	renderFailure := func(msg string) {
		s.renderTemplate(w, r, "page.login", &authPageData{
			BasePageData: types.BasePageData{Title: "Sign In"},
			Error:        msg,
			Email:        loginForm.Email,
		})
	}

	if err := loginForm.Validate(); err != nil {
		renderFailure(err.Error())
		return
	}

	user, err := s.users.UserByEmail(r.Context(), loginForm.Email)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			renderFailure("invalid email or password")
			return
		}
		s.internalServerError(w, err, "failed to look up user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(loginForm.Password)); err != nil {
		renderFailure("invalid email or password")
		return
	}

	if err := s.setSessionCookie(w, session{UserID: user.ID, Email: user.Email, Name: user.Name}); err != nil {
		s.internalServerError(w, err, "failed to encode session cookie")
		return
	}

	s.logger.WithField("user_id", user.ID).Info("user logged in")
	http.Redirect(w, r, s.consumeRedirectCookie(w, r), http.StatusSeeOther)
}

func (s *Service) handleGetRegister(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentSession(r); ok {
		http.Redirect(w, r, "/documents", http.StatusSeeOther)
		return
	}

	s.renderTemplate(w, r, "page.register", &authPageData{
		BasePageData: types.BasePageData{Title: "Create Account"},
		Error:        r.URL.Query().Get("error"),
	})
}

func (s *Service) handlePostRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.internalServerError(w, err, "failed to parse register form")
		return
	}

	var registerForm types.RegisterForm
	if err := decoder.Decode(&registerForm, r.Form); err != nil {
		s.internalServerError(w, err, "failed to decode register form")
		return
	}
	registerForm.Email = strings.ToLower(strings.TrimSpace(registerForm.Email))

	renderFailure := func(msg string) {
		s.renderTemplate(w, r, "page.register", &authPageData{
			BasePageData: types.BasePageData{Title: "Create Account"},
			Error:        msg,
			Email:        registerForm.Email,
			Name:         registerForm.Name,
		})
	}

	if err := registerForm.Validate(); err != nil {
		renderFailure(err.Error())
		return
	}

	_, err := s.users.UserByEmail(r.Context(), registerForm.Email)
	if err == nil {
		renderFailure("an account with that email already exists")
		return
	}
	if !errors.Is(err, types.ErrUserNotFound) {
		s.internalServerError(w, err, "failed to check for existing user")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(registerForm.Password), bcrypt.DefaultCost)
	if err != nil {
		s.internalServerError(w, err, "failed to hash password")
		return
	}

	user := &types.User{
		ID:           utils.NanoID(),
		Email:        registerForm.Email,
		Name:         registerForm.Name,
		PhoneNumber:  registerForm.PhoneNumber,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(r.Context(), user); err != nil {
		s.internalServerError(w, err, "failed to create user")
		return
	}

	if err := s.setSessionCookie(w, session{UserID: user.ID, Email: user.Email, Name: user.Name}); err != nil {
		s.internalServerError(w, err, "failed to encode session cookie")
		return
	}

	s.logger.WithField("user_id", user.ID).Info("user registered")
	s.redirectWithNotice(w, r, "/documents", "Welcome to Wayfarer")
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.currentSession(r); ok {
		// drop the session catalog and draft so the next login reloads
		// from the backend with a clean slate
		s.sessionMu.Lock()
		delete(s.catalogs, sess.UserID)
		delete(s.drafts, sess.UserID)
		s.sessionMu.Unlock()
	}

	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
