package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"

	"wayfarer/internal/catalog"
	"wayfarer/internal/exchange"
	"wayfarer/internal/storage"
	"wayfarer/internal/store"
	"wayfarer/internal/weather"
	"wayfarer/pkg/types"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	users     store.Users
	documents store.Documents

	// nil when the matching config is unset; pages degrade instead
	storage  *storage.S3Storage
	weather  *weather.Client
	exchange *exchange.Client

	templates *template.Template
	cookie    *securecookie.SecureCookie

	// per-user session state: one catalog and one draft per account
	sessionMu sync.Mutex
	catalogs  map[string]*catalog.Catalog
	drafts    map[string]*catalog.Draft

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	users store.Users,
	documents store.Documents,
	fileStorage *storage.S3Storage,
	weatherClient *weather.Client,
	exchangeClient *exchange.Client,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if len(hashKey) == 0 {
		// dev fallback; sessions do not survive a restart
		hashKey = securecookie.GenerateRandomKey(32)
		blockKey = securecookie.GenerateRandomKey(32)
		logger.Warn("cookie keys not configured, generated ephemeral keys")
	}

	s := &Service{
		logger:    logger,
		config:    config,
		users:     users,
		documents: documents,
		storage:   fileStorage,
		weather:   weatherClient,
		exchange:  exchangeClient,
		cookie:    securecookie.New(hashKey, blockKey),
		catalogs:  map[string]*catalog.Catalog{},
		drafts:    map[string]*catalog.Draft{},
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/", s.handleHome, http.MethodGet)

	r.HandleFunc("/register", s.handleGetRegister, http.MethodGet)
	r.HandleFunc("/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/documents", s.handleListDocuments, http.MethodGet)
		r.HandleFunc("/documents/new", s.handleNewDocument, http.MethodGet)
		r.HandleFunc("/documents", s.handleCreateDocument, http.MethodPost)
		r.HandleFunc("/documents/cancel", s.handleCancelDocument, http.MethodPost)
		r.HandleFunc("/documents/:id", s.handleDocumentDetail, http.MethodGet)
		r.HandleFunc("/documents/:id/delete", s.handleDeleteDocument, http.MethodPost)

		r.HandleFunc("/search", s.handleSearch, http.MethodGet)
		r.HandleFunc("/profile", s.handleProfile, http.MethodGet)
	})

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	t := template.New("")
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}

// catalogFor returns the session catalog for a user, seeding it from the
// persistence backend on first use.
func (s *Service) catalogFor(ctx context.Context, userID string) (*catalog.Catalog, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	if cat, ok := s.catalogs[userID]; ok {
		return cat, nil
	}

	cat, err := catalog.New(ctx, s.documents.ForUser(userID))
	if err != nil {
		return nil, err
	}
	s.catalogs[userID] = cat
	return cat, nil
}

// draftFor returns the user's in-progress entry, creating a fresh one on
// first use.
func (s *Service) draftFor(userID string) *catalog.Draft {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	draft, ok := s.drafts[userID]
	if !ok {
		draft = catalog.NewDraft()
		s.drafts[userID] = draft
	}
	return draft
}
