package server

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/alexedwards/flow"
	"github.com/sirupsen/logrus"

	"wayfarer/internal/catalog"
	"wayfarer/internal/storage"
	"wayfarer/pkg/types"
)

const maxUploadBytes = 10 << 20

type documentsPageData struct {
	types.BasePageData
	Notice    string
	Error     string
	Documents []catalog.Preview
}

type fieldView struct {
	Key   string
	Label string
	Value string
}

type newDocumentPageData struct {
	types.BasePageData
	Error    string
	Types    []catalog.DocumentType
	Selected catalog.DocumentType
	Mode     types.InputMode
	Name     string
	Fields   []fieldView
}

type documentDetailPageData struct {
	types.BasePageData
	Preview catalog.Preview
}

func (s *Service) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.internalServerError(w, err, "missing user context")
		return
	}

	cat, err := s.catalogFor(r.Context(), userID)
	if err != nil {
		s.internalServerError(w, err, "failed to load catalog")
		return
	}

	records := cat.List()
	previews := make([]catalog.Preview, 0, len(records))
	for _, record := range records {
		previews = append(previews, catalog.Project(record))
	}

	s.renderTemplate(w, r, "page.documents", &documentsPageData{
		BasePageData: types.BasePageData{Title: "Saved Documents"},
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
		Documents:    previews,
	})
}

// handleNewDocument renders the entry form. Switching the type or mode via
// query params mutates the draft first, so values for keys shared between
// schemas survive the re-render.
func (s *Service) handleNewDocument(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.internalServerError(w, err, "missing user context")
		return
	}

	draft := s.draftFor(userID)

	if tag := r.URL.Query().Get("type"); tag != "" {
		draft.SetType(tag)
	}
	switch r.URL.Query().Get("mode") {
	case string(types.InputModeManual):
		draft.SetInputMode(types.InputModeManual)
	case string(types.InputModeUpload):
		draft.SetInputMode(types.InputModeUpload)
	}

	selected := catalog.SchemaFor(draft.Type())
	fields := make([]fieldView, 0, len(selected.Fields))
	for _, key := range selected.Fields {
		fields = append(fields, fieldView{
			Key:   key,
			Label: catalog.LabelFor(key),
			Value: draft.FieldValue(key),
		})
	}

	s.renderTemplate(w, r, "page.document-new", &newDocumentPageData{
		BasePageData: types.BasePageData{Title: "Add Document"},
		Error:        r.URL.Query().Get("error"),
		Types:        catalog.Types(),
		Selected:     selected,
		Mode:         draft.InputMode(),
		Name:         draft.Name(),
		Fields:       fields,
	})
}

func (s *Service) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.internalServerError(w, err, "missing user context")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.redirectWithError(w, r, "/documents/new", "upload too large")
		return
	}

	var docForm types.DocumentForm
	if err := decoder.Decode(&docForm, r.Form); err != nil {
		s.internalServerError(w, err, "failed to decode document form")
		return
	}

	draft := s.draftFor(userID)
	draft.SetType(docForm.Type)
	if docForm.Mode == string(types.InputModeUpload) {
		draft.SetInputMode(types.InputModeUpload)
	} else {
		draft.SetInputMode(types.InputModeManual)
	}
	draft.SetName(docForm.Name)
	for key, value := range docForm.Fields {
		draft.SetFieldValue(key, value)
	}

	if draft.InputMode() == types.InputModeUpload {
		if err := s.attachUpload(r, draft); err != nil {
			s.internalServerError(w, err, "failed to store attachment")
			return
		}
	}

	record, err := draft.Commit()
	if err != nil {
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			s.redirectWithError(w, r, "/documents/new", verr.Message)
			return
		}
		s.internalServerError(w, err, "failed to commit document entry")
		return
	}

	cat, err := s.catalogFor(r.Context(), userID)
	if err != nil {
		s.internalServerError(w, err, "failed to load catalog")
		return
	}
	if err := cat.Add(r.Context(), record); err != nil {
		s.internalServerError(w, err, "failed to save document")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":     userID,
		"document_id": record.ID,
		"type":        record.Type,
	}).Info("document saved")
	s.redirectWithNotice(w, r, "/documents", "Document saved")
}

// attachUpload reads the submitted file, pushes the bytes to object storage
// when a bucket is configured, and attaches the resulting descriptor. A
// missing file part is not an error here; commit reports it.
func (s *Service) attachUpload(r *http.Request, draft *catalog.Draft) error {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil
	}
	defer file.Close()

	if s.storage != nil {
		attachment, err := s.storage.Store(r.Context(), header.Filename, header.Size, file)
		if err != nil {
			return err
		}
		draft.AttachFile(*attachment)
		return nil
	}

	attachment := types.FileAttachment{
		URI:  "file://" + filepath.Base(header.Filename),
		Kind: storage.KindFor(header.Filename),
		Name: header.Filename,
	}
	if attachment.Kind == types.FileKindDocument {
		size := header.Size
		attachment.Size = &size
	}
	draft.AttachFile(attachment)
	return nil
}

func (s *Service) handleCancelDocument(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.internalServerError(w, err, "missing user context")
		return
	}

	s.draftFor(userID).Cancel()
	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

func (s *Service) handleDocumentDetail(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.internalServerError(w, err, "missing user context")
		return
	}

	cat, err := s.catalogFor(r.Context(), userID)
	if err != nil {
		s.internalServerError(w, err, "failed to load catalog")
		return
	}

	record, err := cat.Get(flow.Param(r.Context(), "id"))
	if err != nil {
		var nferr *catalog.NotFoundError
		if errors.As(err, &nferr) {
			http.NotFound(w, r)
			return
		}
		s.internalServerError(w, err, "failed to load document")
		return
	}

	preview := catalog.Project(record)
	s.renderTemplate(w, r, "page.document-detail", &documentDetailPageData{
		BasePageData: types.BasePageData{Title: preview.Title},
		Preview:      preview,
	})
}

func (s *Service) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.internalServerError(w, err, "missing user context")
		return
	}

	cat, err := s.catalogFor(r.Context(), userID)
	if err != nil {
		s.internalServerError(w, err, "failed to load catalog")
		return
	}

	id := flow.Param(r.Context(), "id")

	// best-effort object cleanup before the record goes away
	if record, err := cat.Get(id); err == nil && record.File != nil && s.storage != nil {
		if err := s.storage.Remove(r.Context(), record.File.URI); err != nil {
			s.logger.WithError(err).WithField("document_id", id).Warn("failed to remove stored attachment")
		}
	}

	if err := cat.Remove(r.Context(), id); err != nil {
		s.internalServerError(w, err, "failed to delete document")
		return
	}

	s.redirectWithNotice(w, r, "/documents", "Document deleted")
}
