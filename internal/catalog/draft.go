package catalog

import (
	"strings"
	"time"

	"wayfarer/internal/utils"
	"wayfarer/pkg/types"
)

// Draft accumulates one in-progress catalog entry. It is session state:
// one draft per catalog session, reset after every commit or cancel, never
// shared between sessions.
//
// The field map is keyed across all types, not just the selected one, so
// switching type and back never loses values for shared keys like date.
// Only the selected type's schema is read at commit time.
type Draft struct {
	docType string
	mode    types.InputMode
	name    string
	fields  map[string]string
	file    *types.FileAttachment
}

func NewDraft() *Draft {
	return &Draft{
		docType: TypeFlight,
		mode:    types.InputModeManual,
		fields:  map[string]string{},
	}
}

func (d *Draft) Type() string { return d.docType }

func (d *Draft) SetType(tag string) { d.docType = tag }

func (d *Draft) InputMode() types.InputMode { return d.mode }

// SetInputMode switches between manual and upload. Neither branch is
// cleared; stale state in the unread branch is dropped at commit.
func (d *Draft) SetInputMode(mode types.InputMode) { d.mode = mode }

func (d *Draft) Name() string { return d.name }

func (d *Draft) SetName(name string) { d.name = name }

func (d *Draft) SetFieldValue(key, value string) { d.fields[key] = value }

func (d *Draft) FieldValue(key string) string { return d.fields[key] }

// AttachFile replaces any previously attached descriptor; an entry carries
// at most one attachment.
func (d *Draft) AttachFile(file types.FileAttachment) { d.file = &file }

func (d *Draft) File() *types.FileAttachment { return d.file }

// Cancel discards the transient entry state. Type and mode selections
// survive so the next entry starts where the user left the form.
func (d *Draft) Cancel() { d.reset() }

// Commit validates the draft and constructs the finished record. The
// catalog is not touched; the caller decides where the record goes. On
// success the transient state is cleared, on failure it is kept so the
// user can fix the form.
func (d *Draft) Commit() (*types.DocumentRecord, error) {
	name := strings.TrimSpace(d.name)
	if name == "" {
		return nil, ErrMissingName
	}

	record := &types.DocumentRecord{
		ID:          utils.NanoID(),
		Name:        name,
		Type:        d.docType,
		CreatedDate: today(),
		InputMode:   d.mode,
	}

	switch d.mode {
	case types.InputModeUpload:
		if d.file == nil {
			return nil, ErrNoFile
		}
		file := *d.file
		record.File = &file

	default:
		content := map[string]string{}
		for _, key := range FieldsFor(d.docType) {
			value := strings.TrimSpace(d.fields[key])
			if value == "" {
				continue
			}
			content[key] = value
		}
		if len(content) == 0 {
			return nil, ErrEmptyForm
		}
		record.Content = content
	}

	d.reset()

	return record, nil
}

func (d *Draft) reset() {
	d.name = ""
	d.fields = map[string]string{}
	d.file = nil
}

func today() time.Time {
	year, month, day := time.Now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
