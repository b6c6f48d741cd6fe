package types

import "time"

// InputMode says which content branch of a DocumentRecord is populated.
type InputMode string

const (
	InputModeManual InputMode = "manual"
	InputModeUpload InputMode = "upload"
)

type FileKind string

const (
	FileKindImage    FileKind = "image"
	FileKindDocument FileKind = "document"
)

// FileAttachment is an opaque reference to externally managed bytes, as
// produced by a file picker or an upload handler. Size is nil for images.
type FileAttachment struct {
	URI  string   `json:"uri"`
	Kind FileKind `json:"kind"`
	Name string   `json:"name"`
	Size *int64   `json:"size,omitempty"`
}

// DocumentRecord is one catalog entry for a single travel artifact.
//
// Exactly one of Content/File is populated, selected by InputMode. Records
// are immutable after creation; changing one means delete-then-recreate.
type DocumentRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	CreatedDate time.Time         `json:"createdDate"`
	InputMode   InputMode         `json:"inputMode"`
	Content     map[string]string `json:"content,omitempty"`
	File        *FileAttachment   `json:"file,omitempty"`
}
