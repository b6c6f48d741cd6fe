package catalog

import (
	"testing"
	"time"

	"wayfarer/pkg/types"
)

func TestProjectManualEntry(t *testing.T) {
	record := &types.DocumentRecord{
		ID:          "doc1",
		Name:        "NYC to LON",
		Type:        TypeFlight,
		CreatedDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		InputMode:   types.InputModeManual,
		Content:     map[string]string{"to": "LHR", "from": "JFK"},
	}

	preview := Project(record)

	if !preview.Manual {
		t.Error("Manual = false for a manual record")
	}
	if preview.Title != "NYC to LON" || preview.Date != "2024-01-15" {
		t.Errorf("Title/Date = %q/%q", preview.Title, preview.Date)
	}
	if preview.Type.Icon != "airplane" {
		t.Errorf("Type.Icon = %q, want registry metadata", preview.Type.Icon)
	}

	// schema order, not map order: from before to
	if len(preview.Rows) != 2 {
		t.Fatalf("Rows = %v, want two", preview.Rows)
	}
	if preview.Rows[0] != (PreviewRow{Label: "From", Value: "JFK"}) {
		t.Errorf("Rows[0] = %+v, want From/JFK", preview.Rows[0])
	}
	if preview.Rows[1] != (PreviewRow{Label: "To", Value: "LHR"}) {
		t.Errorf("Rows[1] = %+v, want To/LHR", preview.Rows[1])
	}
}

func TestProjectOmitsEmptyValues(t *testing.T) {
	record := &types.DocumentRecord{
		Type:      TypeFlight,
		InputMode: types.InputModeManual,
		// empty values never come out of commit, but the projector must
		// not render blank rows regardless
		Content: map[string]string{"from": "JFK", "to": ""},
	}

	preview := Project(record)
	if len(preview.Rows) != 1 || preview.Rows[0].Value != "JFK" {
		t.Errorf("Rows = %v, want the single non-empty row", preview.Rows)
	}
}

func TestProjectUnknownContentKeysStillRender(t *testing.T) {
	record := &types.DocumentRecord{
		Type:      TypeID,
		InputMode: types.InputModeManual,
		Content:   map[string]string{"number": "X123", "gate": "B42"},
	}

	preview := Project(record)
	if len(preview.Rows) != 2 {
		t.Fatalf("Rows = %v, want schema row plus extra", preview.Rows)
	}
	if preview.Rows[0].Label != "Document Number" {
		t.Errorf("Rows[0].Label = %q, want schema fields first", preview.Rows[0].Label)
	}
	if preview.Rows[1] != (PreviewRow{Label: "gate", Value: "B42"}) {
		t.Errorf("Rows[1] = %+v, want raw-key fallback row", preview.Rows[1])
	}
}

func TestProjectUploadDocument(t *testing.T) {
	size := int64(204800)
	record := &types.DocumentRecord{
		Name:      "Passport",
		Type:      TypeID,
		InputMode: types.InputModeUpload,
		File: &types.FileAttachment{
			URI:  "file://x",
			Kind: types.FileKindDocument,
			Name: "passport.pdf",
			Size: &size,
		},
	}

	preview := Project(record)

	if preview.Manual || len(preview.Rows) != 0 {
		t.Error("upload preview has manual rows")
	}
	if preview.ImageURI != "" {
		t.Error("non-image attachment projected as image")
	}
	if preview.FileName != "passport.pdf" {
		t.Errorf("FileName = %q", preview.FileName)
	}
	if preview.SizeLabel != "Size: 200KB" {
		t.Errorf("SizeLabel = %q, want %q", preview.SizeLabel, "Size: 200KB")
	}
}

func TestProjectUploadImage(t *testing.T) {
	record := &types.DocumentRecord{
		Name:      "Boarding pass",
		Type:      TypeFlight,
		InputMode: types.InputModeUpload,
		File: &types.FileAttachment{
			URI:  "file://shot.png",
			Kind: types.FileKindImage,
			Name: "shot.png",
		},
	}

	preview := Project(record)
	if preview.ImageURI != "file://shot.png" {
		t.Errorf("ImageURI = %q, want direct media reference", preview.ImageURI)
	}
	if preview.FileName != "" || preview.SizeLabel != "" {
		t.Error("image preview carries file descriptor fields")
	}
}

func TestSizeLabel(t *testing.T) {
	tests := []struct {
		name string
		size *int64
		want string
	}{
		{name: "unsized", size: nil, want: "Unknown size"},
		{name: "exact kilobytes", size: ptr(204800), want: "Size: 200KB"},
		{name: "rounds to nearest", size: ptr(1536), want: "Size: 2KB"},
		{name: "tiny files round up to 1KB", size: ptr(10), want: "Size: 1KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sizeLabel(tt.size); got != tt.want {
				t.Errorf("sizeLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func ptr(v int64) *int64 { return &v }
