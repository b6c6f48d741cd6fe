package catalog

import (
	"fmt"
	"sort"

	"wayfarer/pkg/types"
)

// PreviewRow is one display line of a manual entry.
type PreviewRow struct {
	Label string
	Value string
}

// Preview is the display-ready projection of one record. Manual entries
// populate Rows; uploads populate either ImageURI or FileName/SizeLabel
// depending on the attachment kind.
type Preview struct {
	ID       string
	Title    string
	Type     DocumentType
	Date     string
	Manual   bool
	Rows     []PreviewRow
	ImageURI string
	FileName string

	// SizeLabel is the rendered size line, e.g. "Size: 200KB", or
	// "Unknown size" when the descriptor carries no byte count.
	SizeLabel string
}

// Project is a pure read-only transform; deleting from the projected view
// goes through the catalog, never through here.
func Project(record *types.DocumentRecord) Preview {
	preview := Preview{
		ID:    record.ID,
		Title: record.Name,
		Type:  SchemaFor(record.Type),
		Date:  record.CreatedDate.Format("2006-01-02"),
	}

	if record.InputMode == types.InputModeUpload {
		if record.File == nil {
			return preview
		}
		if record.File.Kind == types.FileKindImage {
			preview.ImageURI = record.File.URI
			return preview
		}
		preview.FileName = record.File.Name
		preview.SizeLabel = sizeLabel(record.File.Size)
		return preview
	}

	preview.Manual = true
	preview.Rows = contentRows(record)
	return preview
}

// contentRows orders rows by the schema, then appends any content keys the
// schema does not know about. Empty values are skipped even though commit
// never stores them; the projector must not render blank lines either way.
func contentRows(record *types.DocumentRecord) []PreviewRow {
	schema := FieldsFor(record.Type)
	rows := make([]PreviewRow, 0, len(record.Content))
	seen := map[string]bool{}

	for _, key := range schema {
		seen[key] = true
		if value := record.Content[key]; value != "" {
			rows = append(rows, PreviewRow{Label: LabelFor(key), Value: value})
		}
	}

	extras := make([]string, 0)
	for key, value := range record.Content {
		if !seen[key] && value != "" {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		rows = append(rows, PreviewRow{Label: LabelFor(key), Value: record.Content[key]})
	}

	return rows
}

func sizeLabel(size *int64) string {
	if size == nil {
		return "Unknown size"
	}

	kb := (*size + 512) / 1024
	if kb < 1 {
		kb = 1
	}
	return fmt.Sprintf("Size: %dKB", kb)
}
