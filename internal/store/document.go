package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"wayfarer/internal/catalog"
	"wayfarer/internal/utils"
	"wayfarer/pkg/types"
)

const documentTableName = "wayfarer.documents"

// documentRow flattens a DocumentRecord for the documents table. Content
// is a jsonb column; the file descriptor becomes nullable columns.
// Position is a bigserial used solely to keep insertion order across
// restarts.
type documentRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Name        string    `db:"name"`
	DocType     string    `db:"doc_type"`
	CreatedDate time.Time `db:"created_date"`
	InputMode   string    `db:"input_mode"`
	Content     []byte    `db:"content"`
	FileURI     *string   `db:"file_uri"`
	FileKind    *string   `db:"file_kind"`
	FileName    *string   `db:"file_name"`
	FileSize    *int64    `db:"file_size"`
	Position    int64     `db:"position"`
}

var documentColumns = utils.StructTagValues(documentRow{})

// position is assigned by the database on insert
var documentInsertColumns = []string{
	"id",
	"user_id",
	"name",
	"doc_type",
	"created_date",
	"input_mode",
	"content",
	"file_uri",
	"file_kind",
	"file_name",
	"file_size",
}

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// ForUser scopes the repository to one owner; the result implements the
// catalog's persistence contract.
func (r *DocumentRepository) ForUser(userID string) catalog.Backend {
	return &userDocuments{repo: r, userID: userID}
}

type userDocuments struct {
	repo   *DocumentRepository
	userID string
}

func (d *userDocuments) Persist(ctx context.Context, record *types.DocumentRecord) error {
	row, err := toDocumentRow(d.userID, record)
	if err != nil {
		return err
	}

	query, args, err := psql().
		Insert(documentTableName).
		Columns(documentInsertColumns...).
		Values(
			row.ID,
			row.UserID,
			row.Name,
			row.DocType,
			row.CreatedDate,
			row.InputMode,
			row.Content,
			row.FileURI,
			row.FileKind,
			row.FileName,
			row.FileSize,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build document insert: %w", err)
	}

	_, err = d.repo.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (d *userDocuments) FetchAll(ctx context.Context) ([]*types.DocumentRecord, error) {
	query, args, err := psql().
		Select(documentColumns...).
		From(documentTableName).
		Where(sq.Eq{"user_id": d.userID}).
		OrderBy("position DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build documents query: %w", err)
	}

	var rows []documentRow
	err = pgxscan.Select(ctx, d.repo.pool, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}

	records := make([]*types.DocumentRecord, 0, len(rows))
	for _, row := range rows {
		record, err := fromDocumentRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (d *userDocuments) Delete(ctx context.Context, id string) error {
	query, args, err := psql().
		Delete(documentTableName).
		Where(sq.Eq{"id": id, "user_id": d.userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build document delete: %w", err)
	}

	_, err = d.repo.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func toDocumentRow(userID string, record *types.DocumentRecord) (*documentRow, error) {
	row := &documentRow{
		ID:          record.ID,
		UserID:      userID,
		Name:        record.Name,
		DocType:     record.Type,
		CreatedDate: record.CreatedDate,
		InputMode:   string(record.InputMode),
	}

	if record.Content != nil {
		content, err := json.Marshal(record.Content)
		if err != nil {
			return nil, fmt.Errorf("marshal document content: %w", err)
		}
		row.Content = content
	}

	if record.File != nil {
		uri := record.File.URI
		kind := string(record.File.Kind)
		name := record.File.Name
		row.FileURI = &uri
		row.FileKind = &kind
		row.FileName = &name
		row.FileSize = record.File.Size
	}

	return row, nil
}

func fromDocumentRow(row documentRow) (*types.DocumentRecord, error) {
	record := &types.DocumentRecord{
		ID:          row.ID,
		Name:        row.Name,
		Type:        row.DocType,
		CreatedDate: row.CreatedDate,
		InputMode:   types.InputMode(row.InputMode),
	}

	if len(row.Content) > 0 {
		content := map[string]string{}
		if err := json.Unmarshal(row.Content, &content); err != nil {
			return nil, fmt.Errorf("unmarshal document content: %w", err)
		}
		record.Content = content
	}

	if row.FileURI != nil {
		record.File = &types.FileAttachment{
			URI:  *row.FileURI,
			Name: derefString(row.FileName),
			Size: row.FileSize,
		}
		if row.FileKind != nil {
			record.File.Kind = types.FileKind(*row.FileKind)
		}
	}

	return record, nil
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
