package catalog

import (
	"context"
	"fmt"

	"wayfarer/pkg/types"
)

// Backend is the persistence collaborator behind a catalog session. The
// in-memory store serves by default; the postgres store implements the
// same contract.
type Backend interface {
	Persist(ctx context.Context, record *types.DocumentRecord) error
	FetchAll(ctx context.Context) ([]*types.DocumentRecord, error)
	Delete(ctx context.Context, id string) error
}

// Catalog is the ordered collection of committed records for one session,
// newest first. It is owned by a single session and never written
// concurrently; the server keeps one catalog per authenticated user.
type Catalog struct {
	backend Backend
	records []*types.DocumentRecord
}

// New seeds the session from the backend. Backends return records newest
// first, so the seeded order is already the display order.
func New(ctx context.Context, backend Backend) (*Catalog, error) {
	records, err := backend.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog records: %w", err)
	}

	return &Catalog{backend: backend, records: records}, nil
}

// Add prepends the record; most-recent-first ordering is a display
// guarantee, not an implementation detail.
func (c *Catalog) Add(ctx context.Context, record *types.DocumentRecord) error {
	if err := c.backend.Persist(ctx, record); err != nil {
		return fmt.Errorf("persist record: %w", err)
	}

	c.records = append([]*types.DocumentRecord{record}, c.records...)
	return nil
}

// Remove deletes the record with the given id. Removing an unknown id is
// a no-op: deletes arrive from a list view that may be stale, and absence
// of an effect is the right answer there.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	index := -1
	for i, record := range c.records {
		if record.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return nil
	}

	if err := c.backend.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	c.records = append(c.records[:index], c.records[index+1:]...)
	return nil
}

// List returns the full ordered sequence, newest first.
func (c *Catalog) List() []*types.DocumentRecord {
	out := make([]*types.DocumentRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Get resolves a record by id for the preview page.
func (c *Catalog) Get(id string) (*types.DocumentRecord, error) {
	for _, record := range c.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, &NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
}
