package store

import (
	"context"
	"testing"

	"wayfarer/pkg/types"
)

func memRecord(id string) *types.DocumentRecord {
	return &types.DocumentRecord{
		ID:        id,
		Name:      "doc " + id,
		Type:      "flight",
		InputMode: types.InputModeManual,
		Content:   map[string]string{"from": "JFK"},
	}
}

func TestMemoryBackendNewestFirst(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryDocuments().ForUser("u1")

	if err := backend.Persist(ctx, memRecord("a")); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	if err := backend.Persist(ctx, memRecord("b")); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}

	records, err := backend.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(records) != 2 || records[0].ID != "b" || records[1].ID != "a" {
		t.Errorf("FetchAll() order = %v, want newest first", records)
	}
}

func TestMemoryBackendDelete(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryDocuments().ForUser("u1")

	_ = backend.Persist(ctx, memRecord("a"))
	_ = backend.Persist(ctx, memRecord("b"))

	if err := backend.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	records, _ := backend.FetchAll(ctx)
	if len(records) != 1 || records[0].ID != "b" {
		t.Errorf("FetchAll() after delete = %v", records)
	}

	// deleting a missing id is quietly accepted
	if err := backend.Delete(ctx, "nope"); err != nil {
		t.Errorf("Delete(unknown) error = %v, want nil", err)
	}
}

func TestMemoryDocumentsIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	docs := NewMemoryDocuments()

	_ = docs.ForUser("u1").Persist(ctx, memRecord("a"))

	records, err := docs.ForUser("u2").FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("user u2 sees u1's records: %v", records)
	}

	again, _ := docs.ForUser("u1").FetchAll(ctx)
	if len(again) != 1 {
		t.Errorf("u1 records = %v, want the persisted one", again)
	}
}

func TestMemoryUsersCredentialRoundTrip(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUsers()

	user := &types.User{ID: "u1", Email: "ana@example.com", Name: "Ana", PasswordHash: "hash"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	byEmail, err := users.UserByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("UserByEmail() error = %v", err)
	}
	if byEmail.PasswordHash != "hash" {
		t.Error("persisted credential not returned")
	}

	byID, err := users.User(ctx, "u1")
	if err != nil {
		t.Fatalf("User() error = %v", err)
	}
	if byID.Email != "ana@example.com" {
		t.Errorf("User() = %v", byID)
	}

	if _, err := users.UserByEmail(ctx, "missing@example.com"); err != types.ErrUserNotFound {
		t.Errorf("UserByEmail(missing) error = %v, want ErrUserNotFound", err)
	}
}
