package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"wayfarer/internal/catalog"
	"wayfarer/pkg/types"
)

// Documents hands out the per-user persistence backend behind a catalog
// session.
type Documents interface {
	ForUser(userID string) catalog.Backend
}

// Users persists accounts and their login credential.
type Users interface {
	User(ctx context.Context, userID string) (*types.User, error)
	UserByEmail(ctx context.Context, email string) (*types.User, error)
	Create(ctx context.Context, user *types.User) error
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
