package owner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"attachments-api/internal/domain/owner"
	"attachments-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) owner.Repository {
	return &Repository{db: db}
}

func (r *Repository) PrimaryKey(ctx context.Context, table string) (string, error) {
	var pk string
	if err := r.db.QueryRow(ctx, SelectPrimaryKey, table).Scan(&pk); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || postgres.IsPgUndefinedTable(err) {
			return "", fmt.Errorf("%w: %s", owner.ErrSchemaNotFound, table)
		}
		return "", err
	}

	return pk, nil
}

func (r *Repository) FetchOwner(ctx context.Context, t owner.Type, key string) (*owner.Record, error) {
	pk, err := r.PrimaryKey(ctx, t.Table)
	if err != nil {
		return nil, err
	}

	query := OwnerRowQuery(t.Table, pk)

	attrs := make(map[string]string)
	if err = r.db.QueryRow(ctx, query, key).Scan(&attrs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %s", owner.ErrNotFound, t.Model, key)
		}
		if postgres.IsPgUndefinedTable(err) {
			return nil, fmt.Errorf("%w: %s", owner.ErrSchemaNotFound, t.Table)
		}
		return nil, err
	}

	return &owner.Record{Type: t, Attributes: attrs}, nil
}

// OwnerRowQuery builds the row lookup for a possibly schema qualified table.
func OwnerRowQuery(table, pk string) string {
	return fmt.Sprintf(
		selectOwnerRow,
		pgx.Identifier(strings.Split(table, ".")).Sanitize(),
		pgx.Identifier{pk}.Sanitize(),
	)
}
