package owner

import "context"

// Schema answers primary key lookups for owner tables.
type Schema interface {
	PrimaryKey(ctx context.Context, table string) (string, error)
}

type Repository interface {
	Schema
	FetchOwner(ctx context.Context, t Type, key string) (*Record, error)
}
