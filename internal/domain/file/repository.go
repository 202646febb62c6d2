package file

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	FetchFiles(ctx context.Context, t Target) (Files, error)
	FetchFilesByVisibility(ctx context.Context, t Target, public bool) (Files, error)
	FetchFilesByCreator(ctx context.Context, t Target, userID uuid.UUID) (Files, error)
	FetchFilesWithTag(ctx context.Context, t Target, tag string) (Files, error)
	FetchFile(ctx context.Context, id uuid.UUID) (*File, error)
	CreateFile(ctx context.Context, f *File) (*File, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, s Status) (*File, error)
	UpdateVisibility(ctx context.Context, id uuid.UUID, public bool) (*File, error)
}
