package ports

import (
	"context"

	"github.com/google/uuid"

	"attachments-api/internal/domain/file"
	"attachments-api/internal/domain/owner"
)

type FileService interface {
	Files(ctx context.Context, ref owner.Ref, scope file.Scope) (file.Files, error)
	FilesFromUser(ctx context.Context, ref owner.Ref, userID uuid.UUID) (file.Files, error)
	FilesWithTag(ctx context.Context, ref owner.Ref, tag string) (file.Files, error)
	AttachFile(ctx context.Context, ref owner.Ref, opts file.Options) (*file.File, error)
	ChangeStatus(ctx context.Context, fileID uuid.UUID, status file.Status) (*file.File, error)
	ChangeVisibility(ctx context.Context, fileID uuid.UUID, public bool) (*file.File, error)
}
