package file

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"attachments-api/internal/domain/file"
	"attachments-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) file.Repository {
	return &Repository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(row scanner) (*File, error) {
	f := new(File)
	err := row.Scan(
		&f.ID,
		&f.UUID,

		&f.Model,
		&f.TargetID,
		&f.TargetURL,

		&f.Content,
		&f.FileNameUser,
		&f.FileNamePath,
		&f.MimeType,

		&f.CreatedBy,
		&f.Public,
		&f.Tags,
		&f.Status,
		&f.Position,

		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *Repository) fetch(ctx context.Context, query string, args ...any) (file.Files, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) fetchOne(ctx context.Context, query string, args ...any) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, file.ErrNotFound
		}
		return nil, err
	}
	return fromDBModel(f), nil
}

func (r *Repository) FetchFiles(ctx context.Context, t file.Target) (file.Files, error) {
	return r.fetch(ctx, SelectFiles, t.Model, t.ID, int16(file.StatusNormal))
}

func (r *Repository) FetchFilesByVisibility(ctx context.Context, t file.Target, public bool) (file.Files, error) {
	return r.fetch(ctx, SelectFilesByVisibility, t.Model, t.ID, int16(file.StatusNormal), public)
}

func (r *Repository) FetchFilesByCreator(ctx context.Context, t file.Target, userID uuid.UUID) (file.Files, error) {
	return r.fetch(ctx, SelectFilesByCreator, t.Model, t.ID, int16(file.StatusNormal), userID)
}

func (r *Repository) FetchFilesWithTag(ctx context.Context, t file.Target, tag string) (file.Files, error) {
	return r.fetch(ctx, SelectFilesWithTag, t.Model, t.ID, int16(file.StatusNormal), tag)
}

func (r *Repository) FetchFile(ctx context.Context, id uuid.UUID) (*file.File, error) {
	return r.fetchOne(ctx, SelectFileByUUID, id)
}

// CreateFile inserts f as the last file of its owner. A single statement,
// so a rejected row leaves nothing behind.
func (r *Repository) CreateFile(ctx context.Context, f *file.File) (*file.File, error) {
	row := r.db.QueryRow(
		ctx,
		InsertFile,
		f.Model, f.TargetID, f.TargetURL, f.Content, f.FileNameUser, f.FileNamePath, f.MimeType,
		f.CreatedBy, f.Public, f.Tags, int16(f.Status),
	)

	out, err := scanFile(row)
	if err != nil {
		if postgres.IsPgCheckViolation(err) {
			return nil, file.ValidationErrors{constraintColumn(postgres.ConstraintName(err)): "violates constraint"}
		}
		return nil, err
	}

	return fromDBModel(out), nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, s file.Status) (*file.File, error) {
	return r.fetchOne(ctx, UpdateFileStatus, id, int16(s))
}

func (r *Repository) UpdateVisibility(ctx context.Context, id uuid.UUID, public bool) (*file.File, error) {
	return r.fetchOne(ctx, UpdateFileVisibility, id, public)
}

// constraintColumn turns files_<column>_check into <column>.
func constraintColumn(name string) string {
	if name == "" {
		return "file"
	}
	name = strings.TrimPrefix(name, "files_")
	name = strings.TrimSuffix(name, "_check")
	name = strings.TrimSuffix(name, "_not_null")
	return name
}
