package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"attachments-api/internal/application/identity"
	"attachments-api/internal/domain/file"
	"attachments-api/internal/domain/owner"
)

// HasFiles gives one owner instance its file relations. The identifier
// attribute is resolved once per HasFiles.
type HasFiles struct {
	owner  owner.Owner
	files  file.Repository
	schema owner.Schema
	logger *zap.Logger

	mu   sync.Mutex
	attr string
}

func NewHasFiles(
	o owner.Owner,
	files file.Repository,
	schema owner.Schema,
	logger *zap.Logger,
) *HasFiles {
	return &HasFiles{
		owner:  o,
		files:  files,
		schema: schema,
		logger: logger,
	}
}

// IdentifierAttribute names the owner attribute matched against
// file.target_id: the owner's override if it has one, else the table's
// primary key.
func (h *HasFiles) IdentifierAttribute(ctx context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.attr != "" {
		return h.attr, nil
	}

	if ia, ok := h.owner.(owner.IdentifierAttributer); ok {
		if attr := ia.IdentifierAttribute(); attr != "" {
			h.attr = attr
			return attr, nil
		}
	}

	pk, err := h.schema.PrimaryKey(ctx, h.owner.TableName())
	if err != nil {
		return "", err
	}
	h.attr = pk

	return pk, nil
}

// Identifier is the owner's value for its identifier attribute.
func (h *HasFiles) Identifier(ctx context.Context) (string, error) {
	attr, err := h.IdentifierAttribute(ctx)
	if err != nil {
		return "", err
	}

	v, ok := h.owner.Attribute(attr)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", owner.ErrUnknownAttribute, h.owner.ModelName(), attr)
	}

	return v, nil
}

func (h *HasFiles) target(ctx context.Context) (file.Target, error) {
	id, err := h.Identifier(ctx)
	if err != nil {
		return file.Target{}, err
	}

	return file.Target{Model: h.owner.ModelName(), ID: id}, nil
}

// Files returns the owner's active files ordered by position.
func (h *HasFiles) Files(ctx context.Context) (file.Files, error) {
	t, err := h.target(ctx)
	if err != nil {
		return nil, err
	}

	return h.files.FetchFiles(ctx, t)
}

func (h *HasFiles) PublicFiles(ctx context.Context) (file.Files, error) {
	return h.filesByVisibility(ctx, true)
}

func (h *HasFiles) ProtectedFiles(ctx context.Context) (file.Files, error) {
	return h.filesByVisibility(ctx, false)
}

func (h *HasFiles) filesByVisibility(ctx context.Context, public bool) (file.Files, error) {
	t, err := h.target(ctx)
	if err != nil {
		return nil, err
	}

	return h.files.FetchFilesByVisibility(ctx, t, public)
}

func (h *HasFiles) FilesFromUser(ctx context.Context, userID uuid.UUID) (file.Files, error) {
	t, err := h.target(ctx)
	if err != nil {
		return nil, err
	}

	return h.files.FetchFilesByCreator(ctx, t, userID)
}

// FilesWithTag matches tag as a substring of the tags column.
func (h *HasFiles) FilesWithTag(ctx context.Context, tag string) (file.Files, error) {
	t, err := h.target(ctx)
	if err != nil {
		return nil, err
	}

	return h.files.FetchFilesWithTag(ctx, t, tag)
}

// AttachFile stores a new draft file for the owner. The uploader is taken
// from ctx. Failures are logged and returned with a nil file.
func (h *HasFiles) AttachFile(ctx context.Context, opts file.Options) (*file.File, error) {
	t, err := h.target(ctx)
	if err != nil {
		return nil, err
	}

	var createdBy *uuid.UUID
	if id, ok := identity.UserFromContext(ctx); ok {
		createdBy = &id
	}

	f, err := file.New(t, createdBy, opts)
	if err != nil {
		h.logger.Error("attach file rejected",
			zap.String("model", t.Model),
			zap.String("target_id", t.ID),
			zap.Error(err),
		)
		return nil, err
	}

	out, err := h.files.CreateFile(ctx, f)
	if err != nil {
		h.logger.Error("attach file save failed",
			zap.String("model", t.Model),
			zap.String("target_id", t.ID),
			zap.Error(err),
		)
		return nil, err
	}

	return out, nil
}
