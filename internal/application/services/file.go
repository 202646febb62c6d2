package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"attachments-api/internal/application/ports"
	"attachments-api/internal/domain/file"
	"attachments-api/internal/domain/owner"
	"attachments-api/internal/infrastructure/metrics"
	"attachments-api/internal/infrastructure/mq"
	dtofile "attachments-api/internal/interface/api/rest/dto/file"
)

type FileService struct {
	registry *owner.Registry
	owners   owner.Repository
	files    file.Repository
	urls     ports.ObjectURLs
	events   ports.EventSink
	mCounter *prometheus.CounterVec
	logger   *zap.Logger
}

func NewFileService(
	registry *owner.Registry,
	owners owner.Repository,
	files file.Repository,
	urls ports.ObjectURLs,
	events ports.EventSink,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.FileService {
	return &FileService{
		registry: registry,
		owners:   owners,
		files:    files,
		urls:     urls,
		events:   events,
		mCounter: mCounter,
		logger:   logger,
	}
}

func (fs *FileService) hasFiles(ctx context.Context, ref owner.Ref) (*HasFiles, error) {
	t, err := fs.registry.Lookup(ref.Model)
	if err != nil {
		return nil, err
	}

	rec, err := fs.owners.FetchOwner(ctx, t, ref.Key)
	if err != nil {
		return nil, err
	}

	return NewHasFiles(rec, fs.files, fs.owners, fs.logger), nil
}

func (fs *FileService) Files(ctx context.Context, ref owner.Ref, scope file.Scope) (file.Files, error) {
	h, err := fs.hasFiles(ctx, ref)
	if err != nil {
		return nil, err
	}

	var fls file.Files
	switch scope {
	case file.ScopePublic:
		fls, err = h.PublicFiles(ctx)
	case file.ScopeProtected:
		fls, err = h.ProtectedFiles(ctx)
	default:
		fls, err = h.Files(ctx)
	}
	if err != nil {
		return nil, err
	}

	return fs.withURLs(ctx, fls), nil
}

func (fs *FileService) FilesFromUser(ctx context.Context, ref owner.Ref, userID uuid.UUID) (file.Files, error) {
	h, err := fs.hasFiles(ctx, ref)
	if err != nil {
		return nil, err
	}

	fls, err := h.FilesFromUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return fs.withURLs(ctx, fls), nil
}

func (fs *FileService) FilesWithTag(ctx context.Context, ref owner.Ref, tag string) (file.Files, error) {
	h, err := fs.hasFiles(ctx, ref)
	if err != nil {
		return nil, err
	}

	fls, err := h.FilesWithTag(ctx, tag)
	if err != nil {
		return nil, err
	}

	return fs.withURLs(ctx, fls), nil
}

func (fs *FileService) AttachFile(ctx context.Context, ref owner.Ref, opts file.Options) (*file.File, error) {
	h, err := fs.hasFiles(ctx, ref)
	if err != nil {
		return nil, err
	}

	f, err := h.AttachFile(ctx, opts)
	if err != nil {
		fs.mCounter.WithLabelValues(metrics.FilesAttachFailedTotal).Inc()
		return nil, err
	}
	fs.mCounter.WithLabelValues(metrics.FilesAttachedTotal).Inc()

	fs.withURL(ctx, f)
	fs.emit(mq.RoutingFileAttached, f)

	return f, nil
}

func (fs *FileService) ChangeStatus(ctx context.Context, fileID uuid.UUID, status file.Status) (*file.File, error) {
	if !status.Valid() {
		return nil, file.ValidationErrors{"status": "unknown status " + status.String()}
	}

	f, err := fs.files.UpdateStatus(ctx, fileID, status)
	if err != nil {
		return nil, err
	}
	fs.mCounter.WithLabelValues(metrics.FileStatusChangedTotal).Inc()

	fs.withURL(ctx, f)
	fs.emit(mq.RoutingFileStatusChanged, f)

	return f, nil
}

func (fs *FileService) ChangeVisibility(ctx context.Context, fileID uuid.UUID, public bool) (*file.File, error) {
	f, err := fs.files.UpdateVisibility(ctx, fileID, public)
	if err != nil {
		return nil, err
	}
	fs.mCounter.WithLabelValues(metrics.FileVisibilityChangedTotal).Inc()

	fs.withURL(ctx, f)
	fs.emit(mq.RoutingFileVisibilityChanged, f)

	return f, nil
}

func (fs *FileService) withURLs(ctx context.Context, fls file.Files) file.Files {
	for _, f := range fls {
		fs.withURL(ctx, f)
	}
	return fls
}

// withURL resolves the download link of files that point at an object.
// The file row is already stored, so a failed link leaves DownloadURL empty
// instead of failing the call.
func (fs *FileService) withURL(ctx context.Context, f *file.File) {
	if f.FileNamePath == nil || *f.FileNamePath == "" {
		return
	}

	u, err := fs.urls.URL(ctx, *f.FileNamePath, f.Public)
	if err != nil {
		fs.mCounter.WithLabelValues(metrics.DownloadURLFailedTotal).Inc()
		fs.logger.Warn("download url unavailable",
			zap.String("file_uuid", f.UUID.String()),
			zap.String("path", *f.FileNamePath),
			zap.Error(err),
		)
		return
	}
	f.DownloadURL = u
}

// emit never blocks the request; a full buffer drops the event.
func (fs *FileService) emit(action string, f *file.File) {
	e := mq.Event{
		Id:       uuid.New(),
		TS:       time.Now().UTC(),
		Action:   action,
		Model:    f.Model,
		TargetID: f.TargetID,
		Payload:  dtofile.ToResponseFile(*f),
	}

	select {
	case fs.events.GetInputChan() <- e:
	default:
		fs.mCounter.WithLabelValues(metrics.EventsDroppedTotal).Inc()
		fs.logger.Warn("event dropped",
			zap.String("action", action),
			zap.String("file_uuid", f.UUID.String()),
		)
	}
}
