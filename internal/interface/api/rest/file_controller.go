package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attachments-api/internal/application/ports"
	"attachments-api/internal/domain/file"
	"attachments-api/internal/domain/owner"
	"attachments-api/internal/infrastructure/jwt"
	dtofile "attachments-api/internal/interface/api/rest/dto/file"
	"attachments-api/internal/interface/api/rest/middleware"
	"attachments-api/internal/interface/api/rest/validator"
)

// 10MB of content, base64 in JSON, plus the rest of the body.
const maxBodySize = int64(14 << 20)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	r.GET(RouteOwnerFiles, fc.GetFilesHandler)
	r.GET(RouteOwnerPublic, fc.scoped(file.ScopePublic))
	r.GET(RouteOwnerProtected, fc.scoped(file.ScopeProtected))
	r.GET(RouteOwnerUserFiles, fc.GetUserFilesHandler)
	r.GET(RouteOwnerTagFiles, fc.GetTagFilesHandler)
	r.POST(RouteOwnerFiles, middleware.AuthMiddleware(jwtService), fc.AttachFileHandler)
	r.PATCH(RouteFileStatus, middleware.AuthMiddleware(jwtService), fc.ChangeStatusHandler)
	r.PATCH(RouteFileVisibility, middleware.AuthMiddleware(jwtService), fc.ChangeVisibilityHandler)

	return fc
}

func ownerRef(c *gin.Context) owner.Ref {
	return owner.Ref{Model: c.Param("model"), Key: c.Param("owner_id")}
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	scope, err := file.ParseScope(c.Query("scope"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scope must be public or protected"})
		return
	}

	fc.listFiles(c, scope)
}

func (fc *FileController) scoped(scope file.Scope) gin.HandlerFunc {
	return func(c *gin.Context) { fc.listFiles(c, scope) }
}

func (fc *FileController) listFiles(c *gin.Context, scope file.Scope) {
	files, err := fc.fileService.Files(c.Request.Context(), ownerRef(c), scope)
	if err != nil {
		fc.fail(c, err, "failed to get files", "Files() error")
		return
	}

	c.JSON(http.StatusOK, dtofile.ResponseData{
		Data: dtofile.ToResponseFiles(files),
	})
}

func (fc *FileController) GetUserFilesHandler(c *gin.Context) {
	ok, userID := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	files, err := fc.fileService.FilesFromUser(c.Request.Context(), ownerRef(c), userID)
	if err != nil {
		fc.fail(c, err, "failed to get files", "FilesFromUser() error")
		return
	}

	c.JSON(http.StatusOK, dtofile.ResponseData{
		Data: dtofile.ToResponseFiles(files),
	})
}

func (fc *FileController) GetTagFilesHandler(c *gin.Context) {
	tag := c.Query("tag")
	if tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tag is required"})
		return
	}

	files, err := fc.fileService.FilesWithTag(c.Request.Context(), ownerRef(c), tag)
	if err != nil {
		fc.fail(c, err, "failed to get files", "FilesWithTag() error")
		return
	}

	c.JSON(http.StatusOK, dtofile.ResponseData{
		Data: dtofile.ToResponseFiles(files),
	})
}

func (fc *FileController) AttachFileHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	var req dtofile.AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if errs := validator.ValidateAttachRequest(req); errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	f, err := fc.fileService.AttachFile(c.Request.Context(), ownerRef(c), dtofile.ToOptions(req))
	if err != nil {
		fc.fail(c, err, "failed to attach a file", "AttachFile() error")
		return
	}

	c.JSON(http.StatusCreated, dtofile.ToResponseFile(*f))
}

func (fc *FileController) ChangeStatusHandler(c *gin.Context) {
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	var req dtofile.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	status, errs := validator.ParseStatus(req)
	if errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	f, err := fc.fileService.ChangeStatus(c.Request.Context(), fileID, status)
	if err != nil {
		fc.fail(c, err, "failed to change status", "ChangeStatus() error")
		return
	}

	c.JSON(http.StatusOK, dtofile.ToResponseFile(*f))
}

func (fc *FileController) ChangeVisibilityHandler(c *gin.Context) {
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	var req dtofile.VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if req.Public == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": map[string]string{"public": "public is required"}})
		return
	}

	f, err := fc.fileService.ChangeVisibility(c.Request.Context(), fileID, *req.Public)
	if err != nil {
		fc.fail(c, err, "failed to change visibility", "ChangeVisibility() error")
		return
	}

	c.JSON(http.StatusOK, dtofile.ToResponseFile(*f))
}

// fail maps service errors to a response. Only unexpected errors are logged.
func (fc *FileController) fail(c *gin.Context, err error, msg, logMsg string) {
	var verr file.ValidationErrors

	switch {
	case errors.Is(err, owner.ErrUnknownModel):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown owner model"})
	case errors.Is(err, owner.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
	case errors.Is(err, file.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": map[string]string(verr)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		fc.logger.Error(logMsg, zap.Error(err))
	}
}
