package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		UUID        uuid.UUID  `json:"uuid"`
		Model       string     `json:"model"`
		TargetID    string     `json:"target_id"`
		TargetURL   string     `json:"target_url"`
		FileName    *string    `json:"filename_user"`
		FilePath    *string    `json:"filename_path"`
		MimeType    *string    `json:"mimetype"`
		SizeBytes   int        `json:"size_bytes"`
		CreatedBy   *uuid.UUID `json:"created_by"`
		Public      bool       `json:"public"`
		Tags        string     `json:"tags"`
		Status      string     `json:"status"`
		Position    int32      `json:"position"`
		DownloadURL string     `json:"download_url,omitempty"`
		CreatedAt   time.Time  `json:"created_at"`
	}
	Files        []File
	ResponseData struct {
		Data Files `json:"data"`
	}
)
