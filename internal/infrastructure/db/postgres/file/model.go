package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID   uint64
		UUID uuid.UUID

		Model     string
		TargetID  string
		TargetURL string

		Content      []byte
		FileNameUser *string
		FileNamePath *string
		MimeType     *string

		CreatedBy *uuid.UUID
		Public    bool
		Tags      string
		Status    int16
		Position  int32

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Files []*File
)
