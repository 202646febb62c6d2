package file

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("file not found")

// Status is the lifecycle flag of a file. Only StatusNormal files are
// returned by owner queries.
type Status int16

const (
	StatusDraft   Status = 0
	StatusNormal  Status = 1
	StatusDeleted Status = 2
)

var statusNames = map[Status]string{
	StatusDraft:   "draft",
	StatusNormal:  "normal",
	StatusDeleted: "deleted",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return strconv.Itoa(int(s))
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus accepts a status name or its numeric value.
func ParseStatus(v string) (Status, error) {
	for s, n := range statusNames {
		if n == v {
			return s, nil
		}
	}
	if n, err := strconv.Atoi(v); err == nil && Status(n).Valid() {
		return Status(n), nil
	}
	return 0, fmt.Errorf("unknown file status %q", v)
}

// Scope selects one of the owner relations.
type Scope int

const (
	ScopeAll Scope = iota
	ScopePublic
	ScopeProtected
)

func ParseScope(v string) (Scope, error) {
	switch v {
	case "", "all":
		return ScopeAll, nil
	case "public":
		return ScopePublic, nil
	case "protected":
		return ScopeProtected, nil
	}
	return ScopeAll, fmt.Errorf("unknown scope %q", v)
}

// Target is the join key between an owner and its files.
type Target struct {
	Model string
	ID    string
}

type (
	File struct {
		ID   uint64
		UUID uuid.UUID

		Model     string `validate:"required,max=255"`
		TargetID  string `validate:"required,max=255"`
		TargetURL string `validate:"max=2048"`

		Content      []byte  `validate:"max=10485760"`
		FileNameUser *string `validate:"omitempty,max=255"`
		FileNamePath *string `validate:"omitempty,max=255"`
		MimeType     *string `validate:"omitempty,max=255"`

		CreatedBy *uuid.UUID
		Public    bool
		Tags      string `validate:"max=1024"`
		Status    Status
		Position  int32

		CreatedAt time.Time
		UpdatedAt time.Time

		// DownloadURL is resolved per request and never persisted.
		DownloadURL string
	}
	Files []*File
)

func (f *File) Target() Target {
	return Target{Model: f.Model, ID: f.TargetID}
}
