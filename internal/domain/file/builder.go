package file

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Options is the attach bag. Nil pointers and empty strings fall back to
// their column defaults.
type Options struct {
	Content   []byte
	Name      *string
	Path      *string
	Type      *string
	TargetURL string
	Tags      string
}

// ValidationErrors maps a column to the reason it was rejected.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "invalid file: " + strings.Join(parts, "; ")
}

var (
	validate = validator.New()

	columns = map[string]string{
		"Model":        "model",
		"TargetID":     "target_id",
		"TargetURL":    "target_url",
		"Content":      "content",
		"FileNameUser": "filename_user",
		"FileNamePath": "filename_path",
		"MimeType":     "mimetype",
		"Tags":         "tags",
	}
)

// New builds an unsaved draft file bound to target.
func New(target Target, createdBy *uuid.UUID, opts Options) (*File, error) {
	f := &File{
		Model:        target.Model,
		TargetID:     target.ID,
		TargetURL:    opts.TargetURL,
		Content:      opts.Content,
		FileNameUser: normalized(opts.Name),
		FileNamePath: opts.Path,
		MimeType:     opts.Type,
		CreatedBy:    createdBy,
		Public:       false,
		Tags:         norm.NFC.String(opts.Tags),
		Status:       StatusDraft,
	}

	if err := Validate(f); err != nil {
		return nil, err
	}

	return f, nil
}

// Validate checks the column constraints of f.
func Validate(f *File) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		col, ok := columns[fe.StructField()]
		if !ok {
			col = fe.Field()
		}
		out[col] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s long", fe.Param())
	}
	return "failed " + fe.Tag()
}

func normalized(s *string) *string {
	if s == nil {
		return nil
	}
	n := norm.NFC.String(*s)
	return &n
}
