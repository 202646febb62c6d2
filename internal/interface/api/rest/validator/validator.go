package validator

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"attachments-api/internal/domain/file"
	dtofile "attachments-api/internal/interface/api/rest/dto/file"
)

const maxContentBytes = 10 << 20

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ValidateAttachRequest checks what the builder cannot: encoding and
// obviously broken values. Length limits are enforced by file.New.
func ValidateAttachRequest(r dtofile.AttachRequest) map[string]string {
	errs := make(map[string]string)

	if len(r.Content) > maxContentBytes {
		errs["content"] = "content must be at most 10MB"
	}

	for field, v := range map[string]*string{"name": r.Name, "path": r.Path, "type": r.Type} {
		if v == nil {
			continue
		}
		if !utf8.ValidString(*v) {
			errs[field] = field + " must be valid UTF-8"
		} else if strings.TrimSpace(*v) == "" {
			errs[field] = field + " must not be blank"
		}
	}

	if r.Path != nil && strings.Contains(*r.Path, "..") {
		errs["path"] = "path must not contain '..'"
	}

	if r.Type != nil && !strings.Contains(*r.Type, "/") {
		errs["type"] = "type must be a mime type"
	}

	if !utf8.ValidString(r.Tags) {
		errs["tags"] = "tags must be valid UTF-8"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ParseStatus(r dtofile.StatusRequest) (file.Status, map[string]string) {
	if strings.TrimSpace(r.Status) == "" {
		return 0, map[string]string{"status": "status is required"}
	}

	s, err := file.ParseStatus(strings.ToLower(strings.TrimSpace(r.Status)))
	if err != nil {
		return 0, map[string]string{"status": "status must be one of draft, normal, deleted"}
	}

	return s, nil
}
