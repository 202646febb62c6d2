package file

type (
	// AttachRequest mirrors the attach options; content is base64 in JSON.
	AttachRequest struct {
		Content   []byte  `json:"content"`
		Name      *string `json:"name"`
		Path      *string `json:"path"`
		Type      *string `json:"type"`
		TargetURL string  `json:"target_url"`
		Tags      string  `json:"tags"`
	}
	StatusRequest struct {
		Status string `json:"status"`
	}
	VisibilityRequest struct {
		Public *bool `json:"public"`
	}
)
