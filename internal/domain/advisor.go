package domain

import "time"

// Question is a free-text prompt submitted on behalf of an owner.
// Documents optionally lists uploaded statements the answer may refer to.
type Question struct {
	Owner     string         `json:"owner"`
	Text      string         `json:"text"`
	Documents []StoredObject `json:"-"`
}

// Answer is the advisor's reply. Citations are optional source markers.
type Answer struct {
	Text      string     `json:"answer"`
	Citations []Citation `json:"citations,omitempty"`
	Model     string     `json:"model,omitempty"`
}

// Citation points at a document an answer drew on.
type Citation struct {
	Source  string `json:"source"`
	Excerpt string `json:"excerpt,omitempty"`
}

// StoredObject describes a file accepted by the blob store.
type StoredObject struct {
	Key         string    `json:"key"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Owner       string    `json:"owner"`
	UploadedAt  time.Time `json:"upload_date"`
}
