// Package storage accepts uploaded bank statements.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/finadvisor/finadvisor/internal/domain"
)

const (
	PDFContentType  = "application/pdf"
	DefaultMaxBytes = 10 << 20
)

var (
	ErrTooLarge        = errors.New("file size exceeds the upload limit")
	ErrUnsupportedType = errors.New("only PDF files are allowed")
	ErrMissingFile     = errors.New("no file provided")
	ErrNotFound        = errors.New("object not found")
)

// BlobStore stores an owner's file and reports where it was put.
type BlobStore interface {
	Put(ctx context.Context, owner, name, contentType string, body io.Reader) (domain.StoredObject, error)
	List(ctx context.Context, owner string) ([]domain.StoredObject, error)
	Open(ctx context.Context, owner, key string) (domain.StoredObject, io.ReadCloser, error)
}

// Validate checks the declared metadata of an upload before it is read.
func Validate(name, contentType string, size, maxBytes int64) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingFile
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != PDFContentType {
		return fmt.Errorf("%w: got %q", ErrUnsupportedType, contentType)
	}
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, size, maxBytes)
	}
	return nil
}

// ObjectKey builds transactions/{owner}/{unixMillis}-{filename}.
func ObjectKey(owner, name string, at time.Time) string {
	return fmt.Sprintf("transactions/%s/%d-%s", cleanSegment(owner), at.UnixMilli(), cleanSegment(name))
}

// OwnsKey reports whether key lies directly under the owner's upload prefix.
func OwnsKey(owner, key string) bool {
	rest, ok := strings.CutPrefix(key, "transactions/"+cleanSegment(owner)+"/")
	return ok && rest != "" && !strings.Contains(rest, "/") && rest != ".." && rest != "."
}

// cleanSegment reduces a user-supplied value to a single safe path element.
func cleanSegment(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\\", "/")
	s = path.Base(s)
	if s == "." || s == "/" || s == ".." || s == "" {
		return "unnamed"
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, s)
}
