package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/google/uuid"
)

const metaSuffix = ".meta.json"

// FileStore writes objects under a root directory using their keys as relative paths.
// Each object gets a JSON metadata sidecar.
type FileStore struct {
	root     string
	maxBytes int64
	now      func() time.Time
}

// NewFileStore creates the root directory if needed. A non-positive maxBytes uses DefaultMaxBytes.
func NewFileStore(root string, maxBytes int64) (*FileStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root %s: %w", root, err)
	}
	return &FileStore{root: root, maxBytes: maxBytes, now: time.Now}, nil
}

// MaxBytes reports the enforced size limit.
func (f *FileStore) MaxBytes() int64 { return f.maxBytes }

// Put validates the content type, streams the body to a temporary file and
// renames it into place. Bodies longer than the limit are discarded.
func (f *FileStore) Put(ctx context.Context, owner, name, contentType string, body io.Reader) (domain.StoredObject, error) {
	if err := Validate(name, contentType, 0, f.maxBytes); err != nil {
		return domain.StoredObject{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.StoredObject{}, err
	}

	uploadedAt := f.now().UTC()
	key := ObjectKey(owner, name, uploadedAt)
	dest := filepath.Join(f.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return domain.StoredObject{}, fmt.Errorf("create upload dir: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(dest), ".upload-"+uuid.NewString())
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return domain.StoredObject{}, fmt.Errorf("create temp file: %w", err)
	}
	written, copyErr := io.Copy(out, io.LimitReader(body, f.maxBytes+1))
	closeErr := out.Close()
	if copyErr == nil && written > f.maxBytes {
		copyErr = fmt.Errorf("%w: limit %d bytes", ErrTooLarge, f.maxBytes)
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		os.Remove(tmp)
		return domain.StoredObject{}, copyErr
	}

	obj := domain.StoredObject{
		Key:         key,
		FileName:    cleanSegment(name),
		ContentType: PDFContentType,
		Size:        written,
		Owner:       owner,
		UploadedAt:  uploadedAt,
	}
	meta, err := json.Marshal(obj)
	if err != nil {
		os.Remove(tmp)
		return domain.StoredObject{}, fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(dest+metaSuffix, meta, 0o600); err != nil {
		os.Remove(tmp)
		return domain.StoredObject{}, fmt.Errorf("write metadata: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		os.Remove(dest + metaSuffix)
		return domain.StoredObject{}, fmt.Errorf("store %s: %w", key, err)
	}
	return obj, nil
}

// List returns an owner's objects, newest first.
func (f *FileStore) List(_ context.Context, owner string) ([]domain.StoredObject, error) {
	dir := filepath.Join(f.root, "transactions", cleanSegment(owner))
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.StoredObject{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list uploads for %s: %w", owner, err)
	}

	objects := []domain.StoredObject{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), metaSuffix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read metadata %s: %w", e.Name(), err)
		}
		var obj domain.StoredObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("decode metadata %s: %w", e.Name(), err)
		}
		objects = append(objects, obj)
	}
	sort.SliceStable(objects, func(i, j int) bool { return objects[i].UploadedAt.After(objects[j].UploadedAt) })
	return objects, nil
}

// Open returns the metadata and content of one of an owner's objects. Keys
// outside the owner's prefix are reported as not found.
func (f *FileStore) Open(_ context.Context, owner, key string) (domain.StoredObject, io.ReadCloser, error) {
	if !OwnsKey(owner, key) || strings.HasSuffix(key, metaSuffix) {
		return domain.StoredObject{}, nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return domain.StoredObject{}, nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	dest := filepath.Join(f.root, clean)

	meta, err := os.ReadFile(dest + metaSuffix)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.StoredObject{}, nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return domain.StoredObject{}, nil, fmt.Errorf("read metadata %s: %w", key, err)
	}
	var obj domain.StoredObject
	if err := json.Unmarshal(meta, &obj); err != nil {
		return domain.StoredObject{}, nil, fmt.Errorf("decode metadata %s: %w", key, err)
	}

	file, err := os.Open(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.StoredObject{}, nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return domain.StoredObject{}, nil, err
	}
	return obj, file, nil
}
