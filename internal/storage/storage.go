// Package storage validates media uploads and writes them to an object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"yantratune/internal/logging"
	"yantratune/internal/models"
)

var (
	// ErrValidation marks an upload rejected before it reached the backend.
	ErrValidation = errors.New("invalid upload")
	// ErrUpload marks a backend failure while storing an object.
	ErrUpload = errors.New("upload failed")
)

// Policy describes what a bucket accepts.
type Policy struct {
	Bucket     string
	MIMEPrefix string
	DefaultExt string
	MaxSize    int64
	Allowed    []string
	// Kind is used in validation messages, e.g. "an audio file".
	Kind string
}

// AudioPolicy governs the music-files bucket.
var AudioPolicy = Policy{
	Bucket:     "music-files",
	MIMEPrefix: "audio/",
	DefaultExt: "mp3",
	MaxSize:    100 << 20,
	Allowed:    []string{"audio/mpeg", "audio/mp3", "audio/wav", "audio/ogg", "audio/aac", "audio/m4a", "audio/flac"},
	Kind:       "an audio file",
}

// ImagePolicy governs the cover-image bucket.
var ImagePolicy = Policy{
	Bucket:     "cover-image",
	MIMEPrefix: "image/",
	DefaultExt: "jpg",
	MaxSize:    10 << 20,
	Allowed:    []string{"image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif", "image/svg+xml"},
	Kind:       "an image file",
}

// File is an upload held in memory.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ObjectStore persists named objects in buckets.
type ObjectStore interface {
	Put(ctx context.Context, bucket, name, contentType string, data []byte) error
	Delete(ctx context.Context, bucket, name string) error
	PublicURL(bucket, name string) string
}

// Adapter applies bucket policies in front of an ObjectStore.
type Adapter struct {
	objects ObjectStore
	newName func(ext string) string
}

// New returns an Adapter writing to objects.
func New(objects ObjectStore) *Adapter {
	return &Adapter{
		objects: objects,
		newName: func(ext string) string { return uuid.NewString() + "." + ext },
	}
}

// UploadAudio stores an audio file and returns its public URL.
func (a *Adapter) UploadAudio(ctx context.Context, f File) (string, error) {
	return a.upload(ctx, AudioPolicy, f)
}

// UploadImage stores a cover image and returns its public URL.
func (a *Adapter) UploadImage(ctx context.Context, f File) (string, error) {
	return a.upload(ctx, ImagePolicy, f)
}

// UploadMultipleImages stores each file independently. A failed file yields
// an empty URL and a failure message; the rest are still attempted.
func (a *Adapter) UploadMultipleImages(ctx context.Context, files []File) []models.UploadResponse {
	results := make([]models.UploadResponse, 0, len(files))
	for _, f := range files {
		url, err := a.UploadImage(ctx, f)
		if err != nil {
			results = append(results, models.UploadResponse{
				Filename: f.Filename,
				Message:  "Upload failed: " + err.Error(),
			})
			continue
		}
		results = append(results, models.UploadResponse{
			Filename: f.Filename,
			URL:      url,
			Message:  "Cover image uploaded successfully",
		})
	}
	return results
}

// DeleteFile removes an object and reports whether it succeeded.
func (a *Adapter) DeleteFile(ctx context.Context, bucket, name string) bool {
	if err := a.objects.Delete(ctx, bucket, name); err != nil {
		logging.WithContext(ctx).Error().Err(err).Str("bucket", bucket).Str("path", name).Msg("delete object failed")
		return false
	}
	return true
}

func (a *Adapter) upload(ctx context.Context, p Policy, f File) (string, error) {
	if err := p.Validate(f); err != nil {
		return "", err
	}

	name := a.newName(extension(f.Filename, p.DefaultExt))
	if err := a.objects.Put(ctx, p.Bucket, name, f.ContentType, f.Data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	logging.WithContext(ctx).Info().
		Str("bucket", p.Bucket).
		Str("object", name).
		Int("bytes", len(f.Data)).
		Msg("object stored")

	return a.objects.PublicURL(p.Bucket, name), nil
}

// Validate checks the declared type, the size and the sniffed content of f.
func (p Policy) Validate(f File) error {
	contentType := strings.ToLower(strings.TrimSpace(f.ContentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	if !strings.HasPrefix(contentType, p.MIMEPrefix) {
		return fmt.Errorf("%w: File must be %s", ErrValidation, p.Kind)
	}
	if len(p.Allowed) > 0 && !slices.Contains(p.Allowed, contentType) {
		return fmt.Errorf("%w: content type %s is not accepted by bucket %s", ErrValidation, contentType, p.Bucket)
	}
	if p.MaxSize > 0 && int64(len(f.Data)) > p.MaxSize {
		return fmt.Errorf("%w: file exceeds %d MB limit", ErrValidation, p.MaxSize>>20)
	}

	kind, err := filetype.Match(f.Data)
	if err == nil && kind != filetype.Unknown && kind.MIME.Type+"/" != p.MIMEPrefix {
		return fmt.Errorf("%w: content looks like %s, not %s", ErrValidation, kind.MIME.Value, p.Kind)
	}
	return nil
}

// extension returns the text after the last dot of filename, or fallback.
func extension(filename, fallback string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		return fallback
	}
	return ext
}
