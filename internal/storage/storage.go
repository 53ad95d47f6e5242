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

	"github.com/google/uuid"

	"github.com/pradyumyelame/EasyToStay/internal/config"
)

// ProfilePicPrefix is the key prefix for profile pictures.
const ProfilePicPrefix = "profile_pics"

// DefaultPublicPrefix is the URL path the disk backend is served under.
const DefaultPublicPrefix = "/uploads"

// ErrInvalidKey is returned for keys that would escape the storage root.
var ErrInvalidKey = errors.New("invalid storage key")

// Store persists uploaded photos. Save returns the key under which the object
// is reachable, relative to the public uploads prefix.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New builds the Store selected by cfg.Storage.Backend.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendDisk:
		return NewDiskStore(cfg.Storage.Dir)
	case config.BackendS3:
		return NewS3Store(cfg.S3), nil
	case config.BackendMinio:
		return NewMinioStore(ctx, cfg.Minio)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// NewKey returns a unique key `<unix-nano>-<uuid>.<ext>` under prefix. Only
// image extensions are produced: the extension of originalName is kept when it
// is one, otherwise it comes from the content type, defaulting to .jpg.
func NewKey(prefix, originalName, contentType string) string {
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), extension(originalName, contentType))
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

var imageExtensions = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpg",
	".png":  ".png",
	".webp": ".webp",
	".gif":  ".gif",
}

var imageMediaTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

func extension(originalName, contentType string) string {
	if ext, ok := imageExtensions[strings.ToLower(path.Ext(originalName))]; ok {
		return ext
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if ext, ok := imageMediaTypes[mediaType]; ok {
			return ext
		}
	}
	return ".jpg"
}

// SupportedImageType reports whether mediaType is an image type NewKey maps to
// its own extension.
func SupportedImageType(mediaType string) bool {
	_, ok := imageMediaTypes[mediaType]
	return ok
}

// PublicPath returns the URL path under which key is served, e.g.
// /uploads/profile_pics/<name>. An empty prefix means DefaultPublicPrefix.
func PublicPath(prefix, key string) string {
	if prefix == "" {
		prefix = DefaultPublicPrefix
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(key, "/")
}

// cleanKey normalises key and rejects absolute or parent-relative paths.
func cleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "./") || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return cleaned, nil
}
