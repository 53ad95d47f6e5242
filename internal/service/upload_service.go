package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/pradyumyelame/EasyToStay/internal/errors"
	"github.com/pradyumyelame/EasyToStay/internal/storage"
)

// MaxPhotosPerUpload bounds a single multipart upload.
const MaxPhotosPerUpload = 50

// DefaultMaxLinkBytes bounds images downloaded by link.
const DefaultMaxLinkBytes int64 = 10 << 20

// UploadService stores listing photos.
type UploadService interface {
	SavePhotos(ctx context.Context, uploads []Upload) ([]string, error)
	SaveFromLink(ctx context.Context, link string) (string, error)
}

type uploadService struct {
	files    storage.Store
	client   *http.Client
	maxBytes int64
	log      *zap.Logger
}

// NewUploadService creates a photo upload service. client fetches images by
// link; a nil client gets a 15 second timeout.
func NewUploadService(files storage.Store, client *http.Client, maxBytes int64, log *zap.Logger) UploadService {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxLinkBytes
	}
	return &uploadService{files: files, client: client, maxBytes: maxBytes, log: log}
}

// SavePhotos stores every upload and returns their keys in order. Keys saved
// before a failure are removed again.
func (s *uploadService) SavePhotos(ctx context.Context, uploads []Upload) ([]string, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no photos", apperrors.ErrInvalidInput)
	}
	if len(uploads) > MaxPhotosPerUpload {
		return nil, fmt.Errorf("%w: at most %d photos per upload", apperrors.ErrInvalidInput, MaxPhotosPerUpload)
	}

	keys := make([]string, 0, len(uploads))
	for _, up := range uploads {
		key := storage.NewKey("", up.Filename, up.ContentType)
		saved, err := s.files.Save(ctx, key, up.Body, up.Size, up.ContentType)
		if err != nil {
			s.log.Error("save photo", zap.String("key", key), zap.Error(err))
			for _, k := range keys {
				if derr := s.files.Delete(ctx, k); derr != nil {
					s.log.Warn("remove partial upload", zap.String("key", k), zap.Error(derr))
				}
			}
			return nil, fmt.Errorf("save photo: %w", err)
		}
		keys = append(keys, saved)
	}
	return keys, nil
}

// SaveFromLink downloads an image and stores it. Only http(s) links returning
// 200 with a jpeg, png, webp or gif content type no larger than the configured
// limit are accepted.
func (s *uploadService) SaveFromLink(ctx context.Context, link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: link must be an http or https url", apperrors.ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("fetch link", zap.String("link", u.Redacted()), zap.Error(err))
		return "", fmt.Errorf("%w: could not fetch link", apperrors.ErrInvalidInput)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: link returned status %d", apperrors.ErrInvalidInput, resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !storage.SupportedImageType(mediaType) {
		return "", fmt.Errorf("%w: link is not a jpeg, png, webp or gif image", apperrors.ErrInvalidInput)
	}
	if resp.ContentLength > s.maxBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", apperrors.ErrInvalidInput, s.maxBytes)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: could not read link", apperrors.ErrInvalidInput)
	}
	if int64(len(body)) > s.maxBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", apperrors.ErrInvalidInput, s.maxBytes)
	}

	// The name is chosen from the verified media type, never from the link.
	key := storage.NewKey("", "", mediaType)
	saved, err := s.files.Save(ctx, key, bytes.NewReader(body), int64(len(body)), mediaType)
	if err != nil {
		s.log.Error("save linked photo", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("save linked photo: %w", err)
	}
	return saved, nil
}
