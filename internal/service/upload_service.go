package service

import (
	"context"
	"fmt"
	"log"

	"github.com/boxmate/backend/internal/blob"
	"github.com/boxmate/backend/internal/imaging"
)

// UploadService is the standalone upload helper used by the listing composer:
// photos go to blob storage first, the compose call then carries only URLs.
type UploadService interface {
	// UploadFiles uploads the batch sequentially. When a file fails, the
	// files already uploaded in this batch are removed again before the
	// error is returned.
	UploadFiles(ctx context.Context, files []PhotoFile) ([]string, error)
	// DeleteFiles removes the blobs behind the given URLs, best-effort.
	DeleteFiles(ctx context.Context, urls []string)
}

type uploadService struct {
	store blob.Store
}

func NewUploadService(store blob.Store) UploadService {
	return &uploadService{store: store}
}

func (s *uploadService) UploadFiles(ctx context.Context, files []PhotoFile) ([]string, error) {
	urls := make([]string, 0, len(files))
	for i, file := range files {
		processed, err := imaging.Process(file.Data)
		if err != nil {
			s.cleanup(ctx, urls)
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalid, file.Name, err)
		}
		url, err := s.store.Upload(ctx, blob.NewKey(i), processed.Data, processed.ContentType)
		if err != nil {
			s.cleanup(ctx, urls)
			return nil, fmt.Errorf("upload %s: %w", file.Name, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *uploadService) cleanup(ctx context.Context, urls []string) {
	var keys []string
	for _, url := range urls {
		if key := blob.KeyFromURL(url); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := s.store.Remove(ctx, keys); err != nil {
		log.Printf("failed to clean up partial upload: %v", err)
	}
}

func (s *uploadService) DeleteFiles(ctx context.Context, urls []string) {
	var keys []string
	for _, url := range urls {
		if key := blob.KeyFromURL(url); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := s.store.Remove(ctx, keys); err != nil {
		log.Printf("failed to remove files: %v", err)
	}
}
