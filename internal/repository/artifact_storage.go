package repository

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"deck-converter/internal/domain"
)

// SupabaseArtifactStorage uploads produced files to Supabase Storage
// over its plain HTTP object API.
type SupabaseArtifactStorage struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

// NewSupabaseArtifactStorage creates a storage backend for the given
// bucket.
func NewSupabaseArtifactStorage(baseURL, apiKey, bucket string) *SupabaseArtifactStorage {
	return &SupabaseArtifactStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		client:  http.DefaultClient,
	}
}

// Upload implements domain.ArtifactStorage.
func (s *SupabaseArtifactStorage) Upload(ctx context.Context, path string, contentType string, file io.Reader) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/storage/v1/object/"+s.bucket+"/"+strings.TrimLeft(path, "/"),
		file,
	)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errors.New("storage upload failed")
	}

	return nil
}

var _ domain.ArtifactStorage = (*SupabaseArtifactStorage)(nil)
