package repository

import (
	"context"
	"fmt"

	"deck-converter/internal/domain"
)

// SupabaseConversionRepository records conversion runs in the
// "conversions" table via PostgREST.
type SupabaseConversionRepository struct {
	supabaseClient *SupabaseClient
	logger         domain.Logger
}

// NewSupabaseConversionRepository creates a new conversion repository
func NewSupabaseConversionRepository(supabaseClient *SupabaseClient, logger domain.Logger) domain.ConversionRepository {
	return &SupabaseConversionRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// RecordConversion inserts one conversion run.
func (r *SupabaseConversionRepository) RecordConversion(ctx context.Context, record *domain.ConversionRecord) error {
	client := r.supabaseClient.Client()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"id":            record.ID,
		"original_name": record.OriginalName,
		"kind":          string(record.Kind),
		"slide_count":   record.SlideCount,
		"duration_ms":   record.DurationMS,
		"status":        string(record.Status),
		"detail":        record.Detail,
		"created_at":    record.CreatedAt,
	}

	_, _, err := client.From("conversions").Insert(data, false, "", "", "").Execute()
	if err != nil {
		r.logger.Error("Failed to insert conversion record", err, "id", record.ID)
		return fmt.Errorf("failed to record conversion: %w", err)
	}

	r.logger.Debug("Conversion recorded", "id", record.ID, "status", record.Status)
	return nil
}

// NoopConversionRepository is used when no persistence backend is
// configured; the converter stays fully stateless.
type NoopConversionRepository struct{}

// RecordConversion discards the record.
func (NoopConversionRepository) RecordConversion(ctx context.Context, record *domain.ConversionRecord) error {
	return nil
}
