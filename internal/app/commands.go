package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_bookings/internal/bookings"
	"hotel_bookings/internal/domain"
)

type IngestionService struct {
	src   domain.BookingSource
	repo  domain.BookingRepository
	cache domain.Cache
}

func NewIngestionService(src domain.BookingSource, r domain.BookingRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{src: src, repo: r, cache: cache}
}

// Load reads the source once; the ingestor splits the result with Batches.
func (s *IngestionService) Load(ctx context.Context) (bookings.Table, error) {
	t, err := s.src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	return t, nil
}

// IngestBatch stores one batch and drops cached query results, since they
// may no longer match the repository.
func (s *IngestionService) IngestBatch(ctx context.Context, n int, rows bookings.Table) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.repo.InsertBatch(ctx, n, rows); err != nil {
		return fmt.Errorf("insert batch %d failed: %w", n, err)
	}
	if err := bumpGeneration(ctx, s.cache); err != nil {
		// stale cache entries expire with their TTL
		log.Warn().Err(err).Int("batch", n).Msg("cache invalidation failed")
	}
	return nil
}

// Finish removes batches left over from a larger previous ingestion.
func (s *IngestionService) Finish(ctx context.Context, batches int) error {
	if err := s.repo.PruneBatches(ctx, batches); err != nil {
		return fmt.Errorf("prune batches from %d: %w", batches, err)
	}
	return bumpGeneration(ctx, s.cache)
}

// Batches splits t into consecutive slices of at most size records.
func Batches(t bookings.Table, size int) []bookings.Table {
	if size <= 0 {
		size = len(t)
	}
	var out []bookings.Table
	for start := 0; start < len(t); start += size {
		end := min(start+size, len(t))
		out = append(out, t[start:end])
	}
	return out
}

type ExportService struct {
	src domain.BookingSource
}

func NewExportService(src domain.BookingSource) *ExportService {
	return &ExportService{src: src}
}

// Export loads the source and writes it to path. The mode is checked
// before the source is touched.
func (s *ExportService) Export(ctx context.Context, path string, mode bookings.WriteMode) (int, error) {
	if mode != bookings.ModeAppend && mode != bookings.ModeOverwrite {
		return 0, bookings.ErrWrongWriteMode
	}
	t, err := s.src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load bookings: %w", err)
	}
	if err := bookings.Export(t, path, mode); err != nil {
		return 0, err
	}
	return len(t), nil
}
