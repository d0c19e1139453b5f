package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/escola-api/internal/models"
	"github.com/noah-isme/escola-api/pkg/cache"
)

var (
	summaryCacheKey     = cache.Key("summary", "totals")
	summaryCachePattern = cache.Key("summary", "*")
)

// SummaryService serves the entity totals shown on the home page, reading
// through the cache when one is configured.
type SummaryService struct {
	uow    UnitOfWork
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewSummaryService constructs a SummaryService. cache may be nil.
func NewSummaryService(uow UnitOfWork, cache *CacheService, ttl time.Duration, logger *zap.Logger) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{uow: uow, cache: cache, ttl: ttl, logger: logger}
}

// Totals returns the number of students, teachers, courses and classes and
// whether they came from the cache. Cache failures fall back to the database.
func (s *SummaryService) Totals(ctx context.Context) (*models.Summary, bool, error) {
	var cached models.Summary
	if hit, _ := s.cache.Get(ctx, summaryCacheKey, &cached); hit {
		return &cached, true, nil
	}

	var summary *models.Summary
	err := s.uow.Read(ctx, func(r Repos) error {
		var err error
		summary, err = r.Summary.Totals(ctx)
		return err
	})
	if err != nil {
		return nil, false, internal(err, "falha ao carregar o resumo")
	}
	_ = s.cache.Set(ctx, summaryCacheKey, summary, s.ttl)
	return summary, false, nil
}

// InvalidateSummary drops cached totals after a write.
func (s *SummaryService) InvalidateSummary(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, summaryCachePattern); err != nil {
		s.logger.Warn("summary cache not invalidated", zap.Error(err))
	}
}
