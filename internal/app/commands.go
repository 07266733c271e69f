package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ratewatch/internal/domain"
	"ratewatch/internal/insights"
)

type ScanService struct {
	shopper domain.RateShopperClient
	repo    domain.MarketRepository
	cache   domain.Cache
}

func NewScanService(c domain.RateShopperClient, r domain.MarketRepository, cache domain.Cache) *ScanService {
	return &ScanService{shopper: c, repo: r, cache: cache}
}

// ScanProperty refreshes one property from the rate shopper: the property
// row first, then its sentiment breakdowns (snapshotting the previous scan
// into history), then guest mentions.
func (s *ScanService) ScanProperty(ctx context.Context, id int64, mentionCount int) error {
	// 1) Fetch property (parent first). Handle known 404/401/403 as "misses".
	p, err := s.shopper.GetProperty(ctx, id)
	if err != nil {
		low := strings.ToLower(err.Error())

		// 404: property not found -> record miss, clear caches, and stop gracefully.
		if errors.Is(err, domain.ErrNotFound) || strings.Contains(low, "not found") {
			_ = s.repo.LogMiss(ctx, id, 404, "not found")
			// Evict any stale caches so we don't keep serving an old analysis.
			if s.cache != nil {
				s.invalidateAnalyses(ctx, id)
			}
			return nil
		}

		// 401/403: unauthorized/forbidden/inactive -> record miss, evict caches, stop.
		if strings.Contains(low, "403") || strings.Contains(low, "forbidden") ||
			strings.Contains(low, "401") || strings.Contains(low, "unauthorized") {
			_ = s.repo.LogMiss(ctx, id, 403, "inactive")
			if s.cache != nil {
				s.invalidateAnalyses(ctx, id)
			}
			return nil
		}

		// Anything else is unexpected (network/5xx/JSON/etc.) -> bubble up.
		return err
	}

	// Parent upsert first to satisfy FKs for breakdowns/mentions.
	if err := s.repo.UpsertHotel(ctx, mapProperty(p)); err != nil {
		return err
	}

	// A property change shifts every analysis it appears in.
	if s.cache != nil {
		s.invalidateAnalyses(ctx, id)
	}

	// 2) Sentiment breakdowns: best-effort on 404/401/403, bubble up the rest.
	// On success the previous scan is snapshotted into history before the
	// current rows are replaced, so the resolver's history fallback has data.
	if rows, serr := s.shopper.GetSentiment(ctx, id); serr != nil {
		low := strings.ToLower(serr.Error())
		switch {
		case errors.Is(serr, domain.ErrNotFound) || strings.Contains(low, "not found"):
			_ = s.repo.LogMiss(ctx, id, 404, "sentiment")
		case strings.Contains(low, "403") || strings.Contains(low, "forbidden") ||
			strings.Contains(low, "401") || strings.Contains(low, "unauthorized"):
			_ = s.repo.LogMiss(ctx, id, 403, "sentiment")
		default:
			return serr
		}
	} else {
		if err := s.repo.SnapshotBreakdowns(ctx, id); err != nil {
			return fmt.Errorf("snapshot breakdowns failed for %d: %w", id, err)
		}
		if err := s.repo.ReplaceBreakdowns(ctx, id, mapBreakdowns(id, rows)); err != nil {
			// IMPORTANT: do not swallow this; surface so we know writes failed
			return fmt.Errorf("replace breakdowns failed for %d: %w", id, err)
		}
		if s.cache != nil {
			s.invalidateAnalyses(ctx, id)
		}
	}

	// 3) Guest mentions: best-effort with the same miss policy.
	if rows, merr := s.shopper.GetMentions(ctx, id, mentionCount); merr != nil {
		low := strings.ToLower(merr.Error())
		switch {
		case errors.Is(merr, domain.ErrNotFound) || strings.Contains(low, "not found"):
			_ = s.repo.LogMiss(ctx, id, 404, "mentions")
		case strings.Contains(low, "403") || strings.Contains(low, "forbidden") ||
			strings.Contains(low, "401") || strings.Contains(low, "unauthorized"):
			_ = s.repo.LogMiss(ctx, id, 403, "mentions")
		default:
			return merr
		}
	} else {
		if ms := mapMentions(id, rows); len(ms) > 0 {
			if err := s.repo.UpsertMentions(ctx, ms); err != nil {
				return fmt.Errorf("upsert mentions failed for %d: %w", id, err)
			}
		}
		if s.cache != nil {
			s.invalidateAnalyses(ctx, id)
		}
	}

	return nil
}

// invalidateAnalyses drops every cached view the property can appear in:
// the per-language analysis reports plus the ratings table.
func (s *ScanService) invalidateAnalyses(ctx context.Context, id int64) {
	for _, l := range insights.Languages() {
		_ = s.cache.Del(ctx, fmt.Sprintf("analysis:%d:%s", id, l))
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("ratings:%d", id))
}
