// backend/src/services/report_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
)

const (
	ckReport             = "report_%s"
	DefaultReportTTL     = 24 * time.Hour
	CacheCleanupInterval = 30 * time.Minute
)

type reportServiceImpl struct {
	reportCache *cache.Cache
	now         func() time.Time
}

// NewReportService keeps reports in memory for ttl. A non-positive ttl uses
// DefaultReportTTL.
func NewReportService(ttl time.Duration) ReportService {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &reportServiceImpl{
		reportCache: cache.New(ttl, CacheCleanupInterval),
		now:         time.Now,
	}
}

// Save stores a copy of report, assigning an ID and creation time when absent.
func (s *reportServiceImpl) Save(ctx context.Context, report *models.Report) (*models.Report, error) {
	if report == nil || report.Summary == nil || report.Analysis == nil {
		return nil, fmt.Errorf("%w: report must carry a summary and an analysis", ErrInvalidInput)
	}
	stored := *report
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now().UTC()
	}
	s.reportCache.Set(fmt.Sprintf(ckReport, stored.ID), &stored, cache.DefaultExpiration)
	logger.InfoFromContext(ctx, "Report stored", "reportID", stored.ID, "filename", stored.Filename)
	return &stored, nil
}

func (s *reportServiceImpl) Get(ctx context.Context, id string) (*models.Report, error) {
	if cached, found := s.reportCache.Get(fmt.Sprintf(ckReport, id)); found {
		if report, ok := cached.(*models.Report); ok {
			return report, nil
		}
	}
	logger.FromContext(ctx).Debug("Report cache miss", "reportID", id)
	return nil, ErrReportNotFound
}

func (s *reportServiceImpl) List(ctx context.Context) []models.ReportListItem {
	items := make([]models.ReportListItem, 0, s.reportCache.ItemCount())
	for key, item := range s.reportCache.Items() {
		if !strings.HasPrefix(key, "report_") {
			continue
		}
		report, ok := item.Object.(*models.Report)
		if !ok {
			continue
		}
		items = append(items, models.ReportListItem{
			ID:          report.ID,
			Filename:    report.Filename,
			Industry:    report.Industry,
			CreatedAt:   report.CreatedAt,
			HealthScore: report.Analysis.HealthScore,
			Status:      report.Analysis.Status,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	logger.FromContext(ctx).Debug("Listed reports", "count", len(items))
	return items
}

func (s *reportServiceImpl) Delete(ctx context.Context, id string) error {
	key := fmt.Sprintf(ckReport, id)
	if _, found := s.reportCache.Get(key); !found {
		return ErrReportNotFound
	}
	s.reportCache.Delete(key)
	logger.InfoFromContext(ctx, "Report deleted", "reportID", id)
	return nil
}
