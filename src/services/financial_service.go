// backend/src/services/financial_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/analysis"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/models"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/parsers"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/processors"
)

type financialServiceImpl struct {
	ledgerProcessor *processors.LedgerProcessor
	aggregator      *processors.Aggregator
	profiler        *processors.Profiler
	engine          analysis.Engine
}

func NewFinancialService(
	ledgerProcessor *processors.LedgerProcessor,
	aggregator *processors.Aggregator,
	profiler *processors.Profiler,
	engine analysis.Engine,
) FinancialService {
	return &financialServiceImpl{
		ledgerProcessor: ledgerProcessor,
		aggregator:      aggregator,
		profiler:        profiler,
		engine:          engine,
	}
}

func (s *financialServiceImpl) Process(ctx context.Context, data []byte, filename string) (*models.FinancialSummary, error) {
	log := logger.FromContext(ctx)
	startTime := time.Now()
	log.Info("Process START", "filename", filename, "size", len(data))

	table, err := parseUpload(data, filename)
	if err != nil {
		return nil, err
	}

	var profile *models.GenericProfile
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		profile = s.profiler.Profile(table)
	}()

	ledger, mapping, err := s.ledgerProcessor.Process(table)
	wg.Wait()
	if err != nil {
		var mappingErr *processors.MappingError
		if errors.As(err, &mappingErr) {
			log.Warn("Column mapping failed", "filename", filename, "field", mappingErr.Field)
			return nil, fmt.Errorf("%w: %w", ErrMapping, err)
		}
		var validationErr *processors.ValidationError
		if errors.As(err, &validationErr) {
			log.Warn("Ledger validation failed", "filename", filename, "reason", validationErr.Reason)
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil, fmt.Errorf("failed to build ledger: %w", err)
	}

	summary := s.aggregator.Aggregate(ledger)
	summary.ColumnMapping = mapping
	summary.GenericMetadata = profile

	log.Info("Process END", "filename", filename, "rows", summary.RowCount, "duration", time.Since(startTime))
	return summary, nil
}

func (s *financialServiceImpl) Profile(ctx context.Context, data []byte, filename string) (*models.GenericProfile, error) {
	table, err := parseUpload(data, filename)
	if err != nil {
		return nil, err
	}
	profile := s.profiler.Profile(table)
	logger.InfoFromContext(ctx, "Profiled upload", "filename", filename, "columns", profile.ColumnInfo.TotalColumns)
	return profile, nil
}

func (s *financialServiceImpl) Analyze(ctx context.Context, summary *models.FinancialSummary, industry, language string) (*models.AnalysisResult, error) {
	if summary == nil {
		return nil, fmt.Errorf("%w: summary is required", ErrInvalidInput)
	}
	if industry == "" {
		industry = "General"
	}
	return s.engine.Analyze(ctx, summary, industry, language), nil
}

func (s *financialServiceImpl) Translate(ctx context.Context, result *models.AnalysisResult, language string, tc models.TranslationContext) (*models.AnalysisResult, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: analysis is required", ErrInvalidInput)
	}
	return s.engine.Translate(ctx, result, language, tc), nil
}

func parseUpload(data []byte, filename string) (*models.RawTable, error) {
	parser, err := parsers.GetParser(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	table, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return table, nil
}
