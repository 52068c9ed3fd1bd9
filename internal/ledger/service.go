package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"goodsmile/clinic/domain"
	"goodsmile/clinic/internal/cache"
)

// Source reads ledger rows for an inclusive date range.
type Source interface {
	TransactionsBetween(ctx context.Context, start, end string) ([]domain.Transaction, error)
	ExpensesBetween(ctx context.Context, start, end string) ([]domain.Expense, error)
}

// Service computes summaries, reading through the summary cache when one is set.
type Service struct {
	Source Source
	Cache  *cache.Cache
	Logger zerolog.Logger
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// DailyKey is the cache key of a day's summary.
func DailyKey(date string) string {
	return cache.Key("summary", "daily", date)
}

// MonthlyKey is the cache key of a month's summary.
func MonthlyKey(m Month) string {
	return cache.Key("summary", "monthly", fmt.Sprintf("%04d", m.Year), fmt.Sprintf("%02d", int(m.Month)))
}

// Daily summarizes one date (YYYY-MM-DD, empty for today).
func (s *Service) Daily(ctx context.Context, date string) (DailySummary, error) {
	date, err := ParseDate(date, s.now())
	if err != nil {
		return DailySummary{}, err
	}
	key := DailyKey(date)
	var cached DailySummary
	if ok, err := s.Cache.GetJSON(ctx, key, &cached); err != nil {
		s.Logger.Warn().Err(err).Str("key", key).Msg("summary cache read failed")
	} else if ok {
		return cached, nil
	}

	txs, exps, err := s.rows(ctx, date, date)
	if err != nil {
		return DailySummary{}, err
	}
	summary := SummarizeDay(date, txs, exps)
	if err := s.Cache.SetJSON(ctx, key, summary); err != nil {
		s.Logger.Warn().Err(err).Str("key", key).Msg("summary cache write failed")
	}
	return summary, nil
}

// Monthly summarizes a calendar month.
func (s *Service) Monthly(ctx context.Context, m Month) (MonthlySummary, error) {
	key := MonthlyKey(m)
	var cached MonthlySummary
	if ok, err := s.Cache.GetJSON(ctx, key, &cached); err != nil {
		s.Logger.Warn().Err(err).Str("key", key).Msg("summary cache read failed")
	} else if ok {
		return cached, nil
	}

	start, end := m.Range()
	txs, exps, err := s.rows(ctx, start, end)
	if err != nil {
		return MonthlySummary{}, err
	}
	summary := SummarizeMonth(m, txs, exps)
	if err := s.Cache.SetJSON(ctx, key, summary); err != nil {
		s.Logger.Warn().Err(err).Str("key", key).Msg("summary cache write failed")
	}
	return summary, nil
}

// MonthRows returns the raw records of a month, oldest first.
func (s *Service) MonthRows(ctx context.Context, m Month) ([]domain.Transaction, []domain.Expense, error) {
	start, end := m.Range()
	return s.rows(ctx, start, end)
}

func (s *Service) rows(ctx context.Context, start, end string) ([]domain.Transaction, []domain.Expense, error) {
	txs, err := s.Source.TransactionsBetween(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("ledger transactions: %w", err)
	}
	exps, err := s.Source.ExpensesBetween(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("ledger expenses: %w", err)
	}
	return txs, exps, nil
}
