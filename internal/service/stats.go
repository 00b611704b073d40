package service

import (
	"context"
	"math"

	"coderr/models"
)

type StatsStore interface {
	PlatformStats(ctx context.Context) (*models.PlatformStats, error)
}

// StatsService - сводка по платформе, без авторизации
type StatsService struct {
	store StatsStore
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

func (s *StatsService) BaseInfo(ctx context.Context) (*models.PlatformStats, error) {
	stats, err := s.store.PlatformStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.AverageRating = roundRating(stats.AverageRating)
	return stats, nil
}

// средний рейтинг с одним знаком после запятой; без отзывов - 0
func roundRating(avg float64) float64 {
	if math.IsNaN(avg) {
		return 0
	}
	return math.Round(avg*10) / 10
}
