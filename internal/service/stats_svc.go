package service

import (
	"context"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/repository"
)

// StatsService platform statistics
type StatsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates the stats service
func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// Get counts users, stores and ratings.
func (s *StatsService) Get(ctx context.Context) (*dto.StatsResponse, error) {
	users, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := s.statsRepo.CountStores(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.statsRepo.CountRatings(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		TotalUsers:   users,
		TotalStores:  stores,
		TotalRatings: ratings,
	}, nil
}
