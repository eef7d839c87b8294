package service

import (
	"context"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
)

// StatsService exposes admin aggregates.
type StatsService interface {
	// TotalUsers counts accounts that are not withdrawn.
	TotalUsers(ctx context.Context) (int64, error)
	// TotalSales sums order totals, excluding cancelled orders.
	TotalSales(ctx context.Context) (int64, error)
	TotalBooks(ctx context.Context) (int64, error)
}

type statsService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	bookRepo  repository.BookRepository
}

// NewStatsService creates a new stats service instance
func NewStatsService(userRepo repository.UserRepository, orderRepo repository.OrderRepository, bookRepo repository.BookRepository) StatsService {
	return &statsService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
	}
}

func (s *statsService) TotalUsers(ctx context.Context) (int64, error) {
	n, err := s.userRepo.Count(ctx)
	return n, apperror.Wrap(err, "count users")
}

func (s *statsService) TotalSales(ctx context.Context) (int64, error) {
	n, err := s.orderRepo.TotalSales(ctx)
	return n, apperror.Wrap(err, "sum sales")
}

func (s *statsService) TotalBooks(ctx context.Context) (int64, error) {
	n, err := s.bookRepo.Count(ctx)
	return n, apperror.Wrap(err, "count books")
}
