package service

import (
	"context"
	"fmt"

	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/edumetrics/assess-backend/internal/repository"
)

// ResultService reads persisted test results. Row-level security keeps
// test_results write-only for end users, so this surface is admin-only.
type ResultService struct {
	repo *repository.ResultRepository
}

// NewResultService creates a new ResultService.
func NewResultService(repo *repository.ResultRepository) *ResultService {
	return &ResultService{repo: repo}
}

// ResultSummary is a submitter's result history with its row count.
type ResultSummary struct {
	Email   string             `json:"email"`
	Count   int64              `json:"count"`
	Results []model.TestResult `json:"results"`
}

// HistoryByEmail returns all of a submitter's result rows, without the
// serialized question/answer snapshots.
func (s *ResultService) HistoryByEmail(ctx context.Context, email string) (*ResultSummary, error) {
	count, err := s.repo.CountByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("count results: %w", err)
	}

	results, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	if results == nil {
		results = []model.TestResult{}
	}

	return &ResultSummary{Email: email, Count: count, Results: results}, nil
}
