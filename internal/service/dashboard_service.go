package service

import (
	"context"

	"github.com/qforge/qforge-backend/internal/model"
	"github.com/qforge/qforge-backend/internal/repository"
)

// DashboardData consolidates an author's workspace metrics.
type DashboardData struct {
	TotalQuestions     int                               `json:"total_questions"`
	TotalPapers        int                               `json:"total_papers"`
	TotalAnswerSheets  int                               `json:"total_answer_sheets"`
	QuestionTypeCounts map[model.QuestionType]int        `json:"question_type_counts"`
	SheetStatusCounts  map[model.SheetStatus]int         `json:"sheet_status_counts"`
	RecentPapers       []repository.DashboardRecentPaper `json:"recent_papers"`
}

// DashboardService assembles the authoring dashboard.
type DashboardService struct {
	repo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// GetDashboardData fetches all dashboard metrics for one author.
func (s *DashboardService) GetDashboardData(ctx context.Context, authorID int) (*DashboardData, error) {
	questions, papers, sheets, err := s.repo.GetSummaryCounts(ctx, authorID)
	if err != nil {
		return nil, err
	}

	typeCounts, err := s.repo.GetQuestionTypeCounts(ctx, authorID)
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.repo.GetSheetStatusCounts(ctx, authorID)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.GetRecentPapers(ctx, authorID, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		TotalQuestions:     questions,
		TotalPapers:        papers,
		TotalAnswerSheets:  sheets,
		QuestionTypeCounts: typeCounts,
		SheetStatusCounts:  statusCounts,
		RecentPapers:       recent,
	}, nil
}
