package mcp

import (
	"context"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error

	gotQuery string
	gotTopK  int
}

func (m *mockSearchService) Search(
	_ context.Context,
	query, _ string,
	topK int,
) ([]domain.SearchResult, error) {
	m.gotQuery = query
	m.gotTopK = topK
	return m.results, m.err
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	answer driving.Answer
	err    error
}

func (m *mockAssistantService) Ask(
	_ context.Context,
	_, _ string,
	_ int,
) (driving.Answer, error) {
	return m.answer, m.err
}

// mockEvalStore is a mock implementation of driven.EvalStore.
type mockEvalStore struct {
	runs    []domain.EvalRun
	results []domain.EvalResult
	err     error
}

func (m *mockEvalStore) SaveRun(_ context.Context, _ *domain.EvalRun) error {
	return m.err
}

func (m *mockEvalStore) SaveResult(_ context.Context, _ *domain.EvalResult) error {
	return m.err
}

func (m *mockEvalStore) GetRun(_ context.Context, _ string) (*domain.EvalRun, error) {
	if len(m.runs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.runs[0], m.err
}

func (m *mockEvalStore) ListResults(_ context.Context, _ string) ([]domain.EvalResult, error) {
	return m.results, m.err
}

func (m *mockEvalStore) ListRuns(_ context.Context) ([]domain.EvalRun, error) {
	return m.runs, m.err
}

func (m *mockEvalStore) Close() error { return nil }
