package cli

import (
	"context"
	"errors"
	"time"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driving"
)

// setupTestServices wires mock implementations into the command tree and
// returns a cleanup that restores whatever was there before.
func setupTestServices() func() {
	oldIndex := indexService
	oldSearch := searchService
	oldAssistant := assistantService
	oldEval := evalService
	oldEvalStore := evalStore
	oldConfig := configStore

	indexService = &mockIndexService{}
	searchService = &mockSearchService{}
	assistantService = &mockAssistantService{}
	evalService = &mockEvalService{}
	evalStore = &mockEvalStore{}
	configStore = &mockConfigStore{values: map[string]any{}}

	return func() {
		indexService = oldIndex
		searchService = oldSearch
		assistantService = oldAssistant
		evalService = oldEval
		evalStore = oldEvalStore
		configStore = oldConfig
	}
}

func mockResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			Researcher: domain.Researcher{
				Name:          "Anna Kowalska",
				Affiliation:   "Adam Mickiewicz University",
				ResearchAreas: []string{"machine learning", "NLP"},
				Projects: []domain.Project{
					{Title: "Neural Parsing of Polish", Years: "2021-2024", GrantAmount: 850000},
				},
				Source: "https://example.edu/anna",
			},
			Distance: 0.1234,
			Position: 0,
		},
		{
			Researcher: domain.Researcher{
				Name:        "Jan Nowak",
				Affiliation: "Jagiellonian University",
			},
			Distance: 0.5678,
			Position: 3,
		},
	}
}

type mockIndexService struct{}

func (m *mockIndexService) BuildIndex(_ context.Context, _, _ string) (driving.BuildStats, error) {
	return driving.BuildStats{Indexed: 2, Skipped: 1, Dimensions: 4}, nil
}

type mockSearchService struct{}

func (m *mockSearchService) Search(_ context.Context, _, _ string, _ int) ([]domain.SearchResult, error) {
	return mockResults(), nil
}

type mockSearchServiceError struct{}

func (m *mockSearchServiceError) Search(_ context.Context, _, _ string, _ int) ([]domain.SearchResult, error) {
	return nil, errors.New("mock search error")
}

type mockAssistantService struct{}

func (m *mockAssistantService) Ask(_ context.Context, _, _ string, _ int) (driving.Answer, error) {
	return driving.Answer{
		Text:    "Anna Kowalska researches machine learning.",
		Sources: mockResults(),
	}, nil
}

type mockAssistantServiceError struct{}

func (m *mockAssistantServiceError) Ask(_ context.Context, _, _ string, _ int) (driving.Answer, error) {
	return driving.Answer{}, errors.New("mock ask error")
}

type mockEvalService struct{}

func (m *mockEvalService) Run(_ context.Context, questionsPath, _ string, _ driving.EvalOptions) (domain.EvalRun, error) {
	return domain.EvalRun{
		ID:            "run-1",
		QuestionsPath: questionsPath,
		Answered:      2,
		Failed:        1,
		StartedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

type mockEvalStore struct{}

func (m *mockEvalStore) SaveRun(_ context.Context, _ *domain.EvalRun) error { return nil }

func (m *mockEvalStore) SaveResult(_ context.Context, _ *domain.EvalResult) error { return nil }

func (m *mockEvalStore) GetRun(_ context.Context, id string) (*domain.EvalRun, error) {
	return &domain.EvalRun{ID: id}, nil
}

func (m *mockEvalStore) ListRuns(_ context.Context) ([]domain.EvalRun, error) {
	return []domain.EvalRun{
		{
			ID:            "run-1",
			QuestionsPath: "questions.txt",
			Answered:      2,
			Failed:        1,
			StartedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}, nil
}

func (m *mockEvalStore) ListResults(_ context.Context, runID string) ([]domain.EvalResult, error) {
	accuracy, completeness := 2, 1
	return []domain.EvalResult{
		{
			ID:              "result-1",
			RunID:           runID,
			Question:        "Who researches machine learning?",
			Answer:          "Anna Kowalska.",
			FactualAccuracy: &accuracy,
			Completeness:    &completeness,
		},
		{
			ID:       "result-2",
			RunID:    runID,
			Question: "Who researches astrophysics?",
			Notes:    "search failed: empty dataset",
		},
	}, nil
}

func (m *mockEvalStore) Close() error { return nil }

type mockConfigStore struct {
	values map[string]any
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	if v, ok := m.values[key].([]string); ok {
		return v
	}
	return nil
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }

func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string { return "/tmp/sara-test/config.toml" }
