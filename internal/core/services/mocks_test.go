package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
	"github.com/sara-labs/sara-cli/internal/core/ports/driving"
)

// --- Mock implementations shared across service tests ---

// mockRecordStore implements driven.RecordStore for testing.
type mockRecordStore struct {
	records []domain.Researcher
	loadErr error
}

func (m *mockRecordStore) Load(_ context.Context, _ string) ([]domain.Researcher, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.records, nil
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Each distinct text gets a deterministic vector so tests can assert on
// positions without a real model.
type mockEmbeddingService struct {
	vectors  map[string][]float32
	fallback []float32
	embedErr error
	calls    []string
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls = append(m.calls, text)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	if m.fallback != nil {
		return m.fallback, nil
	}
	return []float32{0, 0}, nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		result = append(result, vec)
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int              { return 2 }
func (m *mockEmbeddingService) ModelName() string            { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// mockIndexStore implements driven.IndexStore for testing.
type mockIndexStore struct {
	savedIndex    driven.VectorIndex
	savedMetadata []domain.Researcher
	savedPath     string
	saveErr       error

	loadIndex    driven.VectorIndex
	loadMetadata []domain.Researcher
	loadErr      error
}

func (m *mockIndexStore) Save(_ context.Context, index driven.VectorIndex, metadata []domain.Researcher, path string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedIndex = index
	m.savedMetadata = metadata
	m.savedPath = path
	return nil
}

func (m *mockIndexStore) Load(_ context.Context, _ string) (driven.VectorIndex, []domain.Researcher, error) {
	if m.loadErr != nil {
		return nil, nil, m.loadErr
	}
	return m.loadIndex, m.loadMetadata, nil
}

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	vectors [][]float32
	hits    []driven.VectorHit
	addErr  error
	dim     int
}

func (m *mockVectorIndex) Add(_ context.Context, embedding []float32) error {
	if m.addErr != nil {
		return m.addErr
	}
	if m.dim == 0 {
		m.dim = len(embedding)
	}
	m.vectors = append(m.vectors, embedding)
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Len() int        { return len(m.vectors) }
func (m *mockVectorIndex) Dimensions() int { return m.dim }

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	response    string
	responses   []string // consumed in order when set
	generateErr error
	prompts     []string
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateErr != nil {
		return "", m.generateErr
	}
	if len(m.responses) > 0 {
		resp := m.responses[0]
		m.responses = m.responses[1:]
		return resp, nil
	}
	return m.response, nil
}

func (m *mockLLMService) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	return m.response, m.generateErr
}

func (m *mockLLMService) ModelName() string            { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error                 { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if prompt, ok := m.prompts[name]; ok {
		return prompt, nil
	}
	return "", fmt.Errorf("prompt %q not found", name)
}

func (m *mockPromptStore) Reload() {}

// mockAssistant implements driving.AssistantService for testing.
type mockAssistant struct {
	answers map[string]string
	askErr  error
	asked   []string
}

func (m *mockAssistant) Ask(_ context.Context, question, _ string, _ int) (driving.Answer, error) {
	m.asked = append(m.asked, question)
	if m.askErr != nil {
		return driving.Answer{}, m.askErr
	}
	if answer, ok := m.answers[question]; ok {
		return driving.Answer{Text: answer}, nil
	}
	return driving.Answer{Text: "answer to " + question}, nil
}

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	results   []domain.SearchResult
	searchErr error
	queries   []string
}

func (m *mockSearchService) Search(_ context.Context, query, _ string, _ int) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

// mockEvalStore implements driven.EvalStore in memory for testing.
type mockEvalStore struct {
	mu      sync.Mutex
	runs    map[string]domain.EvalRun
	results []domain.EvalResult
	saveErr error
}

func newMockEvalStore() *mockEvalStore {
	return &mockEvalStore{runs: make(map[string]domain.EvalRun)}
}

func (m *mockEvalStore) SaveRun(_ context.Context, run *domain.EvalRun) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = *run
	return nil
}

func (m *mockEvalStore) SaveResult(_ context.Context, result *domain.EvalResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, *result)
	return nil
}

func (m *mockEvalStore) GetRun(_ context.Context, id string) (*domain.EvalRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

func (m *mockEvalStore) ListResults(_ context.Context, runID string) ([]domain.EvalResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.EvalResult
	for _, r := range m.results {
		if r.RunID == runID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockEvalStore) ListRuns(_ context.Context) ([]domain.EvalRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.EvalRun, 0, len(m.runs))
	for _, run := range m.runs {
		out = append(out, run)
	}
	return out, nil
}

func (m *mockEvalStore) Close() error { return nil }
