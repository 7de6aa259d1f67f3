package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
	"github.com/sara-labs/sara-cli/internal/core/ports/driving"
	"github.com/sara-labs/sara-cli/internal/logger"
)

// Ensure AssistantService implements the interfaces.
var (
	_ driving.AssistantService = (*AssistantService)(nil)
	_ driven.PromptStoreAware  = (*AssistantService)(nil)
)

// Answer generation parameters. Low temperature keeps the model close
// to the retrieved context.
const (
	answerTemperature = 0.3
	answerMaxTokens   = 1024
)

// defaultAnswerPrompt is the fallback when no PromptStore is configured.
const defaultAnswerPrompt = `You are a research assistant for a university. Answer the question using ONLY the context below.
If the context does not contain the answer, say so plainly. Do not invent researchers, projects, or grant amounts.

CONTEXT:
%s

QUESTION:
%s

ANSWER:`

// AssistantService answers questions grounded on retrieved researchers.
type AssistantService struct {
	search      driving.SearchService
	llm         driven.LLMService
	promptStore driven.PromptStore
}

// NewAssistantService creates a new assistant service.
// The llm parameter may be nil, in which case Ask fails with
// domain.ErrLLMUnavailable.
func NewAssistantService(search driving.SearchService, llm driven.LLMService) *AssistantService {
	return &AssistantService{
		search: search,
		llm:    llm,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses the hardcoded default prompt.
func (s *AssistantService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ask retrieves the topK nearest researchers for the question, formats
// them into a context block, and asks the LLM for a grounded answer.
func (s *AssistantService) Ask(
	ctx context.Context, question, indexPath string, topK int,
) (driving.Answer, error) {
	logger.Section("Ask")
	logger.Debug("Question: %q", question)

	if s.llm == nil {
		return driving.Answer{}, fmt.Errorf("no LLM configured: %w", domain.ErrLLMUnavailable)
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return driving.Answer{}, fmt.Errorf("empty question: %w", domain.ErrInvalidQuery)
	}

	sources, err := s.search.Search(ctx, question, indexPath, topK)
	if err != nil {
		return driving.Answer{}, fmt.Errorf("retrieve context: %w", err)
	}
	logger.Debug("Retrieved %d researchers for context", len(sources))

	contextBlock := formatContext(sources)
	prompt := fmt.Sprintf(s.loadPrompt(driven.PromptAnswer, defaultAnswerPrompt), contextBlock, question)

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
	})
	if err != nil {
		return driving.Answer{}, fmt.Errorf("generate answer: %w", err)
	}

	return driving.Answer{
		Text:    strings.TrimSpace(text),
		Sources: sources,
	}, nil
}

// formatContext renders retrieved researchers into the context block the
// answer prompt consumes, nearest first.
func formatContext(results []domain.SearchResult) string {
	var b strings.Builder
	for _, result := range results {
		r := result.Researcher
		fmt.Fprintf(&b, "%s (%s): %s\n", r.Name, r.Affiliation, strings.Join(r.ResearchAreas, ", "))
		for _, p := range r.Projects {
			fmt.Fprintf(&b, "- %s (%s) | %.0f PLN\n", p.Title, p.Years, p.GrantAmount)
		}
		if r.Source != "" {
			fmt.Fprintf(&b, "Source: %s\n", r.Source)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// loadPrompt loads a prompt from the store, falling back to the default
// if unavailable.
func (s *AssistantService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
