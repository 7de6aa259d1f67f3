package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
	"github.com/sara-labs/sara-cli/internal/core/ports/driving"
	"github.com/sara-labs/sara-cli/internal/logger"
)

// Ensure EvalService implements the interfaces.
var (
	_ driving.EvalService     = (*EvalService)(nil)
	_ driven.PromptStoreAware = (*EvalService)(nil)
)

// defaultJudgePrompt is the fallback when no PromptStore is configured.
const defaultJudgePrompt = `You are grading a research assistant's answer to a question about university researchers.
Score two dimensions on integer scales from 0 to 2:
- factual_accuracy: 0 = contains fabrications, 1 = partly accurate, 2 = fully accurate
- completeness: 0 = misses the point, 1 = partial answer, 2 = complete answer

Return ONLY a JSON object, no other text:
{"factual_accuracy": <0-2>, "completeness": <0-2>, "notes": "<one sentence>"}

QUESTION:
%s

ANSWER:
%s`

// judgeVerdict is the JSON shape the judge prompt asks for.
type judgeVerdict struct {
	FactualAccuracy int    `json:"factual_accuracy"`
	Completeness    int    `json:"completeness"`
	Notes           string `json:"notes"`
}

// EvalService runs a questions file through the retrieval pipeline and
// persists per-question results.
type EvalService struct {
	assistant   driving.AssistantService
	llm         driven.LLMService
	store       driven.EvalStore
	promptStore driven.PromptStore
}

// NewEvalService creates a new evaluation service.
// The llm parameter is used for judging only; it may be nil when judging
// is disabled.
func NewEvalService(assistant driving.AssistantService, llm driven.LLMService, store driven.EvalStore) *EvalService {
	return &EvalService{
		assistant: assistant,
		llm:       llm,
		store:     store,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses the hardcoded default prompt.
func (s *EvalService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Run answers every question in the file at questionsPath against the
// index at indexPath. One failing question is recorded with its error
// and the run continues; only an empty questions file aborts the run.
func (s *EvalService) Run(
	ctx context.Context, questionsPath, indexPath string, opts driving.EvalOptions,
) (domain.EvalRun, error) {
	logger.Section("Evaluation Run")
	logger.Debug("Questions: %s", questionsPath)
	logger.Debug("Index: %s", indexPath)

	questions, err := readQuestions(questionsPath)
	if err != nil {
		return domain.EvalRun{}, err
	}
	logger.Info("Loaded %d questions", len(questions))

	if opts.Judge && s.llm == nil {
		return domain.EvalRun{}, fmt.Errorf("judging requested but no LLM configured: %w", domain.ErrLLMUnavailable)
	}

	run := domain.EvalRun{
		ID:            uuid.NewString(),
		QuestionsPath: questionsPath,
		StartedAt:     time.Now().UTC(),
	}
	if err := s.store.SaveRun(ctx, &run); err != nil {
		return domain.EvalRun{}, fmt.Errorf("save run: %w", err)
	}

	for i, question := range questions {
		logger.Debug("Question %d/%d: %q", i+1, len(questions), question)

		result := domain.EvalResult{
			ID:        uuid.NewString(),
			RunID:     run.ID,
			Question:  question,
			CreatedAt: time.Now().UTC(),
		}

		answer, err := s.assistant.Ask(ctx, question, indexPath, opts.TopK)
		if err != nil {
			logger.Warn("Question %d failed: %v", i+1, err)
			result.Notes = err.Error()
			run.Failed++
		} else {
			result.Answer = answer.Text
			run.Answered++

			if opts.Judge {
				s.judge(ctx, &result)
			}
		}

		if err := s.store.SaveResult(ctx, &result); err != nil {
			return domain.EvalRun{}, fmt.Errorf("save result for question %d: %w", i+1, err)
		}

		// Cancellation between questions, not mid-question.
		if err := ctx.Err(); err != nil {
			return domain.EvalRun{}, err
		}
	}

	if err := s.store.SaveRun(ctx, &run); err != nil {
		return domain.EvalRun{}, fmt.Errorf("save run: %w", err)
	}

	logger.Info("Run %s: %d answered, %d failed", run.ID, run.Answered, run.Failed)
	return run, nil
}

// judge asks the LLM to score the answer. A judging failure leaves the
// scores nil and notes the error; it never fails the question.
func (s *EvalService) judge(ctx context.Context, result *domain.EvalResult) {
	prompt := fmt.Sprintf(s.loadPrompt(driven.PromptJudge, defaultJudgePrompt), result.Question, result.Answer)

	raw, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: answerTemperature,
		MaxTokens:   256,
	})
	if err != nil {
		logger.Warn("Judge failed: %v", err)
		result.Notes = fmt.Sprintf("judge failed: %v", err)
		return
	}

	var verdict judgeVerdict
	if err := json.Unmarshal([]byte(extractJSON(raw)), &verdict); err != nil {
		logger.Warn("Judge returned unparseable verdict: %v", err)
		result.Notes = fmt.Sprintf("judge verdict unparseable: %v", err)
		return
	}

	verdict.FactualAccuracy = clampScore(verdict.FactualAccuracy)
	verdict.Completeness = clampScore(verdict.Completeness)

	result.FactualAccuracy = &verdict.FactualAccuracy
	result.Completeness = &verdict.Completeness
	result.Notes = verdict.Notes
}

// loadPrompt loads a prompt from the store, falling back to the default
// if unavailable.
func (s *EvalService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// readQuestions reads one question per line, skipping blank lines and
// comments.
func readQuestions(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("questions file %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read questions file: %w", err)
	}

	var questions []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		questions = append(questions, line)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("questions file %s has no questions: %w", path, domain.ErrInvalidInput)
	}
	return questions, nil
}

// extractJSON strips any prose or code fences around the first JSON
// object in the text. Models occasionally wrap the verdict despite the
// prompt.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return text
	}
	return text[start : end+1]
}

// clampScore bounds a judge score to the 0-2 scale.
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 2 {
		return 2
	}
	return score
}
