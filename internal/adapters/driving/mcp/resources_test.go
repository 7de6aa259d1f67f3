package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sara-labs/sara-cli/internal/core/domain"
)

func readResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleRunsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("no eval store returns empty list", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleRunsResource(ctx, readResourceRequest("sara://eval/runs"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists runs", func(t *testing.T) {
		store := &mockEvalStore{
			runs: []domain.EvalRun{
				{
					ID:            "run-1",
					QuestionsPath: "questions.txt",
					Answered:      9,
					Failed:        1,
					StartedAt:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
				},
			},
		}

		ports := &Ports{Search: &mockSearchService{}, EvalStore: store}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleRunsResource(ctx, readResourceRequest("sara://eval/runs"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"run-1"`)
		assert.Contains(t, result.Contents[0].Text, `"answered": 9`)
	})
}

func TestServer_handleRunResultsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("no eval store returns not found", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleRunResultsResource(ctx, readResourceRequest("sara://eval/runs/run-1/results"))

		assert.Error(t, err)
	})

	t.Run("lists results for run", func(t *testing.T) {
		score := 2
		store := &mockEvalStore{
			results: []domain.EvalResult{
				{
					RunID:           "run-1",
					Question:        "Who works on NLP?",
					Answer:          "Anna Kowalska",
					FactualAccuracy: &score,
					Completeness:    &score,
				},
			},
		}

		ports := &Ports{Search: &mockSearchService{}, EvalStore: store}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleRunResultsResource(ctx, readResourceRequest("sara://eval/runs/run-1/results"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "Who works on NLP?")
		assert.Contains(t, result.Contents[0].Text, `"factual_accuracy": 2`)
	})

	t.Run("malformed URI returns not found", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}, EvalStore: &mockEvalStore{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleRunResultsResource(ctx, readResourceRequest("sara://bogus"))

		assert.Error(t, err)
	})
}

func TestExtractRunID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"sara://eval/runs/abc-123/results", "abc-123"},
		{"sara://eval/runs//results", ""},
		{"sara://eval/runs/abc-123", ""},
		{"other://eval/runs/abc/results", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractRunID(tt.uri), "uri %q", tt.uri)
	}
}
