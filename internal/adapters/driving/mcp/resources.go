package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for SARA resources.
	uriScheme = "sara://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing evaluation runs.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "eval/runs",
		Name:        "eval-runs",
		Description: "List of recorded evaluation runs",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	// Template for per-run results.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "eval/runs/{runId}/results",
		Name:        "eval-run-results",
		Description: "Per-question results of an evaluation run",
		MIMEType:    "application/json",
	}, s.handleRunResultsResource)
}

// handleRunsResource returns a list of all evaluation runs.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.EvalStore == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	runs, err := s.ports.EvalStore.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	// Build simplified run list.
	type runInfo struct {
		ID            string `json:"id"`
		QuestionsPath string `json:"questions_path"`
		Answered      int    `json:"answered"`
		Failed        int    `json:"failed"`
		StartedAt     string `json:"started_at"`
	}

	infos := make([]runInfo, len(runs))
	for i, run := range runs {
		infos[i] = runInfo{
			ID:            run.ID,
			QuestionsPath: run.QuestionsPath,
			Answered:      run.Answered,
			Failed:        run.Failed,
			StartedAt:     run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling runs: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleRunResultsResource returns the results of a specific run.
func (s *Server) handleRunResultsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.EvalStore == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract runId from URI: sara://eval/runs/{runId}/results
	runID := extractRunID(req.Params.URI)
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	results, err := s.ports.EvalStore.ListResults(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}

	// Build simplified result list.
	type resultInfo struct {
		Question        string `json:"question"`
		Answer          string `json:"answer,omitempty"`
		FactualAccuracy *int   `json:"factual_accuracy,omitempty"`
		Completeness    *int   `json:"completeness,omitempty"`
		Notes           string `json:"notes,omitempty"`
	}

	infos := make([]resultInfo, len(results))
	for i := range results {
		infos[i] = resultInfo{
			Question:        results[i].Question,
			Answer:          results[i].Answer,
			FactualAccuracy: results[i].FactualAccuracy,
			Completeness:    results[i].Completeness,
			Notes:           results[i].Notes,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling results: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRunID extracts the run ID from a URI like sara://eval/runs/{runId}/results.
func extractRunID(uri string) string {
	const prefix = uriScheme + "eval/runs/"
	const suffix = "/results"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
