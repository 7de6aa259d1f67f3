package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sara-labs/sara-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_researchers tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"free-text description of the researcher or topic to find"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of researchers to return"`
}

// SearchOutput is the output schema for the search_researchers tool.
type SearchOutput struct {
	Results []ResearcherOutput `json:"results"`
	Count   int                `json:"count"`
}

// ResearcherOutput represents a single retrieved researcher.
type ResearcherOutput struct {
	Name          string          `json:"name"`
	Affiliation   string          `json:"affiliation"`
	ResearchAreas []string        `json:"research_areas"`
	Projects      []ProjectOutput `json:"projects,omitempty"`
	Source        string          `json:"source,omitempty"`
	Distance      float32         `json:"distance"`
	Position      int             `json:"position"`
}

// ProjectOutput represents a funded project in tool output.
type ProjectOutput struct {
	Title       string  `json:"title"`
	Years       string  `json:"years"`
	GrantAmount float64 `json:"grant_amount"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer grounded on the researcher index"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of researchers retrieved for context"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string             `json:"answer"`
	Sources []ResearcherOutput `json:"sources"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_researchers",
		Description: "Find researchers by semantic similarity to a free-text query",
	}, s.handleSearch)

	if s.ports.Assistant != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Answer a question grounded on the researcher index",
		}, s.handleAsk)
	}
}

// handleSearch handles the search_researchers tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = s.ports.TopK
	}

	results, err := s.ports.Search.Search(ctx, input.Query, s.ports.IndexPath, topK)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]ResearcherOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = toResearcherOutput(results[i])
	}

	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = s.ports.TopK
	}

	answer, err := s.ports.Assistant.Ask(ctx, input.Question, s.ports.IndexPath, topK)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Sources: make([]ResearcherOutput, len(answer.Sources)),
	}
	for i := range answer.Sources {
		output.Sources[i] = toResearcherOutput(answer.Sources[i])
	}

	return nil, output, nil
}

// toResearcherOutput converts a domain search result into tool output.
func toResearcherOutput(result domain.SearchResult) ResearcherOutput {
	r := result.Researcher
	out := ResearcherOutput{
		Name:          r.Name,
		Affiliation:   r.Affiliation,
		ResearchAreas: r.ResearchAreas,
		Source:        r.Source,
		Distance:      result.Distance,
		Position:      result.Position,
	}
	for _, p := range r.Projects {
		out.Projects = append(out.Projects, ProjectOutput{
			Title:       p.Title,
			Years:       p.Years,
			GrantAmount: p.GrantAmount,
		})
	}
	return out
}
