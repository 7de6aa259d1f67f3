package domain

import (
	"fmt"
	"strings"
)

// Researcher represents a single researcher profile with metadata.
// It is the canonical unit of retrieval, loaded from a JSON dataset
// produced by the external collection pipeline.
type Researcher struct {
	// Name is the display name of the researcher.
	Name string `json:"name"`

	// Affiliation is the free-text institution string. May be empty.
	Affiliation string `json:"affiliation"`

	// ResearchAreas is the ordered list of research topic strings.
	ResearchAreas []string `json:"research_areas"`

	// Projects is the ordered list of funded projects.
	Projects []Project `json:"projects"`

	// Source records provenance (a URL or dataset tag).
	Source string `json:"source"`
}

// Project represents a funded project attached to a researcher.
type Project struct {
	// Title is the project title.
	Title string `json:"title"`

	// Years is the free-text year range, e.g. "2020-2023".
	Years string `json:"years"`

	// GrantAmount is the grant size in PLN. May be zero.
	GrantAmount float64 `json:"grant_amount"`
}

// EmbeddingText synthesizes the descriptive text block that is embedded
// for this researcher. The field order is fixed so that embeddings are
// reproducible across runs given identical input.
func (r Researcher) EmbeddingText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s from %s researches %s.\n",
		r.Name, r.Affiliation, strings.Join(r.ResearchAreas, ", "))
	for _, p := range r.Projects {
		fmt.Fprintf(&b, "Project: %s (%s, %.0f PLN)\n", p.Title, p.Years, p.GrantAmount)
	}
	return b.String()
}

// IsDegenerate reports whether the researcher has no non-empty field that
// would contribute to its embedding text. Degenerate records are skipped
// at index build time rather than embedded as near-empty strings.
func (r Researcher) IsDegenerate() bool {
	if strings.TrimSpace(r.Name) != "" || strings.TrimSpace(r.Affiliation) != "" {
		return false
	}
	for _, area := range r.ResearchAreas {
		if strings.TrimSpace(area) != "" {
			return false
		}
	}
	for _, p := range r.Projects {
		if strings.TrimSpace(p.Title) != "" || strings.TrimSpace(p.Years) != "" {
			return false
		}
	}
	return true
}
