package domain

// SearchResult represents a single similarity search hit.
type SearchResult struct {
	// Researcher is the matched profile.
	Researcher Researcher

	// Distance is the squared Euclidean distance between the query
	// embedding and the researcher's embedding. Smaller is closer.
	Distance float32

	// Position is the researcher's position in the index. Ties in
	// distance resolve in favour of the lower position.
	Position int
}
