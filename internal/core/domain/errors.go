package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyDataset indicates an index build was attempted over a
	// dataset with no records.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrDimensionMismatch indicates an embedding vector's length does
	// not match the dimension the index was built with. The embedding
	// model must be the same for the lifetime of an index.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexNotFound indicates the vector file or its metadata
	// sidecar is missing at the given path.
	ErrIndexNotFound = errors.New("index not found")

	// ErrCorruptIndex indicates a persisted index pair failed
	// validation after load, typically a vector/metadata count mismatch.
	ErrCorruptIndex = errors.New("corrupt index")

	// ErrInvalidQuery indicates a search query was empty after trimming
	// or requested a non-positive number of results.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrProvider wraps any embedding provider failure
	// (network, auth, rate limit).
	ErrProvider = errors.New("embedding provider failure")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Features requiring an LLM (answers, evaluation judging) are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
