package model

import "errors"

var (
	// ErrNoTextExtracted is returned when a downloaded PDF yields no text.
	// The message is user-facing and surfaced verbatim in error payloads.
	ErrNoTextExtracted = errors.New("No text extracted from the PDF.")

	// ErrExtraction is returned when the document cannot be parsed at all.
	ErrExtraction = errors.New("failed to extract text from document")

	// ErrNoEvidence is returned when the web search produced no usable sources.
	ErrNoEvidence = errors.New("no evidence found: search returned no results")

	// ErrMissingAPIKey is returned when the configured LLM provider has no credential.
	ErrMissingAPIKey = errors.New("LLM API key not configured")

	// ErrInvalidInput is returned for empty or malformed user input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRetrieval is returned when the document download fails.
	ErrRetrieval = errors.New("document retrieval failed")

	// ErrUpstream is returned when an LLM call fails.
	ErrUpstream = errors.New("upstream service failure")
)
