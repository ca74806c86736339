package model

// Label is the coarse classification of a verified claim
type Label string

const (
	LabelTrue          Label = "TRUE"
	LabelFalse         Label = "FALSE"
	LabelPartiallyTrue Label = "PARTIALLY TRUE"
	LabelUncertain     Label = "UNCERTAIN"
)

// EvidenceSource is a web page summarized into grounding material
// for claim verification
type EvidenceSource struct {
	Title   string `json:"title"`            // Page or result title
	URL     string `json:"url"`              // Resolved page URL
	Content string `json:"content"`          // Search snippet plus scraped excerpt
	Snippet string `json:"snippet,omitempty"` // Raw search snippet, kept for fallback display
}

// SourceRef is the reduced source form returned to API clients
type SourceRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// AnalysisMetadata describes how a document analysis was performed
type AnalysisMetadata struct {
	EstimatedTokens  int  `json:"estimated_tokens"`   // Char-length based estimate, not billing-accurate
	ChunksProcessed  int  `json:"chunks_processed"`   // Equals the number of LLM calls made
	WithinTokenLimit bool `json:"within_token_limit"` // Whether the document fit in a single call
}

// AnalysisResult is the outcome of a legal document analysis
type AnalysisResult struct {
	Status      string            `json:"status"`
	Explanation string            `json:"explanation,omitempty"`
	Message     string            `json:"message,omitempty"`
	Metadata    *AnalysisMetadata `json:"metadata,omitempty"`
}

// VerificationResult is the outcome of a misinformation check
type VerificationResult struct {
	Status              string      `json:"status"`
	Classification      Label       `json:"classification,omitempty"`
	Explanation         string      `json:"explanation,omitempty"`
	DetailedExplanation string      `json:"detailed_explanation,omitempty"`
	Message             string      `json:"message,omitempty"`
	Sources             []SourceRef `json:"sources"`
	SourcesCount        int         `json:"sources_count"`
}

// StatusSuccess and StatusError are the two result statuses exposed by the API
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Refs reduces a full evidence list to the {title, url} form for responses
func Refs(sources []EvidenceSource) []SourceRef {
	refs := make([]SourceRef, 0, len(sources))
	for _, s := range sources {
		refs = append(refs, SourceRef{Title: s.Title, URL: s.URL})
	}
	return refs
}
