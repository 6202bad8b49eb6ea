package domain

import "context"

// VideoID is the 11-character identifier YouTube assigns to a video.
// Extraction only guarantees the shape; whether the id actually exists
// is settled by the fetch.
type VideoID string

// Record is the clean data structure for export: one comment paired with
// its binary sentiment label (1 non-negative, 0 negative)
type Record struct {
	Comment   string `json:"comment"`
	Sentiment int    `json:"sentiment"`
}

// Collector defines the interface for comment fetching
type Collector interface {
	// FetchComments returns every top-level comment of the video in API
	// page order. The key is the caller's YouTube Data API credential.
	FetchComments(ctx context.Context, videoID VideoID, apiKey string) ([]string, error)
}

// Scorer produces a compound polarity score in [-1, 1] for a text
type Scorer interface {
	Compound(text string) float64
}
